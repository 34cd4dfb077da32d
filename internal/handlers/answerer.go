package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
)

// AnswererHandler serves the answerer console: credential check plus the
// questions and answers that belong to the answerer, and the public
// anonymous Q&A feed.
type AnswererHandler struct {
	rounds    *services.RoundService
	questions *services.QuestionService
	answers   *services.AnswerService
	auth      *services.AuthService
}

func NewAnswererHandler(rounds *services.RoundService, questions *services.QuestionService, answers *services.AnswerService, auth *services.AuthService) *AnswererHandler {
	return &AnswererHandler{rounds: rounds, questions: questions, answers: answers, auth: auth}
}

type AnswererAuthResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Questions []models.Question `json:"questions"`
	Answers   []models.Answer   `json:"answers"`
}

type UnaskedMembersResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message,omitempty"`
	UnaskedMembers []string `json:"unaskedMembers"`
	Count          int      `json:"count"`
}

type AnswerURLRequest struct {
	AnswererName string `json:"answererName" binding:"required,max=100" example:"Bob"`
}

type AnswerURLResponse struct {
	Success   bool   `json:"success"`
	AnswerURL string `json:"answerUrl"`
}

type QAFeedResponse struct {
	Success bool             `json:"success"`
	QAData  []models.QAEntry `json:"qaData"`
	Count   int              `json:"count"`
}

// Auth godoc
// @Summary      Answerer console
// @Description  With action=unasked-members, lists active members who have not asked the answerer in the active round. Otherwise verifies the password and returns the answerer's questions and answers for the active round.
// @Tags         answerer
// @Produce      json
// @Param        answererName query string true  "Answerer name"
// @Param        password     query string false "Answerer password"
// @Param        action       query string false "unasked-members"
// @Success      200 {object} AnswererAuthResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/answerer-auth [get]
func (h *AnswererHandler) Auth(c *gin.Context) {
	name := c.Query("answererName")
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "answererName is required"})
		return
	}

	if c.Query("action") == "unasked-members" {
		h.unaskedMembers(c, name)
		return
	}

	password := c.Query("password")
	if password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password is required"})
		return
	}

	ok, err := h.auth.VerifyAnswerer(name, password)
	if err != nil {
		if errors.Is(err, services.ErrAnswererNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "answerer not found"})
			return
		}
		log.Printf("verify answerer %q: %v", name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "verification failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid password"})
		return
	}

	round, err := h.rounds.GetCurrentActiveRound()
	if err != nil {
		log.Printf("get current round: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read current round"})
		return
	}
	if round == nil {
		c.JSON(http.StatusOK, AnswererAuthResponse{
			Success:   true,
			Message:   "no active round",
			Questions: []models.Question{},
			Answers:   []models.Answer{},
		})
		return
	}

	questions, err := h.questions.GetQuestionsForAnswerer(name, round.ID)
	if err != nil {
		log.Printf("questions for answerer %q: %v", name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list questions"})
		return
	}

	answers, err := h.answers.ListAnswersForAnswerer(name, round.ID)
	if err != nil {
		log.Printf("answers for answerer %q: %v", name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list answers"})
		return
	}

	c.JSON(http.StatusOK, AnswererAuthResponse{Success: true, Questions: questions, Answers: answers})
}

func (h *AnswererHandler) unaskedMembers(c *gin.Context, name string) {
	unasked, err := h.questions.GetUnaskedMembers(name)
	if err != nil {
		log.Printf("unasked members for %q: %v", name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list unasked members"})
		return
	}

	resp := UnaskedMembersResponse{Success: true, UnaskedMembers: unasked, Count: len(unasked)}
	if active, err := h.rounds.IsRoundActive(); err == nil && !active {
		resp.Message = "no active round"
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateAnswerURL godoc
// @Summary      Build the answer page path for an answerer
// @Tags         answerer
// @Accept       json
// @Produce      json
// @Param        request body AnswerURLRequest true "Answerer name"
// @Success      200 {object} AnswerURLResponse
// @Router       /api/v1/answer-url [post]
func (h *AnswererHandler) GenerateAnswerURL(c *gin.Context) {
	var req AnswerURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "answererName is required"})
		return
	}
	c.JSON(http.StatusOK, AnswerURLResponse{Success: true, AnswerURL: "/answer/" + req.AnswererName})
}

// QAFeed godoc
// @Summary      Public anonymous Q&A feed for one answerer and round
// @Description  Questions paired with answers where present. Authors are withheld.
// @Tags         answerer
// @Produce      json
// @Param        roundId      path int    true "Round ID"
// @Param        answererName path string true "Answerer name"
// @Success      200 {object} QAFeedResponse
// @Router       /api/v1/qa/{roundId}/{answererName} [get]
func (h *AnswererHandler) QAFeed(c *gin.Context) {
	roundID, err := strconv.ParseUint(c.Param("roundId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid round id"})
		return
	}
	name := c.Param("answererName")

	entries, err := h.answers.GetAnswererQA(uint(roundID), name)
	if err != nil {
		log.Printf("qa feed round=%d answerer=%q: %v", roundID, name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load Q&A"})
		return
	}
	c.JSON(http.StatusOK, QAFeedResponse{Success: true, QAData: entries, Count: len(entries)})
}
