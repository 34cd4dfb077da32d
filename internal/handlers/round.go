package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
)

type RoundHandler struct {
	rounds    *services.RoundService
	questions *services.QuestionService
	answers   *services.AnswerService
}

func NewRoundHandler(rounds *services.RoundService, questions *services.QuestionService, answers *services.AnswerService) *RoundHandler {
	return &RoundHandler{rounds: rounds, questions: questions, answers: answers}
}

type CreateRoundRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Round 3"`
	Description string `json:"description" example:"Third Q&A session"`
}

type RoundResponse struct {
	Success bool          `json:"success"`
	Round   *models.Round `json:"round"`
	Message string        `json:"message,omitempty"`
}

type RoundListResponse struct {
	Success bool           `json:"success"`
	Rounds  []models.Round `json:"rounds"`
}

// ListRounds godoc
// @Summary      List all rounds
// @Tags         rounds
// @Produce      json
// @Success      200 {object} RoundListResponse
// @Router       /api/v1/rounds [get]
func (h *RoundHandler) ListRounds(c *gin.Context) {
	rounds, err := h.rounds.ListRounds()
	if err != nil {
		log.Printf("list rounds: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list rounds"})
		return
	}
	c.JSON(http.StatusOK, RoundListResponse{Success: true, Rounds: rounds})
}

// ListActiveRounds godoc
// @Summary      List active rounds
// @Tags         rounds
// @Produce      json
// @Success      200 {object} RoundListResponse
// @Router       /api/v1/rounds/active [get]
func (h *RoundHandler) ListActiveRounds(c *gin.Context) {
	rounds, err := h.rounds.ListActiveRounds()
	if err != nil {
		log.Printf("list active rounds: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list rounds"})
		return
	}
	c.JSON(http.StatusOK, RoundListResponse{Success: true, Rounds: rounds})
}

// GetCurrentRound godoc
// @Summary      Get the current active round
// @Description  Returns round null when no round is active; that is a valid state.
// @Tags         rounds
// @Produce      json
// @Success      200 {object} RoundResponse
// @Router       /api/v1/rounds/current [get]
func (h *RoundHandler) GetCurrentRound(c *gin.Context) {
	round, err := h.rounds.GetCurrentActiveRound()
	if err != nil {
		log.Printf("get current round: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read current round"})
		return
	}
	c.JSON(http.StatusOK, RoundResponse{Success: true, Round: round})
}

// CreateRound godoc
// @Summary      Create a round and make it active
// @Description  Assigns the next round number and deactivates every other round.
// @Tags         rounds
// @Accept       json
// @Produce      json
// @Param        request body CreateRoundRequest true "Round data"
// @Success      201 {object} RoundResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/rounds [post]
func (h *RoundHandler) CreateRound(c *gin.Context) {
	var req CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title is required"})
		return
	}

	round, err := h.rounds.CreateRound(req.Title, req.Description)
	if err != nil {
		log.Printf("create round: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create round"})
		return
	}
	c.JSON(http.StatusCreated, RoundResponse{Success: true, Round: round, Message: "round created"})
}

// SwitchRound godoc
// @Summary      Switch the active round
// @Description  Activates the round and resets every answerer registration in one step.
// @Tags         rounds
// @Produce      json
// @Param        id path int true "Round ID"
// @Success      200 {object} RoundResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rounds/{id}/switch [post]
func (h *RoundHandler) SwitchRound(c *gin.Context) {
	id, ok := roundIDParam(c)
	if !ok {
		return
	}

	round, err := h.rounds.SwitchToRound(id)
	if err != nil {
		if err.Error() == "round not found" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "round not found"})
			return
		}
		log.Printf("switch round %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to switch round"})
		return
	}
	c.JSON(http.StatusOK, RoundResponse{Success: true, Round: round, Message: "round switched, answerers reset"})
}

// DeactivateRound godoc
// @Summary      Deactivate a round
// @Tags         rounds
// @Produce      json
// @Param        id path int true "Round ID"
// @Success      200 {object} RoundResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rounds/{id}/deactivate [post]
func (h *RoundHandler) DeactivateRound(c *gin.Context) {
	id, ok := roundIDParam(c)
	if !ok {
		return
	}

	round, err := h.rounds.DeactivateRound(id)
	if err != nil {
		if err.Error() == "round not found" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "round not found"})
			return
		}
		log.Printf("deactivate round %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to deactivate round"})
		return
	}
	c.JSON(http.StatusOK, RoundResponse{Success: true, Round: round, Message: "round deactivated"})
}

// DeleteRound godoc
// @Summary      Delete a round and everything scoped to it
// @Description  Irreversible. Removes the round's questions, answers and targets.
// @Tags         rounds
// @Produce      json
// @Param        id path int true "Round ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rounds/{id} [delete]
func (h *RoundHandler) DeleteRound(c *gin.Context) {
	id, ok := roundIDParam(c)
	if !ok {
		return
	}

	if err := h.rounds.DeleteRound(id); err != nil {
		if err.Error() == "round not found" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "round not found"})
			return
		}
		log.Printf("delete round %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete round"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "round deleted"})
}

// ListRoundQuestions godoc
// @Summary      List a round's questions
// @Tags         rounds
// @Produce      json
// @Param        id path int true "Round ID"
// @Success      200 {object} QuestionListResponse
// @Router       /api/v1/rounds/{id}/questions [get]
func (h *RoundHandler) ListRoundQuestions(c *gin.Context) {
	id, ok := roundIDParam(c)
	if !ok {
		return
	}

	questions, err := h.questions.ListQuestionsByRound(id)
	if err != nil {
		log.Printf("list round %d questions: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list questions"})
		return
	}
	c.JSON(http.StatusOK, QuestionListResponse{Success: true, Questions: questions})
}

// ListRoundAnswers godoc
// @Summary      List a round's answers
// @Tags         rounds
// @Produce      json
// @Param        id path int true "Round ID"
// @Success      200 {object} AnswerListResponse
// @Router       /api/v1/rounds/{id}/answers [get]
func (h *RoundHandler) ListRoundAnswers(c *gin.Context) {
	id, ok := roundIDParam(c)
	if !ok {
		return
	}

	answers, err := h.answers.ListAnswersByRound(id)
	if err != nil {
		log.Printf("list round %d answers: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list answers"})
		return
	}
	c.JSON(http.StatusOK, AnswerListResponse{Success: true, Answers: answers})
}

// FixRoundNumbers godoc
// @Summary      Renumber rounds by creation order
// @Tags         rounds
// @Produce      json
// @Success      200 {object} RoundListResponse
// @Router       /api/v1/rounds/fix-numbers [post]
func (h *RoundHandler) FixRoundNumbers(c *gin.Context) {
	rounds, err := h.rounds.FixRoundNumbers()
	if err != nil {
		log.Printf("fix round numbers: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to renumber rounds"})
		return
	}
	c.JSON(http.StatusOK, RoundListResponse{Success: true, Rounds: rounds})
}

func roundIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid round id"})
		return 0, false
	}
	return uint(id), true
}
