package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type SaveQuestionRequest struct {
	Author       string `json:"author" binding:"required,max=100" example:"Alice"`
	Target       string `json:"target" binding:"required,max=100" example:"Bob"`
	QuestionText string `json:"question" binding:"required" example:"What is your favorite season?"`
}

type QuestionResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Question *models.Question `json:"question"`
}

type QuestionListResponse struct {
	Success   bool              `json:"success"`
	Questions []models.Question `json:"questions"`
}

// SaveQuestion godoc
// @Summary      Submit an anonymous question
// @Description  Stamps the question with the current active round. Fails when no round is active.
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        request body SaveQuestionRequest true "Question data"
// @Success      200 {object} QuestionResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/questions [post]
func (h *QuestionHandler) SaveQuestion(c *gin.Context) {
	var req SaveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "author, target and question are required"})
		return
	}

	question, err := h.questions.SaveQuestion(req.Author, req.Target, req.QuestionText)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveRound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no active round"})
			return
		}
		switch err.Error() {
		case "author is not a registered member", "target is not an answerer in the current round":
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("save question: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save question"})
		return
	}

	c.JSON(http.StatusOK, QuestionResponse{Success: true, Message: "question saved", Question: question})
}

// ListQuestions godoc
// @Summary      List questions
// @Description  Defaults to the current active round. Optional target and roundId filters.
// @Tags         questions
// @Produce      json
// @Param        target  query string false "Answerer name filter"
// @Param        roundId query int    false "Round filter"
// @Success      200 {object} QuestionListResponse
// @Router       /api/v1/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	target := c.Query("target")
	roundID := uint(0)
	if raw := c.Query("roundId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid roundId"})
			return
		}
		roundID = uint(parsed)
	}

	var (
		questions []models.Question
		err       error
	)
	switch {
	case target != "":
		questions, err = h.questions.GetQuestionsForAnswerer(target, roundID)
	case roundID != 0:
		questions, err = h.questions.ListQuestionsByRound(roundID)
	default:
		questions, err = h.questions.ListCurrentRoundQuestions()
	}
	if err != nil {
		log.Printf("list questions: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list questions"})
		return
	}

	c.JSON(http.StatusOK, QuestionListResponse{Success: true, Questions: questions})
}

// DeleteQuestion godoc
// @Summary      Delete a single question and its answers
// @Tags         questions
// @Produce      json
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.questions.DeleteQuestion(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "question not found"})
			return
		}
		log.Printf("delete question %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete question"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "question deleted"})
}

// ClearQuestions godoc
// @Summary      Delete every question across all rounds
// @Description  Irreversible admin reset.
// @Tags         questions
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /api/v1/questions [delete]
func (h *QuestionHandler) ClearQuestions(c *gin.Context) {
	if err := h.questions.ClearAllQuestions(); err != nil {
		log.Printf("clear questions: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to clear questions"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "all questions deleted"})
}
