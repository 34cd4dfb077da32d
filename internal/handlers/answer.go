package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answers *services.AnswerService
	auth    *services.AuthService
}

func NewAnswerHandler(answers *services.AnswerService, auth *services.AuthService) *AnswerHandler {
	return &AnswerHandler{answers: answers, auth: auth}
}

type SaveAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required" example:"12"`
	Answerer   string `json:"answerer" binding:"required,max=100" example:"Bob"`
	Password   string `json:"password" binding:"required" example:"1234"`
	AnswerText string `json:"answer" binding:"required" example:"Autumn, no contest."`
}

type AnswerResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Answer  *models.Answer `json:"answer"`
}

type AnswerListResponse struct {
	Success bool            `json:"success"`
	Answers []models.Answer `json:"answers"`
}

type AnswerDetailListResponse struct {
	Success bool                  `json:"success"`
	Answers []models.AnswerDetail `json:"answers"`
}

// SaveAnswer godoc
// @Summary      Submit or replace an answer
// @Description  One answer per (question, answerer); resubmitting replaces the text. Requires the answerer's password.
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        request body SaveAnswerRequest true "Answer data"
// @Success      200 {object} AnswerResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/answers [post]
func (h *AnswerHandler) SaveAnswer(c *gin.Context) {
	var req SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "questionId, answerer, password and answer are required"})
		return
	}

	ok, err := h.auth.VerifyAnswerer(req.Answerer, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAnswererNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "answerer not found"})
			return
		}
		log.Printf("verify answerer %q: %v", req.Answerer, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "verification failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid password"})
		return
	}

	answer, err := h.answers.SaveAnswer(req.QuestionID, req.Answerer, req.AnswerText)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveRound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no active round"})
			return
		}
		if err.Error() == "question not found" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "question not found"})
			return
		}
		log.Printf("save answer: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save answer"})
		return
	}

	c.JSON(http.StatusOK, AnswerResponse{Success: true, Message: "answer saved", Answer: answer})
}

// ListAnswers godoc
// @Summary      List every answer joined with its question
// @Tags         answers
// @Produce      json
// @Success      200 {object} AnswerDetailListResponse
// @Router       /api/v1/answers [get]
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	answers, err := h.answers.ListAnswersWithQuestions()
	if err != nil {
		log.Printf("list answers: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list answers"})
		return
	}
	c.JSON(http.StatusOK, AnswerDetailListResponse{Success: true, Answers: answers})
}

// ClearAnswers godoc
// @Summary      Delete every answer across all rounds
// @Tags         answers
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /api/v1/answers [delete]
func (h *AnswerHandler) ClearAnswers(c *gin.Context) {
	if err := h.answers.ClearAllAnswers(); err != nil {
		log.Printf("clear answers: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to clear answers"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "all answers deleted"})
}
