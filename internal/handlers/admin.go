package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	auth    *services.AuthService
	answers *services.AnswerService
}

func NewAdminHandler(auth *services.AuthService, answers *services.AnswerService) *AdminHandler {
	return &AdminHandler{auth: auth, answers: answers}
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required" example:"hunter2hunter2"`
}

type SetAdminPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8" example:"hunter2hunter2"`
}

type SetAnswererPasswordRequest struct {
	AnswererName string `json:"answererName" binding:"required,max=100" example:"Bob"`
	Password     string `json:"password" binding:"required,min=4" example:"1234"`
}

type AnswererPasswordResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message,omitempty"`
	Data    *models.AnswererPassword `json:"data,omitempty"`
}

type AnswererPasswordListResponse struct {
	Success   bool                      `json:"success"`
	Passwords []models.AnswererPassword `json:"passwords"`
}

// Login godoc
// @Summary      Verify the admin password
// @Description  No session is created; the client re-sends the password on later calls.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body AdminLoginRequest true "Credentials"
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password is required"})
		return
	}

	ok, err := h.auth.VerifyAdmin(req.Password)
	if err != nil {
		log.Printf("admin login: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "verification failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid password"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "admin authenticated"})
}

// SetPassword godoc
// @Summary      Set the admin password
// @Description  Minimum 8 characters, applied uniformly.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body SetAdminPasswordRequest true "New password"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/password [post]
func (h *AdminHandler) SetPassword(c *gin.Context) {
	var req SetAdminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password must be at least 8 characters"})
		return
	}

	if err := h.auth.SetAdminPassword(req.Password); err != nil {
		log.Printf("set admin password: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to set password"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "admin password set"})
}

type AnswererSecretResponse struct {
	Success  bool   `json:"success"`
	Password string `json:"password"`
}

// ListAnswererPasswords godoc
// @Summary      List answerer secrets
// @Description  With ?name=, returns the single secret for that answerer.
// @Tags         admin
// @Produce      json
// @Param        name query string false "Answerer name"
// @Success      200 {object} AnswererPasswordListResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/answerer-passwords [get]
func (h *AdminHandler) ListAnswererPasswords(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		password, err := h.auth.GetAnswererPassword(name)
		if err != nil {
			if errors.Is(err, services.ErrAnswererNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "answerer not found"})
				return
			}
			log.Printf("get answerer password %q: %v", name, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read password"})
			return
		}
		c.JSON(http.StatusOK, AnswererSecretResponse{Success: true, Password: password})
		return
	}

	passwords, err := h.auth.ListAnswererPasswords()
	if err != nil {
		log.Printf("list answerer passwords: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list passwords"})
		return
	}
	c.JSON(http.StatusOK, AnswererPasswordListResponse{Success: true, Passwords: passwords})
}

// SetAnswererPassword godoc
// @Summary      Set an answerer's password
// @Description  One secret per name, independent of rounds. Cached verifications for the name are dropped.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body SetAnswererPasswordRequest true "Name and password"
// @Success      200 {object} AnswererPasswordResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/answerer-passwords [post]
func (h *AdminHandler) SetAnswererPassword(c *gin.Context) {
	var req SetAnswererPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "answererName and a password of at least 4 characters are required"})
		return
	}

	row, err := h.auth.SetAnswererPassword(req.AnswererName, req.Password)
	if err != nil {
		log.Printf("set answerer password: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to set password"})
		return
	}
	c.JSON(http.StatusOK, AnswererPasswordResponse{Success: true, Message: "answerer password set", Data: row})
}

// ClearData godoc
// @Summary      Wipe rounds, targets, questions, answers and answerer secrets
// @Description  Members and the admin secret survive. Irreversible.
// @Tags         admin
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /api/v1/admin/clear-data [post]
func (h *AdminHandler) ClearData(c *gin.Context) {
	if err := h.answers.ClearAllData(); err != nil {
		log.Printf("clear all data: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to clear data"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "all data deleted"})
}
