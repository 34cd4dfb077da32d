package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	members *services.MemberService
}

func NewMemberHandler(members *services.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type AddMemberRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Alice"`
}

type MemberResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Member  *models.Member `json:"member"`
}

type MemberListResponse struct {
	Success bool            `json:"success"`
	Members []models.Member `json:"members"`
}

type QuestionStatusResponse struct {
	Success  bool `json:"success"`
	HasAsked bool `json:"hasAsked"`
}

// ListMembers godoc
// @Summary      List active members
// @Tags         members
// @Produce      json
// @Success      200 {object} MemberListResponse
// @Router       /api/v1/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.members.ListActiveMembers()
	if err != nil {
		log.Printf("list members: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list members"})
		return
	}
	c.JSON(http.StatusOK, MemberListResponse{Success: true, Members: members})
}

// AddMember godoc
// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body AddMemberRequest true "Member data"
// @Success      200 {object} MemberResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/members [post]
func (h *MemberHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	member, err := h.members.AddMember(req.Name)
	if err != nil {
		if err.Error() == "member already exists" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "member already exists"})
			return
		}
		log.Printf("add member: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to add member"})
		return
	}
	c.JSON(http.StatusOK, MemberResponse{Success: true, Message: "member added", Member: member})
}

// DeactivateMember godoc
// @Summary      Deactivate a member
// @Description  Members are soft-deleted; the row stays for attribution.
// @Tags         members
// @Produce      json
// @Param        id path int true "Member ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/members/{id}/deactivate [post]
func (h *MemberHandler) DeactivateMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid member id"})
		return
	}

	if err := h.members.DeactivateMember(uint(id)); err != nil {
		if err.Error() == "member not found" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "member not found"})
			return
		}
		log.Printf("deactivate member %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to deactivate member"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "member deactivated"})
}

// QuestionStatus godoc
// @Summary      Check whether a member has asked a question
// @Tags         members
// @Produce      json
// @Param        name path string true "Member name"
// @Success      200 {object} QuestionStatusResponse
// @Router       /api/v1/members/{name}/question-status [get]
func (h *MemberHandler) QuestionStatus(c *gin.Context) {
	name := c.Param("name")
	hasAsked, err := h.members.HasMemberAskedQuestion(name)
	if err != nil {
		log.Printf("question status for %q: %v", name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to check question status"})
		return
	}
	c.JSON(http.StatusOK, QuestionStatusResponse{Success: true, HasAsked: hasAsked})
}
