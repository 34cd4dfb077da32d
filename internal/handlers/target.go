package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/yzhyun/askmate/internal/models"
	"github.com/yzhyun/askmate/internal/services"

	"github.com/gin-gonic/gin"
)

type TargetHandler struct {
	targets *services.TargetService
}

func NewTargetHandler(targets *services.TargetService) *TargetHandler {
	return &TargetHandler{targets: targets}
}

type AddTargetRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Bob"`
}

type TargetResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Target  *models.Target `json:"target"`
}

type TargetListResponse struct {
	Success bool            `json:"success"`
	Targets []models.Target `json:"targets"`
}

// ListTargets godoc
// @Summary      List answerers
// @Description  All rounds by default; roundId narrows to one round.
// @Tags         targets
// @Produce      json
// @Param        roundId query int false "Round filter"
// @Success      200 {object} TargetListResponse
// @Router       /api/v1/targets [get]
func (h *TargetHandler) ListTargets(c *gin.Context) {
	var (
		targets []models.Target
		err     error
	)
	if raw := c.Query("roundId"); raw != "" {
		parsed, perr := strconv.ParseUint(raw, 10, 32)
		if perr != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid roundId"})
			return
		}
		targets, err = h.targets.ListTargetsByRound(uint(parsed))
	} else {
		targets, err = h.targets.ListTargets()
	}
	if err != nil {
		log.Printf("list targets: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list targets"})
		return
	}
	c.JSON(http.StatusOK, TargetListResponse{Success: true, Targets: targets})
}

// ListCurrentTargets godoc
// @Summary      List active answerers of the active round
// @Tags         targets
// @Produce      json
// @Success      200 {object} TargetListResponse
// @Router       /api/v1/targets/current [get]
func (h *TargetHandler) ListCurrentTargets(c *gin.Context) {
	targets, err := h.targets.ListCurrentActiveTargets()
	if err != nil {
		log.Printf("list current targets: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list targets"})
		return
	}
	c.JSON(http.StatusOK, TargetListResponse{Success: true, Targets: targets})
}

// AddTarget godoc
// @Summary      Register an answerer in the active round
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        request body AddTargetRequest true "Target data"
// @Success      200 {object} TargetResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/targets [post]
func (h *TargetHandler) AddTarget(c *gin.Context) {
	var req AddTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	target, err := h.targets.AddTarget(req.Name)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveRound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no active round"})
			return
		}
		if err.Error() == "target already exists in this round" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("add target: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to add target"})
		return
	}
	c.JSON(http.StatusOK, TargetResponse{Success: true, Message: "answerer added", Target: target})
}

// DeactivateTarget godoc
// @Summary      Deactivate an answerer
// @Tags         targets
// @Produce      json
// @Param        id path int true "Target ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/targets/{id}/deactivate [post]
func (h *TargetHandler) DeactivateTarget(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid target id"})
		return
	}

	if _, err := h.targets.DeactivateTarget(uint(id)); err != nil {
		if err.Error() == "target not found" {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "target not found"})
			return
		}
		log.Printf("deactivate target %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to deactivate target"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "answerer deactivated"})
}

// AdoptOrphanTargets godoc
// @Summary      Move round-less answerers into the active round
// @Tags         targets
// @Produce      json
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/targets/adopt-orphans [post]
func (h *TargetHandler) AdoptOrphanTargets(c *gin.Context) {
	moved, err := h.targets.MoveOrphanTargetsToActiveRound()
	if err != nil {
		if errors.Is(err, services.ErrNoActiveRound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no active round"})
			return
		}
		log.Printf("adopt orphan targets: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to move targets"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: fmt.Sprintf("%d answerers moved to the active round", moved),
	})
}
