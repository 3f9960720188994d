package handlers

import (
	"net/http"

	"task-approval-api/internal/middleware"
	"task-approval-api/internal/models"
	"task-approval-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// MemberHandler serves the roster/provisioning endpoints. Routes are
// additionally gated to superadmin in the router; the engine enforces
// the same rule.
type MemberHandler struct {
	engine *workflow.Engine
}

// NewMemberHandler wires the member endpoints to the engine.
func NewMemberHandler(engine *workflow.Engine) *MemberHandler {
	return &MemberHandler{engine: engine}
}

// CreateMemberRequest is the superadmin provisioning form.
type CreateMemberRequest struct {
	Name       string            `json:"name" binding:"required"`
	Email      string            `json:"email" binding:"required"`
	Role       string            `json:"role" binding:"required"` // job role label
	SystemRole models.SystemRole `json:"systemRole" binding:"required"`
	IsDoer     *bool             `json:"isDoer"`
}

// GetMembers handles GET /api/members
func (h *MemberHandler) GetMembers(c *gin.Context) {
	members, err := h.engine.Members()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"count":   len(members),
	})
}

// CreateMember handles POST /api/members
// Provisions a roster entry plus login credentials; the response is the
// only place the plaintext OTP ever appears.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isDoer := true
	if req.IsDoer != nil {
		isDoer = *req.IsDoer
	}

	actor := middleware.CurrentActor(c)
	provisioned, err := h.engine.CreateMember(workflow.CreateMemberInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		SystemRole: req.SystemRole,
		IsDoer:     isDoer,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, provisioned)
}

// DeleteMember handles DELETE /api/members/:id
// Removal does not cascade: the member's tasks keep their assignee
// email and credentials stay valid.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID := c.Param("id")
	actor := middleware.CurrentActor(c)

	if err := h.engine.DeleteMember(memberID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Team member deleted successfully",
		"id":      memberID,
	})
}
