package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"task-approval-api/internal/middleware"
	"task-approval-api/internal/models"
	"task-approval-api/internal/realtime"
	"task-approval-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the task workflow endpoints. All state changes go
// through the engine; the handler only binds requests, maps failures to
// HTTP statuses, and broadcasts events to the people a task concerns.
type TaskHandler struct {
	engine *workflow.Engine
	hub    *realtime.Hub
}

// NewTaskHandler wires the task endpoints to the engine and hub.
func NewTaskHandler(engine *workflow.Engine, hub *realtime.Hub) *TaskHandler {
	return &TaskHandler{engine: engine, hub: hub}
}

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     string              `json:"dueDate" binding:"required"`
	ProjectID   string              `json:"projectId"`
	AssignedTo  string              `json:"assignedTo" binding:"required"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	DueDate     *string              `json:"dueDate"`
	ProjectID   *string              `json:"projectId"`
	AssignedTo  *string              `json:"assignedTo"`
}

// UpdateTaskStatusRequest represents a minimal request to change the
// work status. Completed is only reachable through submission.
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// SubmitCompletionRequest carries the assignee's completion notes.
type SubmitCompletionRequest struct {
	CompletionNotes string `json:"completionNotes"`
}

// ReviewRequest carries an approve/reject decision with comments.
type ReviewRequest struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments"`
}

// TaskView is a task enriched with the assignee's roster name for
// display; a deleted member degrades to "Unknown" rather than an error.
type TaskView struct {
	models.Task
	AssigneeName string `json:"assigneeName"`
}

func (h *TaskHandler) view(task models.Task) TaskView {
	name := "Unknown"
	if member, err := h.engine.MemberByEmail(task.AssignedTo); err == nil {
		name = member.Name
	}
	return TaskView{Task: task, AssigneeName: name}
}

func (h *TaskHandler) views(tasks []models.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, h.view(t))
	}
	return out
}

// broadcast notifies the assignee and assigner of a transition.
func (h *TaskHandler) broadcast(eventType string, task *models.Task, actor workflow.Actor) {
	evt := map[string]any{
		"type":           eventType,
		"taskId":         task.ID,
		"actor":          actor.Email,
		"approvalStatus": task.ApprovalStatus,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		h.hub.BroadcastTo([]string{task.AssignedTo, task.AssignedBy}, bytes)
	}
}

/*
*
GetTasks handles GET /api/tasks
Returns tasks team-wide for authenticated users.
Query params: page (default 1), limit (default 5), sort (asc|desc on
created_at, default desc), assignee (optional email filter).
*/
func (h *TaskHandler) GetTasks(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "5")
	sortParam := strings.ToLower(c.DefaultQuery("sort", "desc"))

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 5
	}

	tasks, total, err := h.engine.ListTasks(workflow.ListOptions{
		Page:       page,
		Limit:      limit,
		Sort:       sortParam,
		AssignedTo: c.Query("assignee"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": h.views(tasks),
		"count": len(tasks), // number of items in this page
		"total": total,      // total tasks (all pages) for current filter
		"page":  page,
		"limit": limit,
		"sort":  sortParam,
	})
}

// GetMyTasks handles GET /api/my-tasks
// Returns the tasks assigned to the calling actor, in insertion order.
func (h *TaskHandler) GetMyTasks(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	tasks, err := h.engine.TasksAssignedTo(actor.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": h.views(tasks),
		"count": len(tasks),
	})
}

/*
*
CreateTask handles POST /api/tasks
Creates a task in the initial stage (pending / assigned). Admins and
the superadmin only; enforced by the engine.
*/
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	actor := middleware.CurrentActor(c)
	task, err := h.engine.CreateTask(workflow.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast("task_created", task, actor)
	c.JSON(http.StatusCreated, h.view(*task))
}

// GetTaskByID handles GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.engine.TaskByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(*task))
}

// UpdateTask handles PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	actor := middleware.CurrentActor(c)
	task, err := h.engine.UpdateTask(c.Param("id"), workflow.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast("task_updated", task, actor)
	c.JSON(http.StatusOK, h.view(*task))
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
// Accepts pending, in-progress and on-hold; completion goes through
// POST /api/tasks/:id/submit.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.CurrentActor(c)
	task, err := h.engine.UpdateTask(c.Param("id"), workflow.TaskPatch{Status: &req.Status}, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast("task_updated", task, actor)
	c.JSON(http.StatusOK, h.view(*task))
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	actor := middleware.CurrentActor(c)

	// Fetch first so the deletion event can still name the recipients.
	task, err := h.engine.TaskByID(taskID)
	if err != nil && !errors.Is(err, workflow.ErrNotFound) {
		respondError(c, err)
		return
	}

	if err := h.engine.DeleteTask(taskID, actor); err != nil {
		respondError(c, err)
		return
	}

	if task != nil {
		h.broadcast("task_deleted", task, actor)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// SubmitCompletion handles POST /api/tasks/:id/submit
// The assignee marks the task done and sends it for admin review.
func (h *TaskHandler) SubmitCompletion(c *gin.Context) {
	var req SubmitCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.CurrentActor(c)
	task, err := h.engine.SubmitCompletion(c.Param("id"), req.CompletionNotes, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast("task_submitted", task, actor)
	c.JSON(http.StatusOK, h.view(*task))
}

// AdminReview handles POST /api/tasks/:id/admin-review
func (h *TaskHandler) AdminReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.CurrentActor(c)
	task, err := h.engine.ReviewAsAdmin(c.Param("id"), req.Approved, req.Comments, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast("task_admin_reviewed", task, actor)
	c.JSON(http.StatusOK, h.view(*task))
}

// SuperadminReview handles POST /api/tasks/:id/superadmin-review
func (h *TaskHandler) SuperadminReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.CurrentActor(c)
	task, err := h.engine.ReviewAsSuperadmin(c.Param("id"), req.Approved, req.Comments, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcast("task_superadmin_reviewed", task, actor)
	c.JSON(http.StatusOK, h.view(*task))
}

// PendingAdminReview handles GET /api/reviews/admin
// Exactly the tasks sitting in the in-review stage.
func (h *TaskHandler) PendingAdminReview(c *gin.Context) {
	tasks, err := h.engine.TasksPendingAdminReview()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": h.views(tasks),
		"count": len(tasks),
	})
}

// PendingSuperadminApproval handles GET /api/reviews/superadmin
// Exactly the tasks awaiting the final sign-off.
func (h *TaskHandler) PendingSuperadminApproval(c *gin.Context) {
	tasks, err := h.engine.TasksPendingSuperadminApproval()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": h.views(tasks),
		"count": len(tasks),
	})
}

// GetStatsByAssignee handles GET /api/stats/:email
// Returns counts of the assignee's tasks by work status.
func (h *TaskHandler) GetStatsByAssignee(c *gin.Context) {
	email := c.Param("email")
	if strings.TrimSpace(email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	stats, err := h.engine.StatsByAssignee(email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
