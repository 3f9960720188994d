package workflow

import (
	"fmt"
	"strings"

	"task-approval-api/internal/models"

	"gorm.io/gorm"
)

// ListOptions controls pagination and filtering for ListTasks.
type ListOptions struct {
	Page       int
	Limit      int
	Sort       string // "asc" or "desc" on created_at; default desc
	AssignedTo string // optional assignee email filter
}

// TaskStats is the per-assignee status breakdown.
type TaskStats struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in-progress"`
	Completed  int64 `json:"completed"`
	OnHold     int64 `json:"on-hold"`
	Total      int64 `json:"total"`
}

// TaskByID returns a single task or ErrNotFound.
func (e *Engine) TaskByID(taskID string) (*models.Task, error) {
	var task models.Task
	if err := e.db.Where("id = ?", taskID).First(&task).Error; err != nil {
		return nil, e.translateNotFound(err, "task", taskID)
	}
	return &task, nil
}

// TasksAssignedTo returns every task assigned to the given email, in
// insertion order.
func (e *Engine) TasksAssignedTo(email string) ([]models.Task, error) {
	var tasks []models.Task
	if err := e.db.Where("assigned_to = ?", email).Order("created_at asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks for %s: %w", email, err)
	}
	return tasks, nil
}

// TasksPendingAdminReview returns exactly the tasks in the in-review stage.
func (e *Engine) TasksPendingAdminReview() ([]models.Task, error) {
	return e.tasksInStage(models.ApprovalInReview)
}

// TasksPendingSuperadminApproval returns exactly the tasks awaiting the
// final sign-off.
func (e *Engine) TasksPendingSuperadminApproval() ([]models.Task, error) {
	return e.tasksInStage(models.ApprovalAdminApproved)
}

func (e *Engine) tasksInStage(stage models.ApprovalStatus) ([]models.Task, error) {
	var tasks []models.Task
	if err := e.db.Where("approval_status = ?", stage).Order("created_at asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks in stage %s: %w", stage, err)
	}
	return tasks, nil
}

// ListTasks returns one page of tasks plus the unpaginated total for the
// current filter.
func (e *Engine) ListTasks(opts ListOptions) ([]models.Task, int64, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 5
	}
	if limit > 100 {
		limit = 100
	}

	order := "created_at desc"
	if strings.ToLower(opts.Sort) == "asc" {
		order = "created_at asc"
	}

	query := e.db.Model(&models.Task{})
	if opts.AssignedTo != "" {
		query = query.Where("assigned_to = ?", opts.AssignedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	var tasks []models.Task
	offset := (page - 1) * limit
	err := query.Session(&gorm.Session{}).Order(order).Limit(limit).Offset(offset).Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

// StatsByAssignee counts the assignee's tasks by work status.
func (e *Engine) StatsByAssignee(email string) (*TaskStats, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := e.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Where("assigned_to = ?", email).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("compute stats for %s: %w", email, err)
	}

	stats := &TaskStats{}
	for _, r := range rows {
		switch models.TaskStatus(r.Status) {
		case models.StatusPending:
			stats.Pending = r.Count
		case models.StatusInProgress:
			stats.InProgress = r.Count
		case models.StatusCompleted:
			stats.Completed = r.Count
		case models.StatusOnHold:
			stats.OnHold = r.Count
		}
		stats.Total += r.Count
	}
	return stats, nil
}
