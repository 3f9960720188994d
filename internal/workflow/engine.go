package workflow

import (
	"errors"
	"fmt"
	"strings"

	"task-approval-api/internal/models"

	"gorm.io/gorm"
)

// Engine owns the task/member/project store and enforces the approval
// state machine and role-gated transitions. The store is injected, so
// tests run against an in-memory database and production against a file.
type Engine struct {
	db *gorm.DB
}

// NewEngine returns an engine backed by the given database handle.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CreateTaskInput carries the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     string
	ProjectID   string
	AssignedTo  string
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	DueDate     *string
	ProjectID   *string
	AssignedTo  *string
}

// CreateTask creates a task in its initial stage: status=pending,
// approvalStatus=assigned, assignedBy set to the acting admin.
func (e *Engine) CreateTask(in CreateTaskInput, actor Actor) (*models.Task, error) {
	if err := requireRole(actor, models.RoleAdmin, models.RoleSuperadmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if strings.TrimSpace(in.AssignedTo) == "" {
		return nil, fmt.Errorf("%w: assignedTo is required", ErrValidation)
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return nil, fmt.Errorf("%w: dueDate is required", ErrValidation)
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		ID:             newTaskID(),
		Title:          in.Title,
		Description:    in.Description,
		Status:         models.StatusPending,
		Priority:       priority,
		DueDate:        in.DueDate,
		CreatedDate:    today(),
		ProjectID:      in.ProjectID,
		AssignedTo:     in.AssignedTo,
		AssignedBy:     actor.Email,
		ApprovalStatus: models.ApprovalAssigned,
	}

	if err := e.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// SubmitCompletion marks the task done and hands it to admin review.
// Only the assignee may submit, and only from the assigned or rejected
// stage; resubmitting after a rejection overwrites the previous notes.
func (e *Engine) SubmitCompletion(taskID, notes string, actor Actor) (*models.Task, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: completion notes are required", ErrValidation)
	}

	var task models.Task
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.lockTask(tx, taskID, &task); err != nil {
			return err
		}
		if task.AssignedTo != actor.Email {
			return fmt.Errorf("%w: task %s is not assigned to %s", ErrPermissionDenied, taskID, actor.Email)
		}
		if task.ApprovalStatus != models.ApprovalAssigned && task.ApprovalStatus != models.ApprovalRejected {
			return fmt.Errorf("%w: cannot submit a task in stage %q", ErrInvalidState, task.ApprovalStatus)
		}

		task.Status = models.StatusCompleted
		task.ApprovalStatus = models.ApprovalInReview
		task.CompletionNotes = notes
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ReviewAsAdmin records the first-pass review. A rejection requires
// comments and sends the task back to the assignee for rework.
func (e *Engine) ReviewAsAdmin(taskID string, approved bool, comments string, actor Actor) (*models.Task, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !approved && strings.TrimSpace(comments) == "" {
		return nil, fmt.Errorf("%w: rejection comments are required", ErrValidation)
	}

	var task models.Task
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.lockTask(tx, taskID, &task); err != nil {
			return err
		}
		if task.ApprovalStatus != models.ApprovalInReview {
			return fmt.Errorf("%w: admin review requires stage %q, task is %q",
				ErrInvalidState, models.ApprovalInReview, task.ApprovalStatus)
		}

		if approved {
			task.ApprovalStatus = models.ApprovalAdminApproved
		} else {
			task.ApprovalStatus = models.ApprovalRejected
			task.Status = models.StatusInProgress
		}
		task.AdminReviewedBy = actor.Name
		task.AdminReviewedAt = today()
		task.AdminComments = comments
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ReviewAsSuperadmin records the final review. Approval is terminal;
// rejection returns the task to the assignee just like an admin reject.
func (e *Engine) ReviewAsSuperadmin(taskID string, approved bool, comments string, actor Actor) (*models.Task, error) {
	if err := requireRole(actor, models.RoleSuperadmin); err != nil {
		return nil, err
	}
	if !approved && strings.TrimSpace(comments) == "" {
		return nil, fmt.Errorf("%w: rejection comments are required", ErrValidation)
	}

	var task models.Task
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.lockTask(tx, taskID, &task); err != nil {
			return err
		}
		if task.ApprovalStatus != models.ApprovalAdminApproved {
			return fmt.Errorf("%w: superadmin review requires stage %q, task is %q",
				ErrInvalidState, models.ApprovalAdminApproved, task.ApprovalStatus)
		}

		if approved {
			task.ApprovalStatus = models.ApprovalSuperadminApproved
		} else {
			task.ApprovalStatus = models.ApprovalRejected
			task.Status = models.StatusInProgress
		}
		task.SuperadminReviewedBy = actor.Name
		task.SuperadminReviewedAt = today()
		task.SuperadminComments = comments
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update. It is open to any authenticated
// actor; only the work status is restricted, since completed is reachable
// solely through SubmitCompletion.
func (e *Engine) UpdateTask(taskID string, patch TaskPatch, actor Actor) (*models.Task, error) {
	if patch.Status != nil {
		switch *patch.Status {
		case models.StatusPending, models.StatusInProgress, models.StatusOnHold:
		default:
			return nil, fmt.Errorf("%w: status %q cannot be set directly", ErrValidation, *patch.Status)
		}
	}

	var task models.Task
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.lockTask(tx, taskID, &task); err != nil {
			return err
		}

		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}
		if patch.DueDate != nil {
			task.DueDate = *patch.DueDate
		}
		if patch.ProjectID != nil {
			task.ProjectID = *patch.ProjectID
		}
		if patch.AssignedTo != nil {
			task.AssignedTo = *patch.AssignedTo
		}
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task unconditionally. Admin/superadmin only;
// there is no undo.
func (e *Engine) DeleteTask(taskID string, actor Actor) error {
	if err := requireRole(actor, models.RoleAdmin, models.RoleSuperadmin); err != nil {
		return err
	}

	var task models.Task
	if err := e.db.Where("id = ?", taskID).First(&task).Error; err != nil {
		return e.translateNotFound(err, "task", taskID)
	}
	if err := e.db.Delete(&task).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// lockTask fetches a task inside a transaction, translating a missing
// row into ErrNotFound. SQLite serializes writers, so the transaction
// itself is the per-task critical section.
func (e *Engine) lockTask(tx *gorm.DB, taskID string, out *models.Task) error {
	if err := tx.Where("id = ?", taskID).First(out).Error; err != nil {
		return e.translateNotFound(err, "task", taskID)
	}
	return nil
}

func (e *Engine) translateNotFound(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return fmt.Errorf("fetch %s %s: %w", kind, id, err)
}
