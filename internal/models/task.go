package models

import (
	"gorm.io/gorm"
)

// TaskStatus represents the work status of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOnHold     TaskStatus = "on-hold"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ApprovalStatus represents the review-pipeline stage of a task,
// distinct from its work-completion status.
type ApprovalStatus string

const (
	ApprovalAssigned           ApprovalStatus = "assigned"
	ApprovalInReview           ApprovalStatus = "in-review"
	ApprovalAdminApproved      ApprovalStatus = "admin-approved"
	ApprovalSuperadminApproved ApprovalStatus = "superadmin-approved"
	ApprovalRejected           ApprovalStatus = "rejected"
)

// Task represents a task moving through the approval pipeline.
// Dates are stored as YYYY-MM-DD strings.
type Task struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description" gorm:"not null"`
	Status         TaskStatus     `json:"status" gorm:"not null;default:'pending'"`
	Priority       TaskPriority   `json:"priority" gorm:"default:'medium'"`
	DueDate        string         `json:"dueDate" gorm:"column:due_date"`
	CreatedDate    string         `json:"createdAt" gorm:"column:created_date"`
	ProjectID      string         `json:"projectId,omitempty" gorm:"column:project_id"`
	AssignedTo     string         `json:"assignedTo" gorm:"column:assigned_to;index"`
	AssignedBy     string         `json:"assignedBy" gorm:"column:assigned_by"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" gorm:"column:approval_status;not null;default:'assigned';index"`

	CompletionNotes string `json:"completionNotes,omitempty" gorm:"column:completion_notes"`

	AdminReviewedBy string `json:"adminReviewedBy,omitempty" gorm:"column:admin_reviewed_by"`
	AdminReviewedAt string `json:"adminReviewedAt,omitempty" gorm:"column:admin_reviewed_at"`
	AdminComments   string `json:"adminComments,omitempty" gorm:"column:admin_comments"`

	SuperadminReviewedBy string `json:"superadminReviewedBy,omitempty" gorm:"column:superadmin_reviewed_by"`
	SuperadminReviewedAt string `json:"superadminReviewedAt,omitempty" gorm:"column:superadmin_reviewed_at"`
	SuperadminComments   string `json:"superadminComments,omitempty" gorm:"column:superadmin_comments"`

	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
