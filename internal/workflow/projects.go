package workflow

import (
	"fmt"
	"strings"

	"task-approval-api/internal/models"
)

// CreateProjectInput carries the fields for a new project label.
type CreateProjectInput struct {
	Name        string
	Description string
	Color       string
}

// CreateProject adds a grouping label. Admin/superadmin only.
func (e *Engine) CreateProject(in CreateProjectInput, actor Actor) (*models.Project, error) {
	if err := requireRole(actor, models.RoleAdmin, models.RoleSuperadmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}

	project := models.Project{
		ID:          newProjectID(),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
	}
	if err := e.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// DeleteProject removes a project unconditionally. Tasks keep their
// projectId as a dangling reference.
func (e *Engine) DeleteProject(projectID string, actor Actor) error {
	if err := requireRole(actor, models.RoleAdmin, models.RoleSuperadmin); err != nil {
		return err
	}

	var project models.Project
	if err := e.db.Where("id = ?", projectID).First(&project).Error; err != nil {
		return e.translateNotFound(err, "project", projectID)
	}
	if err := e.db.Delete(&project).Error; err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Projects returns all projects in insertion order.
func (e *Engine) Projects() ([]models.Project, error) {
	var projects []models.Project
	if err := e.db.Order("created_at asc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// ProjectByID resolves a project, or ErrNotFound.
func (e *Engine) ProjectByID(projectID string) (*models.Project, error) {
	var project models.Project
	if err := e.db.Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, e.translateNotFound(err, "project", projectID)
	}
	return &project, nil
}
