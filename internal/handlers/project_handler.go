package handlers

import (
	"net/http"

	"task-approval-api/internal/middleware"
	"task-approval-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// ProjectHandler serves the project-label CRUD.
type ProjectHandler struct {
	engine *workflow.Engine
}

// NewProjectHandler wires the project endpoints to the engine.
func NewProjectHandler(engine *workflow.Engine) *ProjectHandler {
	return &ProjectHandler{engine: engine}
}

// CreateProjectRequest carries the fields for a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// GetProjects handles GET /api/projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.engine.Projects()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.CurrentActor(c)
	project, err := h.engine.CreateProject(workflow.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// DeleteProject handles DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID := c.Param("id")
	actor := middleware.CurrentActor(c)

	if err := h.engine.DeleteProject(projectID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"id":      projectID,
	})
}
