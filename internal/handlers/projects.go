package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/models"
	"github.com/youths4change/webgate/internal/services"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

// ProjectHandler serves the public project catalogue.
type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) (*ProjectHandler, error) {
	if projects == nil {
		return nil, errors.New("project handler: project service is required")
	}
	return &ProjectHandler{projects: projects}, nil
}

// List returns projects, optionally filtered by status and country.
func (h *ProjectHandler) List(c *gin.Context) {
	opts := services.ListProjectsOptions{
		Status:  strings.TrimSpace(c.Query("status")),
		Country: strings.TrimSpace(c.Query("country")),
	}

	projects, err := h.projects.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, projects, &response.Meta{Count: len(projects)})
}

// Show returns a single project by numeric id.
func (h *ProjectHandler) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// AdminList returns projects for the back-office, with the free text search
// the public listing does not offer.
func (h *ProjectHandler) AdminList(c *gin.Context) {
	opts := services.ListProjectsOptions{
		Status:  strings.TrimSpace(c.Query("status")),
		Country: strings.TrimSpace(c.Query("country")),
		Search:  strings.TrimSpace(c.Query("search")),
	}

	projects, err := h.projects.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, projects, &response.Meta{Count: len(projects)})
}

// Create adds a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	id, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// Update replaces an existing project.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	if err := h.projects.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// Delete soft-deletes a project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// pathID parses the :id route parameter shared by the resource handlers.
func pathID(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequest("invalid id")
	}
	return id, nil
}
