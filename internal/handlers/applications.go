package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/models"
	"github.com/youths4change/webgate/internal/services"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

// ApplicationHandler serves the volunteer application form and its admin
// review surface.
type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) (*ApplicationHandler, error) {
	if applications == nil {
		return nil, errors.New("application handler: application service is required")
	}
	return &ApplicationHandler{applications: applications}, nil
}

// Submit accepts a public volunteer application.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req models.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	id, err := h.applications.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// MotivationWordCount reports the live word count for the motivation textarea.
func (h *ApplicationHandler) MotivationWordCount(c *gin.Context) {
	var req struct {
		Motivation string `json:"motivation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	words := services.CountWords(req.Motivation)
	payload := gin.H{"words": words, "valid": services.ValidateMotivation(req.Motivation) == nil}
	response.Success(c, http.StatusOK, payload)
}

// List returns applications for the back-office.
func (h *ApplicationHandler) List(c *gin.Context) {
	opts := services.ListApplicationsOptions{
		Status:  strings.TrimSpace(c.Query("status")),
		Country: strings.TrimSpace(c.Query("country")),
		Search:  strings.TrimSpace(c.Query("search")),
	}

	applications, err := h.applications.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, applications, &response.Meta{Count: len(applications)})
}

// Show returns one application.
func (h *ApplicationHandler) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	application, err := h.applications.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, application)
}

type reviewApplicationRequest struct {
	Status string `json:"status"`
}

// Review approves or rejects an application.
func (h *ApplicationHandler) Review(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req reviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	if err := h.applications.Review(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": strings.ToLower(strings.TrimSpace(req.Status))})
}
