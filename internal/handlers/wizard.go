package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/donation"
	"github.com/youths4change/webgate/internal/services"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

// WizardHandler exposes the donation wizard over HTTP. Each wizard id names a
// server-held workflow; the browser only ever sees the rendered state view.
type WizardHandler struct {
	wizards *services.WizardService
}

func NewWizardHandler(wizards *services.WizardService) (*WizardHandler, error) {
	if wizards == nil {
		return nil, errors.New("wizard handler: wizard service is required")
	}
	return &WizardHandler{wizards: wizards}, nil
}

// Start creates a fresh wizard and returns its initial state, including the
// active projects for the details step.
func (h *WizardHandler) Start(c *gin.Context) {
	state, err := h.wizards.Start(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, state)
}

// Show returns the current wizard state.
func (h *WizardHandler) Show(c *gin.Context) {
	state, err := h.wizards.Get(c.Request.Context(), wizardID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// Update applies draft field mutations from the form. Only the fields present
// in the body change.
func (h *WizardHandler) Update(c *gin.Context) {
	var upd donation.DraftUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	state, err := h.wizards.Update(c.Request.Context(), wizardID(c), upd)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

type validateFieldRequest struct {
	Field string `json:"field"`
}

// ValidateField runs the on-blur rule for one field and returns the failure,
// if any, so the form can surface it inline.
func (h *WizardHandler) ValidateField(c *gin.Context) {
	var req validateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Field) == "" {
		response.Error(c, apperrors.NewBadRequest("field name is required"))
		return
	}

	fieldErr, err := h.wizards.ValidateField(c.Request.Context(), wizardID(c), req.Field)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if fieldErr != nil {
		response.FieldErrors(c, []donation.FieldError{*fieldErr})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"valid": true, "field": req.Field})
}

// Next advances from the details step. Field failures come back as a 400 with
// every failing field listed; the wizard stays put.
func (h *WizardHandler) Next(c *gin.Context) {
	fieldErrs, state, err := h.wizards.Next(c.Request.Context(), wizardID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.FieldErrors(c, fieldErrs)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// Confirm moves from the payment step to the confirmation step.
func (h *WizardHandler) Confirm(c *gin.Context) {
	state, err := h.wizards.Confirm(c.Request.Context(), wizardID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// Back steps the wizard backwards one step.
func (h *WizardHandler) Back(c *gin.Context) {
	state, err := h.wizards.Back(c.Request.Context(), wizardID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// Submit drives the final transition and reports the created donation id. A
// backend failure surfaces as-is and the wizard remains retryable.
func (h *WizardHandler) Submit(c *gin.Context) {
	fieldErr, state, err := h.wizards.Submit(c.Request.Context(), wizardID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if fieldErr != nil {
		response.FieldErrors(c, []donation.FieldError{*fieldErr})
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *WizardHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrWizardNotFound) {
		response.Error(c, apperrors.ErrNotFound.WithMessage("Wizard not found or expired"))
		return
	}
	response.Error(c, err)
}

func wizardID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
