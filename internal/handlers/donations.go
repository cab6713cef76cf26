package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/services"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

// DonationAdminHandler serves the back-office donation ledger and payment
// verification.
type DonationAdminHandler struct {
	donations *services.DonationAdminService
}

func NewDonationAdminHandler(donations *services.DonationAdminService) (*DonationAdminHandler, error) {
	if donations == nil {
		return nil, errors.New("donation admin handler: donation service is required")
	}
	return &DonationAdminHandler{donations: donations}, nil
}

// List returns donations, optionally filtered by project, country or a free
// text search.
func (h *DonationAdminHandler) List(c *gin.Context) {
	opts := services.ListDonationsOptions{
		Country: strings.TrimSpace(c.Query("country")),
		Search:  strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("project_id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			response.Error(c, apperrors.NewBadRequest("invalid project_id"))
			return
		}
		opts.ProjectID = id
	}

	donations, err := h.donations.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, donations, &response.Meta{Count: len(donations)})
}

// Show returns one donation record.
func (h *DonationAdminHandler) Show(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	donation, err := h.donations.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, donation)
}

type verifyPaymentRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Verify marks a donation's payment as verified or rejected.
func (h *DonationAdminHandler) Verify(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid request body"))
		return
	}

	if err := h.donations.VerifyPayment(c.Request.Context(), id, req.Status, req.Notes); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": strings.ToLower(strings.TrimSpace(req.Status))})
}
