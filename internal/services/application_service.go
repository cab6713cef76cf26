package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/models"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/validator"
)

// Motivation word count bounds enforced on membership applications.
const (
	motivationMinWords = 100
	motivationMaxWords = 500
)

// ApplicationService handles public application submissions and the admin
// review surface.
type ApplicationService struct {
	client *backend.Client
}

// NewApplicationService constructs an application service.
func NewApplicationService(client *backend.Client) (*ApplicationService, error) {
	if client == nil {
		return nil, errors.New("application service: backend client is required")
	}
	return &ApplicationService{client: client}, nil
}

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ValidateMotivation enforces the word count bounds, reporting the current
// count back so the form can show progress.
func ValidateMotivation(text string) error {
	words := CountWords(text)
	if words < motivationMinWords {
		return apperrors.NewBadRequest(
			fmt.Sprintf("Motivation must be at least %d words (current: %d)", motivationMinWords, words))
	}
	if words > motivationMaxWords {
		return apperrors.NewBadRequest(
			fmt.Sprintf("Motivation must not exceed %d words (current: %d)", motivationMaxWords, words))
	}
	return nil
}

// Submit validates and forwards a public application, then invalidates the
// cached application listings the back-office reads.
func (s *ApplicationService) Submit(ctx context.Context, req models.ApplicationRequest) (int, error) {
	if s == nil {
		return 0, errors.New("application service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if err := validator.ValidateStruct(req); err != nil {
		return 0, apperrors.NewBadRequest(err.Error())
	}
	if !models.KnownCountry(req.Country) {
		return 0, apperrors.NewBadRequest("Please select your country")
	}
	if err := ValidateMotivation(req.Motivation); err != nil {
		return 0, err
	}

	payload, err := s.client.Post(ctx, "/api/applications", req)
	if err != nil {
		return 0, err
	}

	var created struct {
		ID int `json:"id"`
	}
	if err := backend.DecodeData(payload, &created); err != nil {
		return 0, err
	}

	s.client.Invalidate("/api/applications")
	return created.ID, nil
}

// ListApplicationsOptions filters the admin listing.
type ListApplicationsOptions struct {
	Status  string
	Country string
	Search  string
}

// List retrieves applications for the back-office, via the cache.
func (s *ApplicationService) List(ctx context.Context, opts ListApplicationsOptions) ([]models.Application, error) {
	if s == nil {
		return nil, errors.New("application service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	params := url.Values{}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Country != "" {
		params.Set("country", opts.Country)
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}

	payload, err := s.client.Get(ctx, "/api/applications", params)
	if err != nil {
		return nil, err
	}

	var applications []models.Application
	if err := backend.DecodeData(payload, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// GetByID retrieves one application.
func (s *ApplicationService) GetByID(ctx context.Context, id int) (*models.Application, error) {
	if s == nil {
		return nil, errors.New("application service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	payload, err := s.client.Get(ctx, fmt.Sprintf("/api/applications/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var application models.Application
	if err := backend.DecodeData(payload, &application); err != nil {
		return nil, err
	}
	return &application, nil
}

// Review updates an application's status and invalidates the cached listings
// only after the backend confirms the change.
func (s *ApplicationService) Review(ctx context.Context, id int, status string) error {
	if s == nil {
		return errors.New("application service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	status = strings.ToLower(strings.TrimSpace(status))
	if status != "approved" && status != "rejected" {
		return apperrors.NewBadRequest("Status must be approved or rejected")
	}

	body := map[string]string{"status": status}
	if _, err := s.client.Put(ctx, fmt.Sprintf("/api/applications/%d", id), body); err != nil {
		return err
	}

	s.client.Invalidate("/api/applications")
	return nil
}
