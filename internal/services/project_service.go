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

// ProjectService serves project reads through the response cache and routes
// back-office mutations through the backend, invalidating cached listings
// only after the backend confirms the change.
type ProjectService struct {
	client *backend.Client
}

// NewProjectService constructs a project service.
func NewProjectService(client *backend.Client) (*ProjectService, error) {
	if client == nil {
		return nil, errors.New("project service: backend client is required")
	}
	return &ProjectService{client: client}, nil
}

// ListProjectsOptions controls project filtering. Search is only honoured by
// the back-office listing.
type ListProjectsOptions struct {
	Status  string
	Country string
	Search  string
}

// List retrieves projects matching the supplied filters.
func (s *ProjectService) List(ctx context.Context, opts ListProjectsOptions) ([]models.Project, error) {
	if s == nil {
		return nil, errors.New("project service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	params := url.Values{}
	if status := strings.TrimSpace(opts.Status); status != "" {
		params.Set("status", status)
	}
	if country := strings.TrimSpace(opts.Country); country != "" {
		params.Set("country", country)
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		params.Set("search", search)
	}

	payload, err := s.client.Get(ctx, "/api/projects", params)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := backend.DecodeData(payload, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID retrieves a single project.
func (s *ProjectService) GetByID(ctx context.Context, id int) (*models.Project, error) {
	if s == nil {
		return nil, errors.New("project service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	payload, err := s.client.Get(ctx, fmt.Sprintf("/api/projects/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := backend.DecodeData(payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Create forwards a new project and invalidates the cached listings.
func (s *ProjectService) Create(ctx context.Context, req models.ProjectRequest) (int, error) {
	if s == nil {
		return 0, errors.New("project service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if err := validator.ValidateStruct(req); err != nil {
		return 0, apperrors.NewBadRequest(err.Error())
	}

	payload, err := s.client.Post(ctx, "/api/projects", req)
	if err != nil {
		return 0, err
	}

	var created struct {
		ID int `json:"id"`
	}
	if err := backend.DecodeData(payload, &created); err != nil {
		return 0, err
	}

	s.client.Invalidate("/api/projects")
	return created.ID, nil
}

// Update replaces a project and invalidates the cached listings. The prefix
// also covers the project's own detail entry.
func (s *ProjectService) Update(ctx context.Context, id int, req models.ProjectRequest) error {
	if s == nil {
		return errors.New("project service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if err := validator.ValidateStruct(req); err != nil {
		return apperrors.NewBadRequest(err.Error())
	}

	if _, err := s.client.Put(ctx, fmt.Sprintf("/api/projects/%d", id), req); err != nil {
		return err
	}

	s.client.Invalidate("/api/projects")
	return nil
}

// Delete soft-deletes a project. The backend keeps the row with a deleted
// status; the gateway only has to drop its cached views.
func (s *ProjectService) Delete(ctx context.Context, id int) error {
	if s == nil {
		return errors.New("project service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	if _, err := s.client.Delete(ctx, fmt.Sprintf("/api/projects/%d", id)); err != nil {
		return err
	}

	s.client.Invalidate("/api/projects")
	return nil
}
