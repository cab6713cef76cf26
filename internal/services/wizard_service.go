package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/donation"
	"github.com/youths4change/webgate/internal/models"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/logger"
	"github.com/youths4change/webgate/pkg/metrics"
)

var (
	// ErrWizardNotFound indicates the wizard id is unknown or already pruned.
	ErrWizardNotFound = errors.New("wizard service: wizard not found")
)

// Abandoned wizards are pruned lazily when new ones start.
const wizardMaxAge = 2 * time.Hour

// WizardService owns the in-flight donation wizards. Each wizard is a
// workflow instance keyed by an opaque id handed to the browser; all state
// lives in gateway memory and dies with the process.
type WizardService struct {
	mu      sync.Mutex
	wizards map[string]*wizardEntry
	client  *backend.Client
	log     *zap.Logger
	now     func() time.Time
}

type wizardEntry struct {
	mu        sync.Mutex
	workflow  *donation.Workflow
	createdAt time.Time
}

// NewWizardService constructs the wizard registry.
func NewWizardService(client *backend.Client) (*WizardService, error) {
	if client == nil {
		return nil, errors.New("wizard service: backend client is required")
	}
	return &WizardService{
		wizards: make(map[string]*wizardEntry),
		client:  client,
		log:     logger.WithModule("wizard"),
		now:     time.Now,
	}, nil
}

// WizardState is the view returned to the form after every operation.
type WizardState struct {
	ID                 string                  `json:"id"`
	State              donation.State          `json:"state"`
	Draft              donation.Draft          `json:"draft"`
	DonationID         int                     `json:"donation_id,omitempty"`
	LocalDisplayAmount string                  `json:"local_display_amount,omitempty"`
	Projects           []models.Project        `json:"projects,omitempty"`
	PaymentAccounts    *models.PaymentAccounts `json:"payment_accounts,omitempty"`
}

// Start creates a wizard and performs the mount-time loads: the active
// project list and the payment accounts snapshot, fetched independently
// through the response cache. Either fetch failing degrades the view rather
// than failing the wizard.
func (s *WizardService) Start(ctx context.Context) (*WizardState, error) {
	if s == nil {
		return nil, errors.New("wizard service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	id := uuid.NewString()
	entry := &wizardEntry{workflow: donation.NewWorkflow(), createdAt: s.now()}

	s.mu.Lock()
	s.pruneLocked()
	s.wizards[id] = entry
	s.mu.Unlock()

	projects, accounts := s.loadReferenceData(ctx)

	state := s.view(id, entry)
	state.Projects = projects
	state.PaymentAccounts = accounts
	return state, nil
}

// loadReferenceData issues the two mount-time reads concurrently. Their
// completion order is irrelevant; they populate disjoint fields.
func (s *WizardService) loadReferenceData(ctx context.Context) ([]models.Project, *models.PaymentAccounts) {
	var (
		wg       sync.WaitGroup
		projects []models.Project
		accounts *models.PaymentAccounts
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		projects, err = s.activeProjects(ctx)
		if err != nil {
			s.log.Warn("project list unavailable", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		accounts, err = s.paymentAccounts(ctx)
		if err != nil {
			// Payment step renders without instructions; degraded, not fatal.
			s.log.Warn("payment accounts unavailable", zap.Error(err))
		}
	}()
	wg.Wait()

	return projects, accounts
}

func (s *WizardService) activeProjects(ctx context.Context) ([]models.Project, error) {
	params := url.Values{}
	params.Set("status", "active")

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

func (s *WizardService) paymentAccounts(ctx context.Context) (*models.PaymentAccounts, error) {
	payload, err := s.client.Get(ctx, "/api/payment-accounts", nil)
	if err != nil {
		return nil, err
	}
	var accounts models.PaymentAccounts
	if err := backend.DecodeData(payload, &accounts); err != nil {
		return nil, err
	}
	return &accounts, nil
}

// Get returns the current view of a wizard.
func (s *WizardService) Get(ctx context.Context, id string) (*WizardState, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.view(id, entry), nil
}

// Update applies draft field mutations.
func (s *WizardService) Update(ctx context.Context, id string, upd donation.DraftUpdate) (*WizardState, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := entry.workflow.Apply(upd); err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}
	return s.view(id, entry), nil
}

// ValidateField runs the on-blur check for a single field.
func (s *WizardService) ValidateField(ctx context.Context, id, field string) (*donation.FieldError, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.workflow.Draft().ValidateField(field), nil
}

// Next advances Details -> Payment; field failures block and are returned.
// The returned state carries the payment accounts when the step advanced.
func (s *WizardService) Next(ctx context.Context, id string) ([]donation.FieldError, *WizardState, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	fieldErrs, err := entry.workflow.AdvanceToPayment()
	if err != nil {
		return nil, nil, apperrors.NewBadRequest(err.Error())
	}
	if len(fieldErrs) > 0 {
		return fieldErrs, s.view(id, entry), nil
	}

	state := s.view(id, entry)
	if accounts, accErr := s.paymentAccounts(ensuredContext(ctx)); accErr == nil {
		state.PaymentAccounts = accounts
	}
	return nil, state, nil
}

// Confirm moves Payment -> Confirmation.
func (s *WizardService) Confirm(ctx context.Context, id string) (*WizardState, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := entry.workflow.ConfirmPayment(); err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}
	return s.view(id, entry), nil
}

// Back performs the explicit backward navigation for the current state.
func (s *WizardService) Back(ctx context.Context, id string) (*WizardState, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := entry.workflow.Back(); err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}
	return s.view(id, entry), nil
}

// Submit drives the final transition. A missing transaction id comes back as
// a field error without any network activity; a backend failure leaves the
// wizard in Confirmation for retry.
func (s *WizardService) Submit(ctx context.Context, id string) (*donation.FieldError, *WizardState, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	fieldErr, err := entry.workflow.Submit(ensuredContext(ctx), s)
	if err != nil {
		if errors.Is(err, donation.ErrInvalidTransition) {
			return nil, nil, apperrors.NewBadRequest(err.Error())
		}
		metrics.DonationSubmissions.WithLabelValues("failure").Inc()
		return nil, s.view(id, entry), err
	}
	if fieldErr != nil {
		return fieldErr, s.view(id, entry), nil
	}

	metrics.DonationSubmissions.WithLabelValues("success").Inc()
	s.log.Info("donation submitted",
		zap.String("wizard_id", id),
		zap.Int("donation_id", entry.workflow.DonationID()),
	)
	return nil, s.view(id, entry), nil
}

// CreateDonation implements donation.Gateway: the single creation request.
func (s *WizardService) CreateDonation(ctx context.Context, sub donation.Submission) (int, error) {
	req := models.DonationRequest{
		DonorName:       sub.DonorName,
		Email:           sub.Email,
		Amount:          sub.Amount,
		ProjectID:       sub.ProjectID,
		Country:         sub.Country,
		PaymentMethod:   sub.PaymentMethod,
		TransactionID:   sub.TransactionID,
		PaymentProofURL: sub.PaymentProofRef,
		Currency:        sub.Currency,
	}

	payload, err := s.client.Post(ctx, "/api/donations", req)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Success bool   `json:"success"`
		ID      int    `json:"id"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		return 0, apperrors.ErrUpstream.WithInternal(err)
	}
	if !resp.Success {
		return 0, apperrors.NewUpstream(http.StatusBadGateway, resp.Error, errors.New("backend rejected donation"))
	}
	return resp.ID, nil
}

// InvalidateDonations implements donation.Gateway. The prefix removal covers
// the plain list, every filtered variant and the stats resource.
func (s *WizardService) InvalidateDonations() {
	s.client.Invalidate("/api/donations")
}

func (s *WizardService) lookup(id string) (*wizardEntry, error) {
	if s == nil {
		return nil, errors.New("wizard service: service not initialised")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.wizards[id]
	if !ok {
		return nil, ErrWizardNotFound
	}
	return entry, nil
}

// pruneLocked drops wizards past wizardMaxAge. Callers hold s.mu.
func (s *WizardService) pruneLocked() {
	cutoff := s.now().Add(-wizardMaxAge)
	for id, entry := range s.wizards {
		if entry.createdAt.Before(cutoff) {
			delete(s.wizards, id)
		}
	}
}

func (s *WizardService) view(id string, entry *wizardEntry) *WizardState {
	state := &WizardState{
		ID:    id,
		State: entry.workflow.State(),
		Draft: entry.workflow.Draft(),
	}
	if state.Draft.Amount != "" && state.Draft.ValidateField("amount") == nil {
		state.LocalDisplayAmount = state.Draft.LocalDisplayAmount()
	}
	if entry.workflow.State() == donation.StateSubmitted {
		state.DonationID = entry.workflow.DonationID()
	}
	return state
}
