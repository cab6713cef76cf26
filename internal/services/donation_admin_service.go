package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/models"
	apperrors "github.com/youths4change/webgate/pkg/errors"
)

// DonationAdminService is the back-office view over recorded donations.
type DonationAdminService struct {
	client *backend.Client
}

// NewDonationAdminService constructs the admin donation service.
func NewDonationAdminService(client *backend.Client) (*DonationAdminService, error) {
	if client == nil {
		return nil, errors.New("donation admin service: backend client is required")
	}
	return &DonationAdminService{client: client}, nil
}

// ListDonationsOptions filters the admin listing.
type ListDonationsOptions struct {
	ProjectID int
	Country   string
	Search    string
}

// List retrieves donations for the back-office, via the cache.
func (s *DonationAdminService) List(ctx context.Context, opts ListDonationsOptions) ([]models.Donation, error) {
	if s == nil {
		return nil, errors.New("donation admin service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	params := url.Values{}
	if opts.ProjectID != 0 {
		params.Set("project_id", strconv.Itoa(opts.ProjectID))
	}
	if opts.Country != "" {
		params.Set("country", opts.Country)
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}

	payload, err := s.client.Get(ctx, "/api/donations", params)
	if err != nil {
		return nil, err
	}

	var donations []models.Donation
	if err := backend.DecodeData(payload, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// GetByID retrieves one donation.
func (s *DonationAdminService) GetByID(ctx context.Context, id int) (*models.Donation, error) {
	if s == nil {
		return nil, errors.New("donation admin service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	payload, err := s.client.Get(ctx, fmt.Sprintf("/api/donations/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var record models.Donation
	if err := backend.DecodeData(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// VerifyPayment records the manual verification outcome for a donation and
// purges every cached donations variant once the backend confirms.
func (s *DonationAdminService) VerifyPayment(ctx context.Context, id int, status, notes string) error {
	if s == nil {
		return errors.New("donation admin service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	status = strings.ToLower(strings.TrimSpace(status))
	if status != "verified" && status != "rejected" {
		return apperrors.NewBadRequest("Payment status must be verified or rejected")
	}

	body := map[string]string{
		"payment_status":     status,
		"verification_notes": notes,
	}
	if _, err := s.client.Put(ctx, fmt.Sprintf("/api/donations/%d/verify", id), body); err != nil {
		return err
	}

	s.client.Invalidate("/api/donations")
	return nil
}
