package services

import (
	"context"
	"errors"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/models"
)

// AnalyticsService serves the admin dashboard aggregates, all via the cache.
type AnalyticsService struct {
	client *backend.Client
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(client *backend.Client) (*AnalyticsService, error) {
	if client == nil {
		return nil, errors.New("analytics service: backend client is required")
	}
	return &AnalyticsService{client: client}, nil
}

// Overview returns the dashboard summary counters.
func (s *AnalyticsService) Overview(ctx context.Context) (*models.OverviewStats, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/analytics/overview", nil)
	if err != nil {
		return nil, err
	}
	var stats models.OverviewStats
	if err := backend.DecodeData(payload, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ProjectsByCountry returns the per-country project aggregate.
func (s *AnalyticsService) ProjectsByCountry(ctx context.Context) ([]models.CountryStats, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/analytics/projects-by-country", nil)
	if err != nil {
		return nil, err
	}
	var stats []models.CountryStats
	if err := backend.DecodeData(payload, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// DonationStats returns the donation aggregates. The entry shares the
// /api/donations prefix, so a new donation purges it together with the lists.
func (s *AnalyticsService) DonationStats(ctx context.Context) (*models.DonationStats, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/donations/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats models.DonationStats
	if err := backend.DecodeData(payload, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
