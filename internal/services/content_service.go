package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/models"
	apperrors "github.com/youths4change/webgate/pkg/errors"
)

// ContentService serves the editable site content: settings, page text,
// core values, contact details and the team listing. Reads go through the
// cache; admin writes pass through and invalidate the matching prefix.
type ContentService struct {
	client *backend.Client
}

// NewContentService constructs a content service.
func NewContentService(client *backend.Client) (*ContentService, error) {
	if client == nil {
		return nil, errors.New("content service: backend client is required")
	}
	return &ContentService{client: client}, nil
}

// Settings returns the site-wide settings block.
func (s *ContentService) Settings(ctx context.Context) (*models.SiteSettings, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/settings", nil)
	if err != nil {
		return nil, err
	}
	var settings models.SiteSettings
	if err := backend.DecodeData(payload, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// PageContent returns the keyed text blocks for one page.
func (s *ContentService) PageContent(ctx context.Context, page string) (map[string]string, error) {
	ctx = ensuredContext(ctx)
	page = strings.TrimSpace(page)
	if page == "" {
		return nil, apperrors.NewBadRequest("Page name is required")
	}

	payload, err := s.client.Get(ctx, "/api/content/"+page, nil)
	if err != nil {
		return nil, err
	}
	content := make(map[string]string)
	if err := backend.DecodeData(payload, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// CoreValues returns the ordered value statements.
func (s *ContentService) CoreValues(ctx context.Context) ([]models.CoreValue, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/core-values", nil)
	if err != nil {
		return nil, err
	}
	var values []models.CoreValue
	if err := backend.DecodeData(payload, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// ContactInfo returns the contact channels for the contact page.
func (s *ContentService) ContactInfo(ctx context.Context) ([]models.ContactInfo, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/contact-info", nil)
	if err != nil {
		return nil, err
	}
	var info []models.ContactInfo
	if err := backend.DecodeData(payload, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// SocialMedia returns the managed social links.
func (s *ContentService) SocialMedia(ctx context.Context) ([]models.SocialMedia, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/social-media", nil)
	if err != nil {
		return nil, err
	}
	var links []models.SocialMedia
	if err := backend.DecodeData(payload, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// RegionalOffices returns the country offices.
func (s *ContentService) RegionalOffices(ctx context.Context) ([]models.RegionalOffice, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/regional-offices", nil)
	if err != nil {
		return nil, err
	}
	var offices []models.RegionalOffice
	if err := backend.DecodeData(payload, &offices); err != nil {
		return nil, err
	}
	return offices, nil
}

// TeamMembers returns the public team listing.
func (s *ContentService) TeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	ctx = ensuredContext(ctx)
	payload, err := s.client.Get(ctx, "/api/team", nil)
	if err != nil {
		return nil, err
	}
	var team []models.TeamMember
	if err := backend.DecodeData(payload, &team); err != nil {
		return nil, err
	}
	return team, nil
}

// UpdateSetting writes one setting through the backend and invalidates every
// cached settings variant.
func (s *ContentService) UpdateSetting(ctx context.Context, key, value string) error {
	ctx = ensuredContext(ctx)
	key = strings.TrimSpace(key)
	if key == "" {
		return apperrors.NewBadRequest("Setting key is required")
	}

	body := map[string]string{"setting_value": value}
	if _, err := s.client.Put(ctx, "/api/settings/"+key, body); err != nil {
		return err
	}

	s.client.Invalidate("/api/settings")
	return nil
}

// UpdatePageContent replaces the text blocks for one page.
func (s *ContentService) UpdatePageContent(ctx context.Context, page string, content map[string]string) error {
	ctx = ensuredContext(ctx)
	page = strings.TrimSpace(page)
	if page == "" {
		return apperrors.NewBadRequest("Page name is required")
	}

	if _, err := s.client.Put(ctx, "/api/content/"+page, content); err != nil {
		return err
	}

	s.client.Invalidate("/api/content")
	return nil
}

// UpdateContactInfo updates one contact channel.
func (s *ContentService) UpdateContactInfo(ctx context.Context, id int, info models.ContactInfo) error {
	ctx = ensuredContext(ctx)
	if _, err := s.client.Put(ctx, fmt.Sprintf("/api/contact-info/%d", id), info); err != nil {
		return err
	}
	s.client.Invalidate("/api/contact-info")
	return nil
}

// UpdateTeamMember updates one team entry.
func (s *ContentService) UpdateTeamMember(ctx context.Context, id int, member models.TeamMember) error {
	ctx = ensuredContext(ctx)
	if _, err := s.client.Put(ctx, fmt.Sprintf("/api/team/%d", id), member); err != nil {
		return err
	}
	s.client.Invalidate("/api/team")
	return nil
}
