package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/models"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/logger"
)

// AuthService fronts the backend's session-cookie authentication. The
// gateway never mints or verifies credentials itself; it forwards cookies
// and relays the backend's verdicts.
type AuthService struct {
	client *backend.Client
	log    *zap.Logger
}

// NewAuthService constructs an auth service.
func NewAuthService(client *backend.Client) (*AuthService, error) {
	if client == nil {
		return nil, errors.New("auth service: backend client is required")
	}
	return &AuthService{client: client, log: logger.WithModule("auth")}, nil
}

// Profile resolves the admin profile for the supplied cookie header. Profile
// lookups bypass the response cache: they are per-session, not shared data.
func (s *AuthService) Profile(ctx context.Context, cookie string) (*models.Admin, error) {
	if s == nil {
		return nil, errors.New("auth service: service not initialised")
	}
	if cookie == "" {
		return nil, apperrors.ErrUnauthorized
	}
	ctx = ensuredContext(ctx)

	header := http.Header{}
	header.Set("Cookie", cookie)

	resp, err := s.client.Forward(ctx, http.MethodGet, "/api/auth/profile", nil, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperrors.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstream(resp.StatusCode, "", errors.New("profile lookup failed"))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrUpstream.WithInternal(err)
	}

	var env struct {
		Success bool         `json:"success"`
		Data    models.Admin `json:"data"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, apperrors.ErrUpstream.WithInternal(err)
	}
	if !env.Success {
		return nil, apperrors.ErrUnauthorized
	}
	return &env.Data, nil
}

// Logout forwards the logout to the backend and, regardless of its verdict,
// drops every cached response so the next session starts cold.
func (s *AuthService) Logout(ctx context.Context, cookie string) error {
	if s == nil {
		return errors.New("auth service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	header := http.Header{}
	if cookie != "" {
		header.Set("Cookie", cookie)
	}

	resp, err := s.client.Forward(ctx, http.MethodPost, "/api/auth/logout", nil, header)
	if resp != nil {
		resp.Body.Close()
	}

	s.client.ClearCache()
	if err != nil {
		s.log.Warn("logout forwarding failed", zap.Error(err))
		return err
	}
	return nil
}

// Forward relays an auth request (login, profile update, password change)
// verbatim so Set-Cookie headers from the backend reach the browser.
func (s *AuthService) Forward(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	if s == nil {
		return nil, errors.New("auth service: service not initialised")
	}
	return s.client.Forward(ensuredContext(ctx), method, path, body, header)
}
