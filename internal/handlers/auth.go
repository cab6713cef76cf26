package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/middleware"
	"github.com/youths4change/webgate/internal/services"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

// AuthHandler proxies the admin session lifecycle. The backend owns
// credentials and session cookies; this layer only relays them and keeps the
// response cache honest across logins.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) (*AuthHandler, error) {
	if auth == nil {
		return nil, errors.New("auth handler: auth service is required")
	}
	return &AuthHandler{auth: auth}, nil
}

// Login forwards the credential check verbatim so the backend's Set-Cookie
// header reaches the browser untouched.
func (h *AuthHandler) Login(c *gin.Context) {
	h.relay(c, http.MethodPost, "/api/auth/login")
}

// Logout forwards the logout and clears the response cache unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.auth.Logout(c.Request.Context(), c.GetHeader("Cookie"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// UpdateProfile relays a profile edit so the backend stays the single owner
// of the admin record.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	h.relay(c, http.MethodPut, "/api/auth/profile")
}

// ChangePassword relays a password change; credentials never touch this
// layer beyond the passthrough.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	h.relay(c, http.MethodPut, "/api/auth/password")
}

// Profile returns the admin resolved by the session middleware.
func (h *AuthHandler) Profile(c *gin.Context) {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, admin)
}

// relay pipes the request body and headers to the backend and copies the
// backend response, headers included, back to the browser.
func (h *AuthHandler) relay(c *gin.Context, method, path string) {
	resp, err := h.auth.Forward(c.Request.Context(), method, path, c.Request.Body, c.Request.Header)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		// Headers are gone; nothing useful left to send.
		c.Abort()
	}
}
