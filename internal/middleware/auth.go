package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/models"
	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/response"
)

const adminContextKey = "admin"

// AdminResolver resolves a session cookie header to an admin profile. The
// auth service implements it against the backend.
type AdminResolver interface {
	Profile(ctx context.Context, cookie string) (*models.Admin, error)
}

// AdminSession gates admin routes on the backend session cookie. The cookie
// header is forwarded to the backend's profile endpoint; only a successful
// lookup admits the request. The resolved profile and the cookie are stashed
// on the context for handlers and backend calls downstream.
func AdminSession(auth AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := c.GetHeader("Cookie")
		if cookie == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		admin, err := auth.Profile(c.Request.Context(), cookie)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(adminContextKey, admin)
		c.Request = c.Request.WithContext(backend.WithSessionCookie(c.Request.Context(), cookie))
		c.Next()
	}
}

// AdminFromContext returns the authenticated admin, when present.
func AdminFromContext(c *gin.Context) (*models.Admin, bool) {
	value, ok := c.Get(adminContextKey)
	if !ok {
		return nil, false
	}
	admin, ok := value.(*models.Admin)
	return admin, ok
}
