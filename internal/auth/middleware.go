package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Context keys for the authenticated identity
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyUser   = "auth_user"
)

// Middleware handles bearer-token authentication for HTTP requests.
type Middleware struct {
	service     *Service
	publicPaths map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	publicPaths := map[string]bool{
		"/api/user/register": true,
		"/api/user/login":    true,
		"/health":            true,
		"/ping":              true,
	}

	return &Middleware{
		service:     service,
		publicPaths: publicPaths,
	}
}

// Handler returns a Gin middleware handler that authenticates requests.
// Requests to non-public paths without a valid bearer token are rejected
// with 401 before reaching any controller.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		user := m.tryBearerAuth(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthenticated.",
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// tryBearerAuth attempts to authenticate using the Authorization header.
func (m *Middleware) tryBearerAuth(c *gin.Context) *entities.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	user, err := m.service.Authenticate(parts[1])
	if err != nil {
		return nil
	}

	return user
}

// CurrentUserID returns the authenticated user's id from the request context.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
