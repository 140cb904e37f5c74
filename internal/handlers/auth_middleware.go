package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edusync-app/school-service/internal/authgate"
	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
	"github.com/edusync-app/school-service/internal/services"
)

// JWTAuthMiddleware resolves the session for each request. It parses the
// bearer token and loads the user; the gate decisions themselves live in
// the authgate package.
type JWTAuthMiddleware struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewJWTAuthMiddleware(authService services.AuthService, userRepo repositories.UserRepository) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// ResolveSession parses the Authorization header and attaches the user to
// the context. An absent or invalid token does not abort here; the route's
// gate decides what an anonymous caller may reach.
func (m *JWTAuthMiddleware) ResolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.authService.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
				c.Abort()
				return
			}
			// Token refers to a deleted user; treat as anonymous.
			c.Next()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// RequireRoles gates a route group on the allow-list. The list is flat
// set membership: a route allowing only students denies an admin.
func (m *JWTAuthMiddleware) RequireRoles(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)

		switch authgate.Authorize(session, allowedRoles) {
		case authgate.DecisionLoading:
			// Session state is still being hydrated; ask the caller to
			// retry rather than guessing a redirect.
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
				Message: "Session still loading",
			})
		case authgate.DecisionRedirectToLogin:
			c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
		case authgate.DecisionRedirectToUnauthorized:
			c.Redirect(http.StatusFound, "/unauthorized")
			c.Abort()
		case authgate.DecisionAllow:
			c.Next()
		}
	}
}

func sessionFromContext(c *gin.Context) authgate.Session {
	value, exists := c.Get("user")
	if !exists {
		return authgate.Session{}
	}
	user, ok := value.(*models.User)
	if !ok {
		return authgate.Session{}
	}
	return authgate.Session{User: user, IsAuthenticated: true}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// currentUserID returns the authenticated user id or aborts with 401.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return 0, false
	}
	return id, true
}
