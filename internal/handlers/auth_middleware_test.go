package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edusync-app/school-service/internal/models"
)

// newGateTestRouter builds a router with a student-only route and an
// any-authenticated route, injecting the given user as the session.
func newGateTestRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set("user_id", user.ID)
			c.Set("user", user)
			c.Set("user_role", user.Role)
		}
		c.Next()
	})

	m := &JWTAuthMiddleware{}
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }

	router.GET("/student-only", m.RequireRoles(models.RoleStudent), ok)
	router.GET("/any-authenticated", m.RequireRoles(), ok)
	return router
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name         string
		user         *models.User
		path         string
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "listed role is allowed",
			user:       &models.User{ID: 1, Role: models.RoleStudent},
			path:       "/student-only",
			wantStatus: http.StatusOK,
		},
		{
			// Membership is exact; admin does not outrank the list.
			name:         "admin denied on student-only route",
			user:         &models.User{ID: 2, Role: models.RoleAdmin},
			path:         "/student-only",
			wantStatus:   http.StatusFound,
			wantLocation: "/unauthorized",
		},
		{
			name:         "super-admin denied on student-only route",
			user:         &models.User{ID: 3, Role: models.RoleSuperAdmin},
			path:         "/student-only",
			wantStatus:   http.StatusFound,
			wantLocation: "/unauthorized",
		},
		{
			name:         "anonymous redirected to login with return path",
			user:         nil,
			path:         "/student-only",
			wantStatus:   http.StatusFound,
			wantLocation: "/login?redirect=%2Fstudent-only",
		},
		{
			name:       "empty allow-list admits any authenticated role",
			user:       &models.User{ID: 4, Role: models.RoleClub},
			path:       "/any-authenticated",
			wantStatus: http.StatusOK,
		},
		{
			name:         "empty allow-list still requires authentication",
			user:         nil,
			path:         "/any-authenticated",
			wantStatus:   http.StatusFound,
			wantLocation: "/login?redirect=%2Fany-authenticated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newGateTestRouter(tt.user)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := w.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("location = %q, want %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case insensitive scheme", "bearer tok", "tok", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic dXNlcg==", "", false},
		{"scheme only", "Bearer", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			got, ok := bearerToken(c)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("bearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
