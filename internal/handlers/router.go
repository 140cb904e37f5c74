package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
	"github.com/edusync-app/school-service/internal/services"
	"github.com/edusync-app/school-service/internal/utils"
)

// RouteSpec declares one gated route. AllowedRoles is exact set
// membership: listing teacher does not admit admin. An empty list admits
// any authenticated role; Public skips the gate entirely.
type RouteSpec struct {
	Method       string
	Path         string
	AllowedRoles []models.UserRole
	Public       bool
	Handler      gin.HandlerFunc
}

// Role allow-lists shared by several routes.
var (
	broadcastRoles  = []models.UserRole{models.RoleAdmin, models.RolePrincipal, models.RoleSchoolAdmin}
	eventWriteRoles = []models.UserRole{models.RoleAdmin, models.RolePrincipal, models.RoleSchoolAdmin, models.RoleTeacher}
	reportRoles     = []models.UserRole{models.RoleAdmin, models.RolePrincipal, models.RoleSchoolAdmin, models.RoleTeacher}
	dataAdminRoles  = []models.UserRole{models.RoleAdmin, models.RoleSuperAdmin, models.RoleSchoolAdmin}
)

type HandlerManager struct {
	authHandler         *AuthHandler
	dashboardHandler    *DashboardHandler
	notificationHandler *NotificationHandler
	reportHandler       *ReportHandler
	resourceHandler     *ResourceHandler
	authMiddleware      *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	repo repositories.Repository,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		reportHandler:       NewReportHandler(serviceManager.Report(), logger),
		resourceHandler:     NewResourceHandler(repo.Resource(), logger),
		authMiddleware:      NewJWTAuthMiddleware(serviceManager.Auth(), repo.User()),
	}
}

// routeSpecs is the full declarative route table. Each role-scoped
// dashboard admits exactly its own role; a super-admin on
// /dashboard/admin is redirected to /unauthorized like anyone else.
func (hm *HandlerManager) routeSpecs() []RouteSpec {
	specs := []RouteSpec{
		{Method: http.MethodPost, Path: "/auth/login", Public: true, Handler: hm.authHandler.Login},
		{Method: http.MethodPost, Path: "/auth/logout", Handler: hm.authHandler.Logout},
		{Method: http.MethodGet, Path: "/auth/me", Handler: hm.authHandler.Me},

		{Method: http.MethodGet, Path: "/dashboard/counts", Handler: hm.dashboardHandler.GetCounts},

		{Method: http.MethodGet, Path: "/notifications", Handler: hm.notificationHandler.ListMine},
		{Method: http.MethodPut, Path: "/notifications/:id/read", Handler: hm.notificationHandler.MarkRead},
		{Method: http.MethodPost, Path: "/notifications/broadcast", AllowedRoles: broadcastRoles, Handler: hm.notificationHandler.Broadcast},

		{Method: http.MethodGet, Path: "/calendar/events", Handler: hm.notificationHandler.ListEvents},
		{Method: http.MethodPost, Path: "/calendar/events", AllowedRoles: eventWriteRoles, Handler: hm.notificationHandler.CreateEvent},

		{Method: http.MethodGet, Path: "/reports/grades", AllowedRoles: reportRoles, Handler: hm.reportHandler.GradeReport},
		{Method: http.MethodGet, Path: "/reports/attendance/:class_id", AllowedRoles: reportRoles, Handler: hm.reportHandler.AttendanceReport},

		{Method: http.MethodGet, Path: "/data", AllowedRoles: dataAdminRoles, Handler: hm.resourceHandler.ListTables},
		{Method: http.MethodGet, Path: "/data/:table", AllowedRoles: dataAdminRoles, Handler: hm.resourceHandler.List},
		{Method: http.MethodPost, Path: "/data/:table", AllowedRoles: dataAdminRoles, Handler: hm.resourceHandler.Create},
		{Method: http.MethodPut, Path: "/data/:table/:id", AllowedRoles: dataAdminRoles, Handler: hm.resourceHandler.Update},
		{Method: http.MethodDelete, Path: "/data/:table/:id", AllowedRoles: dataAdminRoles, Handler: hm.resourceHandler.Delete},
	}

	roleDashboards := []models.UserRole{
		models.RoleStudent, models.RoleTeacher, models.RolePrincipal,
		models.RoleAdmin, models.RoleFinancial, models.RoleAdmission,
		models.RoleLabs, models.RoleClub, models.RoleLibrary,
	}
	for _, role := range roleDashboards {
		specs = append(specs, RouteSpec{
			Method:       http.MethodGet,
			Path:         "/dashboard/" + string(role),
			AllowedRoles: []models.UserRole{role},
			Handler:      hm.dashboardHandler.GetCounts,
		})
	}

	return specs
}

// SetupRoutes wires the route table onto the router.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "school-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.ResolveSession())

	for _, spec := range hm.routeSpecs() {
		if spec.Public {
			v1.Handle(spec.Method, spec.Path, spec.Handler)
			continue
		}
		v1.Handle(spec.Method, spec.Path, hm.authMiddleware.RequireRoles(spec.AllowedRoles...), spec.Handler)
	}
}
