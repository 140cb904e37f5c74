package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusync-app/school-service/internal/services"
	"github.com/edusync-app/school-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetCounts returns the entity counts for the landing dashboard
// @Summary Dashboard counts
// @Description Counts of students, teachers, classes, courses, assignments, notifications and events
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardCounts
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/counts [get]
func (h *DashboardHandler) GetCounts(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard counts")

	counts, err := h.service.GetCounts(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
