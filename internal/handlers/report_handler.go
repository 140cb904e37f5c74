package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusync-app/school-service/internal/services"
	"github.com/edusync-app/school-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GradeReport downloads the grade sheet
// @Summary Grade report
// @Description Download the per-student grade sheet as an xlsx workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param term_id query int false "Restrict to one term"
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/grades [get]
func (h *ReportHandler) GradeReport(c *gin.Context) {
	h.LogRequest(c, "Generating grade report")

	var termID *uint
	if v := c.Query("term_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid term_id"})
			return
		}
		id := uint(parsed)
		termID = &id
	}

	data, err := h.service.GradeReport(c.Request.Context(), termID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="grades.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// AttendanceReport downloads attendance for one class
// @Summary Attendance report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param class_id path int true "Class ID"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/attendance/{class_id} [get]
func (h *ReportHandler) AttendanceReport(c *gin.Context) {
	classID, err := strconv.ParseUint(c.Param("class_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid class id"})
		return
	}

	h.LogRequest(c, "Generating attendance report", "class_id", classID)

	data, err := h.service.AttendanceReport(c.Request.Context(), uint(classID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-class-%d.xlsx"`, classID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
