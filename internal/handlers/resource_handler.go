package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
	"github.com/edusync-app/school-service/internal/utils"
)

// reservedListParams are query keys consumed by pagination and sorting;
// everything else becomes an equality filter.
var reservedListParams = map[string]bool{
	"page": true, "size": true, "sort_by": true, "sort_order": true,
}

// ResourceHandler serves the generic table-keyed CRUD endpoint backing
// the admin data screens. The table name is validated against an
// allow-list inside the repository.
type ResourceHandler struct {
	BaseHandler
	repo repositories.ResourceRepository
}

func NewResourceHandler(repo repositories.ResourceRepository, logger utils.Logger) *ResourceHandler {
	return &ResourceHandler{
		BaseHandler: NewBaseHandler(logger),
		repo:        repo,
	}
}

// ListTables returns the tables exposed through this endpoint
// @Summary List manageable tables
// @Tags resources
// @Produce json
// @Success 200 {array} string
// @Router /data [get]
func (h *ResourceHandler) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, h.repo.Tables())
}

// List returns rows from one table
// @Summary List rows
// @Tags resources
// @Produce json
// @Param table path string true "Table name"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} ErrorResponse
// @Router /data/{table} [get]
func (h *ResourceHandler) List(c *gin.Context) {
	table := c.Param("table")
	query := parseListQuery(c)

	rows, total, err := h.repo.List(c.Request.Context(), table, query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	totalPages := int(total) / query.Size
	if int(total)%query.Size != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Data:       rows,
		Total:      total,
		Page:       query.Page,
		Size:       query.Size,
		TotalPages: totalPages,
	})
}

// Create inserts a row into one table
// @Summary Create a row
// @Tags resources
// @Accept json
// @Produce json
// @Param table path string true "Table name"
// @Success 201 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /data/{table} [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	table := c.Param("table")
	h.LogRequest(c, "Creating resource row", "table", table)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	row, err := h.repo.Create(c.Request.Context(), table, body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// Update modifies a row
// @Summary Update a row
// @Tags resources
// @Accept json
// @Produce json
// @Param table path string true "Table name"
// @Param id path int true "Row ID"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /data/{table}/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	table := c.Param("table")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid row id"})
		return
	}

	h.LogRequest(c, "Updating resource row", "table", table, "id", id)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	row, err := h.repo.Update(c.Request.Context(), table, uint(id), body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// Delete removes a row
// @Summary Delete a row
// @Tags resources
// @Param table path string true "Table name"
// @Param id path int true "Row ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /data/{table}/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	table := c.Param("table")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid row id"})
		return
	}

	h.LogRequest(c, "Deleting resource row", "table", table, "id", id)

	if err := h.repo.Delete(c.Request.Context(), table, uint(id)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseListQuery(c *gin.Context) models.ListQuery {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	filter := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if reservedListParams[key] || len(values) == 0 {
			continue
		}
		filter[key] = values[0]
	}

	return models.ListQuery{
		Filter:    filter,
		Page:      page,
		Size:      size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}
}
