package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"gorm.io/gorm"
)

// defaultPageSize bounds admin listings.
const defaultPageSize = 50

// SpecAdminHandler serves admin listings over spec requests and specs.
type SpecAdminHandler struct {
	db *gorm.DB // Database handle for spec records.
}

// NewSpecAdminHandler constructs a SpecAdminHandler.
func NewSpecAdminHandler(db *gorm.DB) *SpecAdminHandler {
	return &SpecAdminHandler{db: db}
}

// parsePaging reads page/page_size query parameters with defaults.
func parsePaging(c *gin.Context) (offset, limit int) {
	page, errPage := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
	if errPage != nil || page < 1 {
		page = 1
	}
	limit, errLimit := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page_size", "")))
	if errLimit != nil || limit < 1 || limit > 200 {
		limit = defaultPageSize
	}
	return (page - 1) * limit, limit
}

// ListRequests returns audit request rows, newest first. The listing shows
// every model call, including ones that produced no spec.
func (h *SpecAdminHandler) ListRequests(c *gin.Context) {
	offset, limit := parsePaging(c)

	var rows []models.SpecRequest
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list requests failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":                 row.UUID,
			"user_id":            row.UserID,
			"raw_prompt":         row.RawPrompt,
			"requested_category": row.RequestedCategory,
			"template_slug":      row.TemplateSlug,
			"created_at":         row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"requests": out})
}

// ListSpecs returns stored specs, optionally filtered by category.
func (h *SpecAdminHandler) ListSpecs(c *gin.Context) {
	offset, limit := parsePaging(c)
	category := strings.TrimSpace(c.Query("category"))

	q := h.db.WithContext(c.Request.Context()).Model(&models.SheetSpec{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []models.SheetSpec
	if errFind := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list specs failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, h.formatSpec(&row))
	}
	c.JSON(http.StatusOK, gin.H{"specs": out})
}

// GetSpec fetches a spec by public id.
func (h *SpecAdminHandler) GetSpec(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var row models.SheetSpec
	if errFind := h.db.WithContext(c.Request.Context()).Where("uuid = ?", id).First(&row).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, h.formatSpec(&row))
}

// DeleteSpec removes a spec by public id. The audit request row is kept;
// deleting a spec never erases the record of the model call behind it.
func (h *SpecAdminHandler) DeleteSpec(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Where("uuid = ?", id).Delete(&models.SheetSpec{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// formatSpec converts a spec row into a response payload.
func (h *SpecAdminHandler) formatSpec(row *models.SheetSpec) gin.H {
	return gin.H{
		"id":             row.UUID,
		"request_id":     row.RequestID,
		"user_id":        row.UserID,
		"title":          row.Title,
		"category":       row.Category,
		"tags":           row.Tags,
		"notes":          row.Notes,
		"sheets":         row.Sheets,
		"spreadsheet_id": row.SpreadsheetID,
		"created_at":     row.CreatedAt,
	}
}
