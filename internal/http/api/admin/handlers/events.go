package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"gorm.io/gorm"
)

// EventAdminHandler serves the admin event log listing. This is the only
// place events are read back.
type EventAdminHandler struct {
	db *gorm.DB // Database handle for event records.
}

// NewEventAdminHandler constructs an EventAdminHandler.
func NewEventAdminHandler(db *gorm.DB) *EventAdminHandler {
	return &EventAdminHandler{db: db}
}

// List returns events, newest first, optionally filtered by type.
func (h *EventAdminHandler) List(c *gin.Context) {
	offset, limit := parsePaging(c)
	eventType := strings.TrimSpace(c.Query("event_type"))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Event{})
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}

	var rows []models.Event
	if errFind := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list events failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":            row.ID,
			"event_type":    row.EventType,
			"user_id":       row.UserUUID,
			"spec_id":       row.SpecUUID,
			"template_slug": row.TemplateSlug,
			"metadata":      row.Metadata,
			"created_at":    row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}
