package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/events"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"github.com/sheetsmith/sheetsmith/internal/sheets"
	"github.com/sheetsmith/sheetsmith/internal/spec"
	"gorm.io/gorm"
)

// SpecHandler serves the signed-in viewer's stored specs.
type SpecHandler struct {
	db           *gorm.DB             // Database handle for spec records.
	materializer *sheets.Materializer // Optional spreadsheet integration.
	recorder     *events.Recorder     // Event log for spec opens.
}

// NewSpecHandler constructs a SpecHandler.
func NewSpecHandler(db *gorm.DB, materializer *sheets.Materializer, recorder *events.Recorder) *SpecHandler {
	return &SpecHandler{db: db, materializer: materializer, recorder: recorder}
}

// List returns the viewer's specs, newest first.
func (h *SpecHandler) List(c *gin.Context) {
	v := viewerFromContext(c)
	if v.UserID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var rows []models.SheetSpec
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", *v.UserID).
		Order("created_at DESC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list specs failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, formatSpec(&row))
	}
	c.JSON(http.StatusOK, gin.H{"specs": out})
}

// Get returns one of the viewer's specs by public id.
func (h *SpecHandler) Get(c *gin.Context) {
	v := viewerFromContext(c)
	row, ok := h.loadOwned(c, v)
	if !ok {
		return
	}

	h.recorder.Record(events.Entry{
		EventType: events.TypeSheetOpened,
		UserUUID:  v.UserUUID,
		SpecUUID:  row.UUID,
	})
	c.JSON(http.StatusOK, formatSpec(row))
}

// Materialize creates a real spreadsheet from a stored spec. Returns 503
// when the integration is not configured.
func (h *SpecHandler) Materialize(c *gin.Context) {
	v := viewerFromContext(c)
	row, ok := h.loadOwned(c, v)
	if !ok {
		return
	}
	if !h.materializer.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet integration not configured"})
		return
	}
	if row.SpreadsheetID != "" {
		c.JSON(http.StatusOK, gin.H{"spreadsheet_id": row.SpreadsheetID})
		return
	}

	parsed, errDecode := decodeStoredSpec(row)
	if errDecode != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored spec is unreadable"})
		return
	}

	spreadsheetID, errMaterialize := h.materializer.Materialize(c.Request.Context(), parsed)
	if errMaterialize != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "materialize failed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&models.SheetSpec{}).
		Where("id = ?", row.ID).Update("spreadsheet_id", spreadsheetID).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist spreadsheet id failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"spreadsheet_id": spreadsheetID})
}

// loadOwned fetches a spec by public id, enforcing ownership. Responses for
// missing and foreign specs are identical.
func (h *SpecHandler) loadOwned(c *gin.Context, v viewer) (*models.SheetSpec, bool) {
	if v.UserID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return nil, false
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}

	var row models.SheetSpec
	errFind := h.db.WithContext(c.Request.Context()).
		Where("uuid = ? AND user_id = ?", id, *v.UserID).
		First(&row).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return nil, false
	}
	return &row, true
}

// decodeStoredSpec rebuilds a spec value from its persisted JSON columns.
func decodeStoredSpec(row *models.SheetSpec) (spec.Spec, error) {
	out := spec.Spec{
		Title:    row.Title,
		Category: row.Category,
		Notes:    row.Notes,
		Tags:     []string{},
		Sheets:   []spec.Sheet{},
	}
	if len(row.Tags) > 0 {
		if errTags := json.Unmarshal(row.Tags, &out.Tags); errTags != nil {
			return spec.Spec{}, errTags
		}
	}
	if len(row.Sheets) > 0 {
		if errSheets := json.Unmarshal(row.Sheets, &out.Sheets); errSheets != nil {
			return spec.Spec{}, errSheets
		}
	}
	return out, nil
}

// formatSpec converts a spec row into a response payload.
func formatSpec(row *models.SheetSpec) gin.H {
	return gin.H{
		"id":             row.UUID,
		"title":          row.Title,
		"category":       row.Category,
		"tags":           row.Tags,
		"notes":          row.Notes,
		"sheets":         row.Sheets,
		"spreadsheet_id": row.SpreadsheetID,
		"created_at":     row.CreatedAt,
	}
}
