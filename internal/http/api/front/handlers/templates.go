package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/catalog"
	"github.com/sheetsmith/sheetsmith/internal/events"
	"github.com/sheetsmith/sheetsmith/internal/settings"
	"gorm.io/gorm"
)

// copyURLPattern is the external copy flow for a backing spreadsheet.
const copyURLPattern = "https://docs.google.com/spreadsheets/d/%s/copy"

// TemplateHandler serves the plan-gated template catalog.
type TemplateHandler struct {
	db       *gorm.DB         // Database handle, used for settings fallback lookups.
	recorder *events.Recorder // Event log for copy actions.
}

// NewTemplateHandler constructs a TemplateHandler.
func NewTemplateHandler(db *gorm.DB, recorder *events.Recorder) *TemplateHandler {
	return &TemplateHandler{db: db, recorder: recorder}
}

// List returns the templates visible to the resolved viewer. The check runs
// server-side on the stored plan; the client's claimed plan is never
// trusted.
func (h *TemplateHandler) List(c *gin.Context) {
	v := viewerFromContext(c)
	visible := catalog.Visible(v.PlanTier, v.IsAdmin)

	out := make([]gin.H, 0, len(visible))
	for _, t := range visible {
		out = append(out, formatTemplate(t))
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

// Get returns one template if the viewer may see it. Hidden and unknown
// slugs both return 404 so the response does not reveal gated entries.
func (h *TemplateHandler) Get(c *gin.Context) {
	v := viewerFromContext(c)
	t, found := catalog.BySlug(c.Param("slug"))
	if !found || !catalog.IsVisible(t, v.PlanTier, v.IsAdmin) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, formatTemplate(t))
}

// Copy redirects to the external copy URL for the template's backing
// spreadsheet, falling back to the configured default spreadsheet id.
func (h *TemplateHandler) Copy(c *gin.Context) {
	v := viewerFromContext(c)
	t, found := catalog.BySlug(c.Param("slug"))
	if !found || !catalog.IsVisible(t, v.PlanTier, v.IsAdmin) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	spreadsheetID := strings.TrimSpace(t.SpreadsheetID)
	if spreadsheetID == "" {
		spreadsheetID = settings.StringValue(settings.DefaultSpreadsheetIDKey, "")
	}
	if spreadsheetID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no spreadsheet available for template"})
		return
	}

	h.recorder.Record(events.Entry{
		EventType:    events.TypeTemplateCopied,
		UserUUID:     v.UserUUID,
		TemplateSlug: t.Slug,
	})
	c.Redirect(http.StatusFound, fmt.Sprintf(copyURLPattern, spreadsheetID))
}

// formatTemplate converts a catalog entry into a response payload.
func formatTemplate(t catalog.Template) gin.H {
	return gin.H{
		"slug":        t.Slug,
		"name":        t.Name,
		"category":    t.Category,
		"difficulty":  t.Difficulty,
		"min_plan":    t.MinPlan,
		"admin_only":  t.AdminOnly,
		"preview_url": t.PreviewURL,
	}
}
