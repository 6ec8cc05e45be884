package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/catalog"
	"github.com/sheetsmith/sheetsmith/internal/generator"
	"github.com/sheetsmith/sheetsmith/internal/prompt"
	"github.com/sheetsmith/sheetsmith/internal/ratelimit"
	"gorm.io/gorm"
)

// minPromptLength is the shortest raw prompt accepted for generation.
const minPromptLength = 10

// GenerateHandler serves the spec generation endpoint.
type GenerateHandler struct {
	db       *gorm.DB            // Database handle, unused directly but kept for parity with siblings.
	pipeline *generator.Pipeline // Generation pipeline.
	limiter  *ratelimit.Manager  // Per-viewer rate limiter.
}

// NewGenerateHandler constructs a GenerateHandler.
func NewGenerateHandler(db *gorm.DB, pipeline *generator.Pipeline, limiter *ratelimit.Manager) *GenerateHandler {
	return &GenerateHandler{db: db, pipeline: pipeline, limiter: limiter}
}

// generateRequest captures the generation payload. Either a raw prompt or a
// template slug plus customization fields must be supplied.
type generateRequest struct {
	Prompt   string        `json:"prompt"`   // Raw prompt, used as-is when present.
	Template string        `json:"template"` // Optional template slug.
	Fields   prompt.Fields `json:"fields"`   // Customization form values.
	Category string        `json:"category"` // Optional category filter for examples.
}

// Generate validates input, assembles the prompt when a template is given,
// and runs the generation pipeline.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var body generateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	v := viewerFromContext(c)

	rawPrompt := strings.TrimSpace(body.Prompt)
	templateSlug := strings.TrimSpace(body.Template)
	category := strings.TrimSpace(body.Category)

	if templateSlug != "" {
		t, found := catalog.BySlug(templateSlug)
		if !found || !catalog.IsVisible(t, v.PlanTier, v.IsAdmin) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		templateSlug = t.Slug
		if rawPrompt == "" {
			rawPrompt = prompt.Build(t, body.Fields)
		}
		if category == "" {
			category = t.Category
		}
	}

	if len(rawPrompt) < minPromptLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt must be at least 10 characters"})
		return
	}

	limitKey := v.UserUUID
	if limitKey == "" {
		limitKey = c.ClientIP()
	}
	if result, errAllow := h.limiter.Allow(c.Request.Context(), limitKey); errAllow == nil && !result.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many generation requests"})
		return
	}

	out, errGenerate := h.pipeline.Generate(c.Request.Context(), generator.Input{
		Prompt:       rawPrompt,
		Category:     category,
		UserID:       v.UserID,
		UserUUID:     v.UserUUID,
		TemplateSlug: templateSlug,
	})
	if errGenerate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": out.RequestID,
		"spec_id":    out.SpecID,
		"spec":       out.Spec,
	})
}
