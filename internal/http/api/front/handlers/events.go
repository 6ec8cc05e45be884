package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/events"
)

// EventHandler ingests client-side lifecycle events.
type EventHandler struct {
	recorder *events.Recorder
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(recorder *events.Recorder) *EventHandler {
	return &EventHandler{recorder: recorder}
}

// ingestRequest captures one client event.
type ingestRequest struct {
	EventType    string          `json:"event_type"`    // Event type tag.
	SpecID       string          `json:"spec_id"`       // Optional related spec.
	TemplateSlug string          `json:"template_slug"` // Optional related template.
	Metadata     json.RawMessage `json:"metadata"`      // Free-form metadata.
}

// Ingest appends an event. Recording failures never propagate; the response
// is 202 as long as the payload parses.
func (h *EventHandler) Ingest(c *gin.Context) {
	var body ingestRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	v := viewerFromContext(c)
	h.recorder.Record(events.Entry{
		EventType:    body.EventType,
		UserUUID:     v.UserUUID,
		SpecUUID:     body.SpecID,
		TemplateSlug: body.TemplateSlug,
		Metadata:     body.Metadata,
	})
	c.JSON(http.StatusAccepted, gin.H{"ok": true})
}
