package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/checkout"
	"github.com/sheetsmith/sheetsmith/internal/events"
)

// CheckoutHandler serves the hosted checkout session endpoint.
type CheckoutHandler struct {
	client   *checkout.Client // Payment provider client.
	recorder *events.Recorder // Event log for checkout starts.
	origin   string           // Configured origin override, may be empty.
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(client *checkout.Client, recorder *events.Recorder, origin string) *CheckoutHandler {
	return &CheckoutHandler{client: client, recorder: recorder, origin: origin}
}

// createSessionRequest captures the checkout payload.
type createSessionRequest struct {
	PriceID string `json:"price_id"` // Provider price identifier.
	PlanID  string `json:"plan_id"`  // Optional plan hint recorded with the session.
}

// CreateSession creates a hosted checkout session and returns its URL. The
// provider's error message is passed through; it is the one upstream error
// the caller is allowed to see verbatim.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var body createSessionRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.PriceID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_id is required"})
		return
	}

	v := viewerFromContext(c)
	origin := checkout.ResolveOrigin(h.origin, c.GetHeader("Origin"))

	session, errCreate := h.client.CreateSession(c.Request.Context(), v.UserID, body.PriceID, body.PlanID, origin)
	if errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errCreate.Error()})
		return
	}

	h.recorder.Record(events.Entry{
		EventType: events.TypeCheckoutStarted,
		UserUUID:  v.UserUUID,
	})
	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}
