// Package checkout creates hosted checkout sessions at the payment
// provider and records them locally.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sheetsmith/sheetsmith/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultLocalOrigin    = "http://localhost:3000"
)

// Session is a created hosted checkout session.
type Session struct {
	URL      string
	PlanTier string
}

// Client talks to the payment provider's session endpoint.
type Client struct {
	db         *gorm.DB
	httpClient *http.Client
	endpoint   string
	secretKey  string
}

// NewClient constructs a checkout Client. An empty secret key leaves the
// client unconfigured; CreateSession then fails with a clear error.
func NewClient(db *gorm.DB, endpoint, secretKey string) *Client {
	return &Client{
		db:         db,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		endpoint:   strings.TrimSpace(endpoint),
		secretKey:  strings.TrimSpace(secretKey),
	}
}

// Configured reports whether the provider credentials are present.
func (c *Client) Configured() bool {
	return c != nil && c.secretKey != "" && c.endpoint != ""
}

type sessionRequest struct {
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type sessionResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CreateSession creates a hosted session for priceID and records it. The
// success and cancel URLs are derived from the caller's origin. planHint is
// the client's claimed plan; the stored price-id mapping wins when present.
func (c *Client) CreateSession(ctx context.Context, userID *uint64, priceID, planHint, origin string) (Session, error) {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return Session{}, fmt.Errorf("checkout: empty price id")
	}
	if !c.Configured() {
		return Session{}, fmt.Errorf("checkout: provider not configured")
	}

	planTier := c.lookupPlanTier(priceID)
	if planTier == "" {
		planTier = strings.TrimSpace(planHint)
	}

	payload, errMarshal := json.Marshal(sessionRequest{
		PriceID:    priceID,
		SuccessURL: origin + "/checkout/success",
		CancelURL:  origin + "/pricing",
	})
	if errMarshal != nil {
		return Session{}, fmt.Errorf("checkout: encode request: %w", errMarshal)
	}

	requestCtx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	req, errRequest := http.NewRequestWithContext(requestCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if errRequest != nil {
		return Session{}, fmt.Errorf("checkout: build request: %w", errRequest)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, errDo := c.httpClient.Do(req)
	if errDo != nil {
		return Session{}, fmt.Errorf("checkout: request failed: %w", errDo)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			log.WithError(errClose).Warn("checkout: close response body failed")
		}
	}()

	body, errRead := io.ReadAll(resp.Body)
	if errRead != nil {
		return Session{}, fmt.Errorf("checkout: read response: %w", errRead)
	}

	var decoded sessionResponse
	if errUnmarshal := json.Unmarshal(body, &decoded); errUnmarshal != nil {
		return Session{}, fmt.Errorf("checkout: decode response: %w", errUnmarshal)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := strings.TrimSpace(decoded.Error)
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return Session{}, fmt.Errorf("checkout: %s", message)
	}
	if strings.TrimSpace(decoded.URL) == "" {
		return Session{}, fmt.Errorf("checkout: provider returned no session url")
	}

	c.recordSession(userID, priceID, planTier, decoded.URL)
	return Session{URL: decoded.URL, PlanTier: planTier}, nil
}

// lookupPlanTier resolves the plan tier behind a price id. A miss is fine;
// the provider remains the source of truth for the purchase.
func (c *Client) lookupPlanTier(priceID string) string {
	if c.db == nil {
		return ""
	}
	var plan models.Plan
	if errFind := c.db.Where("price_id = ?", priceID).First(&plan).Error; errFind != nil {
		return ""
	}
	return plan.Tier
}

// recordSession stores the created session for reporting. Best effort.
func (c *Client) recordSession(userID *uint64, priceID, planTier, url string) {
	if c.db == nil {
		return
	}
	row := models.CheckoutSession{
		UserID:   userID,
		PriceID:  priceID,
		PlanTier: planTier,
		URL:      url,
		Status:   "created",
	}
	if errCreate := c.db.Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).Warn("checkout: record session failed")
	}
}

// ResolveOrigin picks the origin used for redirect URLs: the configured
// override wins, then the request's Origin header, then localhost.
func ResolveOrigin(configured, originHeader string) string {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return strings.TrimRight(trimmed, "/")
	}
	if trimmed := strings.TrimSpace(originHeader); trimmed != "" {
		return strings.TrimRight(trimmed, "/")
	}
	return defaultLocalOrigin
}
