package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/catalog"
	"github.com/sheetsmith/sheetsmith/internal/db"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"gorm.io/gorm"
)

// UserHandler manages admin endpoints for user accounts.
type UserHandler struct {
	db *gorm.DB // Database handle for user records.
}

// NewUserHandler constructs a user handler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List returns users, optionally filtered by email substring.
func (h *UserHandler) List(c *gin.Context) {
	emailQ := strings.TrimSpace(c.Query("email"))

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})
	if emailQ != "" {
		q = q.Where(db.CaseInsensitiveLikeExpr(h.db, "email"), db.NormalizeLikePattern(h.db, "%"+emailQ+"%"))
	}

	var rows []models.User
	if errFind := q.Order("created_at DESC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list users failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, h.formatUser(&row))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// Get fetches a user by ID.
func (h *UserHandler) Get(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, h.formatUser(&user))
}

// updateUserRequest captures optional fields for user updates.
type updateUserRequest struct {
	Name     *string `json:"name"`      // Optional display name.
	PlanTier *string `json:"plan_tier"` // Optional plan change.
	IsAdmin  *bool   `json:"is_admin"`  // Optional role change.
}

// Update validates and applies user field updates.
func (h *UserHandler) Update(c *gin.Context) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateUserRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}
	if body.Name != nil {
		updates["name"] = strings.TrimSpace(*body.Name)
	}
	if body.PlanTier != nil {
		tier := strings.TrimSpace(*body.PlanTier)
		if catalog.Rank(catalog.Tier(tier)) < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown plan tier"})
			return
		}
		updates["plan_tier"] = tier
	}
	if body.IsAdmin != nil {
		updates["is_admin"] = *body.IsAdmin
	}

	res := h.db.WithContext(c.Request.Context()).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Disable blocks a user from signing in.
func (h *UserHandler) Disable(c *gin.Context) {
	h.setDisabled(c, true)
}

// Enable restores a disabled user.
func (h *UserHandler) Enable(c *gin.Context) {
	h.setDisabled(c, false)
}

// setDisabled toggles the disabled state for a user.
func (h *UserHandler) setDisabled(c *gin.Context, disabled bool) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	now := time.Now().UTC()
	res := h.db.WithContext(c.Request.Context()).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{"disabled": disabled, "active": !disabled, "updated_at": now})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// formatUser converts a user model into a response payload.
func (h *UserHandler) formatUser(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"uuid":       u.UUID,
		"email":      u.Email,
		"name":       u.Name,
		"plan_tier":  u.PlanTier,
		"is_admin":   u.IsAdmin,
		"active":     u.Active,
		"disabled":   u.Disabled,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
