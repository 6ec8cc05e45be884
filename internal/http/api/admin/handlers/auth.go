package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/config"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"github.com/sheetsmith/sheetsmith/internal/security"
	"gorm.io/gorm"
)

// AdminAuthHandler serves admin login.
type AdminAuthHandler struct {
	db     *gorm.DB         // Database handle for user records.
	jwtCfg config.JWTConfig // Token signing settings.
}

// NewAdminAuthHandler constructs an AdminAuthHandler.
func NewAdminAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig) *AdminAuthHandler {
	return &AdminAuthHandler{db: db, jwtCfg: jwtCfg}
}

// adminLoginRequest captures the admin login payload.
type adminLoginRequest struct {
	Email    string `json:"email"`    // Admin email.
	Password string `json:"password"` // Plaintext password.
}

// Login verifies admin credentials and returns a signed token.
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var body adminLoginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error; errFind != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin required"})
		return
	}
	if !user.Active || user.Disabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
		return
	}
	if !security.CheckPassword(user.Password, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, errSign := security.SignUserToken(h.jwtCfg.Secret, user.ID, true, h.jwtCfg.Expiry)
	if errSign != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":    user.UUID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}
