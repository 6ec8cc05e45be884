// Package front wires the user-facing API routes.
package front

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/catalog"
	"github.com/sheetsmith/sheetsmith/internal/checkout"
	"github.com/sheetsmith/sheetsmith/internal/config"
	"github.com/sheetsmith/sheetsmith/internal/events"
	"github.com/sheetsmith/sheetsmith/internal/generator"
	handlers "github.com/sheetsmith/sheetsmith/internal/http/api/front/handlers"
	"github.com/sheetsmith/sheetsmith/internal/models"
	"github.com/sheetsmith/sheetsmith/internal/ratelimit"
	"github.com/sheetsmith/sheetsmith/internal/security"
	"github.com/sheetsmith/sheetsmith/internal/sheets"
	"gorm.io/gorm"
)

// Services bundles the dependencies consumed by front handlers.
type Services struct {
	Pipeline     *generator.Pipeline
	Recorder     *events.Recorder
	Checkout     *checkout.Client
	Materializer *sheets.Materializer
	Limiter      *ratelimit.Manager
	CheckoutCfg  config.CheckoutConfig
}

// RegisterFrontRoutes registers user-facing routes, middleware, and handlers.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, svc Services) {
	if r == nil || db == nil {
		return
	}

	group := r.Group("/v0")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	group.POST("/auth/register", authHandler.Register)
	group.POST("/auth/login", authHandler.Login)

	optional := group.Group("")
	optional.Use(optionalUserAuthMiddleware(db, jwtCfg))

	templateHandler := handlers.NewTemplateHandler(db, svc.Recorder)
	optional.GET("/templates", templateHandler.List)
	optional.GET("/templates/:slug", templateHandler.Get)
	optional.GET("/templates/:slug/copy", templateHandler.Copy)

	generateHandler := handlers.NewGenerateHandler(db, svc.Pipeline, svc.Limiter)
	optional.POST("/generate", generateHandler.Generate)

	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout, svc.Recorder, svc.CheckoutCfg.Origin)
	optional.POST("/checkout/session", checkoutHandler.CreateSession)

	planHandler := handlers.NewPlanFrontHandler(db)
	optional.GET("/plans", planHandler.List)

	eventHandler := handlers.NewEventHandler(svc.Recorder)
	optional.POST("/events", eventHandler.Ingest)

	authed := group.Group("")
	authed.Use(userAuthMiddleware(db, jwtCfg))

	authed.GET("/me", authHandler.Me)
	authed.PUT("/me", authHandler.UpdateProfile)

	specHandler := handlers.NewSpecHandler(db, svc.Materializer, svc.Recorder)
	authed.GET("/specs", specHandler.List)
	authed.GET("/specs/:id", specHandler.Get)
	authed.POST("/specs/:id/materialize", specHandler.Materialize)
}

// userAuthMiddleware validates user JWTs and loads viewer context.
func userAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, db, jwtCfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		setViewer(c, user)
		c.Next()
	}
}

// optionalUserAuthMiddleware loads viewer context when a valid token is
// present and otherwise treats the request as anonymous. A malformed token
// is still rejected; silently downgrading a signed-in viewer would change
// what the catalog shows them.
func optionalUserAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, db, jwtCfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if user != nil {
			setViewer(c, user)
		}
		c.Next()
	}
}

// resolveUser parses the bearer token and loads the user row. It returns
// (nil, true) when no token was supplied and (nil, false) when a token was
// supplied but is unusable.
func resolveUser(c *gin.Context, db *gorm.DB, jwtCfg config.JWTConfig) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return nil, false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}

	claims, errJWT := security.ParseUserToken(jwtCfg.Secret, token)
	if errJWT != nil {
		return nil, false
	}

	var user models.User
	if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
		return nil, false
	}
	if !user.Active || user.Disabled {
		return nil, false
	}
	return &user, true
}

func setViewer(c *gin.Context, user *models.User) {
	c.Set("userID", user.ID)
	c.Set("userUUID", user.UUID)
	c.Set("isAdmin", user.IsAdmin)
	c.Set("planTier", string(catalog.ParseTier(user.PlanTier)))
}
