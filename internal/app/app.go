// Package app boots the API server: database, migrations, services, and
// HTTP routes.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/checkout"
	"github.com/sheetsmith/sheetsmith/internal/config"
	"github.com/sheetsmith/sheetsmith/internal/db"
	"github.com/sheetsmith/sheetsmith/internal/events"
	"github.com/sheetsmith/sheetsmith/internal/generator"
	"github.com/sheetsmith/sheetsmith/internal/http/api/admin"
	"github.com/sheetsmith/sheetsmith/internal/http/api/front"
	"github.com/sheetsmith/sheetsmith/internal/ratelimit"
	internalsettings "github.com/sheetsmith/sheetsmith/internal/settings"
	"github.com/sheetsmith/sheetsmith/internal/sheets"
	log "github.com/sirupsen/logrus"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the API server with database-backed components.
func RunServer(ctx context.Context, cfg config.AppConfig, port int) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	internalsettings.RegisterDB(conn)

	jwtConfig, errJWT := config.LoadJWTConfig(configPath)
	if errJWT != nil {
		return errJWT
	}

	adminCfg := config.LoadAdminConfig(configPath)
	if errAdmin := EnsureAdminUser(conn, adminCfg.Email, adminCfg.Password); errAdmin != nil {
		return errAdmin
	}

	recorder := events.NewRecorder(conn)

	var model generator.Model
	generatorCfg := config.LoadGeneratorConfig(configPath)
	if generatorCfg.APIKey != "" {
		geminiModel, errModel := generator.NewGeminiModel(ctx, generatorCfg.APIKey, generatorCfg.Model)
		if errModel != nil {
			return errModel
		}
		model = geminiModel
	} else {
		log.Warn("no model api key configured, generation requests will fail")
	}
	pipeline := generator.NewPipeline(conn, model, recorder)

	checkoutCfg := config.LoadCheckoutConfig(configPath)
	checkoutClient := checkout.NewClient(conn, checkoutCfg.Endpoint, checkoutCfg.SecretKey)
	if !checkoutClient.Configured() {
		log.Warn("checkout provider not configured, checkout requests will fail")
	}

	sheetsCredentials, errCredentials := config.LoadSheetsCredentials(configPath)
	if errCredentials != nil {
		return errCredentials
	}
	materializer, errMaterializer := sheets.NewMaterializer(ctx, sheetsCredentials)
	if errMaterializer != nil {
		return errMaterializer
	}
	if !materializer.Available() {
		log.Info("spreadsheet integration not configured")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	admin.RegisterAdminRoutes(engine, conn, jwtConfig)
	front.RegisterFrontRoutes(engine, conn, jwtConfig, front.Services{
		Pipeline:     pipeline,
		Recorder:     recorder,
		Checkout:     checkoutClient,
		Materializer: materializer,
		Limiter:      ratelimit.NewManager(),
		CheckoutCfg:  checkoutCfg,
	})

	if port <= 0 {
		port = 8318
	}
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			log.Errorf("server shutdown error: %v", errShutdown)
		}
	}()

	log.Infof("starting server on %s with config=%s", addr, configPath)
	if errListen := srv.ListenAndServe(); errListen != nil && errListen != http.ErrServerClosed {
		return errListen
	}
	return nil
}

// corsMiddleware enables permissive CORS for the API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
