package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/config"
	"github.com/waveup-app/waveup-api/internal/db"
	"github.com/waveup-app/waveup-api/internal/entitlement"
	adminapi "github.com/waveup-app/waveup-api/internal/http/api/admin"
	frontapi "github.com/waveup-app/waveup-api/internal/http/api/front"
	"github.com/waveup-app/waveup-api/internal/ideas"
	"github.com/waveup-app/waveup-api/internal/models"
	"github.com/waveup-app/waveup-api/internal/security"
	"github.com/waveup-app/waveup-api/internal/store"
)

// shutdownGrace bounds how long in-flight requests may finish on shutdown.
const shutdownGrace = 10 * time.Second

// Migrate applies database migrations and exits.
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

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
func SeedAdmin(conn *gorm.DB, seed config.AdminSeed) error {
	var count int64
	if errCount := conn.Model(&models.Admin{}).Where("username = ?", seed.Username).Count(&count).Error; errCount != nil {
		return fmt.Errorf("count admins: %w", errCount)
	}
	if count > 0 {
		return nil
	}

	hashedPassword, errHash := auth.HashPassword(seed.Password)
	if errHash != nil {
		return errHash
	}

	now := time.Now().UTC()
	admin := models.Admin{
		Username:  seed.Username,
		Password:  hashedPassword,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		return fmt.Errorf("create admin: %w", errCreate)
	}
	log.WithField("username", seed.Username).Info("seeded bootstrap admin")
	return nil
}

// RunServer boots the API server with database-backed components and blocks
// until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.AppConfig, defaultPort int) error {
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

	if seed, ok := config.LoadAdminSeed(configPath); ok {
		if errSeed := SeedAdmin(conn, seed); errSeed != nil {
			return errSeed
		}
	}

	jwtConfig, _ := config.LoadJWTConfig(configPath)
	issuer, errIssuer := auth.NewTokenIssuer(jwtConfig, nil)
	if errIssuer != nil {
		return fmt.Errorf("jwt config: %w", errIssuer)
	}

	clk := clock.System{}
	kv := store.NewGormStore(conn)
	svc := entitlement.NewService(kv, clk)
	gate := security.NewGate(kv, clk)
	gallery := ideas.NewGallery(kv, clk)

	var generator ideas.Generator
	if apiKey := config.LoadOpenAIAPIKey(configPath); apiKey != "" {
		generator = ideas.NewOpenAIGenerator(apiKey)
	} else {
		log.Warn("no OpenAI API key configured, idea generation disabled")
	}

	poller := security.NewPoller(gate, 0)
	go poller.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	frontapi.RegisterFrontRoutes(engine, issuer, svc, gate, poller, gallery, generator, clk)
	adminapi.RegisterAdminRoutes(engine, conn, issuer, gate, poller)

	if defaultPort <= 0 {
		defaultPort = 8318
	}
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", defaultPort),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("server listening")
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
		}
	}()

	select {
	case errServe := <-errCh:
		return errServe
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("shutdown: %w", errShutdown)
	}
	return nil
}
