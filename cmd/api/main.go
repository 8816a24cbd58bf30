package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/quickpost/internal/app"
	"github.com/xpanvictor/quickpost/internal/config"
	"github.com/xpanvictor/quickpost/internal/database"
	"github.com/xpanvictor/quickpost/internal/server"
	"github.com/xpanvictor/quickpost/pkg/Logger"
	"golang.org/x/sync/errgroup"
)

// @title           QuickPost API
// @version         1.0
// @description     Voice intake for service job postings: transcription, field extraction, quick signup and posting.
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// This is the main entry point for the API server.
// Loads in all system components
// Exposes functionalities
func main() {
	// fetch cfg
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// load global logger
	logger := Logger.New(cfg.Debug)
	defer logger.Sync()
	logger.Info("Logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// fetch database connection
	db, err := database.InitDB(ctx, cfg.DB, cfg.Debug)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	// handle migrations
	if err := database.MigrateDB(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	rc, err := database.NewRedis(cfg.Redis)
	if err != nil {
		// cache and resume are optional
		logger.Warnf("redis unavailable, continuing without it: %v", err)
		rc = nil
	}

	application, err := app.NewApp(ctx, cfg, logger, db, rc)
	if err != nil {
		logger.Fatalf("Failed to wire application: %v", err)
	}

	// compose router
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	wsHandler := server.InitializeRoutes(router, application.GetServerDependencies())

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router.Handler(),
	}

	// listen with graceful exit
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// 5 secs then cancel
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := wsHandler.Close(); err != nil {
			logger.Errorf("closing conversations: %v", err)
		}
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Errorf("server stopped: %v", err)
	}

	if rc != nil {
		rc.Close()
	}
	logger.Info("Shutdown system")
}
