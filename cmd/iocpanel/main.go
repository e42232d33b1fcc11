package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	sqliteadapter "github.com/ericfisherdev/iocpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/iocpanel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/iocpanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/iocpanel/internal/application"
	"github.com/ericfisherdev/iocpanel/internal/config"
	"github.com/ericfisherdev/iocpanel/internal/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env (optional) and configuration.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"session_ttl", cfg.SessionTTL,
		"fallback_enabled", cfg.FallbackEnabled,
	)
	if cfg.FallbackEnabled {
		logger.Warn("fallback credential enabled; set IOCPANEL_FALLBACK_ENABLED=false once cpanel_users is populated")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()
	logger.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	logger.Info("migrations complete")

	board, err := application.DefaultStatusBoard()
	if err != nil {
		return err
	}

	// 5. Wire adapters and services.
	userStore := sqliteadapter.NewUserRepo(db)
	sessionStore := sqliteadapter.NewSessionRepo(db)
	entityStore := sqliteadapter.NewEntityRepo(db)

	authSvc := application.NewAuthService(userStore, sessionStore, application.AuthOptions{
		SessionTTL: cfg.SessionTTL,
		Fallback: application.FallbackCredential{
			Enabled:  cfg.FallbackEnabled,
			Username: cfg.FallbackUsername,
			Password: cfg.FallbackPassword,
		},
	}, logger)
	dashboardSvc := application.NewDashboardService(entityStore, board, logger)

	go application.NewSessionPurger(authSvc, cfg.PurgeInterval, logger).Start(ctx)

	// 6. Register API and GUI routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(db, logger))

	webHandler := webhandler.NewHandler(authSvc, dashboardSvc, webhandler.CookieOptions{Secure: cfg.SecureCookies}, logger)
	webhandler.RegisterRoutes(mux, webHandler)

	handler := httphandler.ApplyMiddleware(mux, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	// 7. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-srvErr:
		return fmt.Errorf("http server: %w", err)
	}

	// 8. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
