package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventmanager/config"
	_ "eventmanager/docs"
	"eventmanager/internal/adapters/auth"
	"eventmanager/internal/adapters/email"
	deliveryhttp "eventmanager/internal/delivery/http"
	"eventmanager/internal/delivery/http/controllers"
	"eventmanager/internal/delivery/http/middleware"
	"eventmanager/internal/repository/postgres"
	"eventmanager/internal/services"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run pending migrations and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := config.NewLogger()

		db, err := postgres.Open(cfg.DBUrl)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.MigrateUp(db); err != nil {
			return err
		}
		logger.Info("migrations applied")

		repos := postgres.NewRepositories(db)
		tx := postgres.NewTransactor(db)

		eventService := services.NewEventService(repos, tx, cfg.ContextTimeout)
		attendeeService := services.NewAttendeeService(repos, tx, logger, cfg.ContextTimeout)
		speakerService := services.NewSpeakerService(repos, tx, cfg.ContextTimeout)
		invitationService := services.NewInvitationService(email.NewNoopMailer(logger), email.NewTemplateRenderer(), logger)

		var requireAuth func(http.HandlerFunc) http.HandlerFunc
		if cfg.AuthEnabled() {
			requireAuth = middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger)
		}
		protect := middleware.Optional(cfg.AuthEnabled(), requireAuth)

		router := deliveryhttp.NewRouter(
			controllers.NewEventController(logger, eventService),
			controllers.NewAttendeeController(logger, attendeeService, invitationService),
			controllers.NewSpeakerController(logger, speakerService),
			protect,
		)
		handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router))

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "addr", srv.Addr, "env", cfg.Environment, "auth", cfg.AuthEnabled())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
		case err, ok := <-errCh:
			if ok {
				logger.Error("HTTP server error", "err", err)
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		logger.Info("shutdown complete")
		return nil
	},
}
