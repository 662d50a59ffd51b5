package rosterservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/harvinder-fsd/roster/server/internal/api"
	"github.com/harvinder-fsd/roster/server/internal/auth"
	"github.com/harvinder-fsd/roster/server/internal/config"
	"github.com/harvinder-fsd/roster/server/internal/factory"
	"github.com/harvinder-fsd/roster/server/internal/health"
	"github.com/harvinder-fsd/roster/server/internal/logger"
	"github.com/harvinder-fsd/roster/server/internal/services"
	"github.com/harvinder-fsd/roster/server/internal/store"
	"github.com/harvinder-fsd/roster/server/internal/store/sqlstore"
)

// Run starts the roster HTTP service and blocks until shutdown or error.
func Run() error {
	log := logger.New("roster-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	return RunWithConfig(cfg, log)
}

// RunWithConfig is Run with an explicit configuration.
func RunWithConfig(cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("auth_required", cfg.AuthRequired).
		Msg("Roster service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, src, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	users := services.NewUserService(st, tokens, log)
	if err := users.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Error().Stack().Err(err).Msg("admin seed failed")
		return err
	}

	svcHealth := startHealthCheckers(ctx, cfg, log, st, src)

	router := buildRouter(api.Deps{
		Students:     services.NewStudentService(st),
		Users:        users,
		Contacts:     services.NewContactService(st),
		Resume:       src,
		Authorizer:   tokens,
		AuthRequired: cfg.AuthRequired,
		Health:       svcHealth,
		Log:          log,
	})

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies opens the store and the resume source; both are required.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sqlstore.Store, factory.ResumeSource, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, nil, err
	}
	src, err := factory.NewResumeSource(ctx, cfg, log)
	if err != nil {
		_ = st.Close()
		log.Error().Stack().Err(err).Msg("Resume source unavailable")
		return nil, nil, err
	}
	return st, src, nil
}

func buildRouter(d api.Deps) *mux.Router {
	return api.NewRouter(d)
}

// startHealthCheckers starts component checkers and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st *sqlstore.Store, src factory.ResumeSource) *health.ServiceHealthChecker {
	probeTimeout := 2 * time.Second
	interval := cfg.HealthInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	resumeChecker := health.NewPingChecker("resume", src, log, probeTimeout)
	// first probe runs synchronously so /api/health is accurate from the start
	storeChecker.Check(ctx)
	resumeChecker.Check(ctx)
	go storeChecker.Start(ctx, interval)
	go resumeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker, resumeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen %s: %w", server.Addr, err)
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
