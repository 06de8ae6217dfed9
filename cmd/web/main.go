package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/madhurinidan/clinic-web/config"
	"github.com/madhurinidan/clinic-web/internal/apiclient"
	"github.com/madhurinidan/clinic-web/internal/cache"
	"github.com/madhurinidan/clinic-web/internal/server"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/pkg/db"
	"github.com/madhurinidan/clinic-web/pkg/httpclient"
	"github.com/madhurinidan/clinic-web/pkg/jwt"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"github.com/madhurinidan/clinic-web/pkg/profiling"
	"github.com/madhurinidan/clinic-web/pkg/tracing"
)

const sessionPurgeInterval = 15 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting clinic-web",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling
	stopProfiling, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiling()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics(ctx)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Invalid clinic timezone", zap.Error(err))
	}

	// Session backend
	backend, closeBackend := sessionBackend(ctx, cfg)
	defer closeBackend()

	// Clinic API client. The bearer token is read from the request's session.
	baseURL := cfg.APIBaseURL(apiclient.BaseURLFor)
	client := apiclient.New(baseURL, httpclient.NewStandardClient(), session.TokenFromContext)
	logger.Info("Using clinic API", zap.String("base_url", baseURL))

	// Doctor directory cache. A failed warm-up is not fatal: pages fall back
	// to the clinic API until the next refresh.
	doctorCache := cache.NewDoctorCache(client, cfg.Cache.DoctorTTLSeconds, cfg.Cache.DisableDoctorsCache)
	if cfg.Cache.DisableDoctorsCache {
		logger.Warn("Doctor cache is DISABLED - reading from the clinic API on every request")
	} else {
		doctorCache.Warm(ctx)
		go doctorCache.Run(ctx)
	}
	cacheWarmFunc := func() bool { return !doctorCache.LastRefresh().IsZero() }
	if cfg.Cache.DisableDoctorsCache {
		cacheWarmFunc = func() bool { return true }
	}

	// Initialize services
	authService := services.NewAuthService(client)
	doctorService := services.NewDoctorService(client, doctorCache)
	appointmentService := services.NewAppointmentService(client, loc)
	contactService := services.NewContactService(client)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router, err := server.NewRouter(ctx, server.Dependencies{
		Config:          cfg,
		Sessions:        session.NewManager(backend),
		Auth:            authService,
		Doctors:         doctorService,
		Appointments:    appointmentService,
		Contact:         contactService,
		Location:        loc,
		DoctorCacheWarm: cacheWarmFunc,
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second, // the clinic API can cold-start
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// sessionBackend builds the configured session backend and returns a
// function releasing its resources
func sessionBackend(ctx context.Context, cfg *config.Config) (session.Backend, func()) {
	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	options := session.CookieOptions{
		Domain:     cfg.Session.CookieDomain,
		Secure:     cfg.Session.CookieSecure,
		TTLSeconds: cfg.SessionTTLSeconds(),
	}

	switch cfg.Session.Backend {
	case config.SessionBackendPostgres:
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			logger.Fatal("Failed to run session store migrations", zap.Error(err))
		}
		pool, err := db.NewPool(ctx, db.PoolConfig{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
		}

		backend := session.NewPostgresBackend(pool, ttl, options)
		go backend.RunPurger(ctx, sessionPurgeInterval)
		logger.Info("Using postgres session backend")
		return backend, pool.Close
	default:
		tokens := jwt.NewTokenManager(cfg.Session.Secret, cfg.Observability.ServiceName, ttl)
		logger.Info("Using cookie session backend")
		return session.NewCookieBackend(tokens, options), func() {}
	}
}
