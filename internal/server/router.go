// Package server assembles the clinic-web gin engine: global middleware, the
// page routes and the operational endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/config"
	"github.com/madhurinidan/clinic-web/internal/handlers"
	"github.com/madhurinidan/clinic-web/internal/middleware"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/internal/views"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	formBodyLimit   = 100 * 1024
	doctorBodyLimit = 10 * 1024 * 1024
)

// Dependencies are the services the routes are built from
type Dependencies struct {
	Config       *config.Config
	Sessions     *session.Manager
	Auth         services.AuthServiceInterface
	Doctors      services.DoctorServiceInterface
	Appointments services.AppointmentServiceInterface
	Contact      services.ContactServiceInterface
	Location     *time.Location
	// DoctorCacheWarm reports whether the doctor directory has been loaded
	DoctorCacheWarm func() bool
}

// NewRouter builds the engine. Background goroutines (rate limiter cleanup)
// stop when ctx is done.
func NewRouter(ctx context.Context, deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	renderer, err := views.New(deps.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	pages := handlers.NewPages(cfg.OAuth.GoogleClientID, cfg.Session.CookieDomain, cfg.Session.CookieSecure)
	publicHandler := handlers.NewPublicHandler(pages, deps.Doctors)
	contactHandler := handlers.NewContactHandler(pages, deps.Contact)
	authHandler := handlers.NewAuthHandler(pages, deps.Auth)
	bookingHandler := handlers.NewBookingHandler(pages, deps.Doctors, deps.Appointments, deps.Location)
	accountHandler := handlers.NewAccountHandler(pages, deps.Auth)
	dashboardHandler := handlers.NewDashboardHandler(pages, deps.Appointments)
	adminHandler := handlers.NewAdminHandler(pages, deps.Doctors, deps.Appointments, deps.Contact)
	healthHandler := handlers.NewHealthHandler(deps.DoctorCacheWarm)

	router := gin.New()
	router.HTMLRender = renderer

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true, // Required for session cookies
			MaxAge:           12 * time.Hour,
		}))
	}

	// Operational endpoints are registered before the session middleware
	router.GET("/healthcheck", healthHandler.Healthcheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	router.StaticFS("/static", http.FS(views.Static()))

	// Pages
	pagesGroup := router.Group("/")
	pagesGroup.Use(middleware.SessionMiddleware(deps.Sessions))
	pagesGroup.Use(middleware.UnauthorizedPolicy())
	pagesGroup.Use(middleware.AccessGuard())

	// Rate limiters for form posts; page views are not limited
	authRateLimiter := middleware.NewRateLimiter(ctx, 0.1, 10) // 1 req/10s, burst of 10 (login abuse prevention)
	formRateLimiter := middleware.NewRateLimiter(ctx, 0.5, 10) // contact and booking spam
	adminRateLimiter := middleware.NewRateLimiter(ctx, 5, 20)

	pagesGroup.GET("/", publicHandler.Home)
	pagesGroup.GET("/about", publicHandler.About)
	pagesGroup.GET("/doctors", publicHandler.Doctors)
	pagesGroup.GET("/doctors/:slug", publicHandler.DoctorProfile)
	pagesGroup.GET("/contact", contactHandler.Show)
	pagesGroup.POST("/contact", formRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), contactHandler.Submit)

	pagesGroup.GET("/login", authHandler.LoginPage)
	pagesGroup.POST("/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), authHandler.Login)
	pagesGroup.POST("/auth/google", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), authHandler.GoogleLogin)
	pagesGroup.GET("/register", authHandler.RegisterPage)
	pagesGroup.POST("/register", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), authHandler.Register)
	pagesGroup.POST("/logout", authHandler.Logout)

	pagesGroup.GET("/book", bookingHandler.Show)
	pagesGroup.POST("/book", formRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), bookingHandler.Submit)
	pagesGroup.GET("/account", accountHandler.Show)

	pagesGroup.GET("/admin/dashboard", adminHandler.Dashboard)
	pagesGroup.POST("/admin/doctors", adminRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(doctorBodyLimit), adminHandler.CreateDoctor)
	pagesGroup.POST("/admin/doctors/:id", adminRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(doctorBodyLimit), adminHandler.UpdateDoctor)
	pagesGroup.POST("/admin/doctors/:id/delete", adminRateLimiter.Middleware(), adminHandler.DeleteDoctor)

	pagesGroup.GET("/doctor/dashboard", dashboardHandler.Doctor)
	pagesGroup.GET("/patient/dashboard", dashboardHandler.Patient)
	pagesGroup.POST("/patient/appointments/:id/cancel", formRateLimiter.Middleware(), dashboardHandler.Cancel)

	router.NoRoute(middleware.SessionMiddleware(deps.Sessions), middleware.AccessGuard(), publicHandler.NotFound)

	return router, nil
}
