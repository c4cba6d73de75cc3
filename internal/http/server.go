package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "berdoz/internal/log"
	"berdoz/internal/middleware/ratelimit"
	"berdoz/internal/middleware/security"
	"berdoz/internal/middleware/trace"
	"berdoz/internal/services"
	"berdoz/internal/storage"
	"berdoz/internal/upload"
)

// Config holds the listener and request limits of the API server.
type Config struct {
	Addr               string
	RateLimitPerMinute int
	// UploadDir is served at /upload/ when attachments are stored locally.
	// Empty disables the file server.
	UploadDir string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Deps are the services the handlers call.
type Deps struct {
	Catalog *services.Catalog
	Uploads *upload.Service
	Pinger  storage.Pinger
	Logger  *applog.Logger
}

// Server is the REST API server.
type Server struct {
	http.Server
	catalog *services.Catalog
	uploads *upload.Service
	pinger  storage.Pinger
	limiter *ratelimit.Limiter
	logger  *applog.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run
// server. Call Shutdown to release the rate limiter.
func NewServer(cfg Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = applog.New(applog.DefaultConfig())
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 60 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 120 * time.Second
	}

	s := &Server{
		catalog: deps.Catalog,
		uploads: deps.Uploads,
		pinger:  deps.Pinger,
		limiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		logger:  deps.Logger.WithComponent(applog.ComponentHTTP),
	}
	s.Server = http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) routes(cfg Config) http.Handler {
	detector := security.NewDetector(s.logger.Logger)
	tracer := trace.NewMiddleware(s.logger, detector.ExtractClientIP)

	r := chi.NewRouter()
	r.Use(metricsMiddleware)
	r.Use(tracer.Handler)
	r.Use(detector.Middleware)
	r.Use(security.Headers(security.DefaultHeadersConfig()))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	if cfg.UploadDir != "" {
		files := http.StripPrefix("/upload/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.With(security.StaticAssetMiddleware(86400)).Get("/upload/*", func(w http.ResponseWriter, r *http.Request) {
			// no directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			files.ServeHTTP(w, r)
		})
	}

	r.Group(func(r chi.Router) {
		r.Use(s.limiter.Middleware(detector.ExtractClientIP, func(w http.ResponseWriter, _ *http.Request) {
			NewJSONResponse().Status(http.StatusTooManyRequests).Write(w, errorBody{Error: "rate limit exceeded, try again later"})
		}))

		if s.catalog != nil {
			RegisterModule(r, s.catalog.BuildingExpenses)
			RegisterModule(r, s.catalog.DailyAccounts)
			RegisterModule(r, s.catalog.Installments)
			RegisterModule(r, s.catalog.Payroll)
			RegisterModule(r, s.catalog.Supervision)
			RegisterModule(r, s.catalog.Teachers)
			RegisterModule(r, s.catalog.KitchenExpenses)
			RegisterModule(r, s.catalog.MonthlyExpenses)
			RegisterModule(r, s.catalog.Calendar)

			r.Get("/api/search", s.handleSearch)
			r.Get("/api/backup", s.handleBackup)
			r.Post("/api/restore", s.handleRestore)
		}
		if s.uploads != nil {
			r.Post("/api/upload", s.handleUpload)
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		NewJSONResponse().Status(http.StatusNotFound).Write(w, errorBody{Error: "not found"})
	})
	return r
}

// Shutdown stops the rate limiter and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.Server.Shutdown(ctx)
}
