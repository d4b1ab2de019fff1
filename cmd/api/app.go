package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kennel/kennel/internal/cache"
	"github.com/kennel/kennel/internal/config"
	"github.com/kennel/kennel/internal/handler"
	"github.com/kennel/kennel/internal/metrics"
	"github.com/kennel/kennel/internal/middleware"
	"github.com/kennel/kennel/internal/repository"
	"github.com/kennel/kennel/internal/server"
	"github.com/kennel/kennel/internal/service"
)

// application holds the process-scoped components built once at startup.
type application struct {
	repo   *repository.Repository
	cache  *cache.Cache // nil when REDIS_URL is unset
	router http.Handler
}

// newApplication opens the database and optional cache and wires the router.
// On error every component opened so far is closed again.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	repo, err := repository.New(ctx, repository.Options{
		Path:         cfg.DatabasePath,
		BusyTimeout:  cfg.DatabaseBusyTimeout,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
		LogSQL:       cfg.LogSQL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", cfg.DatabasePath, err)
	}
	logger.Info("opened database", "path", cfg.DatabasePath)

	app := &application{repo: repo}

	// Interfaces stay nil unless the cache is configured.
	var (
		userCache   service.UserCache
		cacheHealth handler.HealthChecker
	)
	if cfg.CacheEnabled() {
		c, err := cache.New(ctx, cfg.RedisURL, cfg.UserCacheTTL)
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %s", redactURL(cfg.RedisURL), sanitizeError(err, cfg.RedisURL))
		}
		logger.Info("connected to Redis", "redis_url", redactURL(cfg.RedisURL), "user_ttl", cfg.UserCacheTTL)
		app.cache = c
		userCache = c
		cacheHealth = c
	}

	var (
		recorder       metrics.Recorder = metrics.NewNoop()
		metricsHandler *handler.MetricsHandler
	)
	if cfg.MetricsEnabled {
		inMemory := metrics.NewInMemory()
		recorder = inMemory
		metricsHandler = handler.NewMetricsHandler(inMemory)
	}

	// Initialize services
	userService := service.NewUserService(repo, userCache, recorder, logger)
	dogService := service.NewDogService(repo, recorder)

	// Initialize handlers
	app.router = setupRouter(
		handler.New(),
		handler.NewHealthHandler(repo, cacheHealth),
		metricsHandler,
		handler.NewUserHandler(userService, logger),
		handler.NewDogHandler(dogService, logger),
		cfg,
		logger,
	)

	return app, nil
}

// registerShutdown closes the cache before the database.
func (a *application) registerShutdown(srv *server.Server) {
	srv.OnShutdown("database", func(ctx context.Context) error {
		return a.repo.Close()
	})
	if a.cache != nil {
		srv.OnShutdown("cache", func(ctx context.Context) error {
			return a.cache.Close()
		})
	}
}

// close releases components directly, for callers that never start a server.
func (a *application) close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	_ = a.repo.Close()
}

// setupRouter configures the chi router with all routes and middleware.
// metricsHandler may be nil, in which case /metrics is not mounted.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	userHandler *handler.UserHandler,
	dogHandler *handler.DogHandler,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger, cfg.IsDevelopment()))
	r.Use(middleware.Security(middleware.SecurityConfig{
		EnableHSTS: cfg.IsProduction(),
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	if metricsHandler != nil {
		r.Get("/metrics", metricsHandler.Metrics)
	}

	// Root info endpoint
	r.Get("/", h.Hello)

	// "/" inside a Route matches both /users and /users/.
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{"+handler.UserIDParam+"}", userHandler.Get)
		r.Put("/{"+handler.UserIDParam+"}", userHandler.Update)
		r.Delete("/{"+handler.UserIDParam+"}", userHandler.Delete)
	})

	r.Route("/dogs", func(r chi.Router) {
		r.Get("/", dogHandler.List)
		r.Post("/", dogHandler.Create)
	})

	// 404 and 405 handlers; set last so subrouters inherit them.
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL drops the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// sanitizeError replaces any secret URL echoed inside err with its redacted form.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
