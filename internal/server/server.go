package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/LuckBot_Go/internal/handler"
	"github.com/osse101/LuckBot_Go/internal/logger"
	"github.com/osse101/LuckBot_Go/internal/metrics"
)

// Deps are the services the ops surface reads from
type Deps struct {
	Economy  handler.EconomyReader
	Recipes  handler.RecipeReader
	Sessions handler.SessionLister
	Checkers map[string]handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the HTTP ops surface. The /api/v1 group is only mounted when apiKey is set.
func NewServer(port int, apiKey string, trustedProxies []string, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter wires middleware and routes
func NewRouter(apiKey string, trustedProxies []string, deps Deps) http.Handler {
	r := chi.NewRouter()
	proxies := ParseTrustedProxies(trustedProxies)
	guard := NewClientGuard(RequestsPerSecond, RequestBurst)

	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware)
	r.Use(RateLimitMiddleware(proxies, guard))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Checkers))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	if apiKey == "" {
		slog.Warn(LogMsgAPIDisabled)
		return r
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(apiKey, proxies, guard))

		r.Get("/stats", handler.HandleGetStats(deps.Economy, deps.Sessions))
		r.Get("/ranking", handler.HandleGetRanking(deps.Economy))

		r.Route("/users/{"+handler.ParamUserID+"}", func(r chi.Router) {
			r.Get("/status", handler.HandleGetStatus(deps.Economy))
			r.Get("/items", handler.HandleGetItems(deps.Economy))
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/potions", handler.HandleGetPotionRecipes(deps.Recipes))
			r.Get("/{"+handler.ParamItem+"}", handler.HandleGetRecipe(deps.Recipes))
		})

		r.Get("/autoroll/sessions", handler.HandleGetSessions(deps.Sessions))
	})

	return r
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func redactedHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range []string{HeaderAPIKey, HeaderAuthorization} {
		if out.Get(k) != "" {
			out.Set(k, RedactedValue)
		}
	}
	return out
}

// loggingMiddleware tags the request with an id (echoed in X-Request-ID) and
// logs one line per completed request
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		id := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)
		w.Header().Set(HeaderRequestID, id)

		log.Debug(LogMsgRequestHeaders, "headers", redactedHeaders(r.Header))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"user_agent", r.UserAgent())
	})
}

// Start serves until Stop is called. http.ErrServerClosed is returned after a clean stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
