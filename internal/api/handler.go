package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmussaku/mongodb-etl-poc/internal/healthcheck"
	"github.com/dmussaku/mongodb-etl-poc/internal/screen"
	"github.com/dmussaku/mongodb-etl-poc/internal/service"
	"github.com/dmussaku/mongodb-etl-poc/internal/transport"
)

// ReadinessChecker reports whether the backend can serve the screens
type ReadinessChecker interface {
	Check(ctx context.Context) healthcheck.Report
}

// Handler holds the HTTP handlers and dependencies
type Handler struct {
	service        service.ConsoleService
	readiness      ReadinessChecker
	logger         *slog.Logger
	basePath       string
	allowedOrigins []string
}

// NewHandler creates a new HTTP handler
func NewHandler(service service.ConsoleService, readiness ReadinessChecker, basePath string, allowedOrigins []string, logger *slog.Logger) *Handler {
	return &Handler{
		service:        service,
		readiness:      readiness,
		logger:         logger,
		basePath:       basePath,
		allowedOrigins: allowedOrigins,
	}
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Create routes handler
	routesHandler := h.createRoutes()

	// If base path is configured, mount routes on that path
	if h.basePath != "" {
		r.Mount(h.basePath, routesHandler)
	} else {
		r.Mount("/", routesHandler)
	}

	return r
}

// createRoutes creates the shell API routes
func (h *Handler) createRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/navigate", h.Navigate)

		r.Get("/view", h.GetView)
		r.Post("/view/refresh", h.RefreshView)
		r.Post("/view/run", h.RunViewJob)

		r.Post("/jobs/{id}/run", h.TriggerJobRun)

		r.Delete("/notices/{id}", h.DismissNotice)

		r.Get("/ws", h.StreamView)
	})

	return r
}

// loggingMiddleware logs HTTP requests
func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		next.ServeHTTP(w, r)
	})
}

// errorResponse represents an error response
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// respondError writes an error response
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	h.respondJSON(w, r, statusCode, errorResponse{Error: message})
}

// respondActionError maps an action failure onto a status code
func (h *Handler) respondActionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, screen.ErrJobInactive):
		h.respondError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, screen.ErrJobUnavailable):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoticeNotFound):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoScreen):
		h.respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		if _, ok := transport.AsError(err); ok {
			h.respondError(w, r, http.StatusBadGateway, err.Error())
			return
		}
		h.logger.Error("action failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "internal error")
	}
}
