package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fancyqr/fancyqr/builder"
	"github.com/fancyqr/fancyqr/generator"
	"github.com/fancyqr/fancyqr/render"
)

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	Generator *generator.Generator
	Defaults  builder.FormState
	Level     render.Level // used by the unstyled preview
	Log       *slog.Logger
	Version   string
	StartTime time.Time
}

// NewRouter returns a fully configured chi router with all routes.
func NewRouter(s *Server) http.Handler {
	if s.Log == nil {
		s.Log = slog.Default()
	}
	if s.StartTime.IsZero() {
		s.StartTime = time.Now()
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Log))

	// Form UI
	r.Get("/", s.handleForm)
	r.Post("/", s.handleFormSubmit)

	// JSON API
	r.Post("/api/generate", s.handleGenerate)
	r.Get("/status", s.handleStatus)

	// Images
	r.Get("/preview.png", s.handlePreview)
	r.Get("/"+filepath.Base(s.Generator.Output()), s.handleOutput)

	return r
}

// --- helpers ----------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps a generation outcome onto an HTTP status code.
func statusFor(res generator.Result) int {
	switch {
	case res.Err == nil:
		return http.StatusOK
	case errors.Is(res.Err, builder.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	case errors.Is(res.Err, builder.ErrInvalidColor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// --- middleware --------------------------------------------------------------

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
			next.ServeHTTP(w, r)
		})
	}
}
