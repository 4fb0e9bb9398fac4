package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appanalyses "github.com/bryanwahyu/textlens/internal/application/analyses"
	domai "github.com/bryanwahyu/textlens/internal/domain/ai"
	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
	"github.com/bryanwahyu/textlens/internal/middleware"
)

type Router struct {
	svc    *appanalyses.Service
	logger *zap.Logger
}

// NewRouter wires the analysis endpoints. health may be nil, in which case a
// plain liveness response is served.
func NewRouter(svc *appanalyses.Service, logger *zap.Logger, health http.HandlerFunc) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{svc: svc, logger: logger}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	mux.Use(middleware.Logging(logger))
	mux.Use(middleware.Metrics())

	if health == nil {
		health = func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("ok"))
		}
	}
	mux.Get("/health", health)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/search", r.wrap(r.handleSearch))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps domain errors to status codes and renders the JSON error
// envelope. Validation problems carry their own message; everything else is
// reported generically with the cause in details.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case domain.IsValidation(err):
			writeError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded", err.Error())
		case domai.IsCapability(err):
			r.logger.Error("capability failure", zap.Error(err))
			writeError(w, http.StatusBadGateway, "failed to analyze text", err.Error())
		default:
			r.logger.Error("unexpected error", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "an unexpected error occurred", err.Error())
		}
	}
}

// POST /v1/analyze
// Body: {"text": "<raw text>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domain.Validation("invalid request body")
	}
	if err := middleware.ValidateText(body.Text); err != nil {
		return err
	}

	rec, err := r.svc.Analyze(req.Context(), body.Text)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusCreated, rec)
}

// GET /v1/analyses?limit=50
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	limit, err := middleware.ParseLimit(req.URL.Query().Get("limit"))
	if err != nil {
		return err
	}

	list, err := r.svc.Latest(req.Context(), limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}

	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/search?query=climate
func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) error {
	query := strings.TrimSpace(req.URL.Query().Get("query"))

	list, err := r.svc.Search(req.Context(), query)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}

	return writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	body := map[string]any{"error": msg}
	if details != "" {
		body["details"] = details
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
