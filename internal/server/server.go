// Package server exposes the dictionary over a JSON API and HTML fragments.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/html"

	"github.com/at-ishikawa/rechnik/internal/config"
	"github.com/at-ishikawa/rechnik/internal/dictionary"
	"github.com/at-ishikawa/rechnik/internal/metrics"
	"github.com/at-ishikawa/rechnik/internal/preference"
)

// Server serves the current dictionary snapshot and the display preferences.
type Server struct {
	router      *chi.Mux
	store       *dictionary.Store
	source      dictionary.Source
	preferences preference.Repository
	metrics     *metrics.Metrics
	formURL     string
	origins     []string
	logger      *slog.Logger
}

// New constructs a Server and registers its routes.
func New(
	cfg *config.Config,
	store *dictionary.Store,
	source dictionary.Source,
	preferences preference.Repository,
	m *metrics.Metrics,
) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		store:       store,
		source:      source,
		preferences: preferences,
		metrics:     m,
		formURL:     cfg.Suggestion.FormURL,
		origins:     cfg.Server.CORS.AllowedOrigins,
		logger:      slog.Default(),
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	s.router.Use(s.observe)
	s.router.Use(s.cors)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"entries":  s.store.Snapshot().Len(),
			"language": s.store.Language().String(),
		})
	})
	s.router.Method(http.MethodGet, "/metrics", m.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/random", s.handleRandom)
		r.Get("/search", s.handleSearch)
		r.Get("/words", s.handleWords)
		r.Post("/reload", s.handleReload)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/preferences/theme", s.handleGetTheme)
		r.Put("/preferences/theme", s.handlePutTheme)
		r.Post("/preferences/theme/toggle", s.handleToggleTheme)
	})

	s.router.Route("/fragments", func(r chi.Router) {
		r.Get("/random", s.handleRandomFragment)
		r.Get("/search", s.handleSearchFragment)
		r.Get("/words", s.handleWordsFragment)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reload ingests the source again and records the outcome.
func (s *Server) Reload(ctx context.Context) (dictionary.Report, error) {
	report, err := s.store.Ingest(ctx, s.source)
	s.metrics.ObserveIngestion(report, s.store.Snapshot().Len(), err)
	return report, err
}

// ------------------------------ middleware ---------------------------------

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(started)
		s.metrics.ObserveRequest(r.Method, route, status, elapsed)
		s.logger.Debug("request served",
			"method", r.Method,
			"route", route,
			"status", status,
			"elapsed", elapsed,
			"request_id", chimw.GetReqID(r.Context()))
	})
}

// cors allows the configured origins. "*" allows any origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(s.origins, origin) || slices.Contains(s.origins, "*")) {
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- API ---------------------------------------

type searchResponse struct {
	Query   string             `json:"query"`
	Results []dictionary.Entry `json:"results"`
}

type wordsResponse struct {
	Entries []dictionary.Entry `json:"entries"`
}

type reloadResponse struct {
	Rows       int     `json:"rows"`
	Accepted   int     `json:"accepted"`
	Dropped    int     `json:"dropped"`
	DurationMS float64 `json:"duration_ms"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme preference.Theme `json:"theme"`
}

type suggestResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.store.RandomEntry()
	if !ok {
		writeError(w, http.StatusNotFound, "no_entries")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) search(query string) []dictionary.Entry {
	results := s.store.Search(query)
	s.metrics.ObserveSearch(strings.TrimSpace(query), len(results))
	return results
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: s.search(query),
	})
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wordsResponse{Entries: s.store.ListAll()})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	report, err := s.Reload(r.Context())
	switch {
	case errors.Is(err, dictionary.ErrMalformedPayload):
		writeErrorMessage(w, http.StatusUnprocessableEntity, "malformed_payload", err)
		return
	case err != nil:
		writeErrorMessage(w, http.StatusBadGateway, "source_unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Rows:       report.Rows,
		Accepted:   report.Accepted,
		Dropped:    report.Dropped,
		DurationMS: float64(report.Duration.Microseconds()) / 1000,
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if s.formURL == "" {
		writeError(w, http.StatusNotFound, "not_configured")
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{URL: s.formURL})
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.preferences.Theme(r.Context())
	if err != nil {
		s.logger.Error("failed to read the theme", "error", err)
		writeError(w, http.StatusInternalServerError, "preferences_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	theme, err := preference.ParseTheme(req.Theme)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid_theme", err)
		return
	}
	if err := s.preferences.SetTheme(r.Context(), theme); err != nil {
		s.logger.Error("failed to save the theme", "error", err, "theme", theme)
		writeError(w, http.StatusInternalServerError, "preferences_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := preference.Toggle(r.Context(), s.preferences)
	if err != nil {
		s.logger.Error("failed to toggle the theme", "error", err)
		writeError(w, http.StatusInternalServerError, "preferences_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

// ----------------------------- fragments -----------------------------------

func (s *Server) handleRandomFragment(w http.ResponseWriter, r *http.Request) {
	s.writeFragment(w, randomFragment(s.store.RandomEntry()))
}

func (s *Server) handleSearchFragment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		s.writeFragment(w, nil)
		return
	}
	s.writeFragment(w, resultsFragment(s.search(query)))
}

func (s *Server) handleWordsFragment(w http.ResponseWriter, r *http.Request) {
	s.writeFragment(w, wordsFragment(s.store.ListAll()))
}

func (s *Server) writeFragment(w http.ResponseWriter, nodes []*html.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := renderFragment(w, nodes); err != nil {
		s.logger.Error("failed to render a fragment", "error", err)
	}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to encode a response", "error", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

func writeErrorMessage(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}
