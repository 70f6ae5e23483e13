// Package api serves the resonance engine over HTTP.
// Compute endpoints are public and rate limited per IP. History is scoped to
// a session cookie. Purging every session requires the admin bearer token.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talgya/quantum-gematria/internal/chart"
	"github.com/talgya/quantum-gematria/internal/config"
	"github.com/talgya/quantum-gematria/internal/engine"
	"github.com/talgya/quantum-gematria/internal/gematria"
	"github.com/talgya/quantum-gematria/internal/metrics"
	"github.com/talgya/quantum-gematria/internal/persistence"
	"github.com/talgya/quantum-gematria/internal/phi"
)

// SessionCookie names the cookie that scopes history.
const SessionCookie = "qhg_session"

const maxBodyBytes = 1 << 20

// Server serves the engine over HTTP.
type Server struct {
	Engine   *engine.Engine
	DB       *persistence.DB // nil disables history
	Config   *config.Config
	Metrics  *metrics.Metrics    // nil records nothing
	Gatherer prometheus.Gatherer // nil disables /metrics
	Version  string

	limiter *RateLimiter
	once    sync.Once
	handler http.Handler
}

// NewServer wires a server from its parts.
func NewServer(cfg *config.Config, eng *engine.Engine, db *persistence.DB, m *metrics.Metrics, g prometheus.Gatherer) *Server {
	return &Server{
		Engine:   eng,
		DB:       db,
		Config:   cfg,
		Metrics:  m,
		Gatherer: g,
		Version:  "dev",
		limiter:  NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}
}

// Handler returns the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	s.once.Do(func() {
		mux := http.NewServeMux()

		mux.HandleFunc("GET /api/v1/status", s.handleStatus)
		mux.HandleFunc("GET /api/v1/schemes", s.handleSchemes)
		mux.HandleFunc("GET /api/v1/constants", s.handleConstants)

		mux.HandleFunc("POST /api/v1/analyze", s.rateLimited("/api/v1/analyze", s.handleAnalyze))
		mux.HandleFunc("POST /api/v1/analyze/batch", s.rateLimited("/api/v1/analyze/batch", s.handleBatch))
		mux.HandleFunc("POST /api/v1/compare", s.rateLimited("/api/v1/compare", s.handleCompare))
		mux.HandleFunc("POST /api/v1/chart", s.rateLimited("/api/v1/chart", s.handleChart))

		mux.HandleFunc("GET /api/v1/history", s.handleHistory)
		mux.HandleFunc("POST /api/v1/history/clear", s.handleClearHistory)
		mux.HandleFunc("POST /api/v1/history/purge", s.adminOnly(s.handlePurge))

		if s.Gatherer != nil {
			mux.Handle("GET /metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
		}

		s.handler = corsMiddleware(s.Config.Server.CORSOrigins, mux)
	})
	return s.handler
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	if s.limiter != nil {
		go s.limiter.RunCleanup(cleanupCtx, time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API starting", "addr", srv.Addr, "admin_auth", s.Config.Server.AdminKey != "", "history", s.DB != nil)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("HTTP API stopped")
	return nil
}

// corsMiddleware adds CORS headers for allowed frontend origins. A "*" entry
// allows any origin.
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.Config.Server.AdminKey)) == 1
}

// adminOnly wraps a handler to require bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Config.Server.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no QHG_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// session returns the caller's session id, issuing a new cookie when the
// request carries none or a malformed one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	t := s.Engine.Table()
	writeJSON(w, map[string]any{
		"name":           "Quantum Hermetic Gematria",
		"version":        s.Version,
		"default_scheme": gematria.DefaultScheme.String(),
		"schemes":        gematria.SchemeNames(),
		"history":        s.DB != nil,
		"history_limit":  s.Config.Storage.HistoryLimit,
		"thresholds": map[string]float64{
			"resonance":    t.ResonanceThreshold,
			"synergy":      t.SynergyThreshold,
			"interference": t.InterferenceThreshold,
		},
	})
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"default": gematria.DefaultScheme.String(),
		"schemes": gematria.SchemeNames(),
	})
}

func (s *Server) handleConstants(w http.ResponseWriter, r *http.Request) {
	t := s.Engine.Table()

	principles := make(map[string]float64, phi.NumPrinciples)
	for p := phi.Principle(0); p < phi.NumPrinciples; p++ {
		principles[p.String()] = t.Principle(p)
	}
	archetypes := make(map[string]float64, phi.NumArchetypes)
	for a := phi.Archetype(0); a < phi.NumArchetypes; a++ {
		archetypes[a.String()] = t.Archetype(a)
	}

	writeJSON(w, map[string]any{
		"scalars":                t.Scalars(),
		"hermetic_principles":    principles,
		"archetypal_frequencies": archetypes,
		"fibonacci":              t.Fibonacci,
		"primes":                 t.Primes,
		"platonic_angles":        t.PlatonicAngles,
		"egyptian_technology":    t.EgyptianTech,
		"modern_equivalents":     t.ModernEquivalents,
		"relationship_patterns":  t.RelationshipPatterns,
		"alignment_metrics":      t.AlignmentMetrics,
		"thresholds": map[string]float64{
			"resonance":    t.ResonanceThreshold,
			"synergy":      t.SynergyThreshold,
			"interference": t.InterferenceThreshold,
		},
	})
}

type textRequest struct {
	Text   string `json:"text"`
	Scheme string `json:"scheme"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, ok := s.analyze(w, req)
	if !ok {
		return
	}

	if s.DB != nil {
		session := s.session(w, r)
		_, err := s.DB.SaveAnalysis(r.Context(), session, a)
		s.Metrics.HistoryWrite("analysis", err)
		if err != nil {
			slog.Warn("history write failed", "kind", "analysis", "error", err)
		} else {
			s.trim(r.Context(), session)
		}
	}

	writeJSON(w, a)
}

func (s *Server) analyze(w http.ResponseWriter, req textRequest) (*engine.Analysis, bool) {
	start := time.Now()
	a, err := s.Engine.AnalyzeName(req.Text, req.Scheme)
	scheme := req.Scheme
	if scheme == "" {
		scheme = gematria.DefaultScheme.String()
	}
	patterns := 0
	if a != nil {
		patterns = len(a.QuantumPatterns)
	}
	s.Metrics.ObserveAnalysis(scheme, patterns, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gematria.ErrUnknownScheme) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		slog.Error("analyze failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return a, true
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts  []string `json:"texts"`
		Scheme string   `json:"scheme"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Texts) == 0 {
		http.Error(w, "texts required", http.StatusBadRequest)
		return
	}
	if len(req.Texts) > s.Config.Batch.MaxTexts {
		http.Error(w, "too many texts", http.StatusBadRequest)
		return
	}
	scheme, err := gematria.ParseScheme(req.Scheme)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	results, err := s.Engine.AnalyzeBatch(r.Context(), req.Texts, scheme)
	s.Metrics.ObserveOperation("analyze_batch", time.Since(start))
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		slog.Error("batch analyze failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"results": results})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phrase1 string `json:"phrase1"`
		Phrase2 string `json:"phrase2"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	start := time.Now()
	c, err := s.Engine.Compare(req.Phrase1, req.Phrase2)
	s.Metrics.ObserveComparison(time.Since(start), err)
	if err != nil {
		slog.Error("compare failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if s.DB != nil {
		session := s.session(w, r)
		_, err := s.DB.SaveComparison(r.Context(), session, req.Phrase1, req.Phrase2, c)
		s.Metrics.HistoryWrite("comparison", err)
		if err != nil {
			slog.Warn("history write failed", "kind", "comparison", "error", err)
		} else {
			s.trim(r.Context(), session)
		}
	}

	writeJSON(w, c)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, ok := s.analyze(w, req)
	if !ok {
		return
	}
	start := time.Now()
	c := chart.Build(a)
	s.Metrics.ObserveOperation("chart", time.Since(start))
	writeJSON(w, c)
}

func (s *Server) trim(ctx context.Context, session string) {
	if _, err := s.DB.Trim(ctx, session, s.Config.Storage.HistoryLimit); err != nil {
		slog.Warn("history trim failed", "session", session, "error", err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, map[string]any{
			"analyses":    []persistence.AnalysisEntry{},
			"comparisons": []persistence.ComparisonEntry{},
		})
		return
	}

	session := s.session(w, r)
	limit := s.Config.Storage.HistoryLimit

	analyses, err := s.DB.RecentAnalyses(r.Context(), session, limit)
	if err != nil {
		slog.Error("history read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	comparisons, err := s.DB.RecentComparisons(r.Context(), session, limit)
	if err != nil {
		slog.Error("history read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"analyses":    analyses,
		"comparisons": comparisons,
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.Clear(r.Context(), s.session(w, r)); err != nil {
			slog.Error("history clear failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, map[string]string{"status": "success"})
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "history disabled", http.StatusServiceUnavailable)
		return
	}
	if err := s.DB.Clear(r.Context(), ""); err != nil {
		slog.Error("history purge failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	slog.Info("history purged")
	writeJSON(w, map[string]string{"status": "success"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
