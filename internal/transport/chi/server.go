package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/metrics"
	healthuc "github.com/mahendramedapati27/unimatch/internal/usecase/health"
	"github.com/mahendramedapati27/unimatch/internal/usecase/pipeline"
	"github.com/mahendramedapati27/unimatch/internal/usecase/search"
)

const maxBodyBytes = 1 << 20

// Recommender runs the full recommendation pipeline.
type Recommender interface {
	Run(ctx context.Context, in domain.ProfileInput) pipeline.Output
}

// Searcher runs the relaxation search alone.
type Searcher interface {
	Search(ctx context.Context, p domain.Profile) search.Result
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the unimatch HTTP API.
type Server struct {
	recommender Recommender
	search      Searcher
	health      HealthChecker
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(recommender Recommender, search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{recommender: recommender, search: search, health: health, logger: logger}
}

// Router builds the chi router with the middleware chain.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLog(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/recommendations", s.Recommend)
		r.Post("/search", s.Search)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
	return r
}

// Recommend handles POST /v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	out := s.recommender.Run(r.Context(), in)
	setUsageHeaders(w, out.Diagnostics.Usage)
	writeJSON(w, http.StatusOK, out)
}

// SearchResponse is the body of POST /v1/search.
type SearchResponse struct {
	Profile domain.Profile `json:"profile"`
	search.Result
}

// Search handles POST /v1/search: the relaxation search without ranking.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	p := domain.NewProfile(in)
	ctx, usage := domain.NewContextWithUsage(r.Context())
	res := s.search.Search(ctx, p)
	if res.Matches == nil {
		res.Matches = []domain.MatchResult{}
	}
	setUsageHeaders(w, *usage)
	writeJSON(w, http.StatusOK, SearchResponse{Profile: p, Result: res})
}

func setUsageHeaders(w http.ResponseWriter, u domain.Usage) {
	if u.EmbeddingCalls > 0 {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(u.EmbeddingTokens))
	}
	if u.GenerationCalls > 0 {
		w.Header().Set("X-Generation-Tokens", strconv.Itoa(u.GenerationTokens))
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func decodeProfile(w http.ResponseWriter, r *http.Request) (domain.ProfileInput, bool) {
	var in domain.ProfileInput
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in)
	switch {
	case err == nil:
		return in, true
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "request body is empty")
	default:
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
	}
	return domain.ProfileInput{}, false
}
