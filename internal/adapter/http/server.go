package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/couchcryptid/climate-normals-api/internal/dataset"
	"github.com/couchcryptid/climate-normals-api/internal/domain"
	"github.com/couchcryptid/climate-normals-api/internal/observability"
	"github.com/couchcryptid/climate-normals-api/internal/query"
)

// ClimateQuerier answers daily climate queries.
type ClimateQuerier interface {
	Records(f query.ClimateFilter) ([]domain.ClimateRecord, error)
	Stats(column string) (domain.Stats, error)
	Columns() []string
}

// RainfallQuerier answers rainfall normal queries.
type RainfallQuerier interface {
	States() []string
	Districts(state string) ([]string, error)
	Rainfall(state, district, month string) (query.RainfallReading, error)
	Probability(state, district, month string, threshold float64) (query.MonthProbability, error)
	RangeProbability(state, district, startMonth, endMonth string, threshold float64) (query.RangeProbability, error)
	Monthly(state, district string) (query.MonthlyNormals, error)
}

// Catalog describes the loaded datasets.
type Catalog interface {
	Info() []dataset.Info
}

// Deps are the collaborators a Server routes requests to.
type Deps struct {
	Ready    sharedobs.ReadinessChecker
	Catalog  Catalog
	Climate  ClimateQuerier
	Rainfall RainfallQuerier
	Logger   *slog.Logger
	Metrics  *observability.Metrics

	// AllowedOrigins configures CORS. Empty allows any origin.
	AllowedOrigins []string
	// Clock times requests; nil uses the real clock.
	Clock clockwork.Clock
}

// Server exposes the query API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock

	climate  ClimateQuerier
	rainfall RainfallQuerier
	catalog  Catalog
}

// NewServer creates an HTTP server with the query routes and /healthz, /readyz, /metrics.
func NewServer(addr string, deps Deps) *Server {
	router := mux.NewRouter()

	s := &Server{
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		clock:    deps.Clock,
		climate:  deps.Climate,
		rainfall: deps.Rainfall,
		catalog:  deps.Catalog,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}

	router.Use(markRoute)

	get := func(path string, h http.HandlerFunc) {
		router.HandleFunc(path, h).Methods(http.MethodGet)
	}
	get("/climate", s.handleClimate)
	get("/stats", s.handleStats)
	get("/columns", s.handleColumns)
	get("/states", s.handleStates)
	get("/districts", s.handleDistricts)
	get("/rainfall", s.handleRainfall)
	get("/rainfall_probability", s.handleRainfallProbability)
	get("/rainfall_range_probability", s.handleRainfallRangeProbability)
	get("/rainfall_monthly", s.handleRainfallMonthly)
	get("/datasets", s.handleDatasets)

	get("/healthz", sharedobs.LivenessHandler())
	get("/readyz", sharedobs.ReadinessHandler(deps.Ready))
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(s.requestID(s.observe(s.recoverPanic(router))))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
