// Package api exposes dashboard views over HTTP and websocket.
package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/observability"
)

// Options configures the HTTP server.
type Options struct {
	// IncludeRowsLimit caps the rows attached when a client asks for them. Zero means no limit.
	IncludeRowsLimit int

	// AllowedOrigins lists CORS and websocket origins. Empty allows any origin.
	AllowedOrigins []string

	// PingInterval is the websocket keepalive period. Zero selects DefaultPingInterval.
	PingInterval time.Duration
}

// Server serves the dashboard API.
type Server struct {
	views    *dashboard.Service
	validate *validator.Validate
	logger   *zap.Logger
	opts     Options
	upgrader websocket.Upgrader
}

// NewServer creates an API server over views.
func NewServer(views *dashboard.Service, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultPingInterval
	}

	s := &Server{
		views:    views,
		validate: validator.New(),
		logger:   logger.With(zap.String("component", "api")),
		opts:     opts,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the routed handler with logging, recovery and CORS applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(instrument)
	api.HandleFunc("/filters", s.handleFilters).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/report.md", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/summary.csv", s.handleSummaryCSV).Methods(http.MethodGet)

	stdLog := zap.NewStdLog(s.logger)

	var h http.Handler = r
	h = handlers.CORS(
		handlers.AllowedOrigins(s.allowedOrigins()),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.ExposedHeaders([]string{"ETag"}),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(stdLog), handlers.PrintRecoveryStack(true))(h)
	h = handlers.CombinedLoggingHandler(stdLog.Writer(), h)
	return h
}

func (s *Server) allowedOrigins() []string {
	if len(s.opts.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return s.opts.AllowedOrigins
}

// checkOrigin applies the CORS origin list to websocket upgrades.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.allowedOrigins() {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request counts per route template.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		observability.RecordHTTPRequest(route, rec.status)
	})
}
