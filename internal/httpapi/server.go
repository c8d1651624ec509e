// Package httpapi exposes a machine model as a JSON API over HTTP.
//
// The server owns one iec.Machine and provides the external
// synchronization the machine itself leaves to its caller. Composed
// transform queries populate the machine's internal cache, so they take
// the write lock like parameter updates; only handlers that read stored
// state verbatim take the read lock.
//
// # Endpoints
//
//	GET  /healthz                          liveness probe
//	GET  /api/frames                       declared frame names
//	GET  /api/edges                        declared elementary edges
//	GET  /api/edges/{name}                 one elementary transform
//	GET  /api/transform?from=&to=&beam=    composed transform
//	GET  /api/parameters                   current joint parameters
//	POST /api/parameters                   replace joint parameters
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/beamframe/beamframe/pkg/iec"
	"github.com/beamframe/beamframe/pkg/setup"
)

// Server serves the machine model API.
type Server struct {
	mu      sync.RWMutex
	machine *iec.Machine
	params  setup.Parameters
	logger  *log.Logger
}

// NewServer creates a server around a fresh machine with the given
// initial parameters applied.
func NewServer(params setup.Parameters, logger *log.Logger) *Server {
	m := iec.NewMachine()
	params.Apply(m)
	return &Server{machine: m, params: params, logger: logger}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLog)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/frames", s.handleFrames)
		r.Get("/edges", s.handleEdges)
		r.Get("/edges/{name}", s.handleEdge)
		r.Get("/transform", s.handleTransform)
		r.Get("/parameters", s.handleGetParameters)
		r.Post("/parameters", s.handlePostParameters)
	})
	return r
}

// requestLog assigns each request an ID, attaches an ID-scoped logger
// to the request context and logs method, path, status and duration.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		logger := s.logger.With("id", id)
		ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ww.Header().Set("X-Request-ID", id)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing the request-scoped logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the request-scoped logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type errorResponse struct {
	Error string `json:"error"`
}

type frameResponse struct {
	Frames []string `json:"frames"`
}

type edgeResponse struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

type matrixResponse struct {
	From   string        `json:"from"`
	To     string        `json:"to"`
	Beam   bool          `json:"beam,omitempty"`
	Matrix [4][4]float64 `json:"matrix"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFrames(w http.ResponseWriter, _ *http.Request) {
	frames := iec.Frames()
	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = f.String()
	}
	writeJSON(w, http.StatusOK, frameResponse{Frames: names})
}

func (s *Server) handleEdges(w http.ResponseWriter, _ *http.Request) {
	edges := iec.Edges()
	out := make([]edgeResponse, len(edges))
	for i, e := range edges {
		out[i] = edgeResponse{Name: e.Name(), From: e.From.String(), To: e.To.String()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, e := range iec.Edges() {
		if e.Name() != name {
			continue
		}
		s.mu.RLock()
		t, err := s.machine.ElementaryTransformBetween(e.From, e.To)
		s.mu.RUnlock()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, matrixResponse{
			From:   e.From.String(),
			To:     e.To.String(),
			Matrix: t.Rows(),
		})
		return
	}
	writeError(w, http.StatusNotFound, iec.ErrUnknownEdge)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := iec.ParseFrame(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := iec.ParseFrame(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	beam := false
	if v := q.Get("beam"); v != "" {
		if beam, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	// TransformBetween fills the machine's pair cache, so this is a write.
	s.mu.Lock()
	t, err := s.machine.TransformBetween(from, to, beam)
	s.mu.Unlock()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, iec.ErrUnknownFrame) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, matrixResponse{
		From:   from.String(),
		To:     to.String(),
		Beam:   beam,
		Matrix: t.Rows(),
	})
}

func (s *Server) handleGetParameters(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	p := s.params
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePostParameters(w http.ResponseWriter, r *http.Request) {
	p := setup.Default()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	s.params = p
	p.Apply(s.machine)
	s.mu.Unlock()

	loggerFromContext(r.Context()).Info("parameters updated",
		"gantry", p.Gantry.RotationDeg,
		"collimator", p.Collimator.RotationDeg,
		"support", p.PatientSupport.RotationDeg,
	)
	writeJSON(w, http.StatusOK, p)
}
