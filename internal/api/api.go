// Package api implements the strukto HTTP API.
//
// The API exposes the same pipeline the CLI uses, so a shared cache
// (redis) makes results interchangeable between the two. Endpoints:
//
//	GET  /healthz          liveness probe
//	POST /v1/layout        compute the layout tree for one method
//	POST /v1/render        render one artifact (svg, png, pdf, json)
//
// Both POST endpoints take the raw control-flow document as the request
// body and select the method, theme and format via query parameters.
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strukto/strukto/pkg/errors"
	"github.com/strukto/strukto/pkg/pipeline"
)

// maxDocumentSize caps request bodies at 4 MiB. Parsed documents for a
// single type are far smaller in practice.
const maxDocumentSize = 4 << 20

// Server handles HTTP requests for the structogram pipeline.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates the API handler with all routes and middleware attached.
func New(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	return r
}

// handleHealth implements the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// layoutResponse is the body returned by POST /v1/layout.
type layoutResponse struct {
	Diagram json.RawMessage `json:"diagram"`
	Method  string          `json:"method"`
	DocHash string          `json:"docHash"`
	Cached  bool            `json:"cached"`
}

// handleLayout computes the layout tree for one method and returns it
// as JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	raw, err := readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Method:  r.URL.Query().Get("method"),
		Formats: []string{pipeline.FormatJSON},
	}
	result, err := s.runner.Execute(r.Context(), raw, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Diagram: result.Artifacts[pipeline.FormatJSON],
		Method:  result.Diagram.Title,
		DocHash: result.DocHash,
		Cached:  result.CacheInfo.LayoutHit,
	})
}

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// handleRender renders a single artifact and returns it with the
// matching content type.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	raw, err := readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := pipeline.Options{
		Method:  q.Get("method"),
		Theme:   q.Get("theme"),
		Formats: []string{format},
	}
	result, err := s.runner.Execute(r.Context(), raw, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// readDocument reads the request body with the size cap applied.
func readDocument(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read request body")
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "empty request body")
	}
	if len(raw) > maxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document exceeds %d bytes", maxDocumentSize)
	}
	return raw, nil
}

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps a pipeline error to an HTTP status and JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "error", err)
	}

	var body errorResponse
	body.Error.Code = string(code)
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidTheme:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeMethodNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
