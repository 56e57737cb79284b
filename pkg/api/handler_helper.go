package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/carbonloop/metallca/pkg/graph"
	"github.com/carbonloop/metallca/pkg/logging"
	"github.com/carbonloop/metallca/pkg/routes"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondEngineError maps engine failures onto status codes: validation
// failures are the caller's to fix, unknown process ids are 404-equivalent,
// and integrity errors are internal bugs whose details stay in the logs.
func (s *Server) respondEngineError(w http.ResponseWriter, operation string, err error) {
	var verr *routes.ValidationError
	switch {
	case errors.As(err, &verr):
		s.respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, graph.ErrProcessNotFound):
		s.respondError(w, http.StatusNotFound, "Process graph not found")
	default:
		s.logger.Error(operation+" failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("%s failed", operation))
	}
}

// requestDecoder decodes and validates request bodies.
// It provides a fluent interface for common request handling patterns.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// NewRequestDecoder creates a new request decoder for the given request.
func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{r: r, w: w, server: s}
}

// DecodeJSON decodes the request body into the provided struct.
// Returns the decoder for chaining.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := json.NewDecoder(rd.r.Body).Decode(v); err != nil {
		rd.err = fmt.Errorf("invalid request body: %w", err)
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// ParseRoute resolves the request's process_route field.
// Returns the decoder for chaining; the parsed route is written to out.
func (rd *requestDecoder) ParseRoute(raw string, out *routes.Route) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	route, err := routes.ParseRoute(raw)
	if err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
		return rd
	}
	*out = route
	return rd
}

// ValidateParams validates the build parameter set.
// Returns the decoder for chaining.
func (rd *requestDecoder) ValidateParams(p *routes.Params) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := p.Validate(); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// RespondError sends the error response and returns true if there was an error.
// Returns false if no error occurred.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// extractProcessID pulls the trailing process_id path segment after prefix.
// On failure it writes the error response and returns false.
func (s *Server) extractProcessID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) {
		s.respondError(w, http.StatusBadRequest, "Invalid path")
		return "", false
	}
	id := strings.TrimSuffix(path[len(prefix):], "/")
	if id == "" || strings.Contains(id, "/") {
		s.respondError(w, http.StatusBadRequest, "Invalid process id")
		return "", false
	}
	return id, true
}

// methodRouter routes requests based on HTTP method.
// Provides a cleaner alternative to switch statements for method routing.
type methodRouter struct {
	w       http.ResponseWriter
	r       *http.Request
	server  *Server
	handled bool
}

// NewMethodRouter creates a new method router.
func (s *Server) NewMethodRouter(w http.ResponseWriter, r *http.Request) *methodRouter {
	return &methodRouter{w: w, r: r, server: s}
}

// Get handles GET requests with the provided handler.
func (mr *methodRouter) Get(handler func()) *methodRouter {
	if !mr.handled && mr.r.Method == http.MethodGet {
		handler()
		mr.handled = true
	}
	return mr
}

// Post handles POST requests with the provided handler.
func (mr *methodRouter) Post(handler func()) *methodRouter {
	if !mr.handled && mr.r.Method == http.MethodPost {
		handler()
		mr.handled = true
	}
	return mr
}

// NotAllowed sends a 405 response if no method matched.
func (mr *methodRouter) NotAllowed() {
	if !mr.handled {
		mr.server.respondError(mr.w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
