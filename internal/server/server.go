// Package server is the thin HTTP shell over the translation pipeline.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/threatlingo/threatlingo/internal/classify"
	"github.com/threatlingo/threatlingo/internal/extract"
	"github.com/threatlingo/threatlingo/internal/oracle"
	"github.com/threatlingo/threatlingo/internal/pipeline"
	"github.com/threatlingo/threatlingo/internal/schema"
)

// Server exposes the pipeline over HTTP.
type Server struct {
	mux        *http.ServeMux
	translator *pipeline.Translator
	log        *zap.Logger
}

// New creates a server with all routes registered. A nil logger is replaced
// with a no-op one.
func New(tr *pipeline.Translator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		mux:        http.NewServeMux(),
		translator: tr,
		log:        log,
	}

	s.mux.HandleFunc("/query", s.handleQuery)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.mux }

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

type queryRequest struct {
	Query string `json:"query"`
	// Category optionally overrides classification
	// ("FILE", "URL", "DOMAIN", "IP", "COLLECTION").
	Category string `json:"category,omitempty"`
}

type queryResponse struct {
	// FormattedQuery is the structured query object, or the raw literal on
	// the fast path.
	FormattedQuery any    `json:"formatted_query"`
	VTFormat       string `json:"vt_format"`
	Category       string `json:"category"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// CORS is wide open: the service fronts a browser UI.
func allowCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	log := s.log.With(zap.String("request_id", uuid.NewString()))

	var reqBody queryRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid JSON body")
		return
	}
	if reqBody.Query == "" {
		writeError(w, http.StatusBadRequest, "missing_query", "query must be set")
		return
	}

	res, err := s.translator.Translate(r.Context(), reqBody.Query, reqBody.Category)
	if err != nil {
		s.writeTranslateError(w, log, err)
		return
	}

	resp := queryResponse{
		VTFormat: res.Compiled,
		Category: res.Category,
	}
	if res.Structured != nil {
		resp.FormattedQuery = res.Structured
	} else {
		resp.FormattedQuery = res.Literal
	}

	log.Info("query handled", zap.String("category", res.Category))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to write response", zap.Error(err))
	}
}

// writeTranslateError maps every pipeline failure to a structured payload;
// no stack or raw error shape ever reaches the client.
func (s *Server) writeTranslateError(w http.ResponseWriter, log *zap.Logger, err error) {
	var xerr *extract.Error

	switch {
	case errors.Is(err, pipeline.ErrNotSecurityQuery):
		writeError(w, http.StatusUnprocessableEntity, "not_security_query",
			"Mmmm... Are you sure you're asking about malware?")
	case errors.Is(err, schema.ErrUnsupportedCategory):
		writeError(w, http.StatusBadRequest, "unsupported_category",
			"this category cannot be translated")
	case errors.Is(err, schema.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "unknown_category",
			"category must be one of FILE, URL, DOMAIN, IP, COLLECTION")
	case errors.Is(err, classify.ErrClassificationFailed):
		writeError(w, http.StatusUnprocessableEntity, "classification_failed",
			"could not classify the query, try rephrasing it")
	case errors.As(err, &xerr):
		log.Warn("extraction failed",
			zap.String("kind", xerr.Kind.String()),
			zap.String("oracle_response", xerr.Raw))
		writeError(w, http.StatusUnprocessableEntity, "extraction_failed",
			"could not extract a structured query, try rephrasing it")
	case oracle.IsUnavailable(err):
		log.Error("oracle unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "oracle_unavailable",
			"the language model backend is unavailable")
	default:
		log.Error("translation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error",
			"internal error")
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Kind: kind, Message: message}})
}
