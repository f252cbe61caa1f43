package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jscheck/internal/analyzer"
	"jscheck/internal/parser"
	"jscheck/internal/reporter"
)

// maxRequestBytes caps the request body; pathological payloads should
// fail fast rather than occupy the analyzer.
const maxRequestBytes = 10 << 20

// Server exposes the analysis pipeline over HTTP.
type Server struct{}

// NewServer registers the service routes on the given router.
func NewServer(router *mux.Router) *Server {
	s := &Server{}
	router.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	return s
}

type analyzeRequest struct {
	Code *string `json:"code"`
}

type analyzeResponse struct {
	Issues      []analyzer.Issue `json:"issues"`
	ParseErrors []string         `json:"parseErrors,omitempty"`
	Summary     reporter.Summary `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.Code == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required field: code"})
		return
	}

	program, parseErrors := parser.Parse(*req.Code)
	issues := analyzer.Analyze(program)
	if issues == nil {
		issues = []analyzer.Issue{}
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Issues:      issues,
		ParseErrors: parseErrors,
		Summary:     reporter.Summarize(issues),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
