package api

import (
	"encoding/json"
	"net/http"

	"github.com/ppiankov/veracity/internal/model"
)

type analyzeRequest struct {
	Text string `json:"text"`

	// SourceDomain marks the input as URL-derived: the caller (an
	// external scraper) has already extracted the article text and
	// knows the publishing domain.
	SourceDomain string `json:"source_domain,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	in := model.TextInput(req.Text)
	if req.SourceDomain != "" {
		in = model.URLInput(req.Text, req.SourceDomain)
	}

	result, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		if model.IsInputError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.log.Error("analysis failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
		return
	}

	s.history.Add(in, result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.history.List())
}

type healthResponse struct {
	Status              string `json:"status"`
	Model               string `json:"model"`
	FactCheckConfigured bool   `json:"factcheck_configured"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:              "ok",
		Model:               s.analyzer.ModelName(),
		FactCheckConfigured: s.analyzer.FactCheckConfigured(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
