package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/recipeql/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// pageData feeds the single interactive page.
type pageData struct {
	Title    string
	Question string
	Answer   *inbound.Answer
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, pageData{Title: s.config.App.Name})
}

// handleQueryPage runs one question through the assistant and re-renders the
// page with whichever outcome path was taken.
func (s *Server) handleQueryPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	question := strings.TrimSpace(r.FormValue("q"))
	data := pageData{Title: s.config.App.Name, Question: question}
	if question != "" {
		data.Answer = s.assistant.Ask(r.Context(), question)
	}

	s.renderPage(w, data)
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("Failed to render page", zap.Error(err))
	}
}

type queryRequest struct {
	Question string `json:"question"`
}

// handleQueryAPI is the JSON counterpart of the page form.
func (s *Server) handleQueryAPI(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	answer := s.assistant.Ask(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, answer)
}

// handleHealth reports dataset size and completion-service reachability.
// The service stays "degraded", not down, when the model is unreachable: the
// fallback paths still answer.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	aiStatus := "ok"
	if err := s.completions.HealthCheck(r.Context()); err != nil {
		status = "degraded"
		aiStatus = err.Error()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       status,
		"dataset_rows": s.dataset.Len(),
		"ai":           aiStatus,
		"version":      s.config.App.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
