package server

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encoding json response", zap.Error(err))
	}
}

type assistError struct {
	Error string `json:"error"`
}

// assistReady rejects assist calls when no API key is configured, before any
// request body parsing.
func (s *Server) assistReady(w http.ResponseWriter) bool {
	if s.assist == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, assistError{Error: "assistant not configured"})
		return false
	}
	return true
}

func decodeJSON(r *http.Request, into interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(into)
}

func (s *Server) handleAssistSchema(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w) {
		return
	}
	var req struct {
		Collection  string `json:"collection"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Collection == "" {
		s.writeJSON(w, http.StatusBadRequest, assistError{Error: "collection and description required"})
		return
	}
	def, err := s.assist.SuggestSchema(r.Context(), req.Collection, req.Description)
	if err != nil {
		s.log.Error("schema suggestion failed", zap.Error(err))
		s.writeJSON(w, http.StatusBadGateway, assistError{Error: "suggestion failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"source": def.Source(),
		"icon":   def.Icon,
	})
}

func (s *Server) handleAssistSummarize(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w) {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Text == "" {
		s.writeJSON(w, http.StatusBadRequest, assistError{Error: "text required"})
		return
	}
	summary, err := s.assist.Summarize(r.Context(), req.Text)
	if err != nil {
		s.log.Error("summarize failed", zap.Error(err))
		s.writeJSON(w, http.StatusBadGateway, assistError{Error: "summarize failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleAssistBrainstorm(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w) {
		return
	}
	var req struct {
		Topic string `json:"topic"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Topic == "" {
		s.writeJSON(w, http.StatusBadRequest, assistError{Error: "topic required"})
		return
	}
	ideas, err := s.assist.Brainstorm(r.Context(), req.Topic)
	if err != nil {
		s.log.Error("brainstorm failed", zap.Error(err))
		s.writeJSON(w, http.StatusBadGateway, assistError{Error: "brainstorm failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"ideas": ideas})
}

func (s *Server) handleAssistWrite(w http.ResponseWriter, r *http.Request) {
	if !s.assistReady(w) {
		return
	}
	var req struct {
		Instruction string `json:"instruction"`
		Draft       string `json:"draft"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Instruction == "" {
		s.writeJSON(w, http.StatusBadRequest, assistError{Error: "instruction required"})
		return
	}
	text, err := s.assist.WritingAssist(r.Context(), req.Instruction, req.Draft)
	if err != nil {
		s.log.Error("writing assist failed", zap.Error(err))
		s.writeJSON(w, http.StatusBadGateway, assistError{Error: "writing assist failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
