package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the body of API errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err, message string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: message})
}

// handleDeck serves the rendered deck
func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	deck := s.Deck()
	if deck == nil {
		http.Error(w, "Deck not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(deck.HTML)
}

// handleDocument serves the structured document behind the deck
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	deck := s.Deck()
	if deck == nil || deck.Document == nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "no document loaded")
		return
	}

	writeJSON(w, http.StatusOK, deck.Document)
}

// HealthResponse is the body of /healthz
type HealthResponse struct {
	Status  string `json:"status"`
	Slides  int    `json:"slides"`
	Clients int    `json:"clients"`
	Source  string `json:"source,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "starting", Clients: s.connMgr.Count()}
	if deck := s.Deck(); deck != nil {
		resp.Status = "ok"
		resp.Source = deck.Source
		if deck.Document != nil {
			resp.Slides = deck.Document.SlideCount()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}
