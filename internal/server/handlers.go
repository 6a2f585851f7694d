package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rcrowley/go-metrics"
)

type ProcessKeywordsRequest struct {
	Keywords   []string `json:"keywords"`
	DocumentID string   `json:"documentId"`
}

type ProcessKeywordsResponse struct {
	DocumentID string `json:"documentId"`
	Accepted   int    `json:"accepted"`
}

type ProcessTextRequest struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to project-zero-backend!"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	metrics.WriteJSONOnce(s.registry, w)
}

// handleProcessKeywords accepts a batch and processes it after responding.
// The batch outlives the request, so it runs on a context detached from it.
func (s *Server) handleProcessKeywords(w http.ResponseWriter, r *http.Request) {
	var req ProcessKeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "documentId is required")
		return
	}

	ctx := context.WithoutCancel(r.Context())
	requestID := RequestID(r.Context())
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.keywords.ProcessKeywords(ctx, req.Keywords, req.DocumentID)
		slog.Default().Info("Keyword batch processed",
			"requestId", requestID,
			"documentId", req.DocumentID,
			"keywords", len(req.Keywords))
	}()

	writeJSON(w, http.StatusAccepted, ProcessKeywordsResponse{
		DocumentID: req.DocumentID,
		Accepted:   len(req.Keywords),
	})
}

func (s *Server) handleGetDictionary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.keywords.WordDictionary())
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	entry, ok := s.keywords.Word(word)
	if !ok {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	result, err := s.nlp.TestConnection(r.Context())
	if err != nil {
		slog.Default().Error("Failed to connect to NLP service", "requestId", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to connect to NLP service")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProcessText(w http.ResponseWriter, r *http.Request) {
	var req ProcessTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.nlp.ProcessText(r.Context(), req.Content)
	if err != nil {
		slog.Default().Error("Failed to process text", "requestId", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing the text")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProcessTextAsync(w http.ResponseWriter, r *http.Request) {
	var req ProcessTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.nlp.ProcessTextAsync(r.Context(), req.Content)
	if err != nil {
		slog.Default().Error("Failed to process text asynchronously", "requestId", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while processing the text asynchronously")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]
	result, err := s.nlp.GetResult(r.Context(), taskID)
	if err != nil {
		slog.Default().Error("Failed to get result", "requestId", RequestID(r.Context()), "taskId", taskID, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred while getting the result")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
