// Package server exposes the enrichment cache and the NLP service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rcrowley/go-metrics"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/project-zero/backend/internal/config"
	"github.com/project-zero/backend/internal/enrichment"
)

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_server.go -package=mock_server

// KeywordStore is the part of enrichment.Cache the handlers need.
type KeywordStore interface {
	ProcessKeywords(ctx context.Context, keywords []string, documentID string)
	WordDictionary() map[string]enrichment.WordEntry
	Word(keyword string) (enrichment.WordEntry, bool)
}

// TextProcessor is the part of nlp.Client the handlers need.
type TextProcessor interface {
	TestConnection(ctx context.Context) (json.RawMessage, error)
	ProcessText(ctx context.Context, content string) (json.RawMessage, error)
	ProcessTextAsync(ctx context.Context, content string) (json.RawMessage, error)
	GetResult(ctx context.Context, taskID string) (json.RawMessage, error)
}

type Server struct {
	keywords KeywordStore
	nlp      TextProcessor
	registry metrics.Registry
	cors     config.CORSConfig

	// background tracks keyword batches still running after their request returned.
	background sync.WaitGroup
}

func NewServer(keywords KeywordStore, nlp TextProcessor, registry metrics.Registry, cors config.CORSConfig) *Server {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	return &Server{
		keywords: keywords,
		nlp:      nlp,
		registry: registry,
		cors:     cors,
	}
}

// Router returns the route table wrapped in the request middleware.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleWelcome).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/debug/metrics", s.handleMetrics).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/keywords", s.handleProcessKeywords).Methods(http.MethodPost)
	api.HandleFunc("/dictionary", s.handleGetDictionary).Methods(http.MethodGet)
	api.HandleFunc("/dictionary/{word}", s.handleGetWord).Methods(http.MethodGet)
	api.HandleFunc("/nlp/test", s.handleTestConnection).Methods(http.MethodGet)
	api.HandleFunc("/nlp/process", s.handleProcessText).Methods(http.MethodPost)
	api.HandleFunc("/nlp/process-async", s.handleProcessTextAsync).Methods(http.MethodPost)
	api.HandleFunc("/nlp/result/{taskId}", s.handleGetResult).Methods(http.MethodGet)

	// Wrapped outside the router so unmatched paths and preflights are covered.
	return requestIDMiddleware(loggingMiddleware(corsMiddleware(s.cors.AllowedOrigins)(router)))
}

// Handler serves the router over HTTP/1.1 and cleartext HTTP/2.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.Router(), &http2.Server{})
}

// NewHTTPServer returns an http.Server listening on port.
func (s *Server) NewHTTPServer(port int) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Wait blocks until every accepted keyword batch has finished or ctx is done.
func (s *Server) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.background.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
