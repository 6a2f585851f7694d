// Package enrichment keeps a process-lifetime dictionary of the keywords
// extracted from documents, each with its definition and the documents that
// referenced it.
package enrichment

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	"golang.org/x/sync/singleflight"

	"github.com/project-zero/backend/internal/dictionary"
)

//go:generate mockgen -source=cache.go -destination=../mocks/enrichment/mock_lookup.go -package=mock_enrichment

// DefinitionLookup resolves a definition for a single word. Implementations
// report failures through the result rather than an error.
type DefinitionLookup interface {
	Lookup(ctx context.Context, word string) dictionary.Result
}

const DefaultKeywordPause = 100 * time.Millisecond

type Option func(*Cache)

// WithKeywordPause sets the pause taken between successive keywords.
func WithKeywordPause(d time.Duration) Option {
	return func(c *Cache) {
		c.keywordPause = d
	}
}

// WithWait replaces the function used to pause between keywords.
func WithWait(wait dictionary.WaitFunc) Option {
	return func(c *Cache) {
		c.wait = wait
	}
}

func WithRegistry(r metrics.Registry) Option {
	return func(c *Cache) {
		c.registry = r
	}
}

// Cache maps keywords to their WordEntry. An entry is created once per
// keyword, whatever the lookup outcome, and afterwards only gains document ids.
type Cache struct {
	lookup       DefinitionLookup
	keywordPause time.Duration
	wait         dictionary.WaitFunc
	registry     metrics.Registry

	mu      sync.RWMutex
	entries map[string]*WordEntry

	// inflight collapses concurrent misses on the same keyword into one lookup.
	inflight singleflight.Group

	hits   metrics.Counter
	misses metrics.Counter
}

func NewCache(lookup DefinitionLookup, opts ...Option) *Cache {
	c := &Cache{
		lookup:       lookup,
		keywordPause: DefaultKeywordPause,
		wait:         dictionary.Wait,
		registry:     metrics.DefaultRegistry,
		entries:      make(map[string]*WordEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.hits = metrics.GetOrRegisterCounter("enrichment.cache.hit", c.registry)
	c.misses = metrics.GetOrRegisterCounter("enrichment.cache.miss", c.registry)
	return c
}

// ProcessKeywords records documentID against every keyword, fetching a
// definition for keywords seen for the first time. Keywords are handled one
// at a time in input order with a fixed pause between them. Lookup failures
// are logged and stored as entries without a definition; nothing is returned.
func (c *Cache) ProcessKeywords(ctx context.Context, keywords []string, documentID string) {
	for i, keyword := range keywords {
		if i > 0 {
			if err := c.wait(ctx, c.keywordPause); err != nil {
				slog.Default().Warn("Keyword processing interrupted",
					"documentId", documentID,
					"processed", i,
					"remaining", len(keywords)-i,
					"error", err)
				return
			}
		} else if err := ctx.Err(); err != nil {
			slog.Default().Warn("Keyword processing interrupted",
				"documentId", documentID,
				"processed", 0,
				"remaining", len(keywords),
				"error", err)
			return
		}

		c.processKeyword(ctx, keyword, documentID)
	}
}

func (c *Cache) processKeyword(ctx context.Context, keyword, documentID string) {
	if c.addDocument(keyword, documentID) {
		c.hits.Inc(1)
		slog.Default().Debug("Word already exists in dictionary. Adding document ID.",
			"keyword", keyword,
			"documentId", documentID)
		return
	}
	c.misses.Inc(1)

	_, _, _ = c.inflight.Do(keyword, func() (any, error) {
		// An earlier flight may have finished between addDocument and Do.
		if c.contains(keyword) {
			return nil, nil
		}

		slog.Default().Info("Fetching definition for word", "keyword", keyword)
		result := c.lookup.Lookup(ctx, keyword)
		if result.Outcome == dictionary.OutcomeFound {
			slog.Default().Info("Definition found", "keyword", keyword, "definition", result.Definition)
		} else {
			slog.Default().Info("No definition found", "keyword", keyword, "outcome", result.Outcome.String())
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.entries[keyword] = &WordEntry{
			Keyword:           keyword,
			Definitions:       []Definition{{Text: result.Text(), Votes: 0}},
			SourceDocumentIDs: []string{documentID},
			Outcome:           result.Outcome,
		}
		return nil, nil
	})

	// Callers that shared another caller's flight still need their document recorded.
	c.addDocument(keyword, documentID)
}

// addDocument appends documentID to an existing entry and reports whether
// the entry exists.
func (c *Cache) addDocument(keyword, documentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[keyword]
	if !ok {
		return false
	}
	if !slices.Contains(entry.SourceDocumentIDs, documentID) {
		entry.SourceDocumentIDs = append(entry.SourceDocumentIDs, documentID)
	}
	return true
}

func (c *Cache) contains(keyword string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[keyword]
	return ok
}

// WordDictionary returns a snapshot of every entry keyed by keyword.
func (c *Cache) WordDictionary() map[string]WordEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[string]WordEntry, len(c.entries))
	for keyword, entry := range c.entries {
		snapshot[keyword] = entry.clone()
	}
	return snapshot
}

// Word returns a snapshot of the entry for keyword.
func (c *Cache) Word(keyword string) (WordEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[keyword]
	if !ok {
		return WordEntry{}, false
	}
	return entry.clone(), true
}

// Len returns the number of known keywords.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset forgets every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*WordEntry)
}
