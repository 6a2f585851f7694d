package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/project-zero/backend/internal/dictionary"
	mock_enrichment "github.com/project-zero/backend/internal/mocks/enrichment"
)

func found(word, definition string) dictionary.Result {
	return dictionary.Result{Word: word, Outcome: dictionary.OutcomeFound, Definition: definition, Attempts: 1}
}

func notFound(word string) dictionary.Result {
	return dictionary.Result{Word: word, Outcome: dictionary.OutcomeNotFound, Attempts: 1}
}

type recordedWaits struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordedWaits) wait(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

func newTestCache(lookup DefinitionLookup, waits *recordedWaits) *Cache {
	return NewCache(lookup, WithWait(waits.wait), WithRegistry(metrics.NewRegistry()))
}

func TestCache_ProcessKeywords(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(m *mock_enrichment.MockDefinitionLookup)
		calls       [][2]any
		wantEntries map[string]WordEntry
		wantWaits   []time.Duration
	}{
		{
			name: "new keyword creates one entry with one definition",
			setupMock: func(m *mock_enrichment.MockDefinitionLookup) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(found("hello", "a greeting")).Times(1)
			},
			calls: [][2]any{{[]string{"hello"}, "doc-1"}},
			wantEntries: map[string]WordEntry{
				"hello": {
					Keyword:           "hello",
					Definitions:       []Definition{{Text: ptr("a greeting")}},
					SourceDocumentIDs: []string{"doc-1"},
					Outcome:           dictionary.OutcomeFound,
				},
			},
		},
		{
			name: "same document twice is recorded once",
			setupMock: func(m *mock_enrichment.MockDefinitionLookup) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(found("hello", "a greeting")).Times(1)
			},
			calls: [][2]any{
				{[]string{"hello"}, "doc-1"},
				{[]string{"hello"}, "doc-1"},
			},
			wantEntries: map[string]WordEntry{
				"hello": {
					Keyword:           "hello",
					Definitions:       []Definition{{Text: ptr("a greeting")}},
					SourceDocumentIDs: []string{"doc-1"},
					Outcome:           dictionary.OutcomeFound,
				},
			},
		},
		{
			name: "second document is appended without another lookup",
			setupMock: func(m *mock_enrichment.MockDefinitionLookup) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(found("hello", "a greeting")).Times(1)
			},
			calls: [][2]any{
				{[]string{"hello"}, "doc-1"},
				{[]string{"hello"}, "doc-2"},
			},
			wantEntries: map[string]WordEntry{
				"hello": {
					Keyword:           "hello",
					Definitions:       []Definition{{Text: ptr("a greeting")}},
					SourceDocumentIDs: []string{"doc-1", "doc-2"},
					Outcome:           dictionary.OutcomeFound,
				},
			},
		},
		{
			name: "not found word still occupies the slot and is not looked up again",
			setupMock: func(m *mock_enrichment.MockDefinitionLookup) {
				m.EXPECT().Lookup(gomock.Any(), "asdfghjkl").Return(notFound("asdfghjkl")).Times(1)
			},
			calls: [][2]any{
				{[]string{"asdfghjkl"}, "doc-1"},
				{[]string{"asdfghjkl"}, "doc-2"},
			},
			wantEntries: map[string]WordEntry{
				"asdfghjkl": {
					Keyword:           "asdfghjkl",
					Definitions:       []Definition{{Text: nil}},
					SourceDocumentIDs: []string{"doc-1", "doc-2"},
					Outcome:           dictionary.OutcomeNotFound,
				},
			},
		},
		{
			name: "permanent failure keeps its outcome",
			setupMock: func(m *mock_enrichment.MockDefinitionLookup) {
				m.EXPECT().Lookup(gomock.Any(), "boom").Return(dictionary.Result{
					Word:    "boom",
					Outcome: dictionary.OutcomePermanentFailure,
					Err:     dictionary.ErrUnexpectedStatus,
				})
			},
			calls: [][2]any{{[]string{"boom"}, "doc-1"}},
			wantEntries: map[string]WordEntry{
				"boom": {
					Keyword:           "boom",
					Definitions:       []Definition{{Text: nil}},
					SourceDocumentIDs: []string{"doc-1"},
					Outcome:           dictionary.OutcomePermanentFailure,
				},
			},
		},
		{
			name: "keywords are processed in order with a pause between them",
			setupMock: func(m *mock_enrichment.MockDefinitionLookup) {
				gomock.InOrder(
					m.EXPECT().Lookup(gomock.Any(), "go").Return(found("go", "to move")),
					m.EXPECT().Lookup(gomock.Any(), "rust").Return(notFound("rust")),
				)
			},
			calls: [][2]any{{[]string{"go", "rust", "go"}, "doc-1"}},
			wantEntries: map[string]WordEntry{
				"go": {
					Keyword:           "go",
					Definitions:       []Definition{{Text: ptr("to move")}},
					SourceDocumentIDs: []string{"doc-1"},
					Outcome:           dictionary.OutcomeFound,
				},
				"rust": {
					Keyword:           "rust",
					Definitions:       []Definition{{Text: nil}},
					SourceDocumentIDs: []string{"doc-1"},
					Outcome:           dictionary.OutcomeNotFound,
				},
			},
			wantWaits: []time.Duration{DefaultKeywordPause, DefaultKeywordPause},
		},
		{
			name:        "empty keyword list does nothing",
			setupMock:   func(m *mock_enrichment.MockDefinitionLookup) {},
			calls:       [][2]any{{[]string{}, "doc-1"}},
			wantEntries: map[string]WordEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lookup := mock_enrichment.NewMockDefinitionLookup(ctrl)
			tt.setupMock(lookup)

			waits := &recordedWaits{}
			cache := newTestCache(lookup, waits)
			for _, call := range tt.calls {
				cache.ProcessKeywords(context.Background(), call[0].([]string), call[1].(string))
			}

			assert.Equal(t, tt.wantEntries, cache.WordDictionary())
			assert.Equal(t, tt.wantWaits, waits.delays)
		})
	}
}

func ptr(s string) *string {
	return &s
}

// The dictionary client is exercised end to end so the retry delays observed
// by the cache caller are the real ones.
func TestCache_ProcessKeywords_WithDictionaryClient(t *testing.T) {
	const body = `[{"word":"hello","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"a greeting"}]}]}]`

	tests := []struct {
		name         string
		statuses     []int
		wantText     *string
		wantOutcome  dictionary.Outcome
		wantCalls    int32
		wantBackoffs []time.Duration
	}{
		{
			name:         "rate limited twice then succeeds",
			statuses:     []int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK},
			wantText:     ptr("a greeting"),
			wantOutcome:  dictionary.OutcomeFound,
			wantCalls:    3,
			wantBackoffs: []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond},
		},
		{
			name:         "rate limited until retries are exhausted",
			statuses:     []int{http.StatusTooManyRequests},
			wantOutcome:  dictionary.OutcomeTransientFailure,
			wantCalls:    4,
			wantBackoffs: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		},
		{
			name:        "not found is not retried",
			statuses:    []int{http.StatusNotFound},
			wantOutcome: dictionary.OutcomeNotFound,
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(atomic.AddInt32(&calls, 1)) - 1
				if n >= len(tt.statuses) {
					n = len(tt.statuses) - 1
				}
				w.WriteHeader(tt.statuses[n])
				if tt.statuses[n] == http.StatusOK {
					_, _ = w.Write([]byte(body))
				}
			}))
			defer server.Close()

			backoffs := &recordedWaits{}
			client := dictionary.NewClient(dictionary.Config{
				BaseURL:    server.URL,
				MaxRetries: dictionary.DefaultMaxRetries,
				BaseDelay:  dictionary.DefaultBaseDelay,
				Wait:       backoffs.wait,
				Registry:   metrics.NewRegistry(),
			})
			cache := newTestCache(client, &recordedWaits{})

			cache.ProcessKeywords(context.Background(), []string{"hello"}, "doc-1")

			entry, ok := cache.Word("hello")
			require.True(t, ok)
			require.Len(t, entry.Definitions, 1)
			assert.Equal(t, tt.wantText, entry.Definitions[0].Text)
			assert.Equal(t, tt.wantOutcome, entry.Outcome)
			assert.Equal(t, []string{"doc-1"}, entry.SourceDocumentIDs)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
			assert.Equal(t, tt.wantBackoffs, backoffs.delays)
		})
	}
}

func TestCache_ProcessKeywords_Cancelled(t *testing.T) {
	t.Run("stops before the first keyword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lookup := mock_enrichment.NewMockDefinitionLookup(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cache := newTestCache(lookup, &recordedWaits{})
		cache.ProcessKeywords(ctx, []string{"hello", "world"}, "doc-1")

		assert.Equal(t, 0, cache.Len())
	})

	t.Run("stops during the pause", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lookup := mock_enrichment.NewMockDefinitionLookup(ctrl)
		lookup.EXPECT().Lookup(gomock.Any(), "hello").Return(found("hello", "a greeting"))

		cache := NewCache(lookup,
			WithKeywordPause(time.Hour),
			WithWait(func(ctx context.Context, d time.Duration) error { return context.Canceled }),
			WithRegistry(metrics.NewRegistry()))
		cache.ProcessKeywords(context.Background(), []string{"hello", "world"}, "doc-1")

		_, ok := cache.Word("world")
		assert.False(t, ok)
		assert.Equal(t, 1, cache.Len())
	})
}

func TestCache_ProcessKeywords_ConcurrentMisses(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mock_enrichment.NewMockDefinitionLookup(ctrl)

	release := make(chan struct{})
	var lookups int32
	lookup.EXPECT().Lookup(gomock.Any(), "hello").DoAndReturn(func(ctx context.Context, word string) dictionary.Result {
		atomic.AddInt32(&lookups, 1)
		<-release
		return found(word, "a greeting")
	}).AnyTimes()

	cache := newTestCache(lookup, &recordedWaits{})

	documents := []string{"doc-1", "doc-2", "doc-3", "doc-4"}
	var wg sync.WaitGroup
	for _, doc := range documents {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.ProcessKeywords(context.Background(), []string{"hello"}, doc)
		}()
	}
	// Give every goroutine a chance to join the flight before it completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	entry, ok := cache.Word("hello")
	require.True(t, ok)
	assert.Len(t, entry.Definitions, 1)
	assert.ElementsMatch(t, documents, entry.SourceDocumentIDs)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lookups))
}

func TestCache_WordDictionary_ReturnsSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mock_enrichment.NewMockDefinitionLookup(ctrl)
	lookup.EXPECT().Lookup(gomock.Any(), "hello").Return(found("hello", "a greeting"))

	cache := newTestCache(lookup, &recordedWaits{})
	cache.ProcessKeywords(context.Background(), []string{"hello"}, "doc-1")

	snapshot := cache.WordDictionary()
	entry := snapshot["hello"]
	entry.SourceDocumentIDs[0] = "mutated"
	*entry.Definitions[0].Text = "mutated"

	got, ok := cache.Word("hello")
	require.True(t, ok)
	assert.Equal(t, []string{"doc-1"}, got.SourceDocumentIDs)
	assert.Equal(t, "a greeting", *got.Definitions[0].Text)
}

func TestCache_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mock_enrichment.NewMockDefinitionLookup(ctrl)
	lookup.EXPECT().Lookup(gomock.Any(), "hello").Return(found("hello", "a greeting")).Times(2)

	cache := newTestCache(lookup, &recordedWaits{})
	cache.ProcessKeywords(context.Background(), []string{"hello"}, "doc-1")
	cache.Reset()
	assert.Equal(t, 0, cache.Len())

	cache.ProcessKeywords(context.Background(), []string{"hello"}, "doc-2")
	got, ok := cache.Word("hello")
	require.True(t, ok)
	assert.Equal(t, []string{"doc-2"}, got.SourceDocumentIDs)
}

func TestCache_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mock_enrichment.NewMockDefinitionLookup(ctrl)
	lookup.EXPECT().Lookup(gomock.Any(), "hello").Return(found("hello", "a greeting"))

	registry := metrics.NewRegistry()
	cache := NewCache(lookup, WithWait((&recordedWaits{}).wait), WithRegistry(registry))
	cache.ProcessKeywords(context.Background(), []string{"hello", "hello", "hello"}, "doc-1")

	hits, ok := registry.Get("enrichment.cache.hit").(metrics.Counter)
	require.True(t, ok)
	assert.Equal(t, int64(2), hits.Count())
	misses, ok := registry.Get("enrichment.cache.miss").(metrics.Counter)
	require.True(t, ok)
	assert.Equal(t, int64(1), misses.Count())
}
