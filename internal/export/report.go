// Package export writes dictionary contents as YAML, Markdown and PDF reports.
package export

import (
	"slices"
	"strings"
	"time"

	"github.com/project-zero/backend/internal/dictionary"
	"github.com/project-zero/backend/internal/enrichment"
)

// Report is the data handed to the dictionary report template.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Entries     []ReportEntry
}

type ReportEntry struct {
	Keyword    string
	Definition string
	Outcome    string
	Documents  []string
	SourceURL  string
}

// EntriesFromCache converts a cache snapshot into report entries sorted by keyword.
func EntriesFromCache(words map[string]enrichment.WordEntry) []ReportEntry {
	entries := make([]ReportEntry, 0, len(words))
	for keyword, word := range words {
		entry := ReportEntry{
			Keyword:   keyword,
			Outcome:   word.Outcome.String(),
			Documents: slices.Clone(word.SourceDocumentIDs),
		}
		if len(word.Definitions) > 0 && word.Definitions[0].Text != nil {
			entry.Definition = *word.Definitions[0].Text
		}
		entries = append(entries, entry)
	}
	sortEntries(entries)
	return entries
}

// EntriesFromArchive converts archived dictionary responses into report
// entries sorted by word. Responses that no longer parse are kept without a definition.
func EntriesFromArchive(archived []dictionary.DictionaryEntry) []ReportEntry {
	entries := make([]ReportEntry, 0, len(archived))
	for _, a := range archived {
		entry := ReportEntry{
			Keyword:   a.Word,
			Outcome:   dictionary.OutcomeNotFound.String(),
			SourceURL: a.SourceURL,
		}
		definition, ok, err := dictionary.ParseDefinition(a.Response)
		if err == nil && ok {
			entry.Definition = definition
			entry.Outcome = dictionary.OutcomeFound.String()
		}
		entries = append(entries, entry)
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []ReportEntry) {
	slices.SortFunc(entries, func(a, b ReportEntry) int {
		return strings.Compare(a.Keyword, b.Keyword)
	})
}
