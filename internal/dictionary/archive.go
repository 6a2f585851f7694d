package dictionary

import (
	"context"
	"log/slog"
)

// Source is anything that can look up a word.
type Source interface {
	Lookup(ctx context.Context, word string) Result
}

// ArchivingLookup records the raw payload of every successful lookup in a
// repository. Archiving is best effort; a failed write never changes the result.
type ArchivingLookup struct {
	source     Source
	repository DictionaryRepository
}

func NewArchivingLookup(source Source, repository DictionaryRepository) *ArchivingLookup {
	return &ArchivingLookup{source: source, repository: repository}
}

func (a *ArchivingLookup) Lookup(ctx context.Context, word string) Result {
	result := a.source.Lookup(ctx, word)
	if result.Outcome != OutcomeFound || len(result.RawResponse) == 0 {
		return result
	}

	entry := &DictionaryEntry{
		Word:       word,
		SourceType: SourceTypeFreeDictionary,
		SourceURL:  result.SourceURL,
		Response:   result.RawResponse,
	}
	if err := a.repository.Upsert(ctx, entry); err != nil {
		slog.Default().Warn("failed to archive dictionary response",
			slog.String("word", word),
			slog.Any("error", err),
		)
	}
	return result
}
