package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	result Result
}

func (s stubSource) Lookup(_ context.Context, word string) Result {
	r := s.result
	r.Word = word
	return r
}

func TestArchivingLookup_Lookup(t *testing.T) {
	tests := []struct {
		name      string
		result    Result
		setupMock func(mock sqlmock.Sqlmock)
	}{
		{
			name: "found result is archived",
			result: Result{
				Outcome:     OutcomeFound,
				Definition:  "A greeting.",
				SourceURL:   "https://api.dictionaryapi.dev/api/v2/entries/en/hello",
				RawResponse: []byte(`[{"word":"hello"}]`),
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO dictionary_entries").
					WithArgs("hello", SourceTypeFreeDictionary, "https://api.dictionaryapi.dev/api/v2/entries/en/hello", json.RawMessage(`[{"word":"hello"}]`)).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:      "not found result is not archived",
			result:    Result{Outcome: OutcomeNotFound},
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name:      "failed result is not archived",
			result:    Result{Outcome: OutcomeTransientFailure, Err: ErrRateLimited},
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "archive failure does not change the result",
			result: Result{
				Outcome:     OutcomeFound,
				Definition:  "A greeting.",
				RawResponse: []byte(`[{"word":"hello"}]`),
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO dictionary_entries").WillReturnError(errors.New("read-only"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			lookup := NewArchivingLookup(stubSource{result: tt.result}, repo)
			got := lookup.Lookup(context.Background(), "hello")

			assert.Equal(t, tt.result.Outcome, got.Outcome)
			assert.Equal(t, tt.result.Definition, got.Definition)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
