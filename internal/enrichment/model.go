package enrichment

import (
	"slices"

	"github.com/project-zero/backend/internal/dictionary"
)

// Definition is one candidate meaning of a keyword. Text is nil when the
// lookup did not produce a definition.
type Definition struct {
	Text *string `json:"text" yaml:"text"`
	// Votes is reserved for ranking competing definitions and is never incremented.
	Votes int `json:"votes" yaml:"votes"`
}

// WordEntry is the enrichment record of one keyword.
type WordEntry struct {
	Keyword           string       `json:"keyword" yaml:"keyword"`
	Definitions       []Definition `json:"definitions" yaml:"definitions"`
	SourceDocumentIDs []string     `json:"sourceDocumentIds" yaml:"source_document_ids"`

	// Outcome of the lookup that created the entry. Not serialized; the
	// nullable Definition.Text stays the external contract.
	Outcome dictionary.Outcome `json:"-" yaml:"-"`
}

// clone returns a copy that shares no memory with e.
func (e WordEntry) clone() WordEntry {
	c := e
	c.Definitions = make([]Definition, len(e.Definitions))
	for i, d := range e.Definitions {
		c.Definitions[i] = d
		if d.Text != nil {
			text := *d.Text
			c.Definitions[i].Text = &text
		}
	}
	c.SourceDocumentIDs = slices.Clone(e.SourceDocumentIDs)
	return c
}
