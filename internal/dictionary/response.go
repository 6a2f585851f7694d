package dictionary

import (
	"encoding/json"
	"fmt"
)

// apiEntry is one element of the Free Dictionary API response array
// (one per etymology).
type apiEntry struct {
	Word      string        `json:"word"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// ParseDefinition extracts the first definition of the first meaning of the
// first entry. ok is false for a well-formed payload that carries no
// definition; err is only returned when the payload cannot be decoded.
func ParseDefinition(body []byte) (definition string, ok bool, err error) {
	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", false, fmt.Errorf("json.Unmarshal > %w: %w", ErrMalformedResponse, err)
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 || len(entries[0].Meanings[0].Definitions) == 0 {
		return "", false, nil
	}
	definition = entries[0].Meanings[0].Definitions[0].Definition
	if definition == "" {
		return "", false, nil
	}
	return definition, true, nil
}
