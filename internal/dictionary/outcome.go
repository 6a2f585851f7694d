package dictionary

import "errors"

// Outcome classifies how a definition lookup ended. Callers that only need
// the nullable definition text use Result.Text; the outcome keeps "the word
// does not exist" apart from "the service could not be reached".
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	// OutcomeTransientFailure covers rate limiting after the retry budget
	// is spent, transport errors and cancellation.
	OutcomeTransientFailure
	// OutcomePermanentFailure covers malformed payloads and unexpected statuses.
	OutcomePermanentFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTransientFailure:
		return "transient_failure"
	case OutcomePermanentFailure:
		return "permanent_failure"
	default:
		return "unknown"
	}
}

var (
	ErrRateLimited       = errors.New("dictionary lookup rate limited")
	ErrMalformedResponse = errors.New("malformed dictionary response")
	ErrUnexpectedStatus  = errors.New("unexpected dictionary response status")
)

// Result is the outcome of a single word lookup, including all retries.
type Result struct {
	Word       string
	Outcome    Outcome
	Definition string
	// Err is set for the failure outcomes.
	Err error
	// Attempts is the number of HTTP requests issued.
	Attempts    int
	SourceURL   string
	RawResponse []byte
}

// Text returns the definition, or nil unless the lookup found one.
func (r Result) Text() *string {
	if r.Outcome != OutcomeFound {
		return nil
	}
	text := r.Definition
	return &text
}
