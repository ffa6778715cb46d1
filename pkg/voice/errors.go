package voice

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned by SelectVoice when it is handed an empty list.
var ErrNoCandidates = errors.New("no candidate voices to select from")

// NoMatchError reports that the catalog has no voice for a language prefix
// and gender combination.
type NoMatchError struct {
	Prefix string
	Gender Gender
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no available voices found for language '%s' and gender '%s'", e.Prefix, e.Gender)
}

// InvalidSelectionError reports a menu answer that does not name one of the
// offered voices.
type InvalidSelectionError struct {
	Input string
	Count int
	Err   error
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid choice %q (expected 1-%d)! Please run the command again and select a valid option", e.Input, e.Count)
}

func (e *InvalidSelectionError) Unwrap() error {
	return e.Err
}
