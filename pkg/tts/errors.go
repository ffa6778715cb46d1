package tts

import (
	"errors"
	"fmt"

	"github.com/wachiwi/gcloud-tts/pkg/voice"
)

// ErrMissingInput is returned when neither text nor an input file is given.
var ErrMissingInput = errors.New("you must provide either --text or --file")

// ServiceError wraps a failure reported by the speech service.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("speech service %s failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsUsageError reports whether err was caused by how the tool was invoked
// rather than by the speech service or the local system.
func IsUsageError(err error) bool {
	if errors.Is(err, ErrMissingInput) {
		return true
	}
	var noMatch *voice.NoMatchError
	if errors.As(err, &noMatch) {
		return true
	}
	var selErr *voice.InvalidSelectionError
	return errors.As(err, &selErr)
}
