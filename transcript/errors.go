package transcript

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNoTranscriptAvailable = errors.New("no transcript available")

	// returned by providers
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscriptFound   = errors.New("no transcript found")
)

const maxProviderMessage = 120

// ProviderError wraps an unexpected failure of the transcript provider. The
// message is cut to a length that is safe to show to a user.
type ProviderError struct {
	Message string
	err     error
}

func NewProviderError(err error) *ProviderError {
	msg := []rune(err.Error())
	if len(msg) > maxProviderMessage {
		msg = msg[:maxProviderMessage]
	}
	return &ProviderError{
		Message: string(msg),
		err:     err,
	}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("transcript provider failed: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.err
}
