package session

import "errors"

var (
	ErrAlreadyStarted       = errors.New("session already started")
	ErrNotAcceptingAnswers  = errors.New("session is not accepting answers")
	ErrInvalidPosition      = errors.New("question position out of range")
	ErrNotReady             = errors.New("session is not ready for submission")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrSubmissionFailed     = errors.New("submission failed")
	ErrClosed               = errors.New("session closed")
)

// IsRetryable reports whether the caller may submit again after err.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrSubmissionFailed)
}
