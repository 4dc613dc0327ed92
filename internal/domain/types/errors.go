package types

import "errors"

var (
	ErrUnknownOutcome   = errors.New("unknown outcome category")
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrMissingColumn    = errors.New("missing required column")
	ErrMalformedCell    = errors.New("malformed cell value")
	ErrDatasetNotLoaded = errors.New("dataset is not loaded")
	ErrEmptyDataset     = errors.New("dataset has no rows")

	ErrInvalidFilter = errors.New("invalid filter")
	ErrEmptyQuestion = errors.New("question is empty")

	ErrSessionNotFound   = errors.New("session not found")
	ErrRemoteUnavailable = errors.New("remote answering unavailable")

	ErrNotFound = errors.New("requested item not found")
)

// RemoteError is a remote answering failure with a short machine reason
// such as "timeout", "http_503" or "empty_response".
type RemoteError struct {
	Reason string
	Err    error
}

func NewRemoteError(reason string, err error) *RemoteError {
	return &RemoteError{Reason: reason, Err: err}
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return ErrRemoteUnavailable.Error() + ": " + e.Reason
	}
	return ErrRemoteUnavailable.Error() + ": " + e.Reason + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemoteUnavailable}
	}
	return []error{ErrRemoteUnavailable, e.Err}
}
