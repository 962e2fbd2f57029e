package common

import "errors"

// Validation failures map to client errors at the route boundary; anything
// else coming out of the store or queue is a server error.
var (
	ErrInvalidName      = errors.New("invalid player name")
	ErrInvalidTimestamp = errors.New("report timestamp outside accepted window")
	ErrEmptyBatch       = errors.New("no valid detections in batch")
	ErrUnknownSubject   = errors.New("feedback subject does not exist")
	ErrValidation       = errors.New("field out of accepted range")
)

func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, ErrUnknownSubject) ||
		errors.Is(err, ErrValidation)
}
