package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexNotFound means the export has no messages/index.json
	ErrIndexNotFound = errors.New("messages/index.json not found")
	// ErrMalformedData means an export file exists but cannot be understood
	ErrMalformedData = errors.New("malformed data")
	// ErrInvalidTimestamp is returned when a timestamp is not ISO-8601
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// MalformedDataError describes why an export file was rejected
type MalformedDataError struct {
	Path   string
	Reason string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.Path, e.Reason)
}

func (e *MalformedDataError) Is(target error) bool {
	return target == ErrMalformedData
}
