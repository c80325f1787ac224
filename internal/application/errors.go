package application

import (
	"context"
	"errors"
	"fmt"

	"chatstats/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrExportNotFound = domain.ErrIndexNotFound
	ErrMalformedData  = domain.ErrMalformedData
	ErrNoExportRoot   = errors.New("no export folder selected")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorKind classifies failures so presentation layers can render them differently
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindInvalidExport is a fatal precondition: nothing was processed
	KindInvalidExport
	KindMalformedData
	KindInvalidTimestamp
	KindIO
	KindCanceled
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidExport:
		return "invalid export"
	case KindMalformedData:
		return "malformed data"
	case KindInvalidTimestamp:
		return "invalid timestamp"
	case KindIO:
		return "i/o"
	case KindCanceled:
		return "canceled"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// SummaryError is a failure while summarizing an export
type SummaryError struct {
	Kind    ErrorKind
	Path    string // File or directory involved, if any
	Channel domain.ChannelID
	Err     error
}

func (e *SummaryError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SummaryError) Unwrap() error {
	return e.Err
}

func (e *SummaryError) Is(target error) bool {
	switch e.Kind {
	case KindInvalidExport:
		return target == ErrExportNotFound
	case KindMalformedData:
		return target == ErrMalformedData
	case KindInvalidTimestamp:
		return target == domain.ErrInvalidTimestamp
	}
	return false
}

// MalformedDataError is returned by loaders when a file exists but cannot be understood
type MalformedDataError = domain.MalformedDataError

// KindOf classifies err. Errors that are not SummaryErrors are classified by
// the sentinels they wrap.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var se *SummaryError
	if errors.As(err, &se) {
		return se.Kind
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindInvalidInput
	}
	switch {
	case errors.Is(err, ErrExportNotFound), errors.Is(err, ErrNoExportRoot):
		return KindInvalidExport
	case errors.Is(err, ErrMalformedData):
		return KindMalformedData
	case errors.Is(err, domain.ErrInvalidTimestamp):
		return KindInvalidTimestamp
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindIO
	}
}

// IsFatalPrecondition reports whether err means the export was rejected before processing
func IsFatalPrecondition(err error) bool {
	return KindOf(err) == KindInvalidExport
}

// UserMessage renders err the way it is shown in an alert
func UserMessage(err error) string {
	if errors.Is(err, ErrNoExportRoot) {
		return "Please select a folder first."
	}
	if IsFatalPrecondition(err) {
		return "Folder does not contain messages/index.json\nThis is not a valid Discord data export."
	}
	return fmt.Sprintf("An error occurred:\n%v", err)
}
