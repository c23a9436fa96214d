// Package guruerr defines the closed error taxonomy shared by the
// coordinator, the capability ports, and the worksheet pipeline.
package guruerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the closed set of failure categories the
// caller can act on.
type Kind int

const (
	// KindUnknown is the zero value for errors outside the taxonomy.
	KindUnknown Kind = iota
	// KindInvalidInput is a caller error. Never retried, surfaced verbatim.
	KindInvalidInput
	// KindTransient is an external capability hiccup (timeout, rate limit).
	// Retried with bounded backoff before escalation.
	KindTransient
	// KindFatal means the external capability structurally rejected the
	// request. Not retried.
	KindFatal
	// KindUnroutable means no specialist agent matches the request.
	KindUnroutable
	// KindSessionNotFound means the referenced session does not exist.
	KindSessionNotFound
	// KindVersionConflict means the session was mutated concurrently.
	// The caller should refetch and retry the whole operation.
	KindVersionConflict
	// KindAgentUnavailable means the selected specialist reported a fatal
	// error while handling the request.
	KindAgentUnavailable
	// KindExtractionFailed means the Extract stage exhausted its retries.
	KindExtractionFailed
	// KindAnalysisFailed means the Analyze stage exhausted its retries.
	KindAnalysisFailed
	// KindAllGradesFailed means every requested grade's generation failed.
	KindAllGradesFailed
)

// String returns the canonical name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindTransient:
		return "transient"
	case KindFatal:
		return "fatal"
	case KindUnroutable:
		return "unroutable_request"
	case KindSessionNotFound:
		return "session_not_found"
	case KindVersionConflict:
		return "version_conflict"
	case KindAgentUnavailable:
		return "agent_unavailable"
	case KindExtractionFailed:
		return "extraction_failed"
	case KindAnalysisFailed:
		return "analysis_failed"
	case KindAllGradesFailed:
		return "all_grades_failed"
	default:
		return "unknown"
	}
}

// Error carries a taxonomy kind alongside the operation that failed.
type Error struct {
	// Kind is the taxonomy classification.
	Kind Kind
	// Op names the operation that failed (e.g. "pipeline.extract").
	Op string
	// Msg is the human-readable description.
	Msg string
	// Err is the wrapped cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a taxonomy error with a message and no cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Newf creates a taxonomy error with a formatted message.
func Newf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a taxonomy error around a cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the taxonomy kind from an error chain.
// Errors outside the taxonomy report KindUnknown.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// IsTransient reports whether the error chain carries a transient kind.
func IsTransient(err error) bool {
	return KindOf(err) == KindTransient
}
