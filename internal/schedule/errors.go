package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks lookups for unknown orders, products or sessions.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict marks a stale optimistic version token.
	ErrVersionConflict = errors.New("version conflict")
)

// Conflict reasons.
const (
	ReasonOverlap        = "overlap"
	ReasonBeforeMidnight = "before-midnight"
	ReasonLineOverlap    = "line-overlap"
	ReasonMixerOverlap   = "mixer-overlap"
)

// ValidationError reports malformed caller input.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// NewValidationError builds a ValidationError.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// ConflictError reports a scheduling infeasibility: a resource overlap or a
// manufacturing window that would begin before midnight. BlockIDs names every
// block participating in the detected overlaps.
type ConflictError struct {
	Reason   string
	BlockIDs []string
}

func (e *ConflictError) Error() string {
	if len(e.BlockIDs) == 0 {
		return "conflict: " + e.Reason
	}
	return fmt.Sprintf("conflict: %s (%s)", e.Reason, strings.Join(e.BlockIDs, ", "))
}

// StateError reports an operation against an order or plan in the wrong state,
// such as reassigning a locked order.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// NewStateError builds a StateError.
func NewStateError(format string, args ...any) *StateError {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}
