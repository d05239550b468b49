package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// NotFound indicates a path or working root does not exist
	NotFound ErrorCode = "NOT_FOUND"
	// NotADirectory indicates the path exists but is not a directory
	NotADirectory ErrorCode = "NOT_A_DIRECTORY"
	// NotAFile indicates the path exists but is not a regular file
	NotAFile ErrorCode = "NOT_A_FILE"
	// InvalidArgument indicates a bad regex, line range, or empty pattern
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// TooLarge indicates a file exceeds the read size cap
	TooLarge ErrorCode = "TOO_LARGE"
	// Undecodable indicates no supported encoding produced text
	Undecodable ErrorCode = "UNDECODABLE"
	// CloneFailed indicates the git subprocess exited non-zero
	CloneFailed ErrorCode = "CLONE_FAILED"
	// CloneTimeout indicates the clone exceeded its wall-clock deadline
	CloneTimeout ErrorCode = "CLONE_TIMEOUT"
	// NoWorkingRoot indicates a relative path was used before any clone
	NoWorkingRoot ErrorCode = "NO_WORKING_ROOT"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// ExploreError represents a gitscout error with a stable code, message,
// and optional caller-facing hints. Operations return these as data to the
// tool layer; they never escape as panics or process aborts.
type ExploreError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Hints   []string  `json:"hints,omitempty"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new ExploreError
func New(code ErrorCode, message string) *ExploreError {
	return &ExploreError{
		Code:    code,
		Message: message,
		Hints:   defaultHints[code],
	}
}

// Wrap creates a new ExploreError with an underlying cause
func Wrap(code ErrorCode, message string, cause error) *ExploreError {
	e := New(code, message)
	e.cause = cause
	return e
}

// Newf creates a new ExploreError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ExploreError {
	return New(code, fmt.Sprintf(format, args...))
}

// Error implements the error interface
func (e *ExploreError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ExploreError) Unwrap() error {
	return e.cause
}

// WithHint appends a caller-facing hint
func (e *ExploreError) WithHint(hint string) *ExploreError {
	e.Hints = append(e.Hints, hint)
	return e
}

// Text renders the error as the bounded text payload returned to the
// exploring caller. The message comes first so the caller reads the
// failure before any guidance.
func (e *ExploreError) Text() string {
	s := "Error: " + e.Message
	for _, h := range e.Hints {
		s += "\n" + h
	}
	return s
}

// defaultHints maps error codes to standing guidance for the caller
var defaultHints = map[ErrorCode][]string{
	NoWorkingRoot: {
		"Clone a repository first.",
	},
	CloneTimeout: {
		"The repository might be too large or network is slow.",
	},
	TooLarge: {
		"Use searchFiles to locate relevant sections instead of reading the whole file.",
	},
}

// CodeOf extracts the ErrorCode from err, or InternalError if err is not
// an ExploreError.
func CodeOf(err error) ErrorCode {
	if e, ok := err.(*ExploreError); ok {
		return e.Code
	}
	return InternalError
}

// AsText renders any error as caller-facing text. Non-ExploreError values
// are wrapped as internal errors so the caller still gets a readable line.
func AsText(err error) string {
	if e, ok := err.(*ExploreError); ok {
		return e.Text()
	}
	return "Error: " + err.Error()
}
