// Package exception provides the error taxonomy used by wpgen.
// Every failure surfaced to a caller is a *GeneratorError carrying the module it came
// from, a Kind that decides how the caller reacts, and the wrapped cause.
package exception

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Kind classifies a failure by how the caller is expected to react to it.
type Kind int

const (
	// KindUnknown is used for errors that were never classified.
	KindUnknown Kind = iota
	// KindAuth covers a missing or invalid anti-forgery token and insufficient privilege. Terminal.
	KindAuth
	// KindValidation covers malformed settings or arguments. Terminal.
	KindValidation
	// KindIO covers buffer and temp file failures. The caller may retry the chunk.
	KindIO
	// KindStorage covers bulk load, DDL and transaction failures. The caller may retry the chunk.
	KindStorage
	// KindConfigurationMismatch is advisory and never aborts an operation.
	KindConfigurationMismatch
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	KindAuth:                  "AuthFailure",
	KindValidation:            "ValidationFailure",
	KindIO:                    "IOFailure",
	KindStorage:               "StorageFailure",
	KindConfigurationMismatch: "ConfigurationMismatch",
}

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Retryable reports whether a failure of this kind may be retried by re-issuing the same request.
func (k Kind) Retryable() bool {
	return k == KindIO || k == KindStorage
}

// GeneratorError is the error type returned by every wpgen component.
type GeneratorError struct {
	// Module indicates where the error occurred (e.g., "lorem", "chunk", "deletion", "http").
	Module string
	// Kind decides the caller's reaction.
	Kind Kind
	// Message is a concise description of the error, suitable for end users.
	Message string
	// OriginalErr is the wrapped original error.
	OriginalErr error
	// StackTrace is the stack trace at the time of the error (for debugging).
	StackTrace string
}

// NewGeneratorError creates a new GeneratorError.
//
// Parameters:
//
//	module: The module where the error occurred.
//	kind: The failure kind.
//	message: The error message.
//	originalErr: The original error to wrap, may be nil.
//
// Returns:
//
//	A new GeneratorError instance.
func NewGeneratorError(module string, kind Kind, message string, originalErr error) *GeneratorError {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)

	return &GeneratorError{
		Module:      module,
		Kind:        kind,
		Message:     message,
		OriginalErr: originalErr,
		StackTrace:  string(buf[:n]),
	}
}

// NewGeneratorErrorf is NewGeneratorError with a format string.
// If the last argument is an error it becomes the wrapped cause and is not formatted.
func NewGeneratorErrorf(module string, kind Kind, format string, a ...interface{}) *GeneratorError {
	var originalErr error
	args := a
	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			originalErr = err
			args = args[:len(args)-1]
		}
	}
	return NewGeneratorError(module, kind, fmt.Sprintf(format, args...), originalErr)
}

// Shorthands for the common kinds.

func Auth(module, message string) *GeneratorError {
	return NewGeneratorError(module, KindAuth, message, nil)
}

func Validation(module, message string, err error) *GeneratorError {
	return NewGeneratorError(module, KindValidation, message, err)
}

func IO(module, message string, err error) *GeneratorError {
	return NewGeneratorError(module, KindIO, message, err)
}

func Storage(module, message string, err error) *GeneratorError {
	return NewGeneratorError(module, KindStorage, message, err)
}

func ConfigurationMismatch(module, message string) *GeneratorError {
	return NewGeneratorError(module, KindConfigurationMismatch, message, nil)
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the original error for errors.Unwrap.
func (e *GeneratorError) Unwrap() error {
	return e.OriginalErr
}

// Is matches another *GeneratorError with the same Kind, so that sentinel values such as
// ErrAuth can be used with errors.Is.
func (e *GeneratorError) Is(target error) bool {
	t, ok := target.(*GeneratorError)
	if !ok {
		return false
	}
	return t.Module == "" && t.Message == "" && t.Kind == e.Kind
}

// IsRetryable returns whether this error is retryable.
func (e *GeneratorError) IsRetryable() bool {
	return e.Kind.Retryable()
}

// Sentinels usable with errors.Is.
var (
	ErrAuth                  = &GeneratorError{Kind: KindAuth}
	ErrValidation            = &GeneratorError{Kind: KindValidation}
	ErrIO                    = &GeneratorError{Kind: KindIO}
	ErrStorage               = &GeneratorError{Kind: KindStorage}
	ErrConfigurationMismatch = &GeneratorError{Kind: KindConfigurationMismatch}
)

// KindOf returns the Kind of the first GeneratorError in err's chain.
func KindOf(err error) Kind {
	var ge *GeneratorError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// IsTemporary determines if an error is temporary.
// A GeneratorError answers by its Kind. Other errors are matched on common transient messages.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	var ge *GeneratorError
	if errors.As(err, &ge) {
		return ge.IsRetryable()
	}
	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "bad connection")
}

// UserMessage returns the message shown to end users: the GeneratorError message,
// followed by the rendered cause for storage and I/O failures where the engine message matters.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ge *GeneratorError
	if !errors.As(err, &ge) {
		return err.Error()
	}
	if ge.OriginalErr != nil && (ge.Kind == KindStorage || ge.Kind == KindIO) {
		return fmt.Sprintf("%s: %s", ge.Message, UserMessage(ge.OriginalErr))
	}
	return ge.Message
}

// Diagnostics renders err for end users. Accumulated errors are rendered one by one and
// joined with "; ".
func Diagnostics(err error) string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		parts := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			parts = append(parts, Diagnostics(e))
		}
		return strings.Join(parts, "; ")
	}
	return UserMessage(err)
}
