package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a document load failure.
// ErrorCode implements error so a code can be matched with errors.Is.
type ErrorCode string

const (
	// ErrAbsentDocument indicates neither the plain nor a compressed form of a document exists.
	ErrAbsentDocument ErrorCode = "langtable-absent-document"
	// ErrMalformedValue indicates a value could not be parsed, such as a non-numeric rank.
	ErrMalformedValue ErrorCode = "langtable-malformed-value"
	// ErrMalformedStructure indicates a close event without the context it closes.
	ErrMalformedStructure ErrorCode = "langtable-malformed-structure"
	// ErrXMLParse indicates the XML document could not be tokenized.
	ErrXMLParse ErrorCode = "xml-parse-error"
	// ErrLoadCanceled indicates the load was stopped by its context.
	ErrLoadCanceled ErrorCode = "langtable-load-canceled"
)

// Error returns the code itself.
func (c ErrorCode) Error() string {
	return string(c)
}

// Load describes a failed document load with optional element and position context.
//
//nolint:errname // public API name follows the domain operation.
type Load struct {
	Err      error
	Code     ErrorCode
	Message  string
	Document string
	Element  string
	Line     int
	Column   int
}

// New builds a Load error with a code and message.
func New(code ErrorCode, msg string) *Load {
	return &Load{Code: code, Message: msg}
}

// Newf formats a message and builds a Load error.
func Newf(code ErrorCode, format string, args ...any) *Load {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap builds a Load error that wraps cause.
func Wrap(code ErrorCode, msg string, cause error) *Load {
	return &Load{Code: code, Message: msg, Err: cause}
}

// Error formats the failure for display, including code, message, and context.
func (e *Load) Error() string {
	if e == nil {
		return "load <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Document != "" {
		b.WriteString(fmt.Sprintf(" in %s", e.Document))
	}
	if e.Element != "" {
		b.WriteString(fmt.Sprintf(" at <%s>", e.Element))
	}
	if e.Line > 0 && e.Column > 0 {
		b.WriteString(fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Load) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the ErrorCode of e.
func (e *Load) Is(target error) bool {
	if e == nil {
		return false
	}
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// AtElement records the element and position where the failure was detected.
// Fields already set are kept.
func (e *Load) AtElement(element string, line, column int) *Load {
	if e == nil {
		return nil
	}
	if e.Element == "" {
		e.Element = element
	}
	if e.Line == 0 && e.Column == 0 {
		e.Line = line
		e.Column = column
	}
	return e
}

// InDocument records the document system ID when not already set.
func (e *Load) InDocument(document string) *Load {
	if e == nil {
		return nil
	}
	if e.Document == "" {
		e.Document = document
	}
	return e
}

// AsLoad extracts the first Load error from err's chain.
func AsLoad(err error) (*Load, bool) {
	if err == nil {
		return nil, false
	}
	var load *Load
	if errors.As(err, &load) && load != nil {
		return load, true
	}
	return nil, false
}

// CodeOf returns the code of the first Load error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	load, ok := AsLoad(err)
	if !ok {
		return "", false
	}
	return load.Code, true
}
