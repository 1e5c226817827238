package xmlstream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

var (
	errNilReader     = errors.New("nil XML reader")
	errTokenTooLarge = errors.New("token exceeds MaxTokenSize")
	errDepthLimit    = errors.New("element depth exceeds MaxDepth")
)

// ErrTokenTooLarge reports character data larger than the MaxTokenSize limit.
var ErrTokenTooLarge = errTokenTooLarge

// ErrDepthLimit reports element nesting deeper than the MaxDepth limit.
var ErrDepthLimit = errDepthLimit

// SyntaxError reports a well-formedness or limit error with location context.
type SyntaxError struct {
	Err    error
	Path   string
	Offset int64
	Line   int
	Column int
}

// Error formats the error with its position and element path.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "xml syntax error <nil>"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("xml syntax error at line %d", e.Line))
	if e.Column > 0 {
		b.WriteString(fmt.Sprintf(", column %d", e.Column))
	}
	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (r *Reader) wrapSyntaxError(line, column int, err error) error {
	if err == nil {
		return nil
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return err
	}
	var xmlErr *xml.SyntaxError
	if errors.As(err, &xmlErr) {
		// encoding/xml reports the line where it stopped.
		line = xmlErr.Line
		column = 0
		err = errors.New(xmlErr.Msg)
	}
	return &SyntaxError{
		Offset: r.dec.InputOffset(),
		Line:   line,
		Column: column,
		Path:   r.path(),
		Err:    err,
	}
}
