package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestLoadErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		e    Load
	}{
		{
			name: "message only",
			e:    Load{Code: ErrMalformedValue, Message: "rank is not a number"},
			want: "[langtable-malformed-value] rank is not a number",
		},
		{
			name: "with document",
			e:    Load{Code: ErrAbsentDocument, Message: "no readable document", Document: "keyboards.xml"},
			want: "[langtable-absent-document] no readable document in keyboards.xml",
		},
		{
			name: "with element and position",
			e: Load{
				Code:    ErrMalformedStructure,
				Message: "association without id",
				Element: "language",
				Line:    3,
				Column:  7,
			},
			want: "[langtable-malformed-structure] association without id at <language> (line 3, column 7)",
		},
		{
			name: "with cause",
			e: Load{
				Code:     ErrXMLParse,
				Message:  "read event",
				Document: "/usr/share/langtable/languages.xml.gz",
				Err:      io.ErrUnexpectedEOF,
			},
			want: "[xml-parse-error] read event in /usr/share/langtable/languages.xml.gz: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadNilError(t *testing.T) {
	var e *Load
	if got := e.Error(); got != "load <nil>" {
		t.Fatalf("Error() = %q, want %q", got, "load <nil>")
	}
	if e.Unwrap() != nil {
		t.Fatalf("Unwrap() = %v, want nil", e.Unwrap())
	}
	if e.AtElement("x", 1, 1) != nil {
		t.Fatalf("AtElement() on nil = non-nil, want nil")
	}
}

func TestNewf(t *testing.T) {
	e := Newf(ErrMalformedValue, "rank %q is not a number", "abc")
	if e.Code != ErrMalformedValue {
		t.Fatalf("Code = %q, want %q", e.Code, ErrMalformedValue)
	}
	if e.Message != `rank "abc" is not a number` {
		t.Fatalf("Message = %q, want %q", e.Message, `rank "abc" is not a number`)
	}
}

func TestLoadIsCode(t *testing.T) {
	err := fmt.Errorf("load: %w", New(ErrMalformedValue, "bad rank"))
	if !errors.Is(err, ErrMalformedValue) {
		t.Fatalf("errors.Is(%v, ErrMalformedValue) = false, want true", err)
	}
	if errors.Is(err, ErrMalformedStructure) {
		t.Fatalf("errors.Is(%v, ErrMalformedStructure) = true, want false", err)
	}
}

func TestLoadUnwrapCause(t *testing.T) {
	err := Wrap(ErrXMLParse, "read event", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("errors.Is(%v, io.ErrUnexpectedEOF) = false, want true", err)
	}
	if !errors.Is(err, ErrXMLParse) {
		t.Fatalf("errors.Is(%v, ErrXMLParse) = false, want true", err)
	}
}

func TestAtElementKeepsFirstContext(t *testing.T) {
	e := New(ErrMalformedStructure, "entity without identifier").AtElement("keyboard", 4, 2)
	e.AtElement("keyboards", 9, 1)
	if e.Element != "keyboard" || e.Line != 4 || e.Column != 2 {
		t.Fatalf("context = %s %d:%d, want keyboard 4:2", e.Element, e.Line, e.Column)
	}
	e.InDocument("keyboards.xml").InDocument("other.xml")
	if e.Document != "keyboards.xml" {
		t.Fatalf("Document = %q, want %q", e.Document, "keyboards.xml")
	}
}

func TestAsLoad(t *testing.T) {
	wrapped := fmt.Errorf("load territories: %w", New(ErrAbsentDocument, "no readable document"))
	got, ok := AsLoad(wrapped)
	if !ok {
		t.Fatalf("AsLoad() ok = false, want true")
	}
	if got.Code != ErrAbsentDocument {
		t.Fatalf("AsLoad() code = %q, want %q", got.Code, ErrAbsentDocument)
	}
	if _, ok := AsLoad(io.EOF); ok {
		t.Fatalf("AsLoad(io.EOF) ok = true, want false")
	}
	if _, ok := AsLoad(nil); ok {
		t.Fatalf("AsLoad(nil) ok = true, want false")
	}
	code, ok := CodeOf(errors.Join(io.EOF, wrapped))
	if !ok || code != ErrAbsentDocument {
		t.Fatalf("CodeOf() = %q, %v, want %q, true", code, ok, ErrAbsentDocument)
	}
}
