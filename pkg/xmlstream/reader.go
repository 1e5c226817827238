package xmlstream

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const readerBufferSize = 256 * 1024

// Reader provides a streaming XML event interface.
type Reader struct {
	dec        *xml.Decoder
	elemStack  []QName
	opts       options
	lastLine   int
	lastColumn int
}

// NewReader creates a new streaming reader for r.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	if r == nil {
		return nil, errNilReader
	}
	reader := &Reader{}
	reader.reset(r, buildOptions(opts...))
	return reader, nil
}

// Reset prepares the reader for a new input stream.
func (r *Reader) Reset(src io.Reader, opts ...Option) error {
	if r == nil || src == nil {
		return errNilReader
	}
	r.reset(src, buildOptions(opts...))
	return nil
}

func (r *Reader) reset(src io.Reader, opts options) {
	dec := xml.NewDecoder(bufio.NewReaderSize(src, readerBufferSize))
	dec.Strict = opts.strict
	dec.CharsetReader = charsetReader
	r.dec = dec
	r.opts = opts
	r.elemStack = r.elemStack[:0]
	r.lastLine = 0
	r.lastColumn = 0
}

// Next returns the next XML event. It returns io.EOF after the document ends.
// Comments, processing instructions and directives are skipped.
func (r *Reader) Next() (Event, error) {
	if r == nil || r.dec == nil {
		return Event{}, errNilReader
	}
	for {
		line, column := r.dec.InputPos()
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, r.wrapSyntaxError(line, column, err)
		}
		r.lastLine = line
		r.lastColumn = column

		switch t := tok.(type) {
		case xml.StartElement:
			if r.opts.maxDepth > 0 && len(r.elemStack) >= r.opts.maxDepth {
				return Event{}, r.wrapSyntaxError(line, column, errDepthLimit)
			}
			name := QName{Namespace: t.Name.Space, Local: t.Name.Local}
			r.elemStack = append(r.elemStack, name)
			return Event{
				Kind:   EventStartElement,
				Name:   name,
				Line:   line,
				Column: column,
				Depth:  len(r.elemStack),
			}, nil

		case xml.EndElement:
			depth := len(r.elemStack)
			if depth > 0 {
				r.elemStack = r.elemStack[:depth-1]
			}
			return Event{
				Kind:   EventEndElement,
				Name:   QName{Namespace: t.Name.Space, Local: t.Name.Local},
				Line:   line,
				Column: column,
				Depth:  depth,
			}, nil

		case xml.CharData:
			if r.opts.maxTokenSize > 0 && len(t) > r.opts.maxTokenSize {
				return Event{}, r.wrapSyntaxError(line, column, errTokenTooLarge)
			}
			return Event{
				Kind:   EventCharData,
				Text:   t,
				Line:   line,
				Column: column,
				Depth:  len(r.elemStack),
			}, nil
		}
	}
}

// CurrentPos returns the line and column of the most recent event.
func (r *Reader) CurrentPos() (line, column int) {
	if r == nil {
		return 0, 0
	}
	return r.lastLine, r.lastColumn
}

// InputOffset returns the current byte position in the input stream.
func (r *Reader) InputOffset() int64 {
	if r == nil || r.dec == nil {
		return 0
	}
	return r.dec.InputOffset()
}

// Depth returns the number of open elements.
func (r *Reader) Depth() int {
	if r == nil {
		return 0
	}
	return len(r.elemStack)
}

func (r *Reader) path() string {
	if len(r.elemStack) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range r.elemStack {
		b.WriteByte('/')
		b.WriteString(name.Local)
	}
	return b.String()
}
