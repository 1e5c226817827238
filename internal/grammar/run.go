package grammar

import (
	"context"
	"errors"
	"io"

	lterrors "github.com/jacoelho/langtable/errors"
	"github.com/jacoelho/langtable/pkg/xmlstream"
)

// Handler consumes the events of one document family.
type Handler interface {
	StartElement(local string) error
	EndElement(local string) error
	CharData(text []byte)
}

// Run feeds every event from r to h until the document ends.
// The context is checked before each event; a canceled load returns ErrLoadCanceled.
func Run(ctx context.Context, r *xmlstream.Reader, h Handler) error {
	for {
		if err := ctx.Err(); err != nil {
			line, column := r.CurrentPos()
			return lterrors.Wrap(lterrors.ErrLoadCanceled, "load canceled", err).AtElement("", line, column)
		}
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return lterrors.Wrap(lterrors.ErrXMLParse, "read event", err)
		}

		switch ev.Kind {
		case xmlstream.EventStartElement:
			err = h.StartElement(ev.Name.Local)
		case xmlstream.EventEndElement:
			err = h.EndElement(ev.Name.Local)
		case xmlstream.EventCharData:
			h.CharData(ev.Text)
		}
		if err != nil {
			if load, ok := lterrors.AsLoad(err); ok {
				load.AtElement(ev.Name.Local, ev.Line, ev.Column)
			}
			return err
		}
	}
}
