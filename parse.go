package langtable

import (
	"context"
	"fmt"
	"io"

	lterrors "github.com/jacoelho/langtable/errors"
	"github.com/jacoelho/langtable/internal/grammar"
	"github.com/jacoelho/langtable/internal/model"
	"github.com/jacoelho/langtable/pkg/xmlstream"
)

// committer is a grammar handler that counts committed entities.
type committer interface {
	grammar.Handler
	Committed() int
}

// ParseKeyboards reads a keyboards document from r.
// On failure the returned table holds the entities committed before the error.
func ParseKeyboards(ctx context.Context, r io.Reader, opts LoadOptions) (*KeyboardTable, error) {
	table := model.NewTable[*Keyboard]()
	err := parseStandalone(ctx, r, opts, grammar.NewKeyboards(table), table.Finish)
	return table, err
}

// ParseTerritories reads a territories document from r.
// On failure the returned table holds the entities committed before the error.
func ParseTerritories(ctx context.Context, r io.Reader, opts LoadOptions) (*TerritoryTable, error) {
	table := model.NewTable[*Territory]()
	err := parseStandalone(ctx, r, opts, grammar.NewTerritories(table), table.Finish)
	return table, err
}

// ParseLanguages reads a languages document from r.
// On failure the returned table holds the entities committed before the error.
func ParseLanguages(ctx context.Context, r io.Reader, opts LoadOptions) (*LanguageTable, error) {
	table := model.NewTable[*Language]()
	err := parseStandalone(ctx, r, opts, grammar.NewLanguages(table), table.Finish)
	return table, err
}

func parseStandalone(ctx context.Context, r io.Reader, opts LoadOptions, h grammar.Handler, finish func(model.State, string, error)) error {
	resolved, err := opts.withDefaults()
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	if err := parseDocument(ctx, r, h, resolved.limits); err != nil {
		finish(model.StateIncomplete, "", err)
		return err
	}
	finish(model.StateComplete, "", nil)
	return nil
}

func parseDocument(ctx context.Context, r io.Reader, h grammar.Handler, limits xmlParseLimits) error {
	reader, err := xmlstream.NewReader(r, limits.options()...)
	if err != nil {
		return lterrors.Wrap(lterrors.ErrXMLParse, "open document", err)
	}
	return grammar.Run(ctx, reader, h)
}
