package langtable

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	lterrors "github.com/jacoelho/langtable/errors"
	"github.com/jacoelho/langtable/internal/grammar"
	"github.com/jacoelho/langtable/internal/model"
	"github.com/jacoelho/langtable/internal/source"
	"golang.org/x/sync/errgroup"
)

// Load reads the three documents from the configured data directories.
//
// The returned model is never nil unless the options are invalid. Documents
// that fail to parse leave their table in StateIncomplete and their errors are
// joined into the returned error. A missing document leaves its table in
// StateAbsent and is an error only when WithRequireDocuments is set.
func Load(ctx context.Context, opts LoadOptions) (*Model, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	m := NewModel()
	l := &loader{
		opts:     resolved,
		resolver: source.NewFSResolver(resolved.roots...),
		model:    m,
	}

	var g errgroup.Group
	if resolved.sequential {
		g.SetLimit(1)
	}
	errs := make([]error, len(model.Documents))
	for i, doc := range model.Documents {
		g.Go(func() error {
			errs[i] = l.load(ctx, doc)
			return nil
		})
	}
	_ = g.Wait()
	return m, errors.Join(errs...)
}

// LoadFS reads the three documents from the root of fsys.
func LoadFS(ctx context.Context, fsys fs.FS, opts LoadOptions) (*Model, error) {
	if fsys == nil {
		return nil, fmt.Errorf("load: nil filesystem")
	}
	return Load(ctx, opts.WithFS(fsys))
}

type loader struct {
	resolver source.Resolver
	model    *Model
	opts     resolvedLoadOptions
}

func (l *loader) bind(doc model.Document) (committer, func(model.State, string, error)) {
	switch doc {
	case model.DocumentKeyboards:
		return grammar.NewKeyboards(l.model.Keyboards), l.model.Keyboards.Finish
	case model.DocumentTerritories:
		return grammar.NewTerritories(l.model.Territories), l.model.Territories.Finish
	default:
		return grammar.NewLanguages(l.model.Languages), l.model.Languages.Finish
	}
}

func (l *loader) load(ctx context.Context, doc model.Document) (err error) {
	logger := l.opts.logger.With("document", doc.String())
	h, finish := l.bind(doc)
	name := doc.FileName()

	d, err := l.resolver.Resolve(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("no readable document found", "name", name)
			absent := lterrors.Wrap(lterrors.ErrAbsentDocument, "no readable document found", err).InDocument(name)
			finish(model.StateAbsent, "", absent)
			if l.opts.requireDocuments {
				return absent
			}
			return nil
		}
		logger.Error("document load failed", "name", name, "error", err)
		finish(model.StateIncomplete, "", err)
		return fmt.Errorf("load %s: %w", name, err)
	}
	defer func() {
		if closeErr := d.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", d.SystemID, closeErr))
		}
	}()

	logger.Info("reading document", "system_id", d.SystemID, "compression", d.Compression.String())
	start := time.Now()
	if err := parseDocument(ctx, d, h, l.opts.limits); err != nil {
		if load, ok := lterrors.AsLoad(err); ok {
			load.InDocument(d.SystemID)
		}
		finish(model.StateIncomplete, d.SystemID, err)
		logger.Error("document load failed", "system_id", d.SystemID, "committed", h.Committed(), "error", err)
		return err
	}
	finish(model.StateComplete, d.SystemID, nil)
	logger.Info("document loaded",
		"system_id", d.SystemID,
		"entities", h.Committed(),
		"duration", time.Since(start),
	)
	return nil
}
