package langtable

import (
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/jacoelho/langtable/internal/source"
)

// DefaultDataDirs lists the directories searched when none are configured.
var DefaultDataDirs = []string{"/usr/share/langtable", "."}

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

// LoadOptions configures document discovery, parsing limits and logging.
// The zero value is valid; every With method returns a modified copy.
type LoadOptions struct {
	fsys             fs.FS
	logger           *slog.Logger
	dataDirs         []string
	maxDepth         intOption
	maxTokenSize     intOption
	sequential       bool
	requireDocuments bool
}

type resolvedLoadOptions struct {
	logger           *slog.Logger
	roots            []source.Root
	limits           xmlParseLimits
	sequential       bool
	requireDocuments bool
}

// NewLoadOptions returns a default, valid load options value.
func NewLoadOptions() LoadOptions {
	return LoadOptions{}
}

// Validate validates load options values.
func (o LoadOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithDataDirs sets the directories searched for documents, in order.
func (o LoadOptions) WithDataDirs(dirs ...string) LoadOptions {
	o.dataDirs = slices.Clone(dirs)
	return o
}

// WithFS searches only fsys for documents, ignoring data directories.
func (o LoadOptions) WithFS(fsys fs.FS) LoadOptions {
	o.fsys = fsys
	return o
}

// WithLogger sets the logger used for load progress (nil discards).
func (o LoadOptions) WithLogger(logger *slog.Logger) LoadOptions {
	o.logger = logger
	return o
}

// WithSequential loads territories, languages and keyboards one after another.
func (o LoadOptions) WithSequential(value bool) LoadOptions {
	o.sequential = value
	return o
}

// WithRequireDocuments makes a missing document a load error.
func (o LoadOptions) WithRequireDocuments(value bool) LoadOptions {
	o.requireDocuments = value
	return o
}

// WithMaxDepth sets the XML max depth limit (0 uses default).
func (o LoadOptions) WithMaxDepth(value int) LoadOptions {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxTokenSize sets the XML max character data size limit (0 uses default).
func (o LoadOptions) WithMaxTokenSize(value int) LoadOptions {
	o.maxTokenSize = intOption{value: value, set: true}
	return o
}

// DataDirs returns the configured data directories, or the defaults.
func (o LoadOptions) DataDirs() []string {
	if len(o.dataDirs) == 0 {
		return slices.Clone(DefaultDataDirs)
	}
	return slices.Clone(o.dataDirs)
}

func (o LoadOptions) withDefaults() (resolvedLoadOptions, error) {
	limits, err := resolveXMLParseLimits(o.maxDepth.resolved(), o.maxTokenSize.resolved())
	if err != nil {
		return resolvedLoadOptions{}, fmt.Errorf("xml limits: %w", err)
	}

	var roots []source.Root
	if o.fsys != nil {
		roots = []source.Root{{FS: o.fsys}}
	} else {
		for _, dir := range o.DataDirs() {
			if dir == "" {
				return resolvedLoadOptions{}, fmt.Errorf("data directory is empty")
			}
			roots = append(roots, source.DirRoot(dir))
		}
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return resolvedLoadOptions{
		logger:           logger,
		roots:            roots,
		limits:           limits,
		sequential:       o.sequential,
		requireDocuments: o.requireDocuments,
	}, nil
}
