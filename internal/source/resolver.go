package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Root is one search location. Dir labels the location in system IDs.
type Root struct {
	FS  fs.FS
	Dir string
}

// DirRoot returns a root backed by the operating system directory dir.
func DirRoot(dir string) Root {
	return Root{FS: os.DirFS(dir), Dir: dir}
}

// Document is an opened document stream.
type Document struct {
	io.ReadCloser
	SystemID    string
	Compression Compression
}

// Resolver opens documents by logical name.
type Resolver interface {
	Resolve(name string) (*Document, error)
}

// FSResolver resolves documents from ordered roots with strict path validation.
type FSResolver struct {
	roots []Root
}

// NewFSResolver creates a resolver searching roots in order.
func NewFSResolver(roots ...Root) *FSResolver {
	return &FSResolver{roots: roots}
}

// Roots returns the search roots.
func (r *FSResolver) Roots() []Root {
	if r == nil {
		return nil
	}
	return r.roots
}

// Resolve implements Resolver. In every root the plain file is tried before
// its .gz and .zst forms; only regular files match. When nothing matches the
// returned error wraps fs.ErrNotExist.
func (r *FSResolver) Resolve(name string) (*Document, error) {
	if r == nil || len(r.roots) == 0 {
		return nil, fmt.Errorf("no search roots configured")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	for _, root := range r.roots {
		if root.FS == nil {
			continue
		}
		for _, c := range candidates {
			candidate := name + c.Suffix()
			if !isRegular(root.FS, candidate) {
				continue
			}
			f, err := root.FS.Open(candidate)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, fmt.Errorf("open %s: %w", systemID(root, candidate), err)
			}
			rc, err := decode(f, c)
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", systemID(root, candidate), err)
			}
			return &Document{ReadCloser: rc, SystemID: systemID(root, candidate), Compression: c}, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", name, fs.ErrNotExist)
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("document name is empty")
	}
	if strings.Contains(name, "\\") {
		return fmt.Errorf("document name contains backslash: %q", name)
	}
	if !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("invalid document name: %q", name)
	}
	return nil
}

func isRegular(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func systemID(root Root, name string) string {
	if root.Dir == "" {
		return name
	}
	return path.Join(root.Dir, name)
}
