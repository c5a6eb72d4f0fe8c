// Package filesystem provides a connector over a local corpus directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// DefaultPattern matches article files and excludes LICENSE.txt, README.txt
// and CHANGES.txt that ship with the corpus.
const DefaultPattern = "*-*.txt"

// Connector walks a corpus directory recursively.
type Connector struct {
	rootPath string
	pattern  string
}

// New creates a connector rooted at rootPath using DefaultPattern.
func New(rootPath string) *Connector {
	return &Connector{
		rootPath: rootPath,
		pattern:  DefaultPattern,
	}
}

// WithPattern returns a copy of the connector matching base names
// against pattern (filepath.Match syntax).
func (c *Connector) WithPattern(pattern string) *Connector {
	return &Connector{rootPath: c.rootPath, pattern: pattern}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "filesystem"
}

// RootPath returns the corpus directory.
func (c *Connector) RootPath() string {
	return c.rootPath
}

// Validate checks the root exists and is a readable directory.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(c.rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: path does not exist: %s", domain.ErrIO, c.rootPath)
		}
		return fmt.Errorf("%w: cannot access path: %w", domain.ErrIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: path is not a directory: %s", domain.ErrIO, c.rootPath)
	}
	return nil
}

// List returns every matching file under the root, sorted lexically.
// Hidden files and directories are skipped.
func (c *Connector) List(ctx context.Context) ([]string, error) {
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != c.rootPath && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(c.pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: walk %s: %w", domain.ErrIO, c.rootPath, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Read loads one file. The publisher metadata is the name of the
// directory that contains it.
func (c *Connector) Read(ctx context.Context, uri string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrIO, uri, err)
	}

	return &domain.RawDocument{
		URI:     uri,
		Content: content,
		Metadata: map[string]any{
			domain.MetadataPublisher: filepath.Base(filepath.Dir(uri)),
			"filename":               filepath.Base(uri),
			"size":                   len(content),
		},
	}, nil
}

// isHidden reports whether a base name is a dotfile. "." and ".." are not hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
