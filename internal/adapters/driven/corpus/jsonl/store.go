// Package jsonl persists a corpus as line-delimited JSON, one article per line.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

// maxLineSize bounds a single encoded article.
const maxLineSize = 16 * 1024 * 1024

// Store reads and writes JSONL corpus files.
type Store struct{}

// NewStore creates a new JSONL corpus store.
func NewStore() *Store {
	return &Store{}
}

// Write replaces the file at path. Non-ASCII characters and HTML
// metacharacters are written as-is.
func (s *Store) Write(ctx context.Context, path string, articles []domain.Article) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create directory: %w", domain.ErrIO, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", domain.ErrIO, path, err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for i := range articles {
		if err := ctx.Err(); err != nil {
			f.Close()
			return err
		}
		// Encode appends the newline terminator.
		if err := enc.Encode(&articles[i]); err != nil {
			f.Close()
			return fmt.Errorf("%w: write line %d: %w", domain.ErrIO, i+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: flush %s: %w", domain.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrIO, path, err)
	}
	return nil
}

// Read returns every article in file order.
func (s *Store) Read(ctx context.Context, path string) ([]domain.Article, error) {
	var articles []domain.Article
	for article, err := range s.Iter(ctx, path) {
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Iter streams articles from path. The first error ends the sequence.
func (s *Store) Iter(ctx context.Context, path string) iter.Seq2[domain.Article, error] {
	return func(yield func(domain.Article, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(domain.Article{}, fmt.Errorf("%w: open %s: %w", domain.ErrIO, path, err))
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			if err := ctx.Err(); err != nil {
				yield(domain.Article{}, err)
				return
			}
			article, err := decodeLine(scanner.Bytes())
			if err != nil {
				yield(domain.Article{}, fmt.Errorf("%w: line %d: %w", domain.ErrDecode, lineNo, err))
				return
			}
			if !yield(article, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(domain.Article{}, fmt.Errorf("%w: read %s: %w", domain.ErrIO, path, err))
		}
	}
}

// decodeLine decodes exactly one JSON object. Blank lines, arrays, scalars
// and trailing data are rejected.
func decodeLine(line []byte) (domain.Article, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return domain.Article{}, errors.New("empty line")
	}
	if trimmed[0] != '{' {
		return domain.Article{}, errors.New("not a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var article domain.Article
	if err := dec.Decode(&article); err != nil {
		return domain.Article{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Article{}, errors.New("trailing data after object")
	}
	return article, nil
}
