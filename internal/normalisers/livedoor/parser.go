package livedoor

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// minLines is the URL line, the timestamp line and at least one body line.
const minLines = 3

// timestampLayouts are tried in order. The first accepts "Z" and "+09:00",
// the second the colon-less "+0900" used by the corpus.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
}

// Parse reads an article file and parses it.
func Parse(r io.Reader, publisher string) (domain.Article, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	return ParseLines(SplitLines(data), publisher)
}

// SplitLines splits file content into lines. "\r\n" and "\r" are treated
// as line breaks and a final newline does not produce an empty line.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// ParseLines builds an article from the lines of one file.
// It fails with domain.ErrMalformedRecord when fewer than three lines are
// present, a line is not valid UTF-8, the timestamp does not parse or the
// body is blank.
func ParseLines(lines []string, publisher string) (domain.Article, error) {
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		if !utf8.ValidString(line) {
			return domain.Article{}, fmt.Errorf("%w: line %d is not valid UTF-8",
				domain.ErrMalformedRecord, i+1)
		}
		trimmed[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}

	if len(trimmed) < minLines {
		return domain.Article{}, fmt.Errorf("%w: %d lines, need at least %d",
			domain.ErrMalformedRecord, len(trimmed), minLines)
	}

	created, err := parseTimestamp(trimmed[1])
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}

	body := strings.Join(trimmed[2:], " ")
	if strings.TrimSpace(body) == "" {
		return domain.Article{}, fmt.Errorf("%w: empty body", domain.ErrMalformedRecord)
	}

	return domain.Article{
		URL:       trimmed[0],
		Publisher: publisher,
		CreatedAt: created.Unix(),
		Body:      body,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
