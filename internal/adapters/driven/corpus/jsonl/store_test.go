package jsonl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

func sampleArticles() []domain.Article {
	return []domain.Article{
		{URL: "http://x/1", Publisher: "it-life-hack", CreatedAt: 1325343600, Body: "Title Para one Para two"},
		{URL: "http://x/2", Publisher: "sports-watch", CreatedAt: 1325343601, Body: "日本語の本文 <b>&</b>"},
		{URL: "http://x/3", Publisher: "topic-news", CreatedAt: 0, Body: "\"quoted\" body"},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livedoor.json")
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, path, sampleArticles()))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, sampleArticles(), got)
}

func TestStore_Write_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livedoor.json")
	require.NoError(t, NewStore().Write(context.Background(), path, sampleArticles()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Equal(t, 3, strings.Count(text, "\n"))
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.Contains(t, text, "日本語の本文 <b>&</b>")
	assert.NotContains(t, text, `\u`)

	first := strings.SplitN(text, "\n", 2)[0]
	assert.Equal(t,
		`{"url":"http://x/1","publisher":"it-life-hack","created_at":1325343600,"body":"Title Para one Para two"}`,
		first)
}

func TestStore_Write_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livedoor.json")
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, path, sampleArticles()))
	require.NoError(t, store.Write(ctx, path, sampleArticles()[:1]))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_Write_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "empty.json")
	store := NewStore()

	require.NoError(t, store.Write(context.Background(), path, nil))

	got, err := store.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Read_MissingFile(t *testing.T) {
	_, err := NewStore().Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestStore_Read_DecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine string
	}{
		{"invalid json", "{\"url\":\"a\"}\nnot json\n", "line 2"},
		{"blank line", "{\"url\":\"a\"}\n\n{\"url\":\"b\"}\n", "line 2"},
		{"array", "[1,2]\n", "line 1"},
		{"two objects on one line", "{\"url\":\"a\"} {\"url\":\"b\"}\n", "line 1"},
		{"wrong field type", "{\"created_at\":\"soon\"}\n", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewStore().Read(context.Background(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDecode)
			assert.Contains(t, err.Error(), tt.wantLine)
		})
	}
}

func TestStore_Iter_StopsEarly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livedoor.json")
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, path, sampleArticles()))

	var urls []string
	for article, err := range store.Iter(ctx, path) {
		require.NoError(t, err)
		urls = append(urls, article.URL)
		if len(urls) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"http://x/1", "http://x/2"}, urls)
}

func TestStore_Iter_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livedoor.json")
	require.NoError(t, NewStore().Write(context.Background(), path, sampleArticles()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Read(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
