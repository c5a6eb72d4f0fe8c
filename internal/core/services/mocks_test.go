package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockConnector serves raw documents from a map keyed by URI.
type mockConnector struct {
	docs        map[string]string
	validateErr error
	readErr     error
}

func (m *mockConnector) Type() string { return "mock" }

func (m *mockConnector) Validate(_ context.Context) error { return m.validateErr }

func (m *mockConnector) List(_ context.Context) ([]string, error) {
	uris := make([]string, 0, len(m.docs))
	for uri := range m.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris, nil
}

func (m *mockConnector) Read(_ context.Context, uri string) (*domain.RawDocument, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	content, ok := m.docs[uri]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.RawDocument{
		URI:      uri,
		Content:  []byte(content),
		Metadata: map[string]any{domain.MetadataPublisher: "topic-news"},
	}, nil
}

// mockFactory always returns the same connector.
type mockFactory struct {
	conn  driven.Connector
	roots []string
}

func (m *mockFactory) Create(root string) (driven.Connector, error) {
	m.roots = append(m.roots, root)
	return m.conn, nil
}

// mockEmbedder returns canned vectors keyed by text and records batch sizes.
type mockEmbedder struct {
	vectors map[string][]float32
	dims    int
	batches []int
	err     error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batches = append(m.batches, len(texts))
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return m.dims }
func (m *mockEmbedder) ModelName() string            { return "mock-model" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockCorpusStore holds a corpus in memory.
type mockCorpusStore struct {
	articles []domain.Article
	written  map[string][]domain.Article
}

func (m *mockCorpusStore) Write(_ context.Context, path string, articles []domain.Article) error {
	if m.written == nil {
		m.written = make(map[string][]domain.Article)
	}
	m.written[path] = articles
	return nil
}

func (m *mockCorpusStore) Read(_ context.Context, _ string) ([]domain.Article, error) {
	return m.articles, nil
}

func (m *mockCorpusStore) Iter(_ context.Context, _ string) iter.Seq2[domain.Article, error] {
	return func(yield func(domain.Article, error) bool) {
		for _, a := range m.articles {
			if !yield(a, nil) {
				return
			}
		}
	}
}

// mockIndex ranks with the exact functions and lets tests alter Nearest.
type mockIndex struct {
	set     *domain.VectorSet
	nearest func([]domain.Neighbor) []domain.Neighbor
	closed  bool
}

func (m *mockIndex) SearchSimilar(_ context.Context, query []float32, k int) ([]domain.Neighbor, error) {
	var out []domain.Neighbor
	for _, rec := range m.set.Records {
		s, err := CosineSimilarity(query, rec.Vector)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Neighbor{Index: rec.Position, RecordID: rec.RecordID, Similarity: s, Distance: 1 - s})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Similarity > out[b].Similarity })
	if k < len(out) {
		out = out[:k]
	}
	return out, nil
}

func (m *mockIndex) SearchNearest(ctx context.Context, query []float32, k int) ([]domain.Neighbor, error) {
	out, err := m.SearchSimilar(ctx, query, k)
	if err != nil || m.nearest == nil {
		return out, err
	}
	return m.nearest(out), nil
}

func (m *mockIndex) Dimension() int { return m.set.Dimension }
func (m *mockIndex) Len() int       { return m.set.Len() }
func (m *mockIndex) Close() error   { m.closed = true; return nil }

// mockBuilder hands out a mockIndex over the given set.
type mockBuilder struct {
	nearest func([]domain.Neighbor) []domain.Neighbor
	built   *mockIndex
}

func (m *mockBuilder) Build(_ context.Context, set *domain.VectorSet) (driven.VectorIndex, error) {
	m.built = &mockIndex{set: set, nearest: m.nearest}
	return m.built, nil
}

// mockAIValidator records the settings it was asked to validate.
type mockAIValidator struct {
	err    error
	called *domain.EmbeddingSettings
}

func (m *mockAIValidator) ValidateEmbedding(cfg *domain.EmbeddingSettings) error {
	m.called = cfg
	return m.err
}

var errMock = errors.New("mock failure")
