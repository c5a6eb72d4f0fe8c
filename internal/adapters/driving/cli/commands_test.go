package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// prepare ingests and embeds a small corpus and returns the temp dir.
func prepare(t *testing.T) string {
	t.Helper()
	_, dir := setupTestRuntime(t)
	writeCorpus(t, dir, 3)

	_, err := execute(t, "ingest", "--seed", "1")
	require.NoError(t, err)
	_, err = execute(t, "embed")
	require.NoError(t, err)
	return dir
}

func TestIngestCmd(t *testing.T) {
	_, dir := setupTestRuntime(t)
	writeCorpus(t, dir, 3)
	bad := filepath.Join(dir, "corpus", "sports-watch", "sports-watch-9.txt")
	require.NoError(t, os.WriteFile(bad, []byte("http://example.com/\n"), 0644))

	out, err := execute(t, "ingest", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 6 articles")
	assert.Contains(t, out, "Files:   7")
	assert.Contains(t, out, "Skipped: 1")

	data, err := os.ReadFile(filepath.Join(dir, "livedoor.json"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 6)
}

func TestIngestCmd_SeedIsDeterministic(t *testing.T) {
	_, dir := setupTestRuntime(t)
	writeCorpus(t, dir, 3)
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	_, err := execute(t, "ingest", "--seed", "3", "-o", first)
	require.NoError(t, err)
	_, err = execute(t, "ingest", "--seed", "3", "--out", second)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestIngestCmd_MissingCorpus(t *testing.T) {
	_, dir := setupTestRuntime(t)

	_, err := execute(t, "ingest", "--corpus", filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
}

func TestEmbedCmd(t *testing.T) {
	rt, dir := setupTestRuntime(t)
	writeCorpus(t, dir, 3)
	_, err := execute(t, "ingest", "--seed", "1")
	require.NoError(t, err)

	out, err := execute(t, "embed")
	require.NoError(t, err)
	assert.Contains(t, out, "Embedded 6 articles")
	assert.Contains(t, out, "Dimensions: 64")
	assert.Contains(t, out, "Embedding time:")

	set, err := rt.store(filepath.Join(dir, "vectors.db")).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 6, set.Len())
}

func TestEmbedCmd_MissingCorpus(t *testing.T) {
	setupTestRuntime(t)

	_, err := execute(t, "embed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed failed")
}

func TestPairsCmd(t *testing.T) {
	prepare(t)

	out, err := execute(t, "pairs", "-k", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "🔗 Similarity:"))
	assert.Equal(t, 6, strings.Count(out, "..."))
}

func TestPairsCmd_JSON(t *testing.T) {
	prepare(t)

	out, err := execute(t, "pairs", "--top", "4", "--json")
	require.NoError(t, err)

	var pairs []pairJSON
	require.NoError(t, json.Unmarshal([]byte(out), &pairs))
	require.Len(t, pairs, 4)
	for i, p := range pairs {
		assert.Less(t, p.I.Index, p.J.Index)
		assert.NotEmpty(t, p.I.URL)
		assert.NotEmpty(t, p.J.Publisher)
		if i > 0 {
			assert.LessOrEqual(t, p.Score, pairs[i-1].Score)
		}
	}
}

func TestPairsCmd_KLargerThanPairCount(t *testing.T) {
	prepare(t)

	out, err := execute(t, "pairs", "-k", "100", "--json")
	require.NoError(t, err)

	var pairs []pairJSON
	require.NoError(t, json.Unmarshal([]byte(out), &pairs))
	assert.Len(t, pairs, 15)
}

func TestPairsCmd_CorpusMismatch(t *testing.T) {
	dir := prepare(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), nil, 0644))

	_, err := execute(t, "pairs", "--corpus-json", filepath.Join(dir, "other.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNeighborsCmd(t *testing.T) {
	prepare(t)

	out, err := execute(t, "neighbors", "2", "-k", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Target")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "Most similar (exact scan)")
	assert.Contains(t, out, "Nearest (HNSW)")
	assert.Contains(t, out, "Agreement:")
	assert.Contains(t, out, "3. ")
}

func TestNeighborsCmd_JSON(t *testing.T) {
	prepare(t)

	out, err := execute(t, "neighbors", "0", "-k", "2", "--json")
	require.NoError(t, err)

	var report domain.NeighborReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Similar, 2)
	assert.Len(t, report.Nearest, 2)
	assert.NotEmpty(t, report.Target)
	for _, n := range report.Similar {
		assert.NotEqual(t, 0, n.Index)
	}
}

func TestNeighborsCmd_IndexCache(t *testing.T) {
	dir := prepare(t)
	cache := filepath.Join(dir, "graph", "index.hnsw")

	_, err := execute(t, "neighbors", "1", "--index", cache)
	require.NoError(t, err)
	assert.FileExists(t, cache)

	_, err = execute(t, "neighbors", "1", "--index", cache)
	require.NoError(t, err)
}

func TestNeighborsCmd_InvalidIndex(t *testing.T) {
	prepare(t)

	_, err := execute(t, "neighbors", "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "neighbors", "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNeighborsCmd_RequiresArg(t *testing.T) {
	setupTestRuntime(t)

	_, err := execute(t, "neighbors")
	require.Error(t, err)
}

func TestQueryCmd(t *testing.T) {
	prepare(t)

	out, err := execute(t, "query", "サッカー", "日本代表", "-k", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Query: ")
	assert.Contains(t, out, "サッカー 日本代表")
	assert.Contains(t, out, "Time taken:")
	assert.Contains(t, out, "Agreement:")
}

func TestQueryCmd_JSON(t *testing.T) {
	prepare(t)

	out, err := execute(t, "query", "パソコン", "--json", "--top", "3")
	require.NoError(t, err)

	var report domain.NeighborReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Similar, 3)
	assert.Empty(t, report.Target)
}

func TestQueryCmd_BlankText(t *testing.T) {
	prepare(t)

	_, err := execute(t, "query", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
