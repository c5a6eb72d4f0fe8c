package hnsw

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	coderhnsw "github.com/coder/hnsw"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// ErrStaleIndex is returned by Load when the saved graph was built from a
// different vector set or with different parameters.
var ErrStaleIndex = errors.New("index does not match vector set")

// Save writes the fingerprint followed by the exported graph.
func (x *Index) Save(w io.Writer) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	var header [8]byte
	binary.LittleEndian.PutUint64(header[:], fingerprint(x.ids, x.vectors, x.cfg))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := x.graph.Export(w); err != nil {
		return fmt.Errorf("export graph: %w", err)
	}
	return nil
}

// SaveFile writes the index to path, replacing any existing file.
func (x *Index) SaveFile(path string) error {
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
	if err := x.Save(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: flush %s: %w", domain.ErrIO, path, err)
	}
	return f.Close()
}

// Load restores a graph saved by Save for the same set and config.
func Load(r io.Reader, set *domain.VectorSet, cfg Config) (*Index, error) {
	idx, err := newIndex(set, cfg)
	if err != nil {
		return nil, err
	}

	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrDecode, err)
	}
	if binary.LittleEndian.Uint64(header[:]) != fingerprint(idx.ids, idx.vectors, idx.cfg) {
		return nil, ErrStaleIndex
	}

	g := coderhnsw.NewGraph[int]()
	if err := g.Import(r); err != nil {
		return nil, fmt.Errorf("%w: import graph: %w", domain.ErrDecode, err)
	}
	if g.Len() != idx.Len() {
		return nil, fmt.Errorf("%w: graph has %d nodes, set has %d", ErrStaleIndex, g.Len(), idx.Len())
	}
	g.EfSearch = idx.cfg.EfSearch
	idx.graph = g
	return idx, nil
}

// LoadFile opens path and calls Load. A missing file yields an error
// matching fs.ErrNotExist.
func LoadFile(path string, set *domain.VectorSet, cfg Config) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrIO, path, err)
	}
	defer f.Close()
	return Load(bufio.NewReader(f), set, cfg)
}

// fingerprint hashes the ids, vectors and graph parameters.
func fingerprint(ids []string, vectors [][]float32, cfg Config) uint64 {
	d := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(cfg.M))
	d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(cfg.Ml))
	d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(cfg.Seed))
	d.Write(buf[:])

	for i, id := range ids {
		d.WriteString(id)
		d.Write([]byte{0})
		for _, f := range vectors[i] {
			binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(f))
			d.Write(buf[:4])
		}
	}
	return d.Sum64()
}
