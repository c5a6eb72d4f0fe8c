package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand"
	"time"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driven"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/ports/driving"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService loads article files into a shuffled corpus.
type CorpusService struct {
	factory    driven.ConnectorFactory
	normaliser driven.Normaliser
	store      driven.CorpusStore
}

// NewCorpusService creates a new corpus service.
// The store is only needed by Ingest and Read.
func NewCorpusService(
	factory driven.ConnectorFactory,
	normaliser driven.Normaliser,
	store driven.CorpusStore,
) *CorpusService {
	return &CorpusService{
		factory:    factory,
		normaliser: normaliser,
		store:      store,
	}
}

// Load parses every article file in shuffled order.
func (s *CorpusService) Load(ctx context.Context, opts domain.LoadOptions) ([]domain.Article, *domain.LoadReport, error) {
	logger.Section("Corpus Load")

	report := &domain.LoadReport{}
	var articles []domain.Article
	err := s.walk(ctx, opts, report, func(a domain.Article) bool {
		articles = append(articles, a)
		return true
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Loaded %d of %d files (%d skipped)", report.Loaded, report.Files, report.Skipped)
	return articles, report, nil
}

// Iter yields articles as they are parsed. A fatal error is yielded once
// with a zero Article and ends the sequence.
func (s *CorpusService) Iter(ctx context.Context, opts domain.LoadOptions) iter.Seq2[domain.Article, error] {
	return func(yield func(domain.Article, error) bool) {
		stopped := false
		err := s.walk(ctx, opts, &domain.LoadReport{}, func(a domain.Article) bool {
			if !yield(a, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(domain.Article{}, err)
		}
	}
}

// Ingest loads the corpus and writes it to outPath.
func (s *CorpusService) Ingest(ctx context.Context, opts domain.LoadOptions, outPath string) (*domain.LoadReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("ingest: corpus store not configured")
	}

	articles, report, err := s.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, outPath, articles); err != nil {
		return nil, fmt.Errorf("write corpus: %w", err)
	}

	logger.Info("Wrote %d articles to %s", len(articles), outPath)
	return report, nil
}

// Read returns a previously written corpus.
func (s *CorpusService) Read(ctx context.Context, path string) ([]domain.Article, error) {
	if s.store == nil {
		return nil, fmt.Errorf("read: corpus store not configured")
	}
	return s.store.Read(ctx, path)
}

// walk lists, shuffles and parses the corpus, calling emit for each
// article until emit returns false. Malformed files and exact duplicates of
// an earlier article are recorded in report.
func (s *CorpusService) walk(
	ctx context.Context,
	opts domain.LoadOptions,
	report *domain.LoadReport,
	emit func(domain.Article) bool,
) error {
	conn, err := s.factory.Create(opts.Root)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	if err := conn.Validate(ctx); err != nil {
		return fmt.Errorf("validate %s: %w", opts.Root, err)
	}

	paths, err := conn.List(ctx)
	if err != nil {
		return fmt.Errorf("list %s: %w", opts.Root, err)
	}
	shuffle(paths, opts.Seed)
	report.Files = len(paths)
	logger.Debug("Found %d article files under %s", len(paths), opts.Root)

	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := conn.Read(ctx, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		result, err := s.normaliser.Normalise(ctx, raw)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedRecord) {
				report.AddSkip(path, err)
				logger.Warn("Skipping %v", err)
				continue
			}
			return fmt.Errorf("normalise %s: %w", path, err)
		}

		id := result.Article.ID()
		if first, ok := seen[id]; ok {
			err := fmt.Errorf("%s: %w of %s", path, domain.ErrDuplicateRecord, first)
			report.AddSkip(path, err)
			logger.Warn("Skipping %v", err)
			continue
		}
		seen[id] = path

		report.Loaded++
		if !emit(result.Article) {
			return nil
		}
	}
	return nil
}

// shuffle permutes paths in place. A nil seed draws one from the clock.
func shuffle(paths []string, seed *int64) {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = time.Now().UnixNano()
	}
	logger.Debug("Shuffle seed: %d", s)

	rng := rand.New(rand.NewSource(s)) //nolint:gosec // ordering only
	rng.Shuffle(len(paths), func(i, j int) {
		paths[i], paths[j] = paths[j], paths[i]
	})
}
