package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

var (
	ingestCorpusDir string
	ingestOut       string
	ingestSeed      int64
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse the raw corpus into a JSON lines file",
	Long: `Walks the corpus directory, parses every article file (*-*.txt) and
writes the articles in shuffled order, one JSON object per line.

Files with fewer than three lines, a blank body or an unparseable date are
skipped and counted.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCorpusDir, "corpus", "", "corpus directory (default $CORPUS_DIR)")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "output file (default $LIVEDOOR_JSON)")
	ingestCmd.Flags().Int64Var(&ingestSeed, "seed", 0, "shuffle seed (default: time based)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	rt, err := requireRuntime()
	if err != nil {
		return err
	}

	opts := domain.LoadOptions{Root: pathOr(ingestCorpusDir, paths.CorpusDir)}
	if cmd.Flags().Changed("seed") {
		seed := ingestSeed
		opts.Seed = &seed
	}
	out := pathOr(ingestOut, paths.CorpusJSON)

	report, err := rt.Corpus().Ingest(cmd.Context(), opts, out)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Println(styles.Success.Render(fmt.Sprintf("Wrote %d articles to %s", report.Loaded, out)))
	cmd.Printf("  Files:   %d\n", report.Files)
	cmd.Printf("  Skipped: %d\n", report.Skipped)
	for _, s := range report.Skips {
		cmd.Printf("    %s\n", styles.Muted.Render(s.Reason))
	}
	return nil
}
