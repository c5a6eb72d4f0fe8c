package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

var (
	neighborsK          int
	neighborsJSON       bool
	neighborsCorpusJSON string
	neighborsVectors    string
	neighborsIndex      string
)

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <doc-index>",
	Short: "Query the HNSW index for one article",
	Long: `Runs two queries for the stored vector at doc-index: an exhaustive
similarity scan and an approximate HNSW nearest-neighbour search. The article
itself is excluded. The agreement between the two lists is printed; values
below 100% are approximate-search misses.

With --index the built graph is saved to (and reused from) that file.`,
	Args: cobra.ExactArgs(1),
	RunE: runNeighbors,
}

func init() {
	neighborsCmd.Flags().IntVarP(&neighborsK, "top", "k", 5, "number of neighbours")
	neighborsCmd.Flags().BoolVar(&neighborsJSON, "json", false, "output results as JSON")
	neighborsCmd.Flags().StringVar(&neighborsCorpusJSON, "corpus-json", "", "corpus file (default $LIVEDOOR_JSON)")
	neighborsCmd.Flags().StringVar(&neighborsVectors, "vectors", "", "vector file (default $VECTORS_DB)")
	neighborsCmd.Flags().StringVar(&neighborsIndex, "index", "", "HNSW graph cache file (default $LIVEDOOR_INDEX)")
	rootCmd.AddCommand(neighborsCmd)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	position, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: doc-index must be an integer: %q", domain.ErrInvalidInput, args[0])
	}

	rt, err := requireRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	articles, err := rt.Corpus().Read(ctx, pathOr(neighborsCorpusJSON, paths.CorpusJSON))
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	byID := articlesByID(articles)

	similarity, err := rt.Similarity(
		pathOr(neighborsVectors, paths.VectorsDB),
		pathOr(neighborsIndex, paths.IndexPath),
	)
	if err != nil {
		return err
	}
	report, err := similarity.Neighbors(ctx, position, neighborsK)
	if err != nil {
		return fmt.Errorf("neighbors failed: %w", err)
	}
	if err := joinNeighbors(byID, report.Similar, report.Nearest); err != nil {
		return err
	}

	if neighborsJSON {
		return outputJSON(cmd, report)
	}

	if target, ok := byID[report.Target]; ok {
		cmd.Println(styles.Title.Render("Target"))
		printArticle(cmd, position, target)
		cmd.Println()
	}
	printReport(cmd, report, byID)
	return nil
}

// printReport prints both neighbour lists and their agreement.
func printReport(cmd *cobra.Command, report *domain.NeighborReport, byID map[string]domain.Article) {
	printNeighbors(cmd, "Most similar (exact scan)", report.Similar, byID)
	cmd.Println()
	printNeighbors(cmd, "Nearest (HNSW)", report.Nearest, byID)
	cmd.Println()

	agreement := fmt.Sprintf("Agreement: %.0f%%", report.Agreement*100)
	if report.Agreement < 1 {
		cmd.Println(styles.Warning.Render(agreement))
		return
	}
	cmd.Println(styles.Success.Render(agreement))
}
