package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	queryK          int
	queryJSON       bool
	queryCorpusJSON string
	queryVectors    string
	queryIndex      string
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Search the index with free text",
	Long: `Embeds the query text with the configured provider and runs both index
queries against the stored vectors. The provider must be the one that
produced the vector file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryK, "top", "k", 5, "number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().StringVar(&queryCorpusJSON, "corpus-json", "", "corpus file (default $LIVEDOOR_JSON)")
	queryCmd.Flags().StringVar(&queryVectors, "vectors", "", "vector file (default $VECTORS_DB)")
	queryCmd.Flags().StringVar(&queryIndex, "index", "", "HNSW graph cache file (default $LIVEDOOR_INDEX)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	rt, err := requireRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	vectorsPath := pathOr(queryVectors, paths.VectorsDB)

	articles, err := rt.Corpus().Read(ctx, pathOr(queryCorpusJSON, paths.CorpusJSON))
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	byID := articlesByID(articles)

	pipeline, err := rt.Embedding(vectorsPath)
	if err != nil {
		return fmt.Errorf("embedding unavailable: %w", err)
	}
	start := time.Now()
	vector, err := pipeline.EmbedQuery(ctx, text)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	elapsed := time.Since(start)

	similarity, err := rt.Similarity(vectorsPath, pathOr(queryIndex, paths.IndexPath))
	if err != nil {
		return err
	}
	report, err := similarity.Query(ctx, vector, queryK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if err := joinNeighbors(byID, report.Similar, report.Nearest); err != nil {
		return err
	}

	if queryJSON {
		return outputJSON(cmd, report)
	}

	cmd.Printf("Query: %s\n", styles.Title.Render(text))
	cmd.Printf("Time taken: %.4f seconds\n\n", elapsed.Seconds())
	printReport(cmd, report, byID)
	return nil
}
