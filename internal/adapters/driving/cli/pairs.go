package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

var (
	pairsK          int
	pairsJSON       bool
	pairsCorpusJSON string
	pairsVectors    string
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Print the most similar article pairs",
	Long: `Computes the exact cosine similarity of every pair of stored vectors and
prints the top pairs with a preview of both articles.

The scan is O(n²) over the whole corpus.`,
	Args: cobra.NoArgs,
	RunE: runPairs,
}

func init() {
	pairsCmd.Flags().IntVarP(&pairsK, "top", "k", 50, "number of pairs")
	pairsCmd.Flags().BoolVar(&pairsJSON, "json", false, "output results as JSON")
	pairsCmd.Flags().StringVar(&pairsCorpusJSON, "corpus-json", "", "corpus file (default $LIVEDOOR_JSON)")
	pairsCmd.Flags().StringVar(&pairsVectors, "vectors", "", "vector file (default $VECTORS_DB)")
	rootCmd.AddCommand(pairsCmd)
}

// pairJSON is the --json form of one pair.
type pairJSON struct {
	Score float64     `json:"score"`
	I     pairArticle `json:"i"`
	J     pairArticle `json:"j"`
}

type pairArticle struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
}

func runPairs(cmd *cobra.Command, _ []string) error {
	rt, err := requireRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	articles, err := rt.Corpus().Read(ctx, pathOr(pairsCorpusJSON, paths.CorpusJSON))
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	byID := articlesByID(articles)

	similarity, err := rt.Similarity(pathOr(pairsVectors, paths.VectorsDB), "")
	if err != nil {
		return err
	}
	pairs, err := similarity.TopPairs(ctx, pairsK)
	if err != nil {
		return fmt.Errorf("pairs failed: %w", err)
	}

	for _, p := range pairs {
		for _, id := range []string{p.RecordI, p.RecordJ} {
			if _, ok := byID[id]; !ok {
				return fmt.Errorf("%w: record %s has no corpus article", domain.ErrNotFound, id)
			}
		}
	}

	if pairsJSON {
		out := make([]pairJSON, len(pairs))
		for i, p := range pairs {
			out[i] = pairJSON{
				Score: p.Score,
				I:     toPairArticle(p.I, byID[p.RecordI]),
				J:     toPairArticle(p.J, byID[p.RecordJ]),
			}
		}
		return outputJSON(cmd, out)
	}

	if len(pairs) == 0 {
		cmd.Println("No pairs found.")
		return nil
	}
	for _, p := range pairs {
		cmd.Println()
		cmd.Println(styles.Score.Render(fmt.Sprintf("🔗 Similarity: %.4f", p.Score)))
		printArticle(cmd, p.I, byID[p.RecordI])
		printArticle(cmd, p.J, byID[p.RecordJ])
	}
	return nil
}

func toPairArticle(index int, a domain.Article) pairArticle {
	return pairArticle{Index: index, ID: a.ID(), URL: a.URL, Publisher: a.Publisher}
}
