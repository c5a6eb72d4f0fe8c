package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/core/domain"
)

// previewRunes is the body prefix printed for each article.
const previewRunes = 200

// preview returns the first previewRunes runes of body followed by "...".
func preview(body string) string {
	r := []rune(body)
	if len(r) > previewRunes {
		r = r[:previewRunes]
	}
	return string(r) + "..."
}

// foldText keeps the first maxChars runes of body and wraps them into
// lines of at most width terminal cells.
func foldText(body string, width, maxChars int) string {
	r := []rune(body)
	if maxChars > 0 && len(r) > maxChars {
		r = r[:maxChars]
	}
	if width <= 0 {
		return string(r)
	}

	var lines []string
	var line strings.Builder
	cells := 0
	for _, c := range r {
		w := runewidth.RuneWidth(c)
		if cells+w > width && cells > 0 {
			lines = append(lines, line.String())
			line.Reset()
			cells = 0
		}
		line.WriteRune(c)
		cells += w
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// printArticle prints one "[i] (publisher): body..." line.
func printArticle(cmd *cobra.Command, position int, a domain.Article) {
	cmd.Printf("[%d] (%s): %s\n", position, styles.Label.Render(a.Publisher), preview(a.Body))
}

// printNeighbors prints a ranked neighbour list with folded previews.
func printNeighbors(cmd *cobra.Command, title string, neighbors []domain.Neighbor, articles map[string]domain.Article) {
	cmd.Println(styles.Title.Render(title))
	if len(neighbors) == 0 {
		cmd.Println("  No results found.")
		return
	}
	for i, n := range neighbors {
		a := articles[n.RecordID]
		cmd.Printf("  %d. %s dist=%.4f [%d] (%s)\n",
			i+1, styles.Score.Render(fmt.Sprintf("sim=%.4f", n.Similarity)), n.Distance,
			n.Index, styles.Label.Render(a.Publisher))
		for _, line := range strings.Split(foldText(a.Body, 60, previewRunes), "\n") {
			cmd.Printf("     %s\n", styles.Muted.Render(line))
		}
	}
}

// outputJSON prints v as indented JSON.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// articlesByID indexes a corpus by record id.
func articlesByID(articles []domain.Article) map[string]domain.Article {
	out := make(map[string]domain.Article, len(articles))
	for _, a := range articles {
		out[a.ID()] = a
	}
	return out
}

// joinNeighbors fails with domain.ErrNotFound when a neighbour has no
// matching corpus record.
func joinNeighbors(articles map[string]domain.Article, lists ...[]domain.Neighbor) error {
	for _, list := range lists {
		for _, n := range list {
			if _, ok := articles[n.RecordID]; !ok {
				return fmt.Errorf("%w: vector %d (%s) has no corpus record", domain.ErrNotFound, n.Index, n.RecordID)
			}
		}
	}
	return nil
}
