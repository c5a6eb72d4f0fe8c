package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	embedCorpusJSON string
	embedVectors    string
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed every article body into the vector file",
	Long: `Reads the JSON lines corpus, embeds the article bodies in batches with the
configured provider and replaces the SQLite vector file.

The provider, model, batch size and truncation come from the settings file
(see "livedoor settings").`,
	Args: cobra.NoArgs,
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVar(&embedCorpusJSON, "corpus-json", "", "corpus file (default $LIVEDOOR_JSON)")
	embedCmd.Flags().StringVar(&embedVectors, "vectors", "", "vector file (default $VECTORS_DB)")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, _ []string) error {
	rt, err := requireRuntime()
	if err != nil {
		return err
	}

	vectorsPath := pathOr(embedVectors, paths.VectorsDB)
	pipeline, err := rt.Embedding(vectorsPath)
	if err != nil {
		return fmt.Errorf("embedding unavailable: %w", err)
	}

	bar := newProgressBar(cmd.OutOrStdout())
	start := time.Now()
	set, err := pipeline.EmbedCorpus(cmd.Context(), pathOr(embedCorpusJSON, paths.CorpusJSON), bar.update)
	bar.done()
	if err != nil {
		return fmt.Errorf("embed failed: %w", err)
	}

	cmd.Println(styles.Success.Render(fmt.Sprintf("Embedded %d articles into %s", set.Len(), vectorsPath)))
	cmd.Printf("  Model:      %s\n", set.Model)
	cmd.Printf("  Dimensions: %d\n", set.Dimension)
	cmd.Printf("Embedding time: %.4f seconds\n", time.Since(start).Seconds())
	return nil
}

// progressBar draws batch progress in place when w is a terminal.
type progressBar struct {
	w     io.Writer
	bar   progress.Model
	shown bool
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// update matches driving.ProgressFunc.
func (p *progressBar) update(done, total int) {
	if !isTerminal(p.w) || total == 0 {
		return
	}
	p.shown = true
	fmt.Fprintf(p.w, "\r%s %d/%d", p.bar.ViewAs(float64(done)/float64(total)), done, total)
}

func (p *progressBar) done() {
	if p.shown {
		fmt.Fprintln(p.w)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
