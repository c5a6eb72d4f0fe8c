// Command livedoor embeds the livedoor news corpus and ranks similar
// articles. See "livedoor --help" for the command list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tfutada/zenn-static-embedding-duckdb/internal/adapters/driving/cli"
	"github.com/tfutada/zenn-static-embedding-duckdb/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	rt, err := newRuntime(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	defer rt.Close()

	cli.SetVersion(version)
	cli.SetRuntime(rt)
	cli.SetPaths(cli.Paths{
		CorpusDir:  cfg.CorpusDir,
		CorpusJSON: cfg.CorpusJSON,
		VectorsDB:  cfg.VectorsDB,
		IndexPath:  cfg.IndexPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra prints command errors itself
	return cli.Execute(ctx)
}
