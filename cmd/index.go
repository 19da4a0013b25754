package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/koopa0/studybot/internal/config"
	"github.com/koopa0/studybot/internal/log"
)

// runIndex (re)builds the vector store from the study corpus.
// An optional directory argument overrides the configured docs directory.
// Document IDs are positional, so re-running replaces existing entries
// instead of duplicating them.
func runIndex(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if len(os.Args) > 2 && !strings.HasPrefix(os.Args[2], "-") {
		cfg.DocsDir = os.Args[2]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer app.close()

	app.seed(ctx)

	fmt.Printf("indexed %d documents into collection %q (%s)\n",
		app.store.Count(ctx), cfg.Collection, cfg.StoreBackend)
	return nil
}
