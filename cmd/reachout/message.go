package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/ledger"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/observability"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/run"
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Crawl request listings and message new ones",
	Long:  "Crawls the paginated request listings and sends the configured message to every listing not already recorded in the ledger.",
	RunE:  runMessage,
}

func init() {
	rootCmd.AddCommand(messageCmd)
}

func runMessage(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	book, err := ledger.Open(cfg.LedgerPath, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() { _ = book.Close() }()

	ctx, stop := signalContext()
	defer stop()

	session, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := &run.Runner{
		Config:  cfg,
		Surface: session,
		Ledger:  book,
		RunID:   uuid.NewString(),
	}

	summary, err := runner.Message(ctx)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintOutreachSummary(summary)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Messaging completed: %d sent, %d skipped, %d failed (of %d scraped)\n",
		summary.Sent, summary.Skipped, summary.Failed, summary.Scraped)
	return nil
}
