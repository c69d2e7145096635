package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/observability"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/run"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Crawl request listings and save the raw records",
	Long:  "Crawls the paginated request listings, extracts structured records, and writes them as JSON without contacting anyone.",
	RunE:  runScrape,
}

var scrapeOutPath string

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOutPath, "out", "o", "scraped_requests.json", "Output path for scraped records")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

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
		RunID:   uuid.NewString(),
	}

	result, err := runner.Scrape(ctx, scrapeOutPath)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCrawlSummary(result)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Scraped %d records from %d pages\n", len(result.Records), result.Pages)
	_, _ = fmt.Fprintf(os.Stdout, "Records: %s\n", scrapeOutPath)
	return nil
}
