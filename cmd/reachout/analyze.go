package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/observability"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/run"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Crawl request listings and group near-duplicates",
	Long:  "Crawls the paginated request listings, clusters them by text similarity under the configured threshold, and writes a validated analysis report.",
	RunE:  runAnalyze,
}

var analyzeOutPath string

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutPath, "out", "o", "analysis_results.json", "Output path for the analysis report")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	scorer, closeScorer := buildScorer(ctx, cfg)
	defer closeScorer()

	session, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := &run.Runner{
		Config:  cfg,
		Surface: session,
		Scorer:  scorer,
		RunID:   uuid.NewString(),
	}

	report, err := runner.Analyze(ctx, analyzeOutPath)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintAnalysisReport(report)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Analyzed %d records into %d groups\n", report.TotalRequests, report.GroupsCount)
	_, _ = fmt.Fprintf(os.Stdout, "Report: %s\n", analyzeOutPath)
	return nil
}
