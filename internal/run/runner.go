// Package run sequences the crawl, outreach, and analysis stages for one CLI
// invocation.
package run

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/browser"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/config"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/crawl"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/ledger"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/outreach"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/similarity"
)

// sendLedger is the slice of the ledger the runner passes through to the
// sender.
type sendLedger interface {
	Has(link string) bool
	Append(ledger.Entry) error
}

// Runner owns the collaborators for one run. Everything executes
// sequentially on the single browser session.
type Runner struct {
	Config  config.Config
	Surface browser.Surface
	Ledger  sendLedger
	Scorer  similarity.Scorer
	RunID   string

	// Now is swapped out in tests.
	Now func() time.Time
}

// OutreachSummary tallies per-record outcomes from a messaging run.
type OutreachSummary struct {
	Scraped int
	Sent    int
	Skipped int
	Failed  int
	Pages   int
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) pacer() *crawl.Pacer {
	min, max := r.Config.DelayRange()
	return crawl.NewPacer(min, max)
}

// Crawl walks the listing pages and returns whatever records were collected,
// partial on navigation failure.
func (r *Runner) Crawl(ctx context.Context) crawl.Result {
	controller := &crawl.Controller{
		Surface:  r.Surface,
		Fields:   listing.DefaultSelectors(),
		StartURL: r.Config.ServiceURL,
		MaxPages: r.Config.MaxPages,
		Pacer:    r.pacer(),
		Verbose:  r.Config.Verbose,
		Now:      r.Now,
	}
	result := controller.Run(ctx)
	if result.State == crawl.Failed {
		log.Printf("[RUN] crawl ended early after %d pages with %d records: %v", result.Pages, len(result.Records), result.Err)
	}
	return result
}

// Scrape crawls and writes the raw records to outPath as JSON.
func (r *Runner) Scrape(ctx context.Context, outPath string) (crawl.Result, error) {
	result := r.Crawl(ctx)

	data, err := json.MarshalIndent(result.Records, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to marshal scraped records: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return result, fmt.Errorf("failed to write scraped records %s: %w", outPath, err)
	}
	return result, nil
}

// Message crawls and then attempts outreach on every collected record,
// pacing between attempts. Individual failures never abort the loop.
func (r *Runner) Message(ctx context.Context) (OutreachSummary, error) {
	result := r.Crawl(ctx)
	summary := OutreachSummary{Scraped: len(result.Records), Pages: result.Pages}

	sender := &outreach.Sender{
		Surface:  r.Surface,
		Ledger:   r.Ledger,
		Template: r.Config.MessageTemplate,
		Verbose:  r.Config.Verbose,
		Now:      r.Now,
	}
	pacer := r.pacer()

	for _, rec := range result.Records {
		outcome := sender.Send(ctx, rec)
		switch outcome.State {
		case outreach.Sent:
			summary.Sent++
		case outreach.Skipped:
			summary.Skipped++
		default:
			summary.Failed++
		}

		if err := pacer.Wait(ctx); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// Analyze crawls, clusters the records by similarity, and writes the
// validated analysis report to outPath.
func (r *Runner) Analyze(ctx context.Context, outPath string) (similarity.Report, error) {
	result := r.Crawl(ctx)

	groups, err := similarity.GroupRecords(ctx, result.Records, r.Scorer, r.Config.SimilarityThreshold)
	if err != nil {
		return similarity.Report{}, fmt.Errorf("grouping failed: %w", err)
	}

	report := similarity.BuildReport(groups, r.RunID, r.Scorer.Name(), r.Config.SimilarityThreshold, r.now())
	if err := report.WriteReport(outPath); err != nil {
		return report, err
	}
	return report, nil
}
