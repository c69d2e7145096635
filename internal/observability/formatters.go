// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/crawl"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/run"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/similarity"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxGroupsToShow is the number of groups listed in an analysis summary
	maxGroupsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCrawlSummary outputs a human-readable summary of a finished crawl.
func (p *Printer) PrintCrawlSummary(result crawl.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", result.Pages))
	sb.WriteString(fmt.Sprintf("Records:  %d\n", len(result.Records)))
	sb.WriteString(fmt.Sprintf("State:    %s", result.State))
	if result.Err != nil {
		sb.WriteString(fmt.Sprintf("\nError:    %v", result.Err))
	}
	p.printBox("Crawl Summary", sb.String())
}

// PrintOutreachSummary outputs the per-state tallies of a messaging run.
func (p *Printer) PrintOutreachSummary(summary run.OutreachSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scraped:  %d (over %d pages)\n", summary.Scraped, summary.Pages))
	sb.WriteString(fmt.Sprintf("Sent:     %d\n", summary.Sent))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", summary.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:   %d", summary.Failed))
	p.printBox("Outreach Summary", sb.String())
}

// PrintAnalysisReport outputs the clustering outcome of an analysis run,
// listing the largest few groups.
func (p *Printer) PrintAnalysisReport(report similarity.Report) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Backend:    %s (threshold %.2f)\n", report.Backend, report.Threshold))
	sb.WriteString(fmt.Sprintf("Requests:   %d\n", report.TotalRequests))
	sb.WriteString(fmt.Sprintf("Groups:     %d\n", report.GroupsCount))

	for i, group := range report.Groups {
		if i >= maxGroupsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more groups\n", report.GroupsCount-maxGroupsToShow))
			break
		}
		title := ""
		if len(group.Requests) > 0 {
			title = group.Requests[0].Title
		}
		sb.WriteString(fmt.Sprintf("  #%d (%d): %s\n", group.GroupID, group.Size, title))
	}

	p.printBox("Analysis Summary", strings.TrimRight(sb.String(), "\n"))
}
