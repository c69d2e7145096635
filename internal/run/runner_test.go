package run

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/config"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/crawl"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/ledger"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/similarity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface serves a fixed sequence of listing pages and accepts all
// outreach interactions.
type fakeSurface struct {
	pages   []string
	pageIdx int
	typed   []string
}

func (f *fakeSurface) Navigate(_ context.Context, url string) error { return nil }

func (f *fakeSurface) CurrentURL(context.Context) (string, error) {
	return "https://simbi.com/requests", nil
}

func (f *fakeSurface) PageHTML(context.Context) (string, error) {
	return f.pages[f.pageIdx], nil
}

func (f *fakeSurface) Click(_ context.Context, loc listing.Locator) error {
	if loc.Query == crawl.NextPageLocators[0].Query {
		f.pageIdx++
	}
	return nil
}

func (f *fakeSurface) TypeText(_ context.Context, _ listing.Locator, text string) error {
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeSurface) ResolveFirst(_ context.Context, set listing.LocatorSet) (listing.Locator, bool) {
	if set[0].Query == crawl.NextPageLocators[0].Query && f.pageIdx >= len(f.pages)-1 {
		return listing.Locator{}, false
	}
	return set[0], true
}

type fakeLedger struct {
	seen     map[string]struct{}
	appended []ledger.Entry
}

func newFakeLedger(links ...string) *fakeLedger {
	seen := make(map[string]struct{})
	for _, l := range links {
		seen[l] = struct{}{}
	}
	return &fakeLedger{seen: seen}
}

func (f *fakeLedger) Has(link string) bool { _, ok := f.seen[link]; return ok }

func (f *fakeLedger) Append(e ledger.Entry) error {
	f.appended = append(f.appended, e)
	f.seen[e.Link] = struct{}{}
	return nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.MaxPages = 10
	cfg.DelayMin = 0
	cfg.DelayMax = 0
	cfg.SimilarityThreshold = 0.5
	return cfg
}

func pageHTML(cards ...[2]string) string {
	html := "<html><body>"
	for _, c := range cards {
		html += `<div class="card"><h3>` + c[0] + `</h3><a href="` + c[1] + `">View</a></div>`
	}
	return html + "</body></html>"
}

func newRunner(surface *fakeSurface, l *fakeLedger) *Runner {
	return &Runner{
		Config:  testConfig(),
		Surface: surface,
		Ledger:  l,
		Scorer:  similarity.TokenSet{},
		RunID:   uuid.NewString(),
		Now:     func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) },
	}
}

func TestScrape_WritesRecords(t *testing.T) {
	surface := &fakeSurface{pages: []string{
		pageHTML([2]string{"Need a logo designed", "https://simbi.com/r/1"}),
		pageHTML([2]string{"Looking for a plumber", "https://simbi.com/r/2"}),
	}}
	runner := newRunner(surface, newFakeLedger())

	outPath := filepath.Join(t.TempDir(), "scraped_requests.json")
	result, err := runner.Scrape(context.Background(), outPath)
	require.NoError(t, err)
	assert.Equal(t, crawl.Done, result.State)
	assert.Len(t, result.Records, 2)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var records []listing.Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Need a logo designed", records[0].Title)
}

func TestMessage_SendsAndTallies(t *testing.T) {
	surface := &fakeSurface{pages: []string{pageHTML(
		[2]string{"Need a logo designed", "https://simbi.com/r/1"},
		[2]string{"Looking for a plumber", "https://simbi.com/r/2"},
	)}}
	l := newFakeLedger()
	runner := newRunner(surface, l)

	summary, err := runner.Message(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Scraped)
	assert.Equal(t, 2, summary.Sent)
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Failed)
	assert.Len(t, l.appended, 2)
}

func TestMessage_SkipsPreviouslyContacted(t *testing.T) {
	surface := &fakeSurface{pages: []string{pageHTML(
		[2]string{"Need a logo designed", "https://site/x/1"},
		[2]string{"Looking for a plumber", "https://site/x/2"},
	)}}
	l := newFakeLedger("https://site/x/1")
	runner := newRunner(surface, l)

	summary, err := runner.Message(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, l.appended, 1)
	assert.Equal(t, "https://site/x/2", l.appended[0].Link)
}

func TestMessage_NoDoubleSendWithinRun(t *testing.T) {
	// The same listing appearing on two pages is sent once; the second
	// encounter hits the ledger entry appended by the first.
	surface := &fakeSurface{pages: []string{
		pageHTML([2]string{"Need a logo designed", "https://simbi.com/r/1"}),
		pageHTML([2]string{"Need a logo designed", "https://simbi.com/r/1"}),
	}}
	l := newFakeLedger()
	runner := newRunner(surface, l)

	summary, err := runner.Message(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Scraped)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, l.appended, 1)
}

func TestAnalyze_WritesGroupedReport(t *testing.T) {
	surface := &fakeSurface{pages: []string{pageHTML(
		[2]string{"Need a logo designed", "https://simbi.com/r/1"},
		[2]string{"Logo design needed", "https://simbi.com/r/2"},
		[2]string{"Looking for a plumber", "https://simbi.com/r/3"},
	)}}
	runner := newRunner(surface, newFakeLedger())

	outPath := filepath.Join(t.TempDir(), "analysis_results.json")
	report, err := runner.Analyze(context.Background(), outPath)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRequests)
	assert.Equal(t, 2, report.GroupsCount)
	assert.Equal(t, "token-set", report.Backend)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var parsed similarity.Report
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, report.GroupsCount, parsed.GroupsCount)
}

func TestMessage_CancelledContextSendsNothing(t *testing.T) {
	surface := &fakeSurface{pages: []string{pageHTML(
		[2]string{"Need a logo designed", "https://simbi.com/r/1"},
	)}}
	l := newFakeLedger()
	runner := newRunner(surface, l)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The crawl unwinds on cancellation with an empty partial result, so the
	// messaging loop has nothing to send and the ledger stays untouched.
	summary, err := runner.Message(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Sent)
	assert.Empty(t, l.appended)
}
