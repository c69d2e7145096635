package browser

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
)

// Options configures a Chrome session.
type Options struct {
	Headless  bool
	UserAgent string
	// OpTimeout bounds each individual browser operation.
	OpTimeout time.Duration
	// ProbeTimeout bounds each locator probe in ResolveFirst. Probes are
	// expected to miss often, so this should be much shorter than OpTimeout.
	ProbeTimeout time.Duration
	Verbose      bool
}

// DefaultOptions returns the options used for regular runs.
func DefaultOptions() Options {
	return Options{
		Headless:     true,
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		OpTimeout:    30 * time.Second,
		ProbeTimeout: 3 * time.Second,
		Verbose:      false,
	}
}

// ChromeSession drives a single headless Chrome instance via chromedp. It is
// not safe for concurrent use; the whole system runs strictly sequentially
// against one session.
type ChromeSession struct {
	ctx         context.Context
	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
	opts        Options
}

// NewChromeSession launches a browser. The session lives until Close; ctx
// cancellation (operator interrupt) also tears it down.
func NewChromeSession(ctx context.Context, opts Options) (*ChromeSession, error) {
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOptions().OpTimeout
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultOptions().ProbeTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	// Starting the browser eagerly surfaces a missing Chrome install as a
	// construction error instead of a failure on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		ctxCancel()
		allocCancel()
		return nil, &InteractionError{Op: "start", Cause: err}
	}

	if opts.Verbose {
		log.Printf("[BROWSER] session started (headless=%v)", opts.Headless)
	}

	return &ChromeSession{
		ctx:         browserCtx,
		allocCancel: allocCancel,
		ctxCancel:   ctxCancel,
		opts:        opts,
	}, nil
}

// Close shuts the browser down. Safe to call once after any sequence of
// operations, including failed ones.
func (s *ChromeSession) Close() {
	s.ctxCancel()
	s.allocCancel()
	if s.opts.Verbose {
		log.Printf("[BROWSER] session closed")
	}
}

// run executes chromedp actions under the per-op timeout, honoring caller
// cancellation.
func (s *ChromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(opCtx, actions...)
}

// Navigate implements Surface.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if s.opts.Verbose {
		log.Printf("[BROWSER] navigate %s", url)
	}
	err := s.run(ctx, s.opts.OpTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return &InteractionError{Op: "navigate", Target: url, Cause: err}
	}
	return nil
}

// CurrentURL implements Surface.
func (s *ChromeSession) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, s.opts.OpTimeout, chromedp.Location(&url)); err != nil {
		return "", &InteractionError{Op: "location", Cause: err}
	}
	return url, nil
}

// PageHTML implements Surface.
func (s *ChromeSession) PageHTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, s.opts.OpTimeout, chromedp.OuterHTML("html", &html)); err != nil {
		return "", &InteractionError{Op: "page-html", Cause: err}
	}
	return html, nil
}

// Click implements Surface.
func (s *ChromeSession) Click(ctx context.Context, loc listing.Locator) error {
	err := s.run(ctx, s.opts.OpTimeout, chromedp.Click(loc.Query, queryOption(loc)))
	if err != nil {
		return &InteractionError{Op: "click", Target: loc.Query, Cause: err}
	}
	return nil
}

// TypeText implements Surface.
func (s *ChromeSession) TypeText(ctx context.Context, loc listing.Locator, text string) error {
	err := s.run(ctx, s.opts.OpTimeout, chromedp.SendKeys(loc.Query, text, queryOption(loc)))
	if err != nil {
		return &InteractionError{Op: "type", Target: loc.Query, Cause: err}
	}
	return nil
}

// ResolveFirst implements Surface. Each locator gets a short probe window;
// the first one present on the page wins.
func (s *ChromeSession) ResolveFirst(ctx context.Context, set listing.LocatorSet) (listing.Locator, bool) {
	for _, loc := range set {
		var nodeCount int
		err := s.run(ctx, s.opts.ProbeTimeout, chromedp.Evaluate(countExpr(loc), &nodeCount))
		if err != nil {
			continue
		}
		if nodeCount > 0 {
			return loc, true
		}
	}
	return listing.Locator{}, false
}

func queryOption(loc listing.Locator) chromedp.QueryOption {
	if loc.By == listing.ByXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func countExpr(loc listing.Locator) string {
	if loc.By == listing.ByXPath {
		return `document.evaluate(` + jsString(loc.Query) + `, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null).snapshotLength`
	}
	return `document.querySelectorAll(` + jsString(loc.Query) + `).length`
}

func jsString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			out = append(out, '\\', c)
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '"'))
}
