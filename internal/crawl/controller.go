// Package crawl drives the bounded, fault-tolerant pagination loop over the
// service's listing pages.
package crawl

import (
	"context"
	"log"
	"time"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/browser"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
)

// State is the controller's position in the crawl cycle.
type State int

const (
	Idle State = iota
	LoadingPage
	ExtractingPage
	AdvancingPage
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingPage:
		return "loading-page"
	case ExtractingPage:
		return "extracting-page"
	case AdvancingPage:
		return "advancing-page"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// NextPageLocators are the fallback locators for the pagination control,
// tried in order each cycle.
var NextPageLocators = listing.LocatorSet{
	listing.XPath(`//a[contains(text(), 'Next')]`),
	listing.XPath(`//a[contains(@class, 'next')]`),
	listing.XPath(`//button[contains(text(), 'Next')]`),
	listing.XPath(`//a[@rel='next']`),
}

// Result is what a crawl produced. A Failed state still carries every record
// accumulated before the failure; callers treat it as a partial result, not
// an error.
type Result struct {
	Records []listing.Record
	Pages   int
	State   State
	Err     error
}

// Controller runs load-extract-advance cycles until the next-page control
// disappears, MaxPages is reached, or navigation breaks.
type Controller struct {
	Surface  browser.Surface
	Fields   listing.FieldSelectors
	StartURL string
	MaxPages int
	Pacer    *Pacer
	Verbose  bool

	// Now is swapped out in tests.
	Now func() time.Time

	state State
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Run executes the crawl. Per cycle: pace, extract every listing element on
// the loaded page, then try to advance. A page whose extraction fails
// contributes zero records and the crawl moves on; a navigation or click
// failure ends the crawl with whatever was already collected.
func (c *Controller) Run(ctx context.Context) Result {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	pacer := c.Pacer
	if pacer == nil {
		pacer = NewPacer(0, 0)
	}

	result := Result{Records: make([]listing.Record, 0)}

	c.state = LoadingPage
	if err := c.Surface.Navigate(ctx, c.StartURL); err != nil {
		log.Printf("[CRAWL] initial navigation failed: %v", err)
		c.state = Failed
		result.State = Failed
		result.Err = err
		return result
	}

	for page := 1; page <= c.MaxPages; page++ {
		if err := pacer.Wait(ctx); err != nil {
			c.state = Failed
			result.State = Failed
			result.Err = err
			return result
		}

		c.state = ExtractingPage
		result.Pages = page
		records, err := c.extractPage(ctx, now())
		if err != nil {
			// Recoverable: the page contributes nothing and the crawl
			// still tries to advance.
			log.Printf("[CRAWL] page %d extraction failed, skipping: %v", page, err)
		} else {
			result.Records = append(result.Records, records...)
			if c.Verbose {
				log.Printf("[CRAWL] page %d yielded %d records (%d total)", page, len(records), len(result.Records))
			}
		}

		if page == c.MaxPages {
			break
		}

		c.state = AdvancingPage
		next, ok := c.Surface.ResolveFirst(ctx, NextPageLocators)
		if !ok {
			if c.Verbose {
				log.Printf("[CRAWL] no next-page control after page %d", page)
			}
			break
		}
		if err := c.Surface.Click(ctx, next); err != nil {
			log.Printf("[CRAWL] next-page click failed: %v", err)
			c.state = Failed
			result.State = Failed
			result.Err = err
			return result
		}
		c.state = LoadingPage
	}

	c.state = Done
	result.State = Done
	return result
}

func (c *Controller) extractPage(ctx context.Context, now time.Time) ([]listing.Record, error) {
	html, err := c.Surface.PageHTML(ctx)
	if err != nil {
		return nil, err
	}
	return listing.ExtractRecords(html, c.Fields, now)
}
