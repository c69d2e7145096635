// Package browser provides the live browser session used for navigation,
// extraction, and message submission.
package browser

import (
	"context"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
)

// Surface is the capability the crawl and outreach layers need from a
// browser. All calls block; failures are generic interaction errors that the
// caller classifies as transient or fatal by operation.
type Surface interface {
	// Navigate loads the given URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// CurrentURL returns the URL of the loaded page.
	CurrentURL(ctx context.Context) (string, error)
	// PageHTML returns the rendered HTML of the loaded page.
	PageHTML(ctx context.Context) (string, error)
	// Click clicks the first element the locator matches.
	Click(ctx context.Context, loc listing.Locator) error
	// TypeText types into the first element the locator matches.
	TypeText(ctx context.Context, loc listing.Locator, text string) error
	// ResolveFirst probes each locator in order and returns the first one
	// that matches at least one element on the loaded page. It is read-only
	// and reports false rather than erroring when nothing matches.
	ResolveFirst(ctx context.Context, set listing.LocatorSet) (listing.Locator, bool)
}
