// Package listing provides locator-based field extraction for service request
// listings rendered as loosely-structured markup.
package listing

// LocatorBy identifies the query language a Locator is written in.
type LocatorBy string

const (
	// ByCSS locates elements with a CSS selector.
	ByCSS LocatorBy = "css"
	// ByXPath locates elements with an XPath expression. XPath locators are
	// only usable against a live browser session; the goquery-based field
	// resolver skips them.
	ByXPath LocatorBy = "xpath"
)

// Locator describes one way to find an element within a page or within a
// listing element. If Attr is non-empty, resolution reads that attribute
// instead of the element's text.
type Locator struct {
	Query string
	By    LocatorBy
	Attr  string
}

// CSS returns a text-reading CSS locator.
func CSS(query string) Locator {
	return Locator{Query: query, By: ByCSS}
}

// CSSAttr returns a CSS locator that reads the named attribute.
func CSSAttr(query, attr string) Locator {
	return Locator{Query: query, By: ByCSS, Attr: attr}
}

// XPath returns an XPath locator.
func XPath(query string) Locator {
	return Locator{Query: query, By: ByXPath}
}

// LocatorSet is an ordered list of candidate locators for one semantic field.
// The first locator that yields a match wins; later entries are fallbacks for
// markup variants. Sets are configured once and never mutated.
type LocatorSet []Locator

// FieldSelectors holds the per-field locator sets used to extract one listing.
type FieldSelectors struct {
	Title       LocatorSet
	Author      LocatorSet
	Description LocatorSet
	Link        LocatorSet
}

// DefaultSelectors covers the markup variants observed across the service's
// listing card types.
func DefaultSelectors() FieldSelectors {
	return FieldSelectors{
		Title: LocatorSet{
			CSS(".title"),
			CSS(".request-title"),
			CSS("h3"),
			CSS("h4"),
			CSS(".card-title"),
		},
		Author: LocatorSet{
			CSS(".user-name"),
			CSS(".author"),
			CSS(".username"),
			CSS(".by"),
		},
		Description: LocatorSet{
			CSS(".description"),
			CSS(".content"),
			CSS(".text"),
			CSS("p"),
		},
		Link: LocatorSet{
			CSSAttr("a", "href"),
			CSSAttr(".link", "href"),
		},
	}
}

// ListingElements matches the container elements that hold one listing each.
const ListingElements = ".request-item, .card, .listing"
