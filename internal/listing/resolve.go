package listing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Resolve tries each locator in the set, in order, against the given element
// and returns the trimmed text (or attribute value) of the first match.
// A locator that matches nothing, or matches an element with an empty value,
// is treated as a miss and the next locator is tried. Resolution is read-only
// and never fails: exhausting the set returns ("", false).
func Resolve(sel *goquery.Selection, set LocatorSet) (string, bool) {
	if sel == nil {
		return "", false
	}

	for _, loc := range set {
		// The goquery resolver understands CSS only; XPath locators are
		// reserved for live-browser interaction.
		if loc.By != ByCSS {
			continue
		}

		found := sel.Find(loc.Query)
		if found.Length() == 0 {
			continue
		}

		var value string
		if loc.Attr != "" {
			attr, ok := found.First().Attr(loc.Attr)
			if !ok {
				continue
			}
			value = attr
		} else {
			value = found.First().Text()
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		return value, true
	}

	return "", false
}
