package listing

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Record is one extracted listing. Title and Link are always non-empty;
// Author and Description are empty when no locator resolved them. Link is the
// record's natural key.
type Record struct {
	Title       string    `json:"request_title"`
	Author      string    `json:"user_name,omitempty"`
	Description string    `json:"user_request_text,omitempty"`
	Link        string    `json:"link"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// ComparisonText is the text used for similarity scoring between records.
func (r Record) ComparisonText() string {
	return r.Description + " " + r.Title
}

// BuildRecord assembles a Record from one listing element, resolving each
// semantic field through its locator set. It returns false when the element
// does not yield both a title and a link; such elements are dropped rather
// than reported as errors, since listing pages routinely interleave
// non-listing cards.
func BuildRecord(sel *goquery.Selection, fields FieldSelectors, now time.Time) (Record, bool) {
	title, ok := Resolve(sel, fields.Title)
	if !ok {
		return Record{}, false
	}
	link, ok := Resolve(sel, fields.Link)
	if !ok {
		return Record{}, false
	}

	rec := Record{
		Title:       title,
		Link:        link,
		RetrievedAt: now,
	}
	if author, ok := Resolve(sel, fields.Author); ok {
		rec.Author = author
	}
	if desc, ok := Resolve(sel, fields.Description); ok {
		rec.Description = desc
	}
	return rec, true
}

// ExtractRecords parses rendered page HTML and builds a Record for every
// listing element that passes the required-field gate.
func ExtractRecords(html string, fields FieldSelectors, now time.Time) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Message: "failed to parse page HTML", Cause: err}
	}

	var records []Record
	doc.Find(ListingElements).Each(func(_ int, sel *goquery.Selection) {
		if rec, ok := BuildRecord(sel, fields, now); ok {
			records = append(records, rec)
		}
	})
	return records, nil
}
