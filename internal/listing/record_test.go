package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func TestBuildRecord_AllFields(t *testing.T) {
	sel := selectionFromHTML(t, `
		<div class="card">
			<span class="title">Need a logo designed</span>
			<span class="user-name">Dana</span>
			<p class="description">Looking for a minimalist logo for my bakery.</p>
			<a href="https://simbi.com/r/1">View</a>
		</div>
	`)

	rec, ok := BuildRecord(sel, DefaultSelectors(), testTime)
	require.True(t, ok)
	assert.Equal(t, "Need a logo designed", rec.Title)
	assert.Equal(t, "Dana", rec.Author)
	assert.Equal(t, "Looking for a minimalist logo for my bakery.", rec.Description)
	assert.Equal(t, "https://simbi.com/r/1", rec.Link)
	assert.Equal(t, testTime, rec.RetrievedAt)
}

func TestBuildRecord_OptionalFieldsAbsent(t *testing.T) {
	sel := selectionFromHTML(t, `
		<div class="card">
			<h3>Guitar lessons wanted</h3>
			<a href="/r/2">View</a>
		</div>
	`)

	rec, ok := BuildRecord(sel, DefaultSelectors(), testTime)
	require.True(t, ok)
	assert.Equal(t, "Guitar lessons wanted", rec.Title)
	assert.Empty(t, rec.Author)
	assert.Empty(t, rec.Description)
}

func TestBuildRecord_RejectedWithoutTitle(t *testing.T) {
	sel := selectionFromHTML(t, `
		<div class="card">
			<a href="/r/3">View</a>
		</div>
	`)

	_, ok := BuildRecord(sel, DefaultSelectors(), testTime)
	assert.False(t, ok)
}

func TestBuildRecord_RejectedWithoutLink(t *testing.T) {
	sel := selectionFromHTML(t, `
		<div class="card">
			<h3>Orphaned title</h3>
		</div>
	`)

	_, ok := BuildRecord(sel, DefaultSelectors(), testTime)
	assert.False(t, ok)
}

func TestExtractRecords_MixedPage(t *testing.T) {
	html := `
		<html><body>
			<div class="request-item">
				<span class="title">Need a logo designed</span>
				<a href="/r/1">View</a>
			</div>
			<div class="card">
				<em>promo banner, no listing fields</em>
			</div>
			<div class="listing">
				<h4>Looking for a plumber</h4>
				<span class="author">Sam</span>
				<a href="/r/2">View</a>
			</div>
		</body></html>
	`

	records, err := ExtractRecords(html, DefaultSelectors(), testTime)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Need a logo designed", records[0].Title)
	assert.Equal(t, "Looking for a plumber", records[1].Title)
	assert.Equal(t, "Sam", records[1].Author)
}

func TestExtractRecords_EmptyPage(t *testing.T) {
	records, err := ExtractRecords("<html><body></body></html>", DefaultSelectors(), testTime)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestComparisonText(t *testing.T) {
	rec := Record{Title: "Need a logo designed", Description: "for my bakery"}
	assert.Equal(t, "for my bakery Need a logo designed", rec.ComparisonText())
}
