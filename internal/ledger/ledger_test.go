package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempLedgerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "inbox.csv")
}

func sampleEntry(link string) Entry {
	return Entry{
		Timestamp:    time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		UserName:     "Dana",
		RequestTitle: "Need a logo designed",
		Link:         link,
		RequestText:  "Looking for a minimalist logo.",
		MessageSent:  "Hi Dana, I saw your request.",
	}
}

func TestOpen_CreatesFileWithHeader(t *testing.T) {
	path := tempLedgerPath(t)

	l, err := Open(path, false)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,user_name,request_title,link,user_request_text,message_sent", strings.TrimSpace(string(data)))
}

func TestAppend_ThenHas(t *testing.T) {
	path := tempLedgerPath(t)
	l, err := Open(path, false)
	require.NoError(t, err)

	link := "https://simbi.com/r/1"
	assert.False(t, l.Has(link))

	require.NoError(t, l.Append(sampleEntry(link)))
	assert.True(t, l.Has(link))
	assert.Equal(t, 1, l.Len())
}

func TestAppend_SurvivesReload(t *testing.T) {
	path := tempLedgerPath(t)
	l, err := Open(path, false)
	require.NoError(t, err)

	link := "https://site/x/1"
	require.NoError(t, l.Append(sampleEntry(link)))

	reloaded, err := Open(path, false)
	require.NoError(t, err)
	assert.True(t, reloaded.Has(link))
	assert.Equal(t, 1, reloaded.Len())
}

func TestLoad_SkipsMalformedTrailingRows(t *testing.T) {
	path := tempLedgerPath(t)
	content := strings.Join([]string{
		"timestamp,user_name,request_title,link,user_request_text,message_sent",
		`2025-03-14T12:00:00Z,Dana,Logo,https://simbi.com/r/1,desc,msg`,
		`2025-03-14T12:01:00Z,Sam,Plumbing,https://simbi.com/r/2,desc,msg`,
		`"unterminated quote,,,`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := Open(path, false)
	require.NoError(t, err)
	assert.True(t, l.Has("https://simbi.com/r/1"))
	assert.True(t, l.Has("https://simbi.com/r/2"))
	assert.Equal(t, 2, l.Len())
}

func TestLoad_RowsMissingLinkAreSkipped(t *testing.T) {
	path := tempLedgerPath(t)
	content := strings.Join([]string{
		"timestamp,user_name,request_title,link,user_request_text,message_sent",
		`2025-03-14T12:00:00Z,Dana,Logo,,desc,msg`,
		`2025-03-14T12:01:00Z,Sam,Plumbing,https://simbi.com/r/2,desc,msg`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := Open(path, false)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Has("https://simbi.com/r/2"))
}

func TestLoad_ReorderedHeader(t *testing.T) {
	path := tempLedgerPath(t)
	content := strings.Join([]string{
		"link,timestamp,user_name,request_title,user_request_text,message_sent",
		`https://simbi.com/r/9,2025-03-14T12:00:00Z,Dana,Logo,desc,msg`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := Open(path, false)
	require.NoError(t, err)
	assert.True(t, l.Has("https://simbi.com/r/9"))
}

func TestLoad_HeaderWithoutLinkColumn(t *testing.T) {
	path := tempLedgerPath(t)
	content := "timestamp,user_name\n2025-03-14T12:00:00Z,Dana\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := Open(path, false)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestAppend_DoesNotDuplicateHeader(t *testing.T) {
	path := tempLedgerPath(t)
	l, err := Open(path, false)
	require.NoError(t, err)
	require.NoError(t, l.Append(sampleEntry("https://simbi.com/r/1")))

	l2, err := Open(path, false)
	require.NoError(t, err)
	require.NoError(t, l2.Append(sampleEntry("https://simbi.com/r/2")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,user_name"))

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
}

func TestAppend_FieldQuoting(t *testing.T) {
	path := tempLedgerPath(t)
	l, err := Open(path, false)
	require.NoError(t, err)

	e := sampleEntry("https://simbi.com/r/1")
	e.RequestText = `needs "quotes", commas, and
newlines`
	require.NoError(t, l.Append(e))

	reloaded, err := Open(path, false)
	require.NoError(t, err)
	assert.True(t, reloaded.Has(e.Link))
}
