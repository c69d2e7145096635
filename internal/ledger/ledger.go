// Package ledger tracks completed outreach in an append-only CSV file so a
// listing is never contacted twice across runs.
package ledger

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"time"
)

// Header is the fixed column order for newly created ledger files. Existing
// files are read by column name, so a reordered header still loads.
var Header = []string{"timestamp", "user_name", "request_title", "link", "user_request_text", "message_sent"}

// Entry is one completed outreach. Link is the key that marks a listing as
// already contacted.
type Entry struct {
	Timestamp    time.Time
	UserName     string
	RequestTitle string
	Link         string
	RequestText  string
	MessageSent  string
}

// Ledger is the persistent record of sent messages plus an in-memory index of
// seen links. It assumes single-writer access; no file locking is performed.
type Ledger struct {
	path    string
	file    *os.File
	writer  *csv.Writer
	seen    map[string]struct{}
	verbose bool
}

// Open loads the ledger at path, creating it (with a header row) if it does
// not exist. Malformed rows in an existing file are skipped; only a file that
// cannot be opened or read at all is a fatal error.
func Open(path string, verbose bool) (*Ledger, error) {
	l := &Ledger{
		path:    path,
		seen:    make(map[string]struct{}),
		verbose: verbose,
	}

	existing, err := os.Open(path)
	switch {
	case err == nil:
		loadErr := l.load(existing)
		_ = existing.Close()
		if loadErr != nil {
			return nil, &IOError{Op: "load", Path: path, Cause: loadErr}
		}
	case os.IsNotExist(err):
		// Fresh ledger; header is written below.
	default:
		return nil, &IOError{Op: "open", Path: path, Cause: err}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Cause: err}
	}
	l.file = f
	l.writer = csv.NewWriter(f)

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &IOError{Op: "stat", Path: path, Cause: err}
	}
	if info.Size() == 0 {
		if err := l.writeRow(Header); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return l, nil
}

// load reads every row it can from an existing ledger file, indexing the link
// column. Rows that fail to parse or lack a link are skipped so that a
// truncated tail (e.g. from a crashed run) never blocks startup.
func (l *Ledger) load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	linkCol := -1
	for i, name := range header {
		if name == "link" {
			linkCol = i
		}
	}
	if linkCol < 0 {
		log.Printf("[LEDGER] %s has no link column; treating as empty", l.path)
		return nil
	}

	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if linkCol >= len(row) || row[linkCol] == "" {
			skipped++
			continue
		}
		l.seen[row[linkCol]] = struct{}{}
	}
	if skipped > 0 && l.verbose {
		log.Printf("[LEDGER] skipped %d malformed rows in %s", skipped, l.path)
	}
	return nil
}

// Has reports whether a message was already sent to the given link.
func (l *Ledger) Has(link string) bool {
	_, ok := l.seen[link]
	return ok
}

// Len returns the number of distinct links in the ledger.
func (l *Ledger) Len() int {
	return len(l.seen)
}

// Append durably records a sent message. The in-memory index is updated only
// after the row has been flushed to disk; on failure the entry must not be
// treated as sent.
func (l *Ledger) Append(e Entry) error {
	row := []string{
		e.Timestamp.Format(time.RFC3339),
		e.UserName,
		e.RequestTitle,
		e.Link,
		e.RequestText,
		e.MessageSent,
	}
	if err := l.writeRow(row); err != nil {
		return err
	}
	l.seen[e.Link] = struct{}{}
	return nil
}

// Close releases the underlying file. The ledger must not be used afterwards.
func (l *Ledger) Close() error {
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		_ = l.file.Close()
		return &IOError{Op: "close", Path: l.path, Cause: err}
	}
	if err := l.file.Close(); err != nil {
		return &IOError{Op: "close", Path: l.path, Cause: err}
	}
	return nil
}

func (l *Ledger) writeRow(row []string) error {
	if err := l.writer.Write(row); err != nil {
		return &IOError{Op: "append", Path: l.path, Cause: err}
	}
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		return &IOError{Op: "append", Path: l.path, Cause: err}
	}
	if err := l.file.Sync(); err != nil {
		return &IOError{Op: "sync", Path: l.path, Cause: err}
	}
	return nil
}
