package outreach

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/browser"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/ledger"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/listing"
)

// SendState is a record's terminal (or in-flight) outreach state.
type SendState int

const (
	NotSent SendState = iota
	Skipped
	Composing
	Sent
	Failed
)

func (s SendState) String() string {
	switch s {
	case NotSent:
		return "not-sent"
	case Skipped:
		return "skipped"
	case Composing:
		return "composing"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Locator fallbacks for the message surface, matching the markup variants the
// service serves per listing type.
var (
	ContactLocators = listing.LocatorSet{
		listing.XPath(`//button[contains(text(), 'Message')]`),
		listing.XPath(`//a[contains(text(), 'Contact')]`),
		listing.XPath(`//button[contains(@class, 'message')]`),
		listing.XPath(`//a[contains(@class, 'contact')]`),
	}
	MessageBoxLocators = listing.LocatorSet{
		listing.CSS(`textarea[name='message']`),
		listing.CSS(`textarea[placeholder*='message']`),
		listing.CSS(`.message-text`),
		listing.CSS(`textarea`),
	}
	SubmitLocators = listing.LocatorSet{
		listing.XPath(`//button[contains(text(), 'Send')]`),
		listing.XPath(`//input[@type='submit']`),
		listing.XPath(`//button[@type='submit']`),
	}
)

// Outcome is the result of one outreach attempt.
type Outcome struct {
	State  SendState
	Reason string
}

// sendLedger is the slice of the dedup ledger the sender needs.
type sendLedger interface {
	Has(link string) bool
	Append(ledger.Entry) error
}

// Sender drives the per-record outreach state machine:
// NotSent → (Skipped | Composing) → (Sent | Failed).
type Sender struct {
	Surface  browser.Surface
	Ledger   sendLedger
	Template string
	Verbose  bool

	// Now is swapped out in tests.
	Now func() time.Time
}

// Send contacts one listing. A failure at any interaction step is terminal
// for the record but never for the overall run; the caller simply moves to
// the next record. The ledger check happens immediately before composing and
// the append is the final step after a confirmed send, which is what gives
// at-most-once delivery within a run.
func (s *Sender) Send(ctx context.Context, rec listing.Record) Outcome {
	if s.Ledger.Has(rec.Link) {
		if s.Verbose {
			log.Printf("[OUTREACH] already contacted, skipping %s", rec.Link)
		}
		return Outcome{State: Skipped}
	}

	// Composing.
	message := RenderMessage(s.Template, rec.Author, rec.Title)

	if err := s.Surface.Navigate(ctx, rec.Link); err != nil {
		return s.failed("navigation to listing failed", err)
	}

	contact, ok := s.Surface.ResolveFirst(ctx, ContactLocators)
	if !ok {
		return s.failed("no contact control found", nil)
	}
	if err := s.Surface.Click(ctx, contact); err != nil {
		return s.failed("contact control click failed", err)
	}

	box, ok := s.Surface.ResolveFirst(ctx, MessageBoxLocators)
	if !ok {
		return s.failed("no message entry surface found", nil)
	}
	if err := s.Surface.TypeText(ctx, box, message); err != nil {
		return s.failed("typing message failed", err)
	}

	submit, ok := s.Surface.ResolveFirst(ctx, SubmitLocators)
	if !ok {
		return s.failed("no submit control found", nil)
	}
	if err := s.Surface.Click(ctx, submit); err != nil {
		return s.failed("submit click failed", err)
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	entry := ledger.Entry{
		Timestamp:    now,
		UserName:     rec.Author,
		RequestTitle: rec.Title,
		Link:         rec.Link,
		RequestText:  rec.Description,
		MessageSent:  message,
	}
	if err := s.Ledger.Append(entry); err != nil {
		// The external send went through but the ledger write did not.
		// Accepted as at-least-once externally: the record is reported
		// Failed, logged loudly, and a later run may contact it again.
		log.Printf("[OUTREACH] message sent to %s but ledger append failed: %v", rec.Link, err)
		return Outcome{State: Failed, Reason: "sent but not recorded: " + err.Error()}
	}

	if s.Verbose {
		log.Printf("[OUTREACH] sent to %s (%s)", rec.Link, rec.Author)
	}
	return Outcome{State: Sent}
}

func (s *Sender) failed(reason string, err error) Outcome {
	if err != nil {
		reason = fmt.Sprintf("%s: %v", reason, err)
	}
	log.Printf("[OUTREACH] %s", reason)
	return Outcome{State: Failed, Reason: reason}
}
