package browser

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// LoginURL is the service's login page.
const LoginURL = "https://simbi.com/login"

// Login signs the session in with the given credentials. Success is judged by
// the post-submit URL landing on an authenticated page. Login failure is
// fatal to the run; nothing downstream works unauthenticated.
func (s *ChromeSession) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return &InteractionError{Op: "login", Cause: errMissingCredentials}
	}

	err := s.run(ctx, s.opts.OpTimeout,
		chromedp.Navigate(LoginURL),
		chromedp.WaitVisible(`input[name="email"]`),
		chromedp.SendKeys(`input[name="email"]`, email),
		chromedp.SendKeys(`input[name="password"]`, password),
		chromedp.Click(`button[type="submit"]`),
		chromedp.Sleep(3*time.Second),
	)
	if err != nil {
		return &InteractionError{Op: "login", Target: LoginURL, Cause: err}
	}

	url, err := s.CurrentURL(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(url, "dashboard") && !strings.Contains(url, "requests") {
		return &InteractionError{Op: "login", Target: url, Cause: errLoginRejected}
	}

	if s.opts.Verbose {
		log.Printf("[BROWSER] login succeeded, landed on %s", url)
	}
	return nil
}
