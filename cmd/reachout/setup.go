package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Noodzakelijk-Online/simbi-reachout/internal/browser"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/config"
	"github.com/Noodzakelijk-Online/simbi-reachout/internal/similarity"
)

// loadRunConfig builds the immutable configuration snapshot for this run:
// defaults, then config file, then environment, then CLI flags.
func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()

	if flagVerbose {
		cfg.Verbose = true
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = flagHeadless
	}
	if flagMaxPages > 0 {
		cfg.MaxPages = flagMaxPages
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// signalContext returns a context cancelled on operator interrupt so the
// session unwinds cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// openSession starts the browser and logs in. The caller must Close the
// returned session.
func openSession(ctx context.Context, cfg config.Config) (*browser.ChromeSession, error) {
	opts := browser.DefaultOptions()
	opts.Headless = cfg.Headless
	opts.Verbose = cfg.Verbose

	session, err := browser.NewChromeSession(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	if err := session.Login(ctx, cfg.LoginEmail, cfg.LoginPassword); err != nil {
		session.Close()
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return session, nil
}

// buildScorer selects the similarity backend. An embedding backend that
// cannot be constructed degrades to token-set rather than failing the run.
func buildScorer(ctx context.Context, cfg config.Config) (similarity.Scorer, func()) {
	if cfg.SimilarityBackend != config.BackendEmbedding {
		return similarity.TokenSet{}, func() {}
	}

	embedding, err := similarity.NewEmbedding(ctx, cfg.APIKey)
	if err != nil {
		log.Printf("[SIMILARITY] embedding backend unavailable (%v); using token-set", err)
		return similarity.TokenSet{}, func() {}
	}
	scorer := &similarity.Fallback{Primary: embedding, Secondary: similarity.TokenSet{}}
	return scorer, func() { _ = embedding.Close() }
}
