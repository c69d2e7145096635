// Package main provides the entry point for the reachout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reachout",
	Short: "Crawl service request listings and automate first-contact outreach",
	Long:  "reachout crawls paginated request listings on Simbi, extracts structured records, messages listings that were not contacted before, and can cluster near-duplicate listings by text similarity.",
}

var (
	flagConfig   string
	flagVerbose  bool
	flagHeadless bool
	flagMaxPages int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "reachout_config.json", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed progress information")
	rootCmd.PersistentFlags().BoolVar(&flagHeadless, "headless", false, "Run the browser headless")
	rootCmd.PersistentFlags().IntVar(&flagMaxPages, "max-pages", 0, "Maximum pages to crawl (overrides config)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
