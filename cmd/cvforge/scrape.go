package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cvforge/internal/extract"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Fetch a job posting and print its text",
	Long:  "Fetches the posting, prints the cleaned text to stdout, and logs what the field extractor found in it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	scraper, closeScraper := newScraper(logger)
	defer closeScraper()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := scraper.Scrape(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(res.Text)

	fields := extract.Extract(res.Text)
	logger.Info("scrape complete",
		"site", res.Site,
		"cached", res.FromCache,
		"chars", len(res.Text),
		"title", fields.Title,
		"company", fields.Company,
		"requirements", len(fields.Requirements),
	)
	return nil
}
