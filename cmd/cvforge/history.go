package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"cvforge/internal/history"
	"cvforge/internal/model"
	"cvforge/internal/pdf"
)

var (
	historyPDFPath string
	historyYes     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and export past generations",
	Long:  "With no subcommand, lists past generations newest first. Use show/export with the listed number.",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Print a past draft to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <n>",
	Short: "Export a past draft as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyExportCmd.Flags().StringVar(&historyPDFPath, "pdf", "", "output path (default: a derived name in the configured export dir)")
	historyClearCmd.Flags().BoolVar(&historyYes, "yes", false, "confirm deletion")
}

// listRecords returns history newest first, matching the numbers the list
// output shows.
func listRecords() ([]model.GenerationRecord, error) {
	logger := setupLogger(debug)
	store := history.NewFileStore(historyPath(), logger)
	records, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func recordAt(arg string) (model.GenerationRecord, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.GenerationRecord{}, fmt.Errorf("record number must be an integer, got %q", arg)
	}
	records, err := listRecords()
	if err != nil {
		return model.GenerationRecord{}, err
	}
	if n < 1 || n > len(records) {
		return model.GenerationRecord{}, fmt.Errorf("record %d out of range, history has %d entries", n, len(records))
	}
	return records[n-1], nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	records, err := listRecords()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("History is empty.")
		return nil
	}

	for i, rec := range records {
		headline := rec.Title
		if rec.Company != "" {
			if headline != "" {
				headline += " at "
			}
			headline += rec.Company
		}
		if headline == "" {
			headline = "(untitled)"
		}
		line := fmt.Sprintf("%3d  %s  %-12s  %s  [%s]",
			i+1, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Kind.Label(), headline, rec.Provider)
		if rec.PDFPath != "" {
			line += "  pdf:" + rec.PDFPath
		}
		fmt.Println(line)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	rec, err := recordAt(args[0])
	if err != nil {
		return err
	}
	fmt.Println(rec.Output)
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	rec, err := recordAt(args[0])
	if err != nil {
		return err
	}

	path := historyPDFPath
	if path == "" {
		dir := exportDir(loadConfig(logger))
		path = filepath.Join(dir, pdf.DefaultFilename(rec.Kind, rec.Company, rec.CreatedAt))
	}
	if err := pdf.Export(rec.Output, path); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if !historyYes {
		return fmt.Errorf("refusing to delete history without --yes")
	}
	logger := setupLogger(debug)
	store := history.NewFileStore(historyPath(), logger)
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}
