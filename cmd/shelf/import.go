package main

import (
	"fmt"
	"os"

	"github.com/matsen/shelf/internal/export"
	"github.com/matsen/shelf/internal/importer"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from a JSONL export",
	Long: `Import items from a file written by 'shelf export --format jsonl'.

Every row is validated like 'shelf add'. Rows whose ISBN is already in
the catalog are skipped unless allow_duplicate_isbn is set.

Usage:
  shelf import shelf.jsonl
  shelf import shelf.jsonl --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// DryRunResult represents the result of a dry-run import.
type DryRunResult struct {
	WouldImport int               `json:"would_import"`
	WouldSkip   int               `json:"would_skip"`
	Errors      []string          `json:"errors"`
	Details     []importer.Detail `json:"details,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	rows, err := export.ReadJSONLFile(path)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", path, err)
	}

	items, parseErrs := importer.FromRows(rows)
	errStrings := make([]string, 0, len(parseErrs))
	for _, e := range parseErrs {
		errStrings = append(errStrings, e.Error())
	}

	store, target := mustOpenStore()
	cfg := mustLoadConfig(target)
	details := importer.Plan(store.Items(), items, cfg.AllowDuplicateISBN)

	if importDryRun {
		result := DryRunResult{Errors: errStrings, Details: details}
		for _, d := range details {
			if d.Action == importer.ActionImport {
				result.WouldImport++
			} else {
				result.WouldSkip++
			}
		}
		if humanOutput {
			fmt.Printf("Would import %d item(s), skip %d, %d invalid\n", result.WouldImport, result.WouldSkip, len(errStrings))
			for _, d := range details {
				fmt.Printf("  %-6s %s  %s\n", d.Action, d.ISBN, truncateString(d.Title, ListTitleMaxLen))
			}
		} else {
			outputJSON(result)
		}
		return nil
	}

	result := ImportResult{Errors: errStrings}
	for i, item := range items {
		if details[i].Action != importer.ActionImport {
			result.Skipped++
			continue
		}
		if err := store.Add(item); err != nil {
			exitWithError(ExitError, "saving catalog: %v", err)
		}
		result.Imported++
	}
	logger.Info("import finished", "path", path, "imported", result.Imported, "skipped", result.Skipped, "invalid", len(errStrings))

	if humanOutput {
		fmt.Printf("Imported %d item(s), skipped %d\n", result.Imported, result.Skipped)
		for _, e := range errStrings {
			fmt.Printf("  error: %s\n", e)
		}
	} else {
		outputJSON(result)
	}
	return nil
}

