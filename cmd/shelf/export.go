package main

import (
	"fmt"
	"io"
	"os"

	"github.com/matsen/shelf/internal/export"
	"github.com/matsen/shelf/internal/media"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportAppend bool
)

// Export formats.
const (
	FormatBibTeX = "bibtex"
	FormatJSONL  = "jsonl"
	FormatSQLite = "sqlite"
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", FormatBibTeX, "Output format: bibtex, jsonl, sqlite")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (required for sqlite; stdout otherwise)")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "Append BibTeX entries missing from the output file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog",
	Long: `Export the catalog as BibTeX, JSON lines or a SQLite snapshot.

Examples:
  shelf export --format bibtex > shelf.bib
  shelf export --format bibtex -o shelf.bib --append
  shelf export --format jsonl -o shelf.jsonl
  shelf export --format sqlite -o shelf.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResponse is the response for exports written to a file.
type ExportResponse struct {
	Status string         `json:"status"`
	Format string         `json:"format"`
	Path   string         `json:"path"`
	Count  int            `json:"count"`
	ByType map[string]int `json:"by_type,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := validateExportFlags(exportFormat, exportOutput, exportAppend); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	store, _ := mustOpenStore()
	items := store.Items()

	if exportOutput == "" {
		switch exportFormat {
		case FormatBibTeX:
			fmt.Print(export.ToBibTeXList(items))
		case FormatJSONL:
			if err := export.WriteJSONL(os.Stdout, items); err != nil {
				exitWithError(ExitError, "%v", err)
			}
		}
		return nil
	}

	count, byType, err := exportToFile(exportFormat, exportOutput, exportAppend, items)
	if err != nil {
		exitWithError(ExitError, "exporting to %s: %v", exportOutput, err)
	}
	logger.Info("catalog exported", "format", exportFormat, "path", exportOutput, "count", count)

	if humanOutput {
		fmt.Printf("Exported %d item(s) to %s\n", count, exportOutput)
		if len(byType) > 0 {
			fmt.Println(typeCountTable(byType, os.Stdout))
		}
	} else {
		outputJSON(ExportResponse{
			Status: "exported",
			Format: exportFormat,
			Path:   exportOutput,
			Count:  count,
			ByType: byType,
		})
	}
	return nil
}

// typeCountTable renders per-type row counts in media kind order.
func typeCountTable(byType map[string]int, w io.Writer) string {
	rows := make([][]string, 0, len(byType))
	for _, kind := range media.Kinds {
		if n, ok := byType[string(kind)]; ok {
			rows = append(rows, []string{string(kind), itoa(n)})
		}
	}
	return renderTable([]string{"Type", "Rows"}, rows, []columnAlignment{alignLeft, alignRight}, w)
}

func validateExportFlags(format, output string, appendMode bool) error {
	switch format {
	case FormatBibTeX, FormatJSONL:
	case FormatSQLite:
		if output == "" {
			return fmt.Errorf("--format sqlite requires -o")
		}
	default:
		return fmt.Errorf("unknown export format %q (valid: bibtex, jsonl, sqlite)", format)
	}
	if appendMode && (format != FormatBibTeX || output == "") {
		return fmt.Errorf("--append requires --format bibtex and -o")
	}
	return nil
}

// exportToFile writes items to path and returns how many were written.
// In append mode only BibTeX entries missing from the file are written.
// SQLite exports also return the snapshot's row counts by type.
func exportToFile(format, path string, appendMode bool, items []media.Item) (int, map[string]int, error) {
	switch format {
	case FormatBibTeX:
		if !appendMode {
			return len(items), nil, os.WriteFile(path, []byte(export.ToBibTeXList(items)), 0644)
		}
		idx, err := export.ParseBibTeXFile(path)
		if err != nil {
			return 0, nil, err
		}
		missing := idx.Missing(items)
		if len(missing) == 0 {
			return 0, nil, nil
		}
		return len(missing), nil, export.AppendToBibFile(path, export.ToBibTeXList(missing))
	case FormatJSONL:
		return len(items), nil, export.WriteJSONLFile(path, items)
	case FormatSQLite:
		stats, err := export.WriteSQLiteFile(path, items)
		if err != nil {
			return 0, nil, err
		}
		return stats.Total, stats.ByType, nil
	default:
		return 0, nil, fmt.Errorf("unknown export format %q", format)
	}
}
