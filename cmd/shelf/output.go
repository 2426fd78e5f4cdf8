package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/matsen/shelf/internal/export"
	"github.com/matsen/shelf/internal/media"
	"github.com/mattn/go-isatty"
)

// ListTitleMaxLen is the title width in human item tables.
const ListTitleMaxLen = 50

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithItemError exits with the code matching err.
func exitWithItemError(err error) {
	exitWithError(exitCodeFor(err), "%v", err)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ItemResponse is the JSON form of an item: its flat fields plus the
// one-line description.
type ItemResponse struct {
	export.Row
	Description string `json:"description"`
}

func itemResponse(item media.Item) ItemResponse {
	return ItemResponse{Row: export.RowFor(item), Description: item.String()}
}

func itemResponses(items []media.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse(item))
	}
	return out
}

// outputItems writes items as JSON, or as a table with --human.
func outputItems(items []media.Item) {
	if !humanOutput {
		outputJSON(itemResponses(items))
		return
	}
	if len(items) == 0 {
		fmt.Println("No items.")
		return
	}
	fmt.Println(itemTable(items, os.Stdout))
}

// itemTable renders items with one row per item.
func itemTable(items []media.Item, w io.Writer) string {
	headers := []string{"Type", "Title", "Author", "Published", "ISBN", "Available"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			string(item.Kind()),
			truncateString(item.Title(), ListTitleMaxLen),
			item.Author(),
			item.PublicationDate(),
			item.ISBN(),
			yesNo(item.IsAvailable()),
		})
	}
	return renderTable(headers, rows, nil, w)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable renders rows with box-drawing borders on a terminal and
// plain ASCII otherwise.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment, w io.Writer) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
