// Package importer builds catalog items from exported rows.
package importer

import (
	"fmt"

	"github.com/matsen/shelf/internal/export"
	"github.com/matsen/shelf/internal/media"
)

// Actions reported by Plan.
const (
	ActionImport = "import"
	ActionSkip   = "skip"
)

// FromRows validates each row and builds its item. Rows that fail
// validation are reported in errs and left out of items.
func FromRows(rows []export.Row) (items []media.Item, errs []error) {
	for i, row := range rows {
		item, err := FromRow(row)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d (%s): %w", i+1, row.ISBN, err))
			continue
		}
		items = append(items, item)
	}
	return items, errs
}

// FromRow builds an item from a row, running the same validation as the
// constructors. A row with Available false is checked out.
func FromRow(row export.Row) (media.Item, error) {
	d := media.Details{
		Title:           row.Title,
		Author:          row.Author,
		PublicationDate: row.PublicationDate,
		ISBN:            row.ISBN,
	}

	kind, ok := media.ParseKind(row.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", row.Type)
	}

	var item media.Item
	switch kind {
	case media.KindBook:
		b, err := media.NewBook(d, row.PageCount, row.Condition)
		if err != nil {
			return nil, err
		}
		item = b
	case media.KindEBook:
		e, err := media.NewEBook(d, row.FileSizeMB, row.FormatType, row.DownloadURL)
		if err != nil {
			return nil, err
		}
		item = e
	case media.KindAudiobook:
		a, err := media.NewAudiobook(d, row.DurationMinutes, row.Narrator, row.AudioFormat)
		if err != nil {
			return nil, err
		}
		item = a
	}

	if !row.Available {
		if err := item.CheckOut(); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// Detail describes what Plan decided for one item.
type Detail struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// Plan decides which incoming items to import. Unless allowDuplicates is
// set, an item is skipped when its ISBN is already in existing or earlier
// in incoming.
func Plan(existing, incoming []media.Item, allowDuplicates bool) []Detail {
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, item := range existing {
		seen[item.ISBN()] = true
	}

	details := make([]Detail, 0, len(incoming))
	for _, item := range incoming {
		d := Detail{ISBN: item.ISBN(), Title: item.Title(), Action: ActionImport}
		if !allowDuplicates && seen[item.ISBN()] {
			d.Action = ActionSkip
			d.Reason = "duplicate ISBN"
		}
		seen[item.ISBN()] = true
		details = append(details, d)
	}
	return details
}
