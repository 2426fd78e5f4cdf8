package export

import (
	"encoding/json"

	"github.com/matsen/shelf/internal/media"
)

// Row is the flat representation of an item used by the JSONL and SQLite
// exports. Variant fields are zero for other kinds.
type Row struct {
	Type            string  `json:"type"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationDate string  `json:"publication_date"`
	ISBN            string  `json:"isbn"`
	Available       bool    `json:"available"`
	PageCount       int     `json:"page_count,omitempty"`
	Condition       string  `json:"condition,omitempty"`
	FileSizeMB      float64 `json:"file_size_mb,omitempty"`
	FormatType      string  `json:"format_type,omitempty"`
	DownloadURL     string  `json:"download_url,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	Narrator        string  `json:"narrator,omitempty"`
	AudioFormat     string  `json:"audio_format,omitempty"`
}

// UnmarshalJSON decodes a row, treating a missing "available" key as
// available like the catalog file does.
func (r *Row) UnmarshalJSON(data []byte) error {
	type plain Row
	aux := struct {
		*plain
		Available *bool `json:"available"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Available = aux.Available == nil || *aux.Available
	return nil
}

// RowFor flattens an item into a Row.
func RowFor(item media.Item) Row {
	row := Row{
		Type:            string(item.Kind()),
		Title:           item.Title(),
		Author:          item.Author(),
		PublicationDate: item.PublicationDate(),
		ISBN:            item.ISBN(),
		Available:       item.IsAvailable(),
	}

	switch v := item.(type) {
	case *media.Book:
		row.PageCount = v.PageCount()
		row.Condition = v.Condition()
	case *media.EBook:
		row.FileSizeMB = v.FileSizeMB()
		row.FormatType = v.FormatType()
		row.DownloadURL = v.DownloadURL()
	case *media.Audiobook:
		row.DurationMinutes = v.DurationMinutes()
		row.Narrator = v.Narrator()
		row.AudioFormat = v.AudioFormat()
	}

	return row
}

// RowsFor flattens a list of items.
func RowsFor(items []media.Item) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, RowFor(item))
	}
	return rows
}
