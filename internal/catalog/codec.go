package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/matsen/shelf/internal/media"
)

// ErrMalformed marks catalog content that cannot be decoded into items.
var ErrMalformed = errors.New("malformed catalog data")

// itemRecord is the persisted form of one item. Field names match the
// constructor parameters of each variant; Type selects the variant.
type itemRecord struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationDate string `json:"publicationDate"`
	ISBN            string `json:"isbn"`
	IsAvailable     bool   `json:"isAvailable"`
	Type            string `json:"type"`

	// Book
	PageCount *int    `json:"pageCount,omitempty"`
	Condition *string `json:"condition,omitempty"`

	// EBook
	FileSizeMB  *float64 `json:"fileSizeMb,omitempty"`
	FormatType  *string  `json:"formatType,omitempty"`
	DownloadURL *string  `json:"downloadUrl,omitempty"`

	// Audiobook
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Narrator        *string `json:"narrator,omitempty"`
	AudioFormat     *string `json:"audioFormat,omitempty"`
}

// wireRecord mirrors itemRecord for decoding, with the shared fields as
// pointers so that missing keys can be told apart from empty values.
type wireRecord struct {
	Title           *string  `json:"title"`
	Author          *string  `json:"author"`
	PublicationDate *string  `json:"publicationDate"`
	ISBN            *string  `json:"isbn"`
	IsAvailable     *bool    `json:"isAvailable"`
	PageCount       *int     `json:"pageCount"`
	Condition       *string  `json:"condition"`
	FileSizeMB      *float64 `json:"fileSizeMb"`
	FormatType      *string  `json:"formatType"`
	DownloadURL     *string  `json:"downloadUrl"`
	DurationMinutes *int     `json:"durationMinutes"`
	Narrator        *string  `json:"narrator"`
	AudioFormat     *string  `json:"audioFormat"`
}

// encodeItems converts items to their persisted records.
func encodeItems(items []media.Item) ([]itemRecord, error) {
	records := make([]itemRecord, 0, len(items))
	for i, item := range items {
		rec, err := encodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("encoding item %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeItem(item media.Item) (itemRecord, error) {
	d := item.Details()
	rec := itemRecord{
		Title:           d.Title,
		Author:          d.Author,
		PublicationDate: d.PublicationDate,
		ISBN:            d.ISBN,
		IsAvailable:     item.IsAvailable(),
		Type:            string(item.Kind()),
	}

	switch v := item.(type) {
	case *media.Book:
		encodeBook(&rec, v)
	case *media.EBook:
		encodeEBook(&rec, v)
	case *media.Audiobook:
		encodeAudiobook(&rec, v)
	default:
		return itemRecord{}, fmt.Errorf("unsupported item type %T", item)
	}
	return rec, nil
}

func encodeBook(rec *itemRecord, b *media.Book) {
	pages, condition := b.PageCount(), b.Condition()
	rec.PageCount = &pages
	rec.Condition = &condition
}

func encodeEBook(rec *itemRecord, e *media.EBook) {
	size, format, url := e.FileSizeMB(), e.FormatType(), e.DownloadURL()
	rec.FileSizeMB = &size
	rec.FormatType = &format
	rec.DownloadURL = &url
}

func encodeAudiobook(rec *itemRecord, a *media.Audiobook) {
	minutes, narrator, format := a.DurationMinutes(), a.Narrator(), a.AudioFormat()
	rec.DurationMinutes = &minutes
	rec.Narrator = &narrator
	rec.AudioFormat = &format
}

// decodeCatalog parses the contents of a catalog file. Records without a
// recognised type are skipped and counted; any other problem (bad JSON,
// a top level that is not an array, missing fields, failed validation)
// yields an error wrapping ErrMalformed.
func decodeCatalog(data []byte) (items []media.Item, skipped int, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, 0, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return nil, 0, fmt.Errorf("%w: top level is not an array", ErrMalformed)
	}

	items = make([]media.Item, 0, len(raw))
	for i, msg := range raw {
		kind, ok, err := decodeKind(msg)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}
		if !ok {
			skipped++
			continue
		}

		var w wireRecord
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, 0, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}

		item, err := decodeRecord(kind, w)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

// decodeKind reads the type discriminator of a record. It returns
// ok=false when the type is absent, null, not a string, or not a known
// kind; only a record that is not a JSON object is an error.
func decodeKind(msg json.RawMessage) (kind media.Kind, ok bool, err error) {
	var head struct {
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(msg, &head); err != nil {
		return "", false, err
	}

	var name string
	if len(head.Type) == 0 || json.Unmarshal(head.Type, &name) != nil {
		return "", false, nil
	}
	kind, ok = media.ParseKind(name)
	return kind, ok, nil
}

// decodeRecord rebuilds one item of the given kind through its variant
// constructor.
func decodeRecord(kind media.Kind, w wireRecord) (item media.Item, err error) {
	d, err := decodeDetails(w)
	if err != nil {
		return nil, err
	}

	switch kind {
	case media.KindBook:
		item, err = decodeBook(d, w)
	case media.KindEBook:
		item, err = decodeEBook(d, w)
	case media.KindAudiobook:
		item, err = decodeAudiobook(d, w)
	}
	if err != nil {
		return nil, err
	}

	// Availability is not a constructor argument; restore it afterwards.
	if w.IsAvailable != nil && !*w.IsAvailable {
		if err := item.CheckOut(); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func decodeDetails(w wireRecord) (media.Details, error) {
	if err := requireFields(map[string]bool{
		"title":           w.Title != nil,
		"author":          w.Author != nil,
		"publicationDate": w.PublicationDate != nil,
		"isbn":            w.ISBN != nil,
	}); err != nil {
		return media.Details{}, err
	}
	return media.Details{
		Title:           *w.Title,
		Author:          *w.Author,
		PublicationDate: *w.PublicationDate,
		ISBN:            *w.ISBN,
	}, nil
}

func decodeBook(d media.Details, w wireRecord) (media.Item, error) {
	if err := requireFields(map[string]bool{
		"pageCount": w.PageCount != nil,
		"condition": w.Condition != nil,
	}); err != nil {
		return nil, err
	}
	b, err := media.NewBook(d, *w.PageCount, *w.Condition)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func decodeEBook(d media.Details, w wireRecord) (media.Item, error) {
	if err := requireFields(map[string]bool{
		"fileSizeMb":  w.FileSizeMB != nil,
		"formatType":  w.FormatType != nil,
		"downloadUrl": w.DownloadURL != nil,
	}); err != nil {
		return nil, err
	}
	e, err := media.NewEBook(d, *w.FileSizeMB, *w.FormatType, *w.DownloadURL)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func decodeAudiobook(d media.Details, w wireRecord) (media.Item, error) {
	if err := requireFields(map[string]bool{
		"durationMinutes": w.DurationMinutes != nil,
		"narrator":        w.Narrator != nil,
		"audioFormat":     w.AudioFormat != nil,
	}); err != nil {
		return nil, err
	}
	a, err := media.NewAudiobook(d, *w.DurationMinutes, *w.Narrator, *w.AudioFormat)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// requireFields returns an error naming the first absent field, in
// alphabetical order so the message is stable.
func requireFields(present map[string]bool) error {
	var missing []string
	for name, ok := range present {
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing field %q", missing[0])
}
