package media

import (
	"fmt"
	"strconv"
	"strings"
)

// EBook is a downloadable electronic book.
type EBook struct {
	record
	fileSizeMB  float64
	formatType  string
	downloadURL string
}

// NewEBook validates all fields and returns a new available EBook.
func NewEBook(d Details, fileSizeMB float64, formatType, downloadURL string) (*EBook, error) {
	rec, err := newRecord(d)
	if err != nil {
		return nil, err
	}
	if err := validateFileSize(fileSizeMB); err != nil {
		return nil, err
	}
	if err := validateChoice("formatType", formatType, EBookFormats); err != nil {
		return nil, err
	}
	if err := validateDownloadURL(downloadURL); err != nil {
		return nil, err
	}
	return &EBook{
		record:      rec,
		fileSizeMB:  fileSizeMB,
		formatType:  formatType,
		downloadURL: downloadURL,
	}, nil
}

// Kind returns KindEBook.
func (e *EBook) Kind() Kind { return KindEBook }

// FileSizeMB returns the file size in megabytes.
func (e *EBook) FileSizeMB() float64 { return e.fileSizeMB }

// FormatType returns the file format as entered (e.g. "pdf").
func (e *EBook) FormatType() string { return e.formatType }

// DownloadURL returns the download location.
func (e *EBook) DownloadURL() string { return e.downloadURL }

// SetFileSizeMB replaces the file size. It must be positive.
func (e *EBook) SetFileSizeMB(value float64) error {
	if err := validateFileSize(value); err != nil {
		return err
	}
	e.fileSizeMB = value
	return nil
}

// SetFormatType replaces the format. It must be one of EBookFormats.
func (e *EBook) SetFormatType(value string) error {
	if err := validateChoice("formatType", value, EBookFormats); err != nil {
		return err
	}
	e.formatType = value
	return nil
}

// SetDownloadURL replaces the download URL. It must be an http(s) URL.
func (e *EBook) SetDownloadURL(value string) error {
	if err := validateDownloadURL(value); err != nil {
		return err
	}
	e.downloadURL = value
	return nil
}

func (e *EBook) String() string {
	return fmt.Sprintf("%s - %s, %sMB", e.record.String(), strings.ToUpper(e.formatType), formatMegabytes(e.fileSizeMB))
}

// formatMegabytes prints the shortest decimal form, keeping a fractional
// part for whole numbers (5 -> "5.0").
func formatMegabytes(mb float64) string {
	s := strconv.FormatFloat(mb, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
