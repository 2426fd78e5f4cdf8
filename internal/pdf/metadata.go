// Package pdf reads e-book metadata from PDF files.
package pdf

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Metadata is what can be learned about an e-book from its PDF.
// Title and Author are empty when the document does not carry them.
type Metadata struct {
	Title  string  `json:"title,omitempty"`
	Author string  `json:"author,omitempty"`
	Pages  int     `json:"pages"`
	SizeMB float64 `json:"size_mb"`
}

// ReadMetadata reads the document info dictionary, page count and file
// size of a PDF. When the info dictionary has no title, the first
// substantial line of the first page is used instead.
func ReadMetadata(filePath string) (*Metadata, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	meta := &Metadata{
		Pages:  r.NumPage(),
		SizeMB: sizeInMB(info.Size()),
	}

	docInfo := r.Trailer().Key("Info")
	if !docInfo.IsNull() {
		meta.Title = cleanInfoText(docInfo.Key("Title").Text())
		meta.Author = cleanInfoText(docInfo.Key("Author").Text())
	}

	if meta.Title == "" && meta.Pages > 0 {
		page := r.Page(1)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				meta.Title = firstTitleLine(text)
			}
		}
	}

	return meta, nil
}

// sizeInMB converts bytes to megabytes rounded to one decimal place.
// Any non-empty file reports at least 0.1.
func sizeInMB(bytes int64) float64 {
	if bytes <= 0 {
		return 0
	}
	mb := math.Round(float64(bytes)/(1024*1024)*10) / 10
	if mb < 0.1 {
		return 0.1
	}
	return mb
}

// cleanInfoText collapses whitespace and drops placeholder values that
// authoring tools write into the info dictionary.
func cleanInfoText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	switch strings.ToLower(s) {
	case "untitled", "unknown", "microsoft word", "anonymous":
		return ""
	}
	return s
}

// firstTitleLine returns the first line of page text that looks like a
// title.
func firstTitleLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 3 && !isFrontMatterLine(line) {
			return line
		}
	}
	return ""
}

// isFrontMatterLine checks if a line is likely a copyright notice or
// similar boilerplate rather than a title.
func isFrontMatterLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "copyright") || strings.Contains(lower, "©") {
		return true
	}
	if strings.Contains(lower, "all rights reserved") {
		return true
	}
	if strings.HasPrefix(lower, "isbn") {
		return true
	}
	return false
}
