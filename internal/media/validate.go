package media

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the accepted publication date format.
const DateLayout = "2006-01-02"

// Allowed values for the enumerated variant fields. Matching is case-insensitive.
var (
	Conditions   = []string{"new", "good", "fair", "poor"}
	EBookFormats = []string{"pdf", "epub", "mobi", "azw3"}
	AudioFormats = []string{"mp3", "aac", "wav", "m4b"}
)

var (
	isbnPattern = regexp.MustCompile(`^\d{3}-\d{10}$`)

	// HTTP(S) URL with a dotted host and an optional path/query.
	urlPattern = regexp.MustCompile(`^https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)$`)
)

func validateTitle(v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("title", "title cannot be empty")
	}
	return nil
}

func validateAuthor(v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("author", "author cannot be empty")
	}
	return nil
}

func validatePublicationDate(v string) error {
	if _, err := time.Parse(DateLayout, v); err != nil {
		return invalid("publicationDate", "expected format YYYY-MM-DD, got %q", v)
	}
	return nil
}

func validateISBN(v string) error {
	if !isbnPattern.MatchString(v) {
		return invalid("isbn", "expected format XXX-XXXXXXXXXX, got %q", v)
	}
	return nil
}

func validatePositive(field string, v int) error {
	if v <= 0 {
		return invalid(field, "must be positive, got %d", v)
	}
	return nil
}

func validateFileSize(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalid("fileSizeMb", "must be a positive number, got %v", v)
	}
	return nil
}

func validateNarrator(v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("narrator", "narrator cannot be empty")
	}
	return nil
}

func validateDownloadURL(v string) error {
	if !urlPattern.MatchString(v) {
		return invalid("downloadUrl", "not a valid http(s) URL: %q", v)
	}
	return nil
}

// validateChoice checks v against valid, ignoring case.
func validateChoice(field, v string, valid []string) error {
	lower := strings.ToLower(v)
	for _, c := range valid {
		if lower == c {
			return nil
		}
	}
	return invalid(field, "must be one of: %s", strings.Join(valid, ", "))
}
