package export

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/matsen/shelf/internal/media"
)

// BibTeXIndex indexes existing BibTeX entries for deduplication.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// ISBNs maps normalized ISBN values to citation keys
	ISBNs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys:  make(map[string]bool),
		ISBNs: make(map[string]string),
	}
}

// HasEntry returns true if the item already has an entry (by ISBN or key).
func (idx *BibTeXIndex) HasEntry(item media.Item) bool {
	if _, exists := idx.ISBNs[normalizeISBN(item.ISBN())]; exists {
		return true
	}
	return idx.Keys[CiteKey(item)]
}

// Missing returns the items that have no entry in the index.
func (idx *BibTeXIndex) Missing(items []media.Item) []media.Item {
	var out []media.Item
	for _, item := range items {
		if !idx.HasEntry(item) {
			out = append(out, item)
		}
	}
	return out
}

var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`@\w+\{([^,]+),`)
	// Match ISBN field: isbn = {value} or isbn = "value"
	isbnFieldRegex = regexp.MustCompile(`(?i)^\s*isbn\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// ParseBibTeXFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist or is empty.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var currentKey string

	for scanner.Scan() {
		line := scanner.Text()

		if matches := entryStartRegex.FindStringSubmatch(line); len(matches) > 1 {
			currentKey = strings.TrimSpace(matches[1])
			idx.Keys[currentKey] = true
		}

		if matches := isbnFieldRegex.FindStringSubmatch(line); len(matches) > 1 {
			isbn := normalizeISBN(matches[1])
			if isbn != "" && currentKey != "" {
				idx.ISBNs[isbn] = currentKey
			}
		}
	}

	return idx, scanner.Err()
}

// normalizeISBN strips hyphens and spaces so "978-0743273565" and
// "9780743273565" compare equal.
func normalizeISBN(isbn string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn))
}

// AppendToBibFile appends BibTeX content to a file.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Ensure we start on a new line
	_, err = file.WriteString("\n" + content)
	return err
}
