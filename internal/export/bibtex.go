// Package export writes catalog items to formats other tools can read:
// BibTeX, JSON lines and SQLite snapshots.
package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matsen/shelf/internal/media"
)

// ToBibTeX converts an item to a BibTeX entry.
func ToBibTeX(item media.Item) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType(item), CiteKey(item)))
	b.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(item.Author())))
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(item.Title())))

	year, month := splitDate(item.PublicationDate())
	b.WriteString(fmt.Sprintf("  year = {%s},\n", year))
	if month != "" {
		b.WriteString(fmt.Sprintf("  month = {%s},\n", month))
	}

	b.WriteString(fmt.Sprintf("  isbn = {%s},\n", item.ISBN()))

	switch v := item.(type) {
	case *media.Book:
		b.WriteString(fmt.Sprintf("  pagetotal = {%d},\n", v.PageCount()))
	case *media.EBook:
		b.WriteString(fmt.Sprintf("  url = {%s},\n", v.DownloadURL()))
		b.WriteString(fmt.Sprintf("  howpublished = {%s e-book},\n", strings.ToUpper(v.FormatType())))
	case *media.Audiobook:
		b.WriteString(fmt.Sprintf("  note = {Audiobook narrated by %s, %s (%s)},\n",
			escapeLatex(v.Narrator()), media.FormatDuration(v.DurationMinutes()), strings.ToUpper(v.AudioFormat())))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple items to BibTeX format.
func ToBibTeXList(items []media.Item) string {
	var entries []string
	for _, item := range items {
		entries = append(entries, ToBibTeX(item))
	}
	return strings.Join(entries, "\n")
}

// CiteKey builds a citation key from the author's last name, the
// publication year and the last four ISBN digits, e.g. Fitzgerald1925-3565.
func CiteKey(item media.Item) string {
	year, _ := splitDate(item.PublicationDate())
	isbn := item.ISBN()
	suffix := isbn
	if len(isbn) > 4 {
		suffix = isbn[len(isbn)-4:]
	}
	return fmt.Sprintf("%s%s-%s", lastName(item.Author()), year, suffix)
}

// entryType returns the BibTeX entry type for an item.
func entryType(item media.Item) string {
	if item.Kind() == media.KindAudiobook {
		return "misc"
	}
	return "book"
}

// lastName returns the final word of an author name, keeping only letters.
func lastName(author string) string {
	fields := strings.Fields(author)
	if len(fields) == 0 {
		return "Anon"
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, fields[len(fields)-1])
	if name == "" {
		return "Anon"
	}
	return name
}

// splitDate returns the year and month of a YYYY-MM-DD date. Month is
// returned without a leading zero.
func splitDate(date string) (year, month string) {
	parts := strings.SplitN(date, "-", 3)
	year = parts[0]
	if len(parts) > 1 {
		month = strings.TrimLeft(parts[1], "0")
	}
	return year, month
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
