// Package media defines the catalog item types: physical books, e-books
// and audiobooks.
package media

import "fmt"

// Kind identifies a media variant. It is the discriminator stored in the
// catalog file.
type Kind string

const (
	KindBook      Kind = "book"
	KindEBook     Kind = "ebook"
	KindAudiobook Kind = "audiobook"
)

// Kinds lists every supported variant.
var Kinds = []Kind{KindBook, KindEBook, KindAudiobook}

// ParseKind converts a discriminator string to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Details holds the fields shared by every media variant.
type Details struct {
	Title           string
	Author          string
	PublicationDate string // YYYY-MM-DD
	ISBN            string // XXX-XXXXXXXXXX
}

// Item is a catalog entry. The only implementations are *Book, *EBook and
// *Audiobook.
type Item interface {
	Kind() Kind

	Title() string
	Author() string
	PublicationDate() string
	ISBN() string
	IsAvailable() bool
	Details() Details

	SetTitle(value string) error
	SetAuthor(value string) error
	SetPublicationDate(value string) error

	CheckOut() error
	CheckIn() error

	String() string

	common() *record
}

// Equal reports whether two items share an identity. Items are identified
// by ISBN alone.
func Equal(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ISBN() == b.ISBN()
}

// record carries the shared fields and behaviour embedded in each variant.
type record struct {
	title           string
	author          string
	publicationDate string
	isbn            string
	available       bool
}

// newRecord validates the shared fields in order: title, author,
// publication date, ISBN.
func newRecord(d Details) (record, error) {
	if err := validateTitle(d.Title); err != nil {
		return record{}, err
	}
	if err := validateAuthor(d.Author); err != nil {
		return record{}, err
	}
	if err := validatePublicationDate(d.PublicationDate); err != nil {
		return record{}, err
	}
	if err := validateISBN(d.ISBN); err != nil {
		return record{}, err
	}
	return record{
		title:           d.Title,
		author:          d.Author,
		publicationDate: d.PublicationDate,
		isbn:            d.ISBN,
		available:       true,
	}, nil
}

func (r *record) common() *record { return r }

// Title returns the item title.
func (r *record) Title() string { return r.title }

// Author returns the item author.
func (r *record) Author() string { return r.author }

// PublicationDate returns the publication date as YYYY-MM-DD.
func (r *record) PublicationDate() string { return r.publicationDate }

// ISBN returns the item's identity key.
func (r *record) ISBN() string { return r.isbn }

// IsAvailable reports whether the item is checked in.
func (r *record) IsAvailable() bool { return r.available }

// Details returns a copy of the shared fields.
func (r *record) Details() Details {
	return Details{
		Title:           r.title,
		Author:          r.author,
		PublicationDate: r.publicationDate,
		ISBN:            r.isbn,
	}
}

// SetTitle replaces the title. Blank titles are rejected.
func (r *record) SetTitle(value string) error {
	if err := validateTitle(value); err != nil {
		return err
	}
	r.title = value
	return nil
}

// SetAuthor replaces the author. Blank authors are rejected.
func (r *record) SetAuthor(value string) error {
	if err := validateAuthor(value); err != nil {
		return err
	}
	r.author = value
	return nil
}

// SetPublicationDate replaces the publication date. The previous value is
// kept if value is not a valid YYYY-MM-DD date.
func (r *record) SetPublicationDate(value string) error {
	if err := validatePublicationDate(value); err != nil {
		return err
	}
	r.publicationDate = value
	return nil
}

// CheckOut marks the item as lent out.
func (r *record) CheckOut() error {
	if !r.available {
		return &InvalidStateError{ISBN: r.isbn, Err: ErrAlreadyCheckedOut}
	}
	r.available = false
	return nil
}

// CheckIn marks the item as returned.
func (r *record) CheckIn() error {
	if r.available {
		return &InvalidStateError{ISBN: r.isbn, Err: ErrAlreadyCheckedIn}
	}
	r.available = true
	return nil
}

// String renders "{title} by {author} (ISBN: {isbn})".
func (r *record) String() string {
	return fmt.Sprintf("%s by %s (ISBN: %s)", r.title, r.author, r.isbn)
}
