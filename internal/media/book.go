package media

import "fmt"

// Book is a physical book.
type Book struct {
	record
	pageCount int
	condition string
}

// NewBook validates all fields and returns a new available Book.
func NewBook(d Details, pageCount int, condition string) (*Book, error) {
	rec, err := newRecord(d)
	if err != nil {
		return nil, err
	}
	if err := validatePositive("pageCount", pageCount); err != nil {
		return nil, err
	}
	if err := validateChoice("condition", condition, Conditions); err != nil {
		return nil, err
	}
	return &Book{record: rec, pageCount: pageCount, condition: condition}, nil
}

// Kind returns KindBook.
func (b *Book) Kind() Kind { return KindBook }

// PageCount returns the number of pages.
func (b *Book) PageCount() int { return b.pageCount }

// Condition returns the physical condition as entered.
func (b *Book) Condition() string { return b.condition }

// SetPageCount replaces the page count. It must be positive.
func (b *Book) SetPageCount(value int) error {
	if err := validatePositive("pageCount", value); err != nil {
		return err
	}
	b.pageCount = value
	return nil
}

// SetCondition replaces the condition. It must be one of Conditions.
func (b *Book) SetCondition(value string) error {
	if err := validateChoice("condition", value, Conditions); err != nil {
		return err
	}
	b.condition = value
	return nil
}

func (b *Book) String() string {
	return fmt.Sprintf("%s - %d pages, Condition: %s", b.record.String(), b.pageCount, b.condition)
}
