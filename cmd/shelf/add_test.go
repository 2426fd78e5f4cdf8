package main

import (
	"testing"

	"github.com/matsen/shelf/internal/media"
	"github.com/matsen/shelf/internal/pdf"
)

func TestFillFromPDF(t *testing.T) {
	meta := &pdf.Metadata{Title: "Pro Git", Author: "Scott Chacon", Pages: 456, SizeMB: 7.3}

	t.Run("fills blanks", func(t *testing.T) {
		d := media.Details{PublicationDate: "2014-11-18", ISBN: "978-1484200773"}
		size, format := 0.0, ""
		fillFromPDF(&d, &size, &format, meta)

		if d.Title != "Pro Git" || d.Author != "Scott Chacon" {
			t.Errorf("details = %+v", d)
		}
		if size != 7.3 {
			t.Errorf("size = %v, want 7.3", size)
		}
		if format != "pdf" {
			t.Errorf("format = %q, want pdf", format)
		}
	})

	t.Run("keeps flags", func(t *testing.T) {
		d := media.Details{Title: "Pro Git, 2nd Edition", Author: "Scott Chacon and Ben Straub"}
		size, format := 9.1, "epub"
		fillFromPDF(&d, &size, &format, meta)

		if d.Title != "Pro Git, 2nd Edition" || d.Author != "Scott Chacon and Ben Straub" {
			t.Errorf("details = %+v", d)
		}
		if size != 9.1 || format != "epub" {
			t.Errorf("size, format = %v, %q", size, format)
		}
	})
}

func TestItemResponse(t *testing.T) {
	book := testBook(t, "Dune", "Frank Herbert", "978-0441172719")

	resp := itemResponse(book)
	if resp.Type != "book" || resp.ISBN != "978-0441172719" || !resp.Available {
		t.Errorf("itemResponse() = %+v", resp)
	}
	if resp.Description != book.String() {
		t.Errorf("Description = %q, want %q", resp.Description, book.String())
	}
}
