package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/shelf/internal/media"
)

func mustBook(t *testing.T, title, author, isbn string) *media.Book {
	t.Helper()
	b, err := media.NewBook(media.Details{
		Title:           title,
		Author:          author,
		PublicationDate: "1925-04-10",
		ISBN:            isbn,
	}, 180, "good")
	if err != nil {
		t.Fatalf("NewBook() error = %v", err)
	}
	return b
}

func sampleItems(t *testing.T) []media.Item {
	t.Helper()
	book := mustBook(t, "The Great Gatsby", "F. Scott Fitzgerald", "978-0743273565")

	ebook, err := media.NewEBook(media.Details{
		Title:           "Python Crash Course",
		Author:          "Eric Matthes",
		PublicationDate: "2019-05-03",
		ISBN:            "978-1593279288",
	}, 5.2, "pdf", "https://example.com/python-crash-course.pdf")
	if err != nil {
		t.Fatalf("NewEBook() error = %v", err)
	}

	audio, err := media.NewAudiobook(media.Details{
		Title:           "The Hobbit",
		Author:          "J.R.R. Tolkien",
		PublicationDate: "1937-09-21",
		ISBN:            "978-0547928227",
	}, 683, "Rob Inglis", "mp3")
	if err != nil {
		t.Fatalf("NewAudiobook() error = %v", err)
	}

	return []media.Item{book, ebook, audio}
}

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func isbns(items []media.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ISBN()
	}
	return out
}

func TestOpen_CreatesFileAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "catalog.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if got := readFile(t, path); got != "[]" {
		t.Errorf("new catalog file = %q, want []", got)
	}
}

func TestOpen_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `[{"title":"A","author":"B","publicationDate":"2000-01-01","isbn":"123-1234567890","isAvailable":true,"type":"book","pageCount":1,"condition":"new"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := readFile(t, path); got != content {
		t.Errorf("Open() modified existing file: %q", got)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestAdd_PersistsAndRoundTrips(t *testing.T) {
	s, path := openTemp(t)
	items := sampleItems(t)
	if err := items[2].CheckOut(); err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}

	for _, item := range items {
		if err := s.Add(item); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want, _ := encodeItems(items)
	got, _ := encodeItems(reopened.Items())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}

	loaded := reopened.Items()
	if _, ok := loaded[0].(*media.Book); !ok {
		t.Errorf("item 0 = %T, want *media.Book", loaded[0])
	}
	if _, ok := loaded[1].(*media.EBook); !ok {
		t.Errorf("item 1 = %T, want *media.EBook", loaded[1])
	}
	if _, ok := loaded[2].(*media.Audiobook); !ok {
		t.Errorf("item 2 = %T, want *media.Audiobook", loaded[2])
	}
	if loaded[2].IsAvailable() {
		t.Error("checked-out audiobook loaded as available")
	}
}

func TestSave_FileFormat(t *testing.T) {
	s, path := openTemp(t)
	if err := s.Add(sampleItems(t)[0]); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	content := readFile(t, path)
	for _, want := range []string{
		`"title": "The Great Gatsby"`,
		`"author": "F. Scott Fitzgerald"`,
		`"publicationDate": "1925-04-10"`,
		`"isbn": "978-0743273565"`,
		`"isAvailable": true`,
		`"type": "book"`,
		`"pageCount": 180`,
		`"condition": "good"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("catalog file missing %s:\n%s", want, content)
		}
	}
	if strings.Contains(content, "fileSizeMb") || strings.Contains(content, "narrator") {
		t.Errorf("book record contains fields of other variants:\n%s", content)
	}
}

func TestAdd_AllowsDuplicateISBN(t *testing.T) {
	s, _ := openTemp(t)
	book := mustBook(t, "Copy", "Author", "111-1111111111")

	if err := s.Add(book); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Add(mustBook(t, "Copy", "Author", "111-1111111111")); err != nil {
		t.Fatalf("Add() duplicate error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestAddUnique_RejectsDuplicateISBN(t *testing.T) {
	s, _ := openTemp(t)

	if err := s.AddUnique(mustBook(t, "One", "Author", "111-1111111111")); err != nil {
		t.Fatalf("AddUnique() error = %v", err)
	}
	err := s.AddUnique(mustBook(t, "Two", "Author", "111-1111111111"))
	if !errors.Is(err, ErrDuplicateISBN) {
		t.Errorf("AddUnique() error = %v, want ErrDuplicateISBN", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestRemove(t *testing.T) {
	s, path := openTemp(t)
	for _, item := range sampleItems(t) {
		if err := s.Add(item); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if err := s.Add(mustBook(t, "Second Copy", "F. Scott Fitzgerald", "978-0743273565")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	n, err := s.Remove("978-0743273565")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Remove() = %d, want 2 (every copy)", n)
	}
	if got := isbns(s.Items()); !reflect.DeepEqual(got, []string{"978-1593279288", "978-0547928227"}) {
		t.Errorf("remaining = %v", got)
	}
	if strings.Contains(readFile(t, path), "978-0743273565") {
		t.Error("removed ISBN still in catalog file")
	}

	n, err = s.Remove("000-0000000000")
	if err != nil {
		t.Fatalf("Remove(unknown) error = %v", err)
	}
	if n != 0 || s.Len() != 2 {
		t.Errorf("Remove(unknown) = %d, Len() = %d; want 0, 2", n, s.Len())
	}
}

func TestRemove_LastItemLeavesEmptyFile(t *testing.T) {
	s, path := openTemp(t)
	if err := s.Add(mustBook(t, "The Great Gatsby", "F. Scott Fitzgerald", "978-0743273565")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if _, err := s.Remove("978-0743273565"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if got := readFile(t, path); got != "[]" {
		t.Errorf("catalog file = %q, want []", got)
	}
}

func TestLoad_Recovery(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"blank", "   \n"},
		{"null top level", "null"},
		{"not json", "this is not json"},
		{"object instead of array", `{"title":"x"}`},
		{"truncated", `[{"title":"A",`},
		{"record of wrong shape", `[42]`},
		{"wrong field type", `[{"title":"A","author":"B","publicationDate":"2000-01-01","isbn":"123-1234567890","type":"book","pageCount":"many","condition":"new"}]`},
		{"missing field", `[{"title":"A","author":"B","publicationDate":"2000-01-01","isbn":"123-1234567890","type":"book","condition":"new"}]`},
		{"fails validation", `[{"title":"A","author":"B","publicationDate":"2000-01-01","isbn":"bad","type":"book","pageCount":1,"condition":"new"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := openTemp(t)
			if err := s.Add(mustBook(t, "Stale", "Author", "999-9999999999")); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("writing catalog: %v", err)
			}

			if err := s.Load(); err != nil {
				t.Fatalf("Load() error = %v, want nil (silent recovery)", err)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", s.Len())
			}
			if got := readFile(t, path); got != "[]" {
				t.Errorf("catalog file = %q, want []", got)
			}
		})
	}
}

func TestLoad_MissingFileRecreated(t *testing.T) {
	s, path := openTemp(t)
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing catalog: %v", err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := readFile(t, path); got != "[]" {
		t.Errorf("catalog file = %q, want []", got)
	}
}

func TestLoad_SkipsUnknownTypes(t *testing.T) {
	s, path := openTemp(t)
	content := `[
		{"title":"Monthly","author":"Editors","publicationDate":"2024-01-01","isbn":"123-1234567890","isAvailable":true,"type":"magazine","issue":7},
		{"title":"No Type","author":"Someone","publicationDate":"2024-01-01","isbn":"123-1234567891","isAvailable":true},
		{"title":"Numeric Type","author":"Someone","publicationDate":"2024-01-01","isbn":"123-1234567893","isAvailable":true,"type":5},
		{"title":"Boolean Type","author":"Someone","publicationDate":"2024-01-01","isbn":"123-1234567894","isAvailable":true,"type":true},
		{"title":"Null Type","author":"Someone","publicationDate":"2024-01-01","isbn":"123-1234567895","type":null},
		{"title":"Odd Fields","author":"Someone","publicationDate":"2024-01-01","isbn":"123-1234567896","type":"magazine","pageCount":"many"},
		{"title":"A","author":"B","publicationDate":"2000-01-01","isbn":"123-1234567892","isAvailable":true,"type":"book","pageCount":10,"condition":"Fair","shelf":"3B"}
	]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := isbns(s.Items()); !reflect.DeepEqual(got, []string{"123-1234567892"}) {
		t.Errorf("loaded ISBNs = %v, want only the book", got)
	}
}

func TestLoad_MissingAvailabilityDefaultsTrue(t *testing.T) {
	s, path := openTemp(t)
	content := `[{"title":"A","author":"B","publicationDate":"2000-01-01","isbn":"123-1234567890","type":"audiobook","durationMinutes":90,"narrator":"N","audioFormat":"wav"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 1 || !s.Items()[0].IsAvailable() {
		t.Errorf("expected one available item, got %v", s.Items())
	}
}

func TestLoad_Idempotent(t *testing.T) {
	s, _ := openTemp(t)
	for _, item := range sampleItems(t) {
		if err := s.Add(item); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	first, _ := encodeItems(s.Items())
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, _ := encodeItems(s.Items())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second Load() differs:\n first  %+v\n second %+v", first, second)
	}
}

func TestCheckOutCheckIn(t *testing.T) {
	s, path := openTemp(t)
	if err := s.Add(mustBook(t, "Copy A", "Author", "111-1111111111")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Add(mustBook(t, "Copy B", "Author", "111-1111111111")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Two copies: both can be checked out, the third attempt fails.
	if err := s.CheckOut("111-1111111111"); err != nil {
		t.Fatalf("CheckOut() #1 error = %v", err)
	}
	if err := s.CheckOut("111-1111111111"); err != nil {
		t.Fatalf("CheckOut() #2 error = %v", err)
	}
	err := s.CheckOut("111-1111111111")
	if !errors.Is(err, media.ErrAlreadyCheckedOut) {
		t.Errorf("CheckOut() #3 error = %v, want ErrAlreadyCheckedOut", err)
	}
	if len(s.AvailableItems()) != 0 {
		t.Errorf("AvailableItems() = %d, want 0", len(s.AvailableItems()))
	}
	if !strings.Contains(readFile(t, path), `"isAvailable": false`) {
		t.Error("checkout was not persisted")
	}

	if err := s.CheckIn("111-1111111111"); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if got := s.AvailableItems(); len(got) != 1 || got[0].Title() != "Copy A" {
		t.Errorf("AvailableItems() after CheckIn = %v, want Copy A", got)
	}

	if err := s.CheckOut("000-0000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CheckOut(unknown) error = %v, want ErrNotFound", err)
	}
	if err := s.CheckIn("000-0000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CheckIn(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestCheckIn_AlreadyAvailable(t *testing.T) {
	s, _ := openTemp(t)
	if err := s.Add(mustBook(t, "A", "Author", "111-1111111111")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := s.CheckIn("111-1111111111"); !errors.Is(err, media.ErrAlreadyCheckedIn) {
		t.Errorf("CheckIn() error = %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestFind(t *testing.T) {
	s, _ := openTemp(t)
	for _, item := range sampleItems(t) {
		if err := s.Add(item); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	item, ok := s.Find("978-0547928227")
	if !ok {
		t.Fatal("Find() found = false")
	}
	if item.Title() != "The Hobbit" {
		t.Errorf("Find() title = %q, want The Hobbit", item.Title())
	}
	if _, ok := s.Find("000-0000000000"); ok {
		t.Error("Find(unknown) found = true")
	}
}
