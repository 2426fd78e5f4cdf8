package main

import (
	"path/filepath"
	"testing"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/media"
)

func newTestStore(t *testing.T, items ...media.Item) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for _, item := range items {
		if err := store.Add(item); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	return store
}

func titles(items []media.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectItems(t *testing.T) {
	dune := testBook(t, "Dune", "Frank Herbert", "978-0441172719")
	messiah := testBook(t, "Dune Messiah", "Frank Herbert", "978-0593098233")
	hobbit := testBook(t, "The Hobbit", "J.R.R. Tolkien", "978-0547928227")
	children := testBook(t, "Children of Dune", "frank herbert", "978-0593098240")
	if err := messiah.CheckOut(); err != nil {
		t.Fatal(err)
	}

	store := newTestStore(t, messiah, hobbit, dune, children)

	tests := []struct {
		name string
		opts listOptions
		want []string
	}{
		{"all in insertion order", listOptions{}, []string{"Dune Messiah", "The Hobbit", "Dune", "Children of Dune"}},
		{"sorted by title", listOptions{Sort: "title"}, []string{"Children of Dune", "Dune", "Dune Messiah", "The Hobbit"}},
		// Byte-wise: "Frank Herbert" < "J.R.R. Tolkien" < "frank herbert".
		{"sorted by author keeps ties stable", listOptions{Sort: "author"}, []string{"Dune Messiah", "Dune", "The Hobbit", "Children of Dune"}},
		{"author filter ignores case", listOptions{Author: "FRANK HERBERT"}, []string{"Dune Messiah", "Dune", "Children of Dune"}},
		{"available only", listOptions{Available: true}, []string{"The Hobbit", "Dune", "Children of Dune"}},
		{"author and available sorted", listOptions{Author: "Frank Herbert", Available: true, Sort: "title"}, []string{"Children of Dune", "Dune"}},
		{"unknown author", listOptions{Author: "Nobody"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(selectItems(store, tt.opts))
			if !equalStrings(got, tt.want) {
				t.Errorf("selectItems(%+v) = %v, want %v", tt.opts, got, tt.want)
			}
		})
	}
}

func TestSelectItems_DuplicateCopies(t *testing.T) {
	first := testBook(t, "Dune", "Frank Herbert", "978-0441172719")
	second := testBook(t, "Dune", "Frank Herbert", "978-0441172719")
	if err := first.CheckOut(); err != nil {
		t.Fatal(err)
	}

	store := newTestStore(t, first, second)

	got := selectItems(store, listOptions{Available: true})
	if len(got) != 1 || got[0] != media.Item(second) {
		t.Errorf("selectItems(available) = %v, want only the second copy", got)
	}
}
