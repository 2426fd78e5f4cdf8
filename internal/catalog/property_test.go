package catalog

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/shelf/internal/media"
	"pgregory.net/rapid"
)

func detailsGen() *rapid.Generator[media.Details] {
	return rapid.Custom(func(t *rapid.T) media.Details {
		return media.Details{
			Title:           rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ,.'&]{0,40}`).Draw(t, "title"),
			Author:          rapid.StringMatching(`[A-Z][a-z]{1,10} [A-Z][a-z]{1,12}`).Draw(t, "author"),
			PublicationDate: rapid.StringMatching(`(1[5-9]|20)[0-9]{2}-(0[1-9]|1[0-2])-(0[1-9]|1[0-9]|2[0-8])`).Draw(t, "date"),
			ISBN:            rapid.StringMatching(`[0-9]{3}-[0-9]{10}`).Draw(t, "isbn"),
		}
	})
}

func itemGen() *rapid.Generator[media.Item] {
	return rapid.Custom(func(t *rapid.T) media.Item {
		d := detailsGen().Draw(t, "details")

		var item media.Item
		var err error
		switch rapid.SampledFrom(media.Kinds).Draw(t, "kind") {
		case media.KindBook:
			item, err = media.NewBook(d,
				rapid.IntRange(1, 3000).Draw(t, "pages"),
				rapid.SampledFrom(media.Conditions).Draw(t, "condition"))
		case media.KindEBook:
			item, err = media.NewEBook(d,
				rapid.Float64Range(0.01, 2048).Draw(t, "size"),
				rapid.SampledFrom(media.EBookFormats).Draw(t, "format"),
				"https://cdn.example.com/files/"+rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(t, "file")+"?dl=1&v=2")
		case media.KindAudiobook:
			item, err = media.NewAudiobook(d,
				rapid.IntRange(1, 6000).Draw(t, "minutes"),
				rapid.StringMatching(`[A-Z][a-z]{1,10} [A-Z][a-z]{1,10}`).Draw(t, "narrator"),
				rapid.SampledFrom(media.AudioFormats).Draw(t, "audioFormat"))
		}
		if err != nil {
			t.Fatalf("constructing item: %v", err)
		}

		if rapid.Bool().Draw(t, "checkedOut") {
			if err := item.CheckOut(); err != nil {
				t.Fatalf("CheckOut() error = %v", err)
			}
		}
		return item
	})
}

func TestProperty_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	rapid.Check(t, func(rt *rapid.T) {
		s, err := Open(path)
		if err != nil {
			rt.Fatalf("Open() error = %v", err)
		}
		items := rapid.SliceOfN(itemGen(), 0, 12).Draw(rt, "items")
		s.items = items
		if err := s.Save(); err != nil {
			rt.Fatalf("Save() error = %v", err)
		}

		loaded, err := Open(path)
		if err != nil {
			rt.Fatalf("Open() error = %v", err)
		}
		if err := loaded.Load(); err != nil {
			rt.Fatalf("Load() error = %v", err)
		}

		want, err := encodeItems(items)
		if err != nil {
			rt.Fatalf("encodeItems() error = %v", err)
		}
		got, err := encodeItems(loaded.Items())
		if err != nil {
			rt.Fatalf("encodeItems() error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			rt.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
		}
		for i := range items {
			if items[i].Kind() != loaded.Items()[i].Kind() {
				rt.Fatalf("item %d kind = %s, want %s", i, loaded.Items()[i].Kind(), items[i].Kind())
			}
		}

		// Loading again without mutation changes nothing.
		if err := loaded.Load(); err != nil {
			rt.Fatalf("second Load() error = %v", err)
		}
		again, _ := encodeItems(loaded.Items())
		if !reflect.DeepEqual(again, got) {
			rt.Fatalf("second Load() differs")
		}
	})
}
