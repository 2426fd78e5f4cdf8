package catalog

import (
	"sort"
	"strings"

	"github.com/matsen/shelf/internal/media"
)

// AuthorCount is one entry of AuthorStats.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// ItemsByAuthor returns items whose author matches exactly, ignoring case.
func (s *Store) ItemsByAuthor(author string) []media.Item {
	return s.filter(func(item media.Item) bool {
		return strings.EqualFold(item.Author(), author)
	})
}

// AvailableItems returns items that are not checked out.
func (s *Store) AvailableItems() []media.Item {
	return s.filter(media.Item.IsAvailable)
}

// SearchByTitle returns items whose title contains query, ignoring case.
func (s *Store) SearchByTitle(query string) []media.Item {
	q := strings.ToLower(query)
	return s.filter(func(item media.Item) bool {
		return strings.Contains(strings.ToLower(item.Title()), q)
	})
}

// SortByTitle returns the items ordered by title. Equal titles keep
// insertion order.
func (s *Store) SortByTitle() []media.Item {
	return s.sorted(media.Item.Title)
}

// SortByAuthor returns the items ordered by author. Equal authors keep
// insertion order.
func (s *Store) SortByAuthor() []media.Item {
	return s.sorted(media.Item.Author)
}

// AuthorStats counts items per author (case-sensitive), in the order each
// author first appears in the collection.
func (s *Store) AuthorStats() []AuthorCount {
	stats := []AuthorCount{}
	index := make(map[string]int)
	for _, item := range s.items {
		author := item.Author()
		if i, ok := index[author]; ok {
			stats[i].Count++
			continue
		}
		index[author] = len(stats)
		stats = append(stats, AuthorCount{Author: author, Count: 1})
	}
	return stats
}

func (s *Store) filter(keep func(media.Item) bool) []media.Item {
	out := []media.Item{}
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) sorted(key func(media.Item) string) []media.Item {
	out := s.Items()
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}
