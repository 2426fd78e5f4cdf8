// Package catalog persists media items in a JSON file and answers queries
// over the loaded collection.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matsen/shelf/internal/media"
)

// Store errors.
var (
	// ErrNotFound indicates no item has the requested ISBN.
	ErrNotFound = errors.New("no item with that ISBN")

	// ErrDuplicateISBN indicates an item with the same ISBN is already stored.
	ErrDuplicateISBN = errors.New("an item with that ISBN already exists")
)

// emptyCatalog is written whenever the file is created or reinitialized.
var emptyCatalog = []byte("[]")

// Store is an ordered collection of items bound to a JSON file. Every
// mutation rewrites the whole file. A Store is not safe for concurrent use.
type Store struct {
	path   string
	items  []media.Item
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovery and save messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open binds a Store to path, creating the parent directory and an empty
// catalog file if they do not exist. The collection starts empty; call
// Load to read the file.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		items:  []media.Item{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking catalog file: %w", err)
		}
		if err := s.initialize(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory collection with the file contents.
//
// A missing or blank file yields an empty collection. Content that cannot
// be decoded is not reported: the collection is reset and the file is
// rewritten as an empty catalog (see resetCorrupt). Only unexpected read
// errors and a failed rewrite are returned.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.reset()
		}
		return fmt.Errorf("reading catalog: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.reset()
	}

	items, skipped, err := decodeCatalog(data)
	if err != nil {
		return s.resetCorrupt(err)
	}
	if skipped > 0 {
		s.logger.Debug("skipped records with unknown type", "path", s.path, "count", skipped)
	}

	s.items = items
	s.logger.Debug("catalog loaded", "path", s.path, "items", len(items))
	return nil
}

// resetCorrupt is the recovery path for undecodable catalog content: the
// collection is emptied and the file reinitialized.
func (s *Store) resetCorrupt(cause error) error {
	s.logger.Warn("catalog file unreadable, starting empty", "path", s.path, "error", cause)
	return s.reset()
}

func (s *Store) reset() error {
	s.items = []media.Item{}
	return s.initialize()
}

func (s *Store) initialize() error {
	if err := os.WriteFile(s.path, emptyCatalog, 0644); err != nil {
		return fmt.Errorf("initializing catalog: %w", err)
	}
	return nil
}

// Save overwrites the backing file with the whole collection.
func (s *Store) Save() error {
	records, err := encodeItems(s.items)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false) // keep download URLs readable
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if err := os.WriteFile(s.path, bytes.TrimRight(buf.Bytes(), "\n"), 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	s.logger.Debug("catalog saved", "path", s.path, "items", len(s.items))
	return nil
}

// Add appends an item and saves. Duplicate ISBNs are allowed.
func (s *Store) Add(item media.Item) error {
	s.items = append(s.items, item)
	return s.Save()
}

// AddUnique appends an item and saves, unless an item with the same ISBN
// is already stored.
func (s *Store) AddUnique(item media.Item) error {
	if _, found := s.Find(item.ISBN()); found {
		return fmt.Errorf("%w: %s", ErrDuplicateISBN, item.ISBN())
	}
	return s.Add(item)
}

// Remove deletes every item with the given ISBN and saves. It returns the
// number of items removed; removing an unknown ISBN is not an error.
func (s *Store) Remove(isbn string) (int, error) {
	kept := make([]media.Item, 0, len(s.items))
	for _, item := range s.items {
		if item.ISBN() != isbn {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept

	if err := s.Save(); err != nil {
		return 0, err
	}
	return removed, nil
}

// Find returns the first item with the given ISBN.
func (s *Store) Find(isbn string) (media.Item, bool) {
	for _, item := range s.items {
		if item.ISBN() == isbn {
			return item, true
		}
	}
	return nil, false
}

// CheckOut checks out the first available copy with the given ISBN and
// saves. If every copy is already out the item's InvalidStateError is
// returned.
func (s *Store) CheckOut(isbn string) error {
	return s.transition(isbn, media.Item.IsAvailable, media.Item.CheckOut)
}

// CheckIn checks in the first checked-out copy with the given ISBN and
// saves.
func (s *Store) CheckIn(isbn string) error {
	return s.transition(isbn,
		func(item media.Item) bool { return !item.IsAvailable() },
		media.Item.CheckIn)
}

func (s *Store) transition(isbn string, ready func(media.Item) bool, apply func(media.Item) error) error {
	var first media.Item
	for _, item := range s.items {
		if item.ISBN() != isbn {
			continue
		}
		if first == nil {
			first = item
		}
		if ready(item) {
			if err := apply(item); err != nil {
				return err
			}
			return s.Save()
		}
	}

	if first == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, isbn)
	}
	// No copy in the right state: let the item report the illegal transition.
	return apply(first)
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []media.Item {
	out := make([]media.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the collection.
func (s *Store) Len() int {
	return len(s.items)
}
