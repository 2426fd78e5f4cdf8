package export

import (
	"database/sql"
	"fmt"

	"github.com/matsen/shelf/internal/media"
	_ "modernc.org/sqlite"
)

// Snapshot is a SQLite copy of the catalog for use by external tools.
// It is written from the catalog and never read back by shelf.
type Snapshot struct {
	db *sql.DB
}

// OpenSnapshot opens or creates a SQLite snapshot at the given path.
func OpenSnapshot(path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Snapshot{db: db}, nil
}

// Close closes the database connection.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS items (
			position INTEGER PRIMARY KEY,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			publication_date TEXT NOT NULL,
			isbn TEXT NOT NULL,
			available INTEGER NOT NULL,
			page_count INTEGER,
			condition TEXT,
			file_size_mb REAL,
			format_type TEXT,
			download_url TEXT,
			duration_minutes INTEGER,
			narrator TEXT,
			audio_format TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_items_isbn ON items(isbn);
		CREATE INDEX IF NOT EXISTS idx_items_author ON items(author);
	`

	_, err := db.Exec(schema)
	return err
}

// Replace clears the snapshot and writes the given items in catalog order.
// Returns the number of rows written.
func (s *Snapshot) Replace(items []media.Item) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return 0, fmt.Errorf("clearing items table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (
			position, type, title, author, publication_date, isbn, available,
			page_count, condition,
			file_size_mb, format_type, download_url,
			duration_minutes, narrator, audio_format
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing items insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		row := RowFor(item)
		_, err := stmt.Exec(
			i, row.Type, row.Title, row.Author, row.PublicationDate, row.ISBN, row.Available,
			nullInt(row.PageCount), nullString(row.Condition),
			nullFloat(row.FileSizeMB), nullString(row.FormatType), nullString(row.DownloadURL),
			nullInt(row.DurationMinutes), nullString(row.Narrator), nullString(row.AudioFormat),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting item %s: %w", row.ISBN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshot: %w", err)
	}

	return len(items), nil
}

// Count returns the number of rows in the snapshot.
func (s *Snapshot) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n)
	return n, err
}

// CountByType returns row counts grouped by item type.
func (s *Snapshot) CountByType() (map[string]int, error) {
	rows, err := s.db.Query("SELECT type, COUNT(*) FROM items GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("querying type counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scanning type count: %w", err)
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}

// SnapshotStats reports what a snapshot holds after it was written.
type SnapshotStats struct {
	Total  int
	ByType map[string]int
}

// WriteSQLiteFile writes items to a SQLite snapshot at path and reads the
// row counts back from it.
func WriteSQLiteFile(path string, items []media.Item) (SnapshotStats, error) {
	snap, err := OpenSnapshot(path)
	if err != nil {
		return SnapshotStats{}, err
	}
	defer snap.Close()

	if _, err := snap.Replace(items); err != nil {
		return SnapshotStats{}, err
	}

	var stats SnapshotStats
	if stats.Total, err = snap.Count(); err != nil {
		return SnapshotStats{}, fmt.Errorf("counting items: %w", err)
	}
	if stats.ByType, err = snap.CountByType(); err != nil {
		return SnapshotStats{}, err
	}
	return stats, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}
