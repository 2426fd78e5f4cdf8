package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/shelf/internal/media"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// WriteJSONL writes one JSON object per item to w.
func WriteJSONL(w io.Writer, items []media.Item) error {
	for i, item := range items {
		data, err := json.Marshal(RowFor(item))
		if err != nil {
			return fmt.Errorf("encoding item %d: %w", i, err)
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing item %d: %w", i, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// WriteJSONLFile writes all items to a JSONL file, replacing existing content.
func WriteJSONLFile(path string, items []media.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	return writeJSONLAndClose(f, items)
}

// writeJSONLAndClose writes items to wc and closes it. A failed close is
// reported when the writes succeeded, since buffered data may be lost.
func writeJSONLAndClose(wc io.WriteCloser, items []media.Item) error {
	if err := WriteJSONL(wc, items); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}

// ReadJSONLFile reads rows from a JSONL export. Empty lines are skipped.
func ReadJSONLFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	var rows []Row
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var row Row
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}

	return rows, nil
}
