// Package ingest reads the two market-data CSV streams the replay engine
// consumes. Parsing is a pure I/O concern kept out of internal/engine: a
// malformed row or unreadable file is a hard error surfaced to the caller,
// and the core is never entered.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readRows opens path, skips the header row, and returns every remaining
// row split into fields. No CSV-handling library appears anywhere in the
// reference corpus this engine was grounded on, so this one corner of the
// repository uses encoding/csv directly — see DESIGN.md.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = false
	// The exchange feed is not guaranteed to have a uniform field count
	// across every malformed row; let per-row parsing surface that instead
	// of csv.Reader bailing out early.
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ingest: %s has no header row", path)
	}
	return rows[1:], nil
}
