// Package snapshot persists one headered tabular record set per file.
// Saves replace the whole file through a write-new-then-rename cycle, so a
// concurrent Load can never observe a torn write.
package snapshot

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

type Table struct {
	path   string
	header []string
}

func NewTable(path string, header []string) *Table {
	return &Table{path: path, header: header}
}

func (t *Table) Path() string {
	return t.path
}

// Load reads the full record set. A missing file is an empty table, not an
// error. Records written by an older deployment that lacked trailing
// columns are padded with empty defaults.
func (t *Table) Load() ([][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open snapshot %s: %w", t.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", t.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First record is the header. Field order is stable per deployment,
	// only trailing columns may have been added since the file was written.
	width := len(t.header)
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < width {
			padded := make([]string, width)
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record[:width])
	}
	return rows, nil
}

// SaveAtomic writes header plus rows to a temp file in the same directory,
// syncs it, then renames it over the live file.
func (t *Table) SaveAtomic(rows [][]string) error {
	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot for %s: %w", t.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	writer := csv.NewWriter(tmp)
	if err := writer.Write(t.header); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot header %s: %w", t.path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot rows %s: %w", t.path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush snapshot %s: %w", t.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", t.path, err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		return fmt.Errorf("rename snapshot %s: %w", t.path, err)
	}
	return nil
}
