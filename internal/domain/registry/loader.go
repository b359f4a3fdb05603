package registry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// Load reads a driver roster from disk. The format is picked by file
// extension: .csv (gocsv, header row "codigo","nome") or .xlsx
// (excelize, first sheet, same two columns).
func Load(path string) (*Registry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("registry: open %s: %w", path, err)
		}
		defer f.Close()
		return LoadCSV(f)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("registry: unsupported roster format %q", filepath.Ext(path))
	}
}

// LoadCSV parses a CSV roster. The header row must name the columns
// "codigo" and "nome"; extra columns are ignored.
func LoadCSV(r io.Reader) (*Registry, error) {
	var rows []DriverRecord
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("registry: parse csv: %w", err)
	}
	return New(rows)
}

// loadXLSX parses the first sheet of an Excel roster. The first row is
// treated as a header when its first cell is not numeric.
func loadXLSX(path string) (*Registry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("registry: read sheet %q: %w", sheets[0], err)
	}

	records := make([]DriverRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		code := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])

		// Skip a header row like "codigo;nome".
		if i == 0 && !isDigits(code) {
			continue
		}
		if code == "" && name == "" {
			continue
		}
		records = append(records, DriverRecord{Code: code, Name: name})
	}

	return New(records)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
