// Package registry holds the closed list of known drivers that OCR text
// is matched against. The registry is loaded once at startup, validated,
// and treated as read-only shared state for the rest of the process.
package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty indicates the source contained no driver records.
	ErrEmpty = errors.New("registry: no driver records")
	// ErrDuplicateCode indicates two active records share an employee code.
	ErrDuplicateCode = errors.New("registry: duplicate driver code")
	// ErrEmptyName indicates a record without a driver name.
	ErrEmptyName = errors.New("registry: empty driver name")
)

// DriverRecord is a single (code, name) pair from the fleet roster.
type DriverRecord struct {
	Code string `csv:"codigo" json:"code"`
	Name string `csv:"nome" json:"name"`
}

// Registry is an ordered, immutable collection of driver records.
type Registry struct {
	records []DriverRecord
	byCode  map[string]int
}

// New validates the given records and builds a registry from them.
// Codes must be unique among records that carry one; names must be
// non-empty. Order is preserved.
func New(records []DriverRecord) (*Registry, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	byCode := make(map[string]int, len(records))
	cleaned := make([]DriverRecord, 0, len(records))

	for i, rec := range records {
		rec.Code = strings.TrimSpace(rec.Code)
		rec.Name = strings.TrimSpace(rec.Name)

		if rec.Name == "" {
			return nil, fmt.Errorf("%w (row %d, code %q)", ErrEmptyName, i+1, rec.Code)
		}
		if rec.Code != "" {
			if prev, exists := byCode[rec.Code]; exists {
				return nil, fmt.Errorf("%w %q (rows %d and %d)", ErrDuplicateCode, rec.Code, prev+1, i+1)
			}
			byCode[rec.Code] = len(cleaned)
		}
		cleaned = append(cleaned, rec)
	}

	return &Registry{records: cleaned, byCode: byCode}, nil
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns the records in load order. Callers must not mutate
// the returned slice.
func (r *Registry) Records() []DriverRecord {
	return r.records
}

// At returns the record at the given index.
func (r *Registry) At(i int) DriverRecord {
	return r.records[i]
}

// ByCode looks up a record index by its exact employee code.
func (r *Registry) ByCode(code string) (int, bool) {
	i, ok := r.byCode[code]
	return i, ok
}

// Names returns the driver names in load order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.records))
	for i, rec := range r.records {
		names[i] = rec.Name
	}
	return names
}

// Hash returns a stable content hash over all (code, name) pairs.
// Used to key the embedding matrix cache so a roster change invalidates it.
func (r *Registry) Hash() string {
	h := sha256.New()
	for _, rec := range r.records {
		h.Write([]byte(rec.Code))
		h.Write([]byte{0})
		h.Write([]byte(rec.Name))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
