// Package rename builds the canonical output filename for a processed
// document and moves the file into place without clobbering existing
// files.
package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/frota-docs/internal/domain/classify"
)

// Metadata is everything that goes into an output filename.
type Metadata struct {
	Type   classify.DocType
	Driver string
	Date   string // dd-mm-yyyy
	Reason string
}

// BuildName renders the per-type filename template. Dates keep only
// dashes as separators; the driver slot falls back to the unknown
// sentinel so a failed resolution is visible in the filename itself.
func BuildName(meta Metadata) string {
	driver := strings.TrimSpace(meta.Driver)
	if driver == "" {
		driver = "DESCONHECIDO"
	}
	date := strings.NewReplacer("/", "-", ".", "-").Replace(strings.TrimSpace(meta.Date))
	reason := strings.TrimSpace(meta.Reason)

	switch meta.Type {
	case classify.TypeCarta:
		return fmt.Sprintf("CARTA %s %s.pdf", driver, date)
	case classify.TypeAdvertencia:
		return fmt.Sprintf("ADVERTENCIA %s %s %s.pdf", reason, date, driver)
	case classify.TypePonto:
		return fmt.Sprintf("PONTO %s %s.pdf", date, driver)
	case classify.TypeAtestado:
		return fmt.Sprintf("ATESTADO %s %s.pdf", date, driver)
	default:
		return fmt.Sprintf("DESCONHECIDO %s %s.pdf", date, driver)
	}
}

// Rename moves the file to its metadata-derived name within the same
// directory, appending "(n)" before the extension on collision.
// Returns the final path.
func Rename(path string, meta Metadata) (string, error) {
	dir := filepath.Dir(path)
	base := BuildName(meta)

	target := filepath.Join(dir, base)
	for n := 1; ; n++ {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(base)
		target = filepath.Join(dir, fmt.Sprintf("%s(%d)%s", strings.TrimSuffix(base, ext), n, ext))
	}

	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return target, nil
}
