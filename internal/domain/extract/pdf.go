// Package extract pulls raw text out of scanned PDFs. It reads the
// embedded text layer when one exists (documents already run through
// OCR upstream) and can shell out to an external OCR command for
// image-only scans. The heavy lifting — rasterization, deskewing,
// recognition — happens outside this process.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/FACorreiaa/frota-docs/internal/domain/classify"
)

// Result is the raw material the classification and resolution stages
// work from.
type Result struct {
	Text        string
	PageCount   int
	Orientation classify.Orientation
}

// Source produces document text for a file path.
type Source interface {
	Extract(ctx context.Context, path string) (Result, error)
}

// Extractor reads the PDF text layer, optionally falling back to an
// external OCR command ("cmd {path}" printing text to stdout) when the
// layer is empty.
type Extractor struct {
	// OCRCommand, when non-empty, is invoked as OCRCommand[0] with the
	// remaining elements plus the file path as arguments.
	OCRCommand []string
}

// Extract reads text, page count and first-page orientation.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	res := Result{Orientation: classify.OrientationVertical}

	f, r, err := pdf.Open(path)
	if err != nil {
		return res, fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer f.Close()

	res.PageCount = r.NumPage()

	var b strings.Builder
	for i := 1; i <= res.PageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		if i == 1 {
			res.Orientation = pageOrientation(p)
		}
		text, err := pageText(p)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	res.Text = strings.TrimSpace(b.String())

	if res.Text == "" && len(e.OCRCommand) > 0 {
		ocrText, err := e.runOCR(ctx, path)
		if err != nil {
			return res, fmt.Errorf("extract: ocr fallback: %w", err)
		}
		res.Text = strings.TrimSpace(ocrText)
	}
	return res, nil
}

// pageText prefers row-ordered extraction so table cells keep their
// reading order; plain extraction is the fallback.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	ordered := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			ordered = append(ordered, row)
		}
	}
	// Higher Y is higher on the page in PDF coordinates.
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Position > ordered[j].Position
	})

	var b strings.Builder
	for _, row := range ordered {
		for _, t := range row.Content {
			b.WriteString(t.S)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func pageOrientation(p pdf.Page) classify.Orientation {
	box := p.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() < 4 {
		return classify.OrientationVertical
	}
	width := box.Index(2).Float64() - box.Index(0).Float64()
	height := box.Index(3).Float64() - box.Index(1).Float64()
	if width > height {
		return classify.OrientationHorizontal
	}
	return classify.OrientationVertical
}

func (e *Extractor) runOCR(ctx context.Context, path string) (string, error) {
	args := append(append([]string{}, e.OCRCommand[1:]...), path)
	cmd := exec.CommandContext(ctx, e.OCRCommand[0], args...)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w (%s)", e.OCRCommand[0], err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}
