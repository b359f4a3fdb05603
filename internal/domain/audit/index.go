// Package audit keeps a searchable record of every processed document
// so operators can answer "where did Clayton's March time-sheet go"
// without crawling the output folder.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/google/uuid"
)

// Document is one processed file's audit entry.
type Document struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	NewName      string    `json:"new_name"`
	Driver       string    `json:"driver"`
	DocType      string    `json:"doc_type"`
	Date         string    `json:"date"`
	Reason       string    `json:"reason,omitempty"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// Result is a search hit with its relevance score.
type Result struct {
	Document Document
	Score    float64
}

// Index wraps a bleve index over audit documents. In-memory when path
// is empty, persistent otherwise.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewIndex creates or opens the audit index.
func NewIndex(path string) (*Index, error) {
	m := buildMapping()

	var (
		idx bleve.Index
		err error
	)
	if path == "" {
		idx, err = bleve.NewMemOnly(m)
	} else if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, fmt.Errorf("audit: create index directory: %w", mkErr)
		}
		idx, err = bleve.New(path, m)
	} else {
		idx, err = bleve.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("audit: open index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = simple.Name

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("original_name", textField)
	doc.AddFieldMappingsAt("new_name", textField)
	doc.AddFieldMappingsAt("driver", textField)
	doc.AddFieldMappingsAt("doc_type", keywordField)
	doc.AddFieldMappingsAt("date", keywordField)
	doc.AddFieldMappingsAt("reason", keywordField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = simple.Name
	return m
}

// Add records a processed document. An empty ID gets a fresh UUID.
func (ix *Index) Add(doc Document) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.ProcessedAt.IsZero() {
		doc.ProcessedAt = time.Now()
	}
	if err := ix.index.Index(doc.ID, doc); err != nil {
		return fmt.Errorf("audit: index %s: %w", doc.OriginalName, err)
	}
	return nil
}

// Search runs a match query across all fields.
func (ix *Index) Search(query string, limit int) ([]Result, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	q := bleve.NewMatchQuery(query)
	q.SetFuzziness(1)

	req := bleve.NewSearchRequest(q)
	req.Size = limit
	req.Fields = []string{"*"}

	res, err := ix.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("audit: search: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc := Document{ID: hit.ID}
		if v, ok := hit.Fields["original_name"].(string); ok {
			doc.OriginalName = v
		}
		if v, ok := hit.Fields["new_name"].(string); ok {
			doc.NewName = v
		}
		if v, ok := hit.Fields["driver"].(string); ok {
			doc.Driver = v
		}
		if v, ok := hit.Fields["doc_type"].(string); ok {
			doc.DocType = v
		}
		if v, ok := hit.Fields["date"].(string); ok {
			doc.Date = v
		}
		if v, ok := hit.Fields["reason"].(string); ok {
			doc.Reason = v
		}
		results = append(results, Result{Document: doc, Score: hit.Score})
	}
	return results, nil
}

// Count returns the number of indexed documents.
func (ix *Index) Count() (uint64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.index.DocCount()
}

// Close releases the index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.index.Close()
}
