package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// EmbeddingOracle maps texts to fixed-length vectors. Optional: when
// no oracle is reachable at startup the embedding stage is skipped,
// which is a degradation, not an error.
type EmbeddingOracle interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingMatrix holds one unit-normalized vector per registry
// record, in registry order.
type EmbeddingMatrix [][]float32

// ErrCacheStale indicates the on-disk matrix was built from a
// different roster or model and must be recomputed.
var ErrCacheStale = errors.New("resolve: embedding cache stale")

// BuildEmbeddingMatrix encodes the normalized registry names and
// unit-normalizes each row.
func BuildEmbeddingMatrix(ctx context.Context, oracle EmbeddingOracle, normalizedNames []string) (EmbeddingMatrix, error) {
	if oracle == nil {
		return nil, errors.New("resolve: no embedding oracle")
	}
	vecs, err := oracle.Encode(ctx, normalizedNames)
	if err != nil {
		return nil, fmt.Errorf("resolve: encode registry names: %w", err)
	}
	if len(vecs) != len(normalizedNames) {
		return nil, fmt.Errorf("resolve: oracle returned %d vectors for %d names", len(vecs), len(normalizedNames))
	}
	m := make(EmbeddingMatrix, len(vecs))
	for i, v := range vecs {
		m[i] = unitNorm(v)
	}
	return m, nil
}

// MatchEmbedding splits the noise-cleaned text into tokens longer than
// three characters, encodes them, and returns the registry row with
// the globally best cosine similarity, if it reaches the threshold.
// This catches names so garbled by OCR that neither phrase nor fuzzy
// matching recognizes them, but whose sub-word shape still lands near
// the right entry.
func MatchEmbedding(ctx context.Context, oracle EmbeddingOracle, matrix EmbeddingMatrix, cleanText string, threshold float64) (int, bool, error) {
	if oracle == nil || len(matrix) == 0 {
		return 0, false, errors.New("resolve: embedding stage unavailable")
	}

	var tokens []string
	for _, tok := range strings.Fields(cleanText) {
		if len(tok) > 3 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return 0, false, nil
	}

	vecs, err := oracle.Encode(ctx, tokens)
	if err != nil {
		return 0, false, fmt.Errorf("resolve: encode tokens: %w", err)
	}

	bestSim := -1.0
	bestRow := -1
	for _, v := range vecs {
		nv := unitNorm(v)
		for row, rv := range matrix {
			if sim := dot(nv, rv); sim > bestSim {
				bestSim, bestRow = sim, row
			}
		}
	}
	if bestRow < 0 || bestSim < threshold {
		return 0, false, nil
	}
	return bestRow, true, nil
}

func unitNorm(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	n := math.Sqrt(sum)
	if n == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// matrixCache is the on-disk form of the embedding matrix, keyed by
// roster hash and model name so either changing invalidates it.
type matrixCache struct {
	RegistryHash string      `json:"registry_hash"`
	Model        string      `json:"model"`
	Vectors      [][]float32 `json:"vectors"`
}

// LoadMatrixCache reads a cached embedding matrix. ErrCacheStale is
// returned when the file exists but was built from different inputs.
func LoadMatrixCache(path, registryHash, model string) (EmbeddingMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c matrixCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("resolve: decode embedding cache: %w", err)
	}
	if c.RegistryHash != registryHash || c.Model != model {
		return nil, ErrCacheStale
	}
	return EmbeddingMatrix(c.Vectors), nil
}

// SaveMatrixCache writes the matrix next to its roster hash and model
// name. Failures are surfaced so the caller can log them; the matrix
// itself remains usable either way.
func SaveMatrixCache(path, registryHash, model string, m EmbeddingMatrix) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("resolve: create cache directory: %w", err)
	}
	data, err := json.Marshal(matrixCache{RegistryHash: registryHash, Model: model, Vectors: m})
	if err != nil {
		return fmt.Errorf("resolve: encode embedding cache: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
