package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// EmbeddingClient calls a text-embedding inference endpoint speaking
// the TEI-style protocol: POST {"inputs": [...]} -> [[...], ...].
// Safe for concurrent use; batch workers share one client.
type EmbeddingClient struct {
	endpoint string
	model    string
	client   *http.Client
	dims     atomic.Int64
}

// NewEmbeddingClient builds a client for the given endpoint. The model
// name is informational and keys the on-disk matrix cache.
func NewEmbeddingClient(endpoint, model string, timeout time.Duration) *EmbeddingClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &EmbeddingClient{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

// ModelName returns the configured embedding model identifier.
func (c *EmbeddingClient) ModelName() string {
	return c.model
}

// Dimensions returns the vector size observed on the first successful
// call, 0 before that.
func (c *EmbeddingClient) Dimensions() int {
	return int(c.dims.Load())
}

type embedRequest struct {
	Inputs []string `json:"inputs"`
}

// Encode implements resolve.EmbeddingOracle.
func (c *EmbeddingClient) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embedRequest{Inputs: texts})
	if err != nil {
		return nil, fmt.Errorf("oracle: encode embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("oracle: build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle: embed call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("oracle: embedder returned %d: %s", resp.StatusCode, snippet)
	}

	var vectors [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("oracle: decode embed response: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("oracle: embedder returned %d vectors for %d inputs", len(vectors), len(texts))
	}
	if len(vectors) > 0 {
		c.dims.CompareAndSwap(0, int64(len(vectors[0])))
	}
	return vectors, nil
}

// Ping verifies the backend is reachable; the embedding stage is
// enabled only when this succeeds at startup.
func (c *EmbeddingClient) Ping(ctx context.Context) error {
	_, err := c.Encode(ctx, []string{"ping"})
	return err
}
