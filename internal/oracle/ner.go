// Package oracle holds the HTTP clients for the external inference
// models: the NER tagger and the sentence-embedding encoder. Both are
// feature-detected at startup; an unreachable backend disables the
// corresponding resolution stage instead of failing the run.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
)

// NERClient calls a token-classification inference endpoint that
// returns aggregated entities, the shape produced by enamex-style NER
// servers: [{"entity_group":"PER","word":"...","start":0,"end":12,"score":0.99}].
type NERClient struct {
	endpoint string
	client   *http.Client
}

// NewNERClient builds a client for the given endpoint URL.
func NewNERClient(endpoint string, timeout time.Duration) *NERClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &NERClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type nerRequest struct {
	Text string `json:"text"`
}

type nerEntity struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Score       float64 `json:"score"`
}

// Infer implements resolve.NEROracle.
func (c *NERClient) Infer(ctx context.Context, text string) ([]resolve.EntitySpan, error) {
	body, err := json.Marshal(nerRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("oracle: encode ner request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("oracle: build ner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle: ner call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("oracle: ner returned %d: %s", resp.StatusCode, snippet)
	}

	var entities []nerEntity
	if err := json.NewDecoder(resp.Body).Decode(&entities); err != nil {
		return nil, fmt.Errorf("oracle: decode ner response: %w", err)
	}

	spans := make([]resolve.EntitySpan, 0, len(entities))
	for _, e := range entities {
		spans = append(spans, resolve.EntitySpan{
			Text:  e.Word,
			Label: e.EntityGroup,
			Start: e.Start,
			End:   e.End,
			Score: e.Score,
		})
	}
	return spans, nil
}

// Ping verifies the backend answers a trivial request. Used once at
// startup to decide whether the NER stage is enabled.
func (c *NERClient) Ping(ctx context.Context) error {
	_, err := c.Infer(ctx, "ping")
	return err
}
