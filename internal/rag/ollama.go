package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

const embedMaxRetries = 3

// OllamaClient talks to an Ollama-compatible model runtime over HTTP.
// It implements both Embedder and Generator.
type OllamaClient struct {
	baseURL    string
	embedModel string
	llmModel   string
	client     *http.Client
}

// NewOllamaClient creates a client for the runtime at baseURL. The timeout is
// the upper bound for a single generate call, configured once at startup.
func NewOllamaClient(baseURL, embedModel, llmModel string, timeout time.Duration) *OllamaClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaClient{
		baseURL:    baseURL,
		embedModel: embedModel,
		llmModel:   llmModel,
		client:     &http.Client{Timeout: timeout},
	}
}

// Embed returns an L2-normalized embedding vector for the given text.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float64, error) {
	body := map[string]interface{}{
		"model":  c.embedModel,
		"prompt": text,
	}

	var lastErr error
	for attempt := 0; attempt <= embedMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay(attempt)):
			}
		}

		raw, err := c.post(ctx, "/api/embeddings", body)
		if err != nil {
			lastErr = err
			continue
		}

		var out struct {
			Embedding []float64 `json:"embedding"`
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode embeddings response: %w", err)
		}
		if len(out.Embedding) == 0 {
			return nil, fmt.Errorf("runtime returned an empty embedding")
		}
		return normalize(out.Embedding), nil
	}
	return nil, fmt.Errorf("embeddings request failed after %d attempts: %w", embedMaxRetries+1, lastErr)
}

// Generate synthesizes a completion for the prompt. No streaming; the whole
// response body is returned at once.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"model":  c.llmModel,
		"prompt": prompt,
		"stream": false,
	}

	raw, err := c.post(ctx, "/api/generate", body)
	if err != nil {
		return "", err
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return out.Response, nil
}

func (c *OllamaClient) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model runtime returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	return raw, nil
}

func retryDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * 250 * time.Millisecond
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
	return v
}
