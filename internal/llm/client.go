package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Inference is slow and single-model; keep the server from being
	// flooded by concurrent handlers.
	rateLimit = 2 // requests per second
	rateBurst = 4

	// Retry configuration for transient server errors
	maxRetries   = 2
	initialDelay = 1 * time.Second

	// Sampling parameters for the completion endpoint
	defaultPredict     = 512
	defaultTemperature = 0.7
	defaultTopP        = 0.95
)

// Client talks to a llama.cpp HTTP server (llama-server) completion endpoint.
type Client struct {
	serverURL   string
	modelFile   string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a client for the given llama-server base URL. modelFile
// names the loaded model artifact and is forwarded with every request; the
// server ignores it when it only serves a single model.
func NewClient(serverURL, modelFile string, timeout time.Duration) *Client {
	return &Client{
		serverURL:   strings.TrimRight(serverURL, "/"),
		modelFile:   modelFile,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// CompletionRequest is the llama-server /completion payload.
type CompletionRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	NPredict    int     `json:"n_predict"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// CompletionResponse is the subset of the /completion response we consume.
type CompletionResponse struct {
	Content string `json:"content"`
}

// Complete runs a single blocking completion against the model server.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	reqBody := CompletionRequest{
		Prompt:      prompt,
		Model:       c.modelFile,
		NPredict:    defaultPredict,
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	var lastErr error
	delay := initialDelay
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			delay *= 2
		}

		content, retryable, err := c.doComplete(ctx, payload)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (c *Client) doComplete(ctx context.Context, payload []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/completion", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// network-level failures are worth one retry
		return "", true, fmt.Errorf("model server request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", retryable, fmt.Errorf("model server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out CompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", false, fmt.Errorf("decode completion response: %w", err)
	}

	content := strings.TrimSpace(out.Content)
	if content == "" {
		return "", false, fmt.Errorf("model server returned empty completion")
	}
	return content, false, nil
}
