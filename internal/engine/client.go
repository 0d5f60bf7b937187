// Package engine is the HTTP client for the self-hosted inference backend
// that serves the Spanish→Kichwa model. Loading the model there is slow
// (weights plus tokenizer vocabulary), which is why the model package guards
// it behind an asynchronous lifecycle.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rimaylabs/rimay/pkg/logger"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the default base URL for the inference backend API.
	DefaultBaseURL = "http://localhost:5000"
	// DefaultRequestTimeout bounds a single translation HTTP call.
	DefaultRequestTimeout = 2 * time.Minute
	// DefaultLoadTimeout bounds the whole load-and-poll sequence. Model
	// initialization takes tens of seconds; anything past this is a failure.
	DefaultLoadTimeout = 5 * time.Minute

	loadPollInterval = 2 * time.Second
)

// Client talks to the inference backend for one configured model.
type Client struct {
	baseURL     string
	modelID     string
	httpClient  *http.Client
	loadTimeout time.Duration
}

// NewClient creates a backend client for the given model.
func NewClient(baseURL, modelID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		modelID: modelID,
		httpClient: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		loadTimeout: DefaultLoadTimeout,
	}
}

type loadRequest struct {
	Model string `json:"model"`
}

type statusResponse struct {
	State  string `json:"state"` // "loading", "ready" or "error"
	Detail string `json:"detail,omitempty"`
}

type translateRequest struct {
	Q         string `json:"q"`
	Model     string `json:"model"`
	MaxLength int    `json:"max_length"`
	NumBeams  int    `json:"num_beams"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Load asks the backend to load the model and polls until it reports ready.
// On success it returns a Bundle bound to the loaded model. The call blocks
// for the duration of the load, so run it from the guard's background job.
func (c *Client) Load(ctx context.Context) (*Bundle, error) {
	ctx, cancel := context.WithTimeout(ctx, c.loadTimeout)
	defer cancel()

	logger.Base().Info("requesting model load from backend",
		zap.String("model", c.modelID),
		zap.String("base_url", c.baseURL),
	)

	if err := c.postJSON(ctx, "/models/load", loadRequest{Model: c.modelID}, nil); err != nil {
		return nil, fmt.Errorf("request model load: %w", err)
	}

	ticker := time.NewTicker(loadPollInterval)
	defer ticker.Stop()

	for {
		status, err := c.modelStatus(ctx)
		if err != nil {
			return nil, fmt.Errorf("poll model status: %w", err)
		}

		switch status.State {
		case "ready":
			logger.Base().Info("backend reports model ready",
				zap.String("model", c.modelID),
			)
			return &Bundle{client: c}, nil
		case "error":
			return nil, fmt.Errorf("backend failed to load model %s: %s", c.modelID, status.Detail)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("model load timed out: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// modelStatus queries the backend's load state for the configured model.
func (c *Client) modelStatus(ctx context.Context) (*statusResponse, error) {
	url := fmt.Sprintf("%s/models/status?model=%s", c.baseURL, c.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}

// postJSON sends a JSON POST and optionally decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Bundle is the handle to a model the backend reported ready. It satisfies
// the model.Bundle interface and is safe for concurrent use: each call is an
// independent HTTP request.
type Bundle struct {
	client *Client
}

// Translate runs one bounded generation call against the loaded model.
func (b *Bundle) Translate(ctx context.Context, text string, maxLength, numBeams int) (string, error) {
	c := b.client

	logger.Base().Debug("translating text",
		zap.String("model", c.modelID),
		zap.Int("text_length", len(text)),
		zap.Int("max_length", maxLength),
	)

	var out translateResponse
	err := c.postJSON(ctx, "/translate", translateRequest{
		Q:         text,
		Model:     c.modelID,
		MaxLength: maxLength,
		NumBeams:  numBeams,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}
