package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ollamaOracle implements Oracle for a locally hosted Ollama server.
type ollamaOracle struct {
	baseURL          string
	model            string
	client           *http.Client
	maxResponseBytes int64
}

// NewOllama creates an Ollama-backed oracle.
func NewOllama(baseURL, model string, timeout time.Duration, maxResponseBytes int64) Oracle {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "phi4:14b"
	}
	if timeout <= 0 {
		// Local models are slow on first load.
		timeout = 120 * time.Second
	}
	if maxResponseBytes <= 0 {
		maxResponseBytes = 4 * 1024 * 1024
	}

	return &ollamaOracle{
		baseURL:          baseURL,
		model:            model,
		maxResponseBytes: maxResponseBytes,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

func (o *ollamaOracle) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/api/generate", o.baseURL),
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", unavailable("ollama", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, o.maxResponseBytes+1)
	respBody, err := io.ReadAll(limited)
	if err != nil {
		return "", unavailable("ollama", err)
	}
	if int64(len(respBody)) > o.maxResponseBytes {
		return "", unavailable("ollama", fmt.Errorf("response exceeded limit (%d bytes)", o.maxResponseBytes))
	}

	if resp.StatusCode >= 400 {
		return "", unavailable("ollama", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var ollResp ollamaResponse
	if err := json.Unmarshal(respBody, &ollResp); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if ollResp.Error != "" {
		return "", unavailable("ollama", fmt.Errorf("%s", ollResp.Error))
	}

	return strings.TrimSpace(ollResp.Response), nil
}
