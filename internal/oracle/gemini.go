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

// geminiOracle implements Oracle for the Gemini generateContent REST API.
type geminiOracle struct {
	baseURL          string
	apiKey           string
	model            string
	client           *http.Client
	maxResponseBytes int64
}

// NewGemini creates a Gemini-backed oracle.
func NewGemini(baseURL, apiKey, model string, timeout time.Duration, maxResponseBytes int64) Oracle {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if maxResponseBytes <= 0 {
		maxResponseBytes = 4 * 1024 * 1024
	}

	return &geminiOracle{
		baseURL:          baseURL,
		apiKey:           apiKey,
		model:            model,
		maxResponseBytes: maxResponseBytes,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *geminiOracle) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", unavailable("gemini", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, g.maxResponseBytes+1)
	respBody, err := io.ReadAll(limited)
	if err != nil {
		return "", unavailable("gemini", err)
	}
	if int64(len(respBody)) > g.maxResponseBytes {
		return "", unavailable("gemini", fmt.Errorf("response exceeded limit (%d bytes)", g.maxResponseBytes))
	}

	if resp.StatusCode >= 400 {
		var errBody geminiErrorResponse
		if err := json.Unmarshal(respBody, &errBody); err != nil {
			return "", unavailable("gemini", fmt.Errorf("status %d and undecodable error body", resp.StatusCode))
		}
		return "", unavailable("gemini", fmt.Errorf("%s (status=%s)", errBody.Error.Message, errBody.Error.Status))
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(respBody, &gemResp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response had no candidates")
	}

	var sb strings.Builder
	for _, p := range gemResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
