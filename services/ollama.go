package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"faqbot/config"
)

// OllamaGenerator handles communication with a local Ollama server
type OllamaGenerator struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// ollamaRequest represents a request to POST /api/generate
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// ollamaResponse represents a non-streaming response from /api/generate
type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// NewOllamaGenerator creates a new Ollama generator. The HTTP client carries
// no timeout of its own; the caller's context bounds each call.
func NewOllamaGenerator(baseURL, model string) *OllamaGenerator {
	return &OllamaGenerator{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
	}
}

func (o *OllamaGenerator) Name() string {
	return config.ProviderOllama
}

// Generate generates an answer using the local model
func (o *OllamaGenerator) Generate(ctx context.Context, query, faqContext string) (string, error) {
	request := ollamaRequest{
		Model:  o.model,
		System: systemInstruction,
		Prompt: faqContext + "\nUser: " + query + "\nChatbot:",
		Stream: false,
		Options: ollamaOptions{
			Temperature: defaultTemperature,
			NumPredict:  chatMaxTokens,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", providerError(o.Name(), fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", providerError(o.Name(), fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", providerError(o.Name(), fmt.Errorf("failed to make request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", providerError(o.Name(), fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", providerError(o.Name(), fmt.Errorf("failed to decode response: %w", err))
	}

	if ollamaResp.Error != "" {
		return "", providerError(o.Name(), errors.New(ollamaResp.Error))
	}

	return strings.TrimSpace(ollamaResp.Response), nil
}
