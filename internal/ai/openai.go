package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultOpenAIEndpoint is the chat completions URL used when none is configured.
	DefaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultOpenAIModel is used when no model is configured.
	DefaultOpenAIModel = "gpt-4o-mini"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIProvider implements LLMProvider against an OpenAI-compatible chat
// completions endpoint.
type OpenAIProvider struct {
	apiKey      string
	endpoint    string
	model       string
	temperature float32
	httpClient  *http.Client
}

// NewOpenAIProvider builds a provider. The client's own timeout is left unset;
// per-call deadlines come from the request context.
func NewOpenAIProvider(apiKey, endpoint, model string, temperature float32, httpClient *http.Client) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	if endpoint == "" {
		endpoint = DefaultOpenAIEndpoint
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenAIProvider{
		apiKey:      apiKey,
		endpoint:    endpoint,
		model:       model,
		temperature: temperature,
		httpClient:  httpClient,
	}, nil
}

// Complete sends prompt as a single user message and returns the reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", providerErr(ProviderOpenAI, "validate prompt", errors.New("empty prompt"))
	}

	reqBody, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", providerErr(ProviderOpenAI, "marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", providerErr(ProviderOpenAI, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", providerErr(ProviderOpenAI, "do request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", providerErr(ProviderOpenAI, "read response", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", providerErr(ProviderOpenAI, "unmarshal response", fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}
	if cr.Error != nil {
		return "", providerErr(ProviderOpenAI, "api error", errors.New(cr.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		return "", providerErr(ProviderOpenAI, "api error", fmt.Errorf("status %d", resp.StatusCode))
	}
	if len(cr.Choices) == 0 {
		return "", providerErr(ProviderOpenAI, "read choices", fmt.Errorf("API returned empty choices array (raw: %s)", body))
	}
	return cr.Choices[0].Message.Content, nil
}
