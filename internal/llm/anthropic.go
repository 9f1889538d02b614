package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type AnthropicProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey:     apiKey,
		model:      pick(model, "claude-3-5-sonnet-20241022"),
		baseURL:    "https://api.anthropic.com/v1",
		httpClient: newHTTPClient(),
	}
}

func (a *AnthropicProvider) Name() string {
	return "anthropic"
}

func (a *AnthropicProvider) headers() map[string]string {
	return map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	}
}

func (a *AnthropicProvider) Ping(ctx context.Context) error {
	return doJSON(ctx, a.httpClient, "Anthropic", http.MethodGet, a.baseURL+"/models", a.headers(), nil, nil)
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (a *AnthropicProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := pick(req.Model, a.model)
	system, msgs := splitSystem(req.Messages)

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	apiReq := anthropicRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      system,
		Temperature: req.Temperature,
	}
	for _, m := range msgs {
		apiReq.Messages = append(apiReq.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	var apiResp anthropicResponse
	if err := doJSON(ctx, a.httpClient, "Anthropic", http.MethodPost, a.baseURL+"/messages", a.headers(), apiReq, &apiResp); err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("no response from Anthropic")
	}

	return &CompletionResponse{
		Content:      text.String(),
		Model:        model,
		FinishReason: apiResp.StopReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.InputTokens,
			CompletionTokens: apiResp.Usage.OutputTokens,
			TotalTokens:      apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		},
	}, nil
}
