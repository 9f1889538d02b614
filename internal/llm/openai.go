package llm

import (
	"context"
	"fmt"
	"net/http"
)

// OpenAIProvider speaks the chat completions API. Groq, OpenRouter and
// custom endpoints are the same client pointed at a different base URL.
type OpenAIProvider struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return newOpenAICompatible("openai", "https://api.openai.com/v1", apiKey, pick(model, "gpt-4o-mini"))
}

func NewGroqProvider(apiKey, model string) *OpenAIProvider {
	return newOpenAICompatible("groq", "https://api.groq.com/openai/v1", apiKey, pick(model, "llama-3.1-70b-versatile"))
}

func NewOpenRouterProvider(apiKey, model string) *OpenAIProvider {
	return newOpenAICompatible("openrouter", "https://openrouter.ai/api/v1", apiKey, pick(model, "meta-llama/llama-3.1-70b-instruct"))
}

func NewCustomProvider(baseURL, apiKey, model string) *OpenAIProvider {
	return newOpenAICompatible("custom", baseURL, apiKey, model)
}

func newOpenAICompatible(name, baseURL, apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		name:       name,
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) headers() map[string]string {
	if o.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + o.apiKey}
}

func (o *OpenAIProvider) Ping(ctx context.Context) error {
	return doJSON(ctx, o.httpClient, o.name, http.MethodGet, o.baseURL+"/models", o.headers(), nil, nil)
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
	Stream      bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := pick(req.Model, o.model)

	apiReq := openAIRequest{
		Model:       model,
		Messages:    make([]openAIMessage, len(req.Messages)),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	for i, m := range req.Messages {
		apiReq.Messages[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}

	var apiResp openAIResponse
	if err := doJSON(ctx, o.httpClient, o.name, http.MethodPost, o.baseURL+"/chat/completions", o.headers(), apiReq, &apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", o.name)
	}

	return &CompletionResponse{
		Content:      apiResp.Choices[0].Message.Content,
		Model:        model,
		FinishReason: apiResp.Choices[0].FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}, nil
}
