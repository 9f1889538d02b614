package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:     apiKey,
		model:      pick(model, "gemini-1.5-flash"),
		baseURL:    geminiBaseURL,
		httpClient: newHTTPClient(),
	}
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

func (g *GeminiProvider) headers() map[string]string {
	return map[string]string{"x-goog-api-key": g.apiKey}
}

func (g *GeminiProvider) Ping(ctx context.Context) error {
	return doJSON(ctx, g.httpClient, "Gemini", http.MethodGet, g.baseURL+"/models", g.headers(), nil, nil)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (g *GeminiProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := pick(req.Model, g.model)
	system, msgs := splitSystem(req.Messages)

	apiReq := geminiRequest{
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if system != "" {
		apiReq.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range msgs {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		apiReq.Contents = append(apiReq.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, model)

	var apiResp geminiResponse
	if err := doJSON(ctx, g.httpClient, "Gemini", http.MethodPost, url, g.headers(), apiReq, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("gemini blocked the prompt: %s", apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	cand := apiResp.Candidates[0]
	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}

	return &CompletionResponse{
		Content:      text.String(),
		Model:        model,
		FinishReason: cand.FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.UsageMetadata.PromptTokenCount,
			CompletionTokens: apiResp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      apiResp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}
