package llm

import (
	"context"
	"net/http"
)

type OllamaProvider struct {
	host       string
	model      string
	httpClient *http.Client
}

func NewOllamaProvider(host, model string) *OllamaProvider {
	return &OllamaProvider{
		host:       pick(host, "http://localhost:11434"),
		model:      model,
		httpClient: newHTTPClient(),
	}
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}

func (o *OllamaProvider) Ping(ctx context.Context) error {
	return doJSON(ctx, o.httpClient, "ollama", http.MethodGet, o.host+"/api/tags", nil, nil, nil)
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	DoneReason      string        `json:"done_reason,omitempty"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

func (o *OllamaProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	ollamaReq := ollamaChatRequest{
		Model:    pick(req.Model, o.model),
		Messages: make([]ollamaMessage, len(req.Messages)),
		Options: &ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}
	for i, m := range req.Messages {
		ollamaReq.Messages[i] = ollamaMessage{Role: m.Role, Content: m.Content}
	}

	var resp ollamaChatResponse
	if err := doJSON(ctx, o.httpClient, "ollama", http.MethodPost, o.host+"/api/chat", nil, ollamaReq, &resp); err != nil {
		return nil, err
	}

	return &CompletionResponse{
		Content:      resp.Message.Content,
		Model:        resp.Model,
		FinishReason: resp.DoneReason,
		Usage: Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
