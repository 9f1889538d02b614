package writer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/sant0-9/quill/internal/essay"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/logging"
	"github.com/sant0-9/quill/internal/prompts"
)

const (
	minMaxTokens     = 2048
	tokensPerWord    = 2
	essayTemperature = 0.7
)

// Writer composes the essay instruction and makes the single generation
// call. Only one call may be in flight per Writer.
type Writer struct {
	provider llm.Provider
	model    string
	inFlight *semaphore.Weighted
}

// NewWriter creates a new writer
func NewWriter(provider llm.Provider, model string) *Writer {
	return &Writer{
		provider: provider,
		model:    model,
		inFlight: semaphore.NewWeighted(1),
	}
}

// Write validates req, renders the instruction and returns the generated
// essay. Validation problems come back as *essay.ValidationError before any
// external call; provider failures come back as *essay.GenerationError. A
// call made while another is pending returns essay.ErrGenerationInProgress.
func (w *Writer) Write(ctx context.Context, req essay.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if !w.inFlight.TryAcquire(1) {
		logging.Warn("generation rejected, another call is pending", "topic", req.Topic)
		return "", essay.ErrGenerationInProgress
	}
	defer w.inFlight.Release(1)

	instruction, err := prompts.BuildEssayPrompt(req)
	if err != nil {
		return "", &essay.GenerationError{Err: err}
	}

	id := uuid.NewString()
	start := time.Now()
	logging.Info("generating essay",
		"request_id", id,
		"provider", w.provider.Name(),
		"style", req.Style.String(),
		"words", req.WordCount,
	)

	llmReq := llm.NewRequest(w.model, prompts.SystemPrompt, instruction)
	llmReq.MaxTokens = maxTokensFor(req.WordCount)
	llmReq.Temperature = essayTemperature

	resp, err := w.provider.Complete(ctx, llmReq)
	if err != nil {
		logging.Error("essay generation failed", "request_id", id, "error", err)
		return "", &essay.GenerationError{Err: err}
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		err := errors.New("provider returned an empty essay")
		logging.Error("essay generation failed", "request_id", id, "error", err, "finish_reason", resp.FinishReason)
		return "", &essay.GenerationError{Err: err}
	}

	logging.Info("essay generated",
		"request_id", id,
		"elapsed_ms", time.Since(start).Milliseconds(),
		"finish_reason", resp.FinishReason,
		"total_tokens", resp.Usage.TotalTokens,
	)
	return text, nil
}

// maxTokensFor leaves room for roughly two tokens per requested word
func maxTokensFor(words int) int {
	n := words * tokensPerWord
	if n < minMaxTokens {
		return minMaxTokens
	}
	return n
}
