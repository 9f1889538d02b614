package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/sant0-9/quill/internal/essay"
)

//go:embed essay.md
var essayTemplate string

// SystemPrompt is sent alongside every essay instruction
const SystemPrompt = "You are an experienced essay writer. Respond with plain prose paragraphs only."

var essayTmpl = template.Must(template.New("essay").Parse(essayTemplate))

type essayData struct {
	Topic     string
	Style     string
	Label     string
	WordCount int
}

// BuildEssayPrompt renders the fixed essay instruction for req. Only the
// topic, style and word count vary.
func BuildEssayPrompt(req essay.Request) (string, error) {
	var b strings.Builder
	err := essayTmpl.Execute(&b, essayData{
		Topic:     req.Topic,
		Style:     req.Style.String(),
		Label:     req.Style.Label(),
		WordCount: req.WordCount,
	})
	if err != nil {
		return "", fmt.Errorf("rendering essay prompt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}
