package essay

import "strings"

const (
	MinWords     = 500
	MaxWords     = 3000
	WordStep     = 100
	DefaultWords = 1500
)

// Request is everything the composer needs to produce one essay
type Request struct {
	Topic     string
	Style     Style
	WordCount int
}

// Validate checks the topic first, then the style. The word count is
// clamped by the input surface and trusted here.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errMissingTopic
	}
	if !r.Style.Valid() {
		return errMissingStyle
	}
	return nil
}

// ClampWordCount forces n into [MinWords, MaxWords] and rounds it to the
// nearest WordStep.
func ClampWordCount(n int) int {
	if n <= MinWords {
		return MinWords
	}
	if n >= MaxWords {
		return MaxWords
	}
	return (n + WordStep/2) / WordStep * WordStep
}
