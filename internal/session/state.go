// Package session holds the form state as an immutable snapshot. Every user
// action is a transition that returns a new State; nothing is mutated in
// place.
package session

import (
	"github.com/sant0-9/quill/internal/document"
	"github.com/sant0-9/quill/internal/essay"
)

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is an opaque status message for the display surface
type Notice struct {
	Kind NoticeKind
	Text string
}

type State struct {
	Topic      string
	Style      essay.Style
	WordCount  int
	Essay      string
	Generating bool
	Notice     Notice
}

// New returns the empty form with the default word count
func New() State {
	return State{WordCount: essay.DefaultWords}
}

// WithDefaultWords starts the form at n words, clamped
func (s State) WithDefaultWords(n int) State {
	s.WordCount = essay.ClampWordCount(n)
	return s
}

func (s State) WithTopic(topic string) State {
	s.Topic = topic
	return s
}

func (s State) WithStyle(style essay.Style) State {
	s.Style = style
	return s
}

// StepWordCount moves the word count by steps of essay.WordStep, clamped
func (s State) StepWordCount(steps int) State {
	s.WordCount = essay.ClampWordCount(s.WordCount + steps*essay.WordStep)
	return s
}

// WithEssay records a hand edit of the generated text
func (s State) WithEssay(text string) State {
	s.Essay = text
	return s
}

// Notify replaces the notice with a plain status message
func (s State) Notify(kind NoticeKind, text string) State {
	s.Notice = Notice{Kind: kind, Text: text}
	return s
}

func (s State) ClearNotice() State {
	s.Notice = Notice{}
	return s
}

// Request is the composer input for the current form
func (s State) Request() essay.Request {
	return essay.Request{
		Topic:     s.Topic,
		Style:     s.Style,
		WordCount: essay.ClampWordCount(s.WordCount),
	}
}

// BeginGeneration sets the in-progress flag. It fails without changing
// anything but the notice when the form is invalid or a generation is
// already pending.
func (s State) BeginGeneration() (State, error) {
	if s.Generating {
		return s.withError(essay.ErrGenerationInProgress), essay.ErrGenerationInProgress
	}
	if err := s.Request().Validate(); err != nil {
		return s.withError(err), err
	}
	s.Generating = true
	s.Notice = Notice{}
	return s, nil
}

// FinishGeneration clears the in-progress flag. On failure the previous
// essay is kept.
func (s State) FinishGeneration(text string, err error) State {
	s.Generating = false
	if err != nil {
		return s.withError(err)
	}
	s.Essay = text
	s.Notice = Notice{Kind: NoticeSuccess, Text: "Essay generated successfully!"}
	return s
}

// FinishExport records the outcome of an export action
func (s State) FinishExport(blob *document.Blob, err error) State {
	if err != nil {
		return s.withError(err)
	}
	s.Notice = Notice{Kind: NoticeSuccess, Text: "Essay saved to " + blob.Path}
	return s
}

// CanExport reports whether there is any text to export
func (s State) CanExport() bool {
	return s.Essay != ""
}

func (s State) withError(err error) State {
	s.Notice = Notice{Kind: NoticeError, Text: essay.UserMessage(err)}
	return s
}
