package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/session"
)

type formField int

const (
	fieldTopic formField = iota
	fieldStyle
	fieldWords
	fieldGenerate
	fieldCount
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings
	settingsMode     string
	settingsSelected int

	// Form
	form       session.State
	focus      formField
	styleIndex int // -1 until a style is picked
	topicInput textinput.Model

	// Essay editor
	editor  textarea.Model
	spinner spinner.Model

	// Provider
	provider      llm.Provider
	providerReady bool
	providerError error
}

func newState(cfg *config.Config) *state {
	topic := textinput.New()
	topic.Placeholder = "Enter your essay topic..."
	topic.CharLimit = 200
	topic.Width = 50
	topic.Focus()

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	editor := textarea.New()
	editor.Placeholder = "Your generated essay will appear here..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.SetWidth(70)
	editor.SetHeight(20)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	return &state{
		config:      cfg,
		form:        session.New().WithDefaultWords(cfg.DefaultWords),
		styleIndex:  -1,
		topicInput:  topic,
		apiKeyInput: apiKey,
		editor:      editor,
		spinner:     spin,
	}
}
