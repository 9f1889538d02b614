package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/document"
	"github.com/sant0-9/quill/internal/essay"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/logging"
	"github.com/sant0-9/quill/internal/session"
	"github.com/sant0-9/quill/internal/writer"
)

type view int

const (
	viewSetup view = iota
	viewForm
	viewGenerating
	viewEssay
	viewSettings
	viewHelp
)

var errProviderNotReady = errors.New("provider is not connected")

// Options wires the app to its collaborators
type Options struct {
	Config     *config.Config
	NeedsSetup bool
	Exporter   *document.Exporter

	// Provider replaces the one built from Config
	Provider llm.Provider
}

type App struct {
	width    int
	height   int
	view     view
	prevView view
	state    *state
	quitting bool

	writer        *writer.Writer
	exporter      *document.Exporter
	fixedProvider llm.Provider
	copyText      func(string) error
}

func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := newState(cfg)
	s.needsSetup = opts.NeedsSetup

	a := &App{
		view:          viewForm,
		state:         s,
		exporter:      opts.Exporter,
		fixedProvider: opts.Provider,
		copyText:      clipboard.WriteAll,
	}
	if s.needsSetup {
		a.view = viewSetup
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.connectProvider(),
	)
}

// connectProvider builds the provider from config and pings it. A failed
// ping is reported but the provider is still used; the generate call will
// surface its own error.
func (a *App) connectProvider() tea.Cmd {
	cfg := *a.state.config
	fixed := a.fixedProvider

	return func() tea.Msg {
		provider := fixed
		if provider == nil {
			p, err := llm.NewProvider(&cfg)
			if err != nil {
				return providerErrorMsg{err: err}
			}
			provider = p
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{provider: provider, err: err}
		}
		return providerReadyMsg{provider: provider}
	}
}

func (a *App) useProvider(p llm.Provider) {
	a.state.provider = p
	a.writer = writer.NewWriter(p, a.state.config.Model)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.editor.SetWidth(min(80, max(20, a.width-8)))
		a.state.editor.SetHeight(max(5, a.height-12))

	case setupCompleteMsg:
		a.state.needsSetup = false
		if a.view == viewSetup {
			a.view = viewForm
		}
		return a, a.connectProvider()

	case setupErrorMsg:
		a.state.providerError = msg.error
		logging.Error("saving config failed", "error", msg.error)
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		a.useProvider(msg.provider)
		logging.Info("provider ready", "provider", msg.provider.Name(), "model", a.state.config.Model)
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.err
		if msg.provider != nil {
			a.useProvider(msg.provider)
		}
		logging.Warn("provider check failed", "provider", a.state.config.Provider, "error", msg.err)
		return a, nil

	case generateDoneMsg:
		a.state.form = a.state.form.FinishGeneration(msg.text, msg.err)
		if msg.err != nil {
			a.view = viewForm
			return a, nil
		}
		a.state.editor.SetValue(msg.text)
		a.view = viewEssay
		return a, a.state.editor.Focus()

	case exportDoneMsg:
		a.state.form = a.state.form.FinishExport(msg.blob, msg.err)
		return a, nil

	case spinner.TickMsg:
		if a.view != viewGenerating {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Forward everything else to the widget that owns input in this view
	switch {
	case a.view == viewSetup && a.state.setupStep == 1,
		a.view == viewSettings && a.state.settingsMode == "apikey":
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)

	case a.view == viewForm && a.state.focus == fieldTopic:
		var cmd tea.Cmd
		a.state.topicInput, cmd = a.state.topicInput.Update(msg)
		a.state.form = a.state.form.WithTopic(a.state.topicInput.Value())
		cmds = append(cmds, cmd)

	case a.view == viewEssay:
		var cmd tea.Cmd
		a.state.editor, cmd = a.state.editor.Update(msg)
		a.state.form = a.state.form.WithEssay(a.state.editor.Value())
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey deals with keys that mean something to the app. Keys it does
// not handle fall through to the focused widget.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewForm:
		return a.handleFormKey(msg)
	case viewGenerating:
		// the trigger stays disabled; a repeat is rejected by the session
		if key.Matches(msg, keys.Generate) {
			return a.generate(), true
		}
		return nil, true
	case viewEssay:
		return a.handleEssayKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			a.view = a.prevView
		}
		return nil, true
	}
	return nil, false
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state
	onTopic := s.focus == fieldTopic

	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Generate):
		return a.generate(), true

	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil, true

	case key.Matches(msg, keys.Tab):
		return a.setFocus((s.focus + 1) % fieldCount), true

	case key.Matches(msg, keys.BackTab):
		return a.setFocus((s.focus + fieldCount - 1) % fieldCount), true

	case key.Matches(msg, keys.Enter):
		if s.focus == fieldGenerate {
			return a.generate(), true
		}
		return a.setFocus(s.focus + 1), true

	case onTopic:
		return nil, false

	case key.Matches(msg, keys.Help):
		a.prevView = viewForm
		a.view = viewHelp
		return nil, true

	case key.Matches(msg, keys.Up):
		if s.focus > 0 {
			return a.setFocus(s.focus - 1), true
		}
		return nil, true

	case key.Matches(msg, keys.Down):
		if s.focus < fieldCount-1 {
			return a.setFocus(s.focus + 1), true
		}
		return nil, true

	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
		delta := 1
		if key.Matches(msg, keys.Left) {
			delta = -1
		}
		switch s.focus {
		case fieldStyle:
			a.cycleStyle(delta)
		case fieldWords:
			s.form = s.form.StepWordCount(delta)
		}
		return nil, true

	case msg.String() == "e" && s.form.CanExport():
		a.view = viewEssay
		return a.state.editor.Focus(), true
	}

	return nil, true
}

func (a *App) handleEssayKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.state.editor.Blur()
		a.view = viewForm
		return a.setFocus(fieldTopic), true

	case key.Matches(msg, keys.Export):
		return a.export(), true

	case key.Matches(msg, keys.Copy):
		a.copyEssay()
		return nil, true

	case key.Matches(msg, keys.Generate):
		return a.generate(), true
	}
	return nil, false
}

func (a *App) setFocus(f formField) tea.Cmd {
	if f >= fieldCount {
		f = fieldGenerate
	}
	a.state.focus = f
	if f == fieldTopic {
		return a.state.topicInput.Focus()
	}
	a.state.topicInput.Blur()
	return nil
}

func (a *App) cycleStyle(delta int) {
	n := len(essay.Styles)
	i := a.state.styleIndex + delta
	switch {
	case i < 0:
		i = n - 1
	case i >= n:
		i = 0
	}
	a.state.styleIndex = i
	a.state.form = a.state.form.WithStyle(essay.Styles[i])
}

// generate starts the single allowed generation call. The session rejects
// the trigger while one is already pending.
func (a *App) generate() tea.Cmd {
	next, err := a.state.form.BeginGeneration()
	a.state.form = next
	if err != nil {
		logging.Debug("generate rejected", "reason", err.Error())
		return nil
	}

	if a.writer == nil {
		cause := errProviderNotReady
		if a.state.providerError != nil {
			cause = a.state.providerError
		}
		a.state.form = a.state.form.FinishGeneration("", &essay.GenerationError{Err: cause})
		return nil
	}

	a.view = viewGenerating
	return tea.Batch(a.state.spinner.Tick, generateCmd(a.writer, next.Request()))
}

func generateCmd(w *writer.Writer, req essay.Request) tea.Cmd {
	return func() tea.Msg {
		text, err := w.Write(context.Background(), req)
		return generateDoneMsg{text: text, err: err}
	}
}

func (a *App) export() tea.Cmd {
	if a.exporter == nil {
		a.state.form = a.state.form.FinishExport(nil, &essay.ExportError{Err: errors.New("no exporter configured")})
		return nil
	}

	exporter := a.exporter
	title := a.state.form.Topic
	body := a.state.form.Essay
	return func() tea.Msg {
		blob, err := exporter.Export(context.Background(), title, body)
		return exportDoneMsg{blob: blob, err: err}
	}
}

func (a *App) copyEssay() {
	if !a.state.form.CanExport() {
		a.state.form = a.state.form.FinishExport(nil, essay.ErrNothingToExport)
		return
	}
	if err := a.copyText(a.state.form.Essay); err != nil {
		logging.Warn("clipboard copy failed", "error", err)
		a.state.form = a.state.form.Notify(session.NoticeError, "Could not copy to clipboard")
		return
	}
	a.state.form = a.state.form.Notify(session.NoticeSuccess, "Essay copied to clipboard")
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct {
	provider llm.Provider
	err      error
}
type generateDoneMsg struct {
	text string
	err  error
}
type exportDoneMsg struct {
	blob *document.Blob
	err  error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewGenerating:
		return a.renderGenerating()
	case viewEssay:
		return a.renderEssay()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderForm()
	}
}
