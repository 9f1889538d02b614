package tui

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/document"
	"github.com/sant0-9/quill/internal/essay"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/session"
)

type fakeProvider struct {
	calls   atomic.Int32
	content string
	err     error
}

func (f *fakeProvider) Name() string                   { return "fake" }
func (f *fakeProvider) Ping(ctx context.Context) error { return nil }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content}, nil
}

type captureRenderer struct {
	got *document.Document
}

func (r *captureRenderer) Render(d *document.Document) ([]byte, error) {
	r.got = d
	return []byte("PK"), nil
}

type memSaver struct {
	calls int
	err   error
}

func (s *memSaver) Save(ctx context.Context, filename string, data []byte) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "/out/" + filename, nil
}

type harness struct {
	app      *App
	provider *fakeProvider
	renderer *captureRenderer
	saver    *memSaver
	copied   string
}

func newHarness(t *testing.T, p *fakeProvider) *harness {
	t.Helper()
	h := &harness{
		provider: p,
		renderer: &captureRenderer{},
		saver:    &memSaver{},
	}
	h.app = NewApp(Options{
		Config:   config.DefaultConfig(),
		Exporter: document.NewExporter(h.renderer, h.saver),
		Provider: p,
	})
	h.app.copyText = func(s string) error {
		h.copied = s
		return nil
	}

	msg := h.app.connectProvider()()
	require.IsType(t, providerReadyMsg{}, msg)
	h.send(msg)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.app.Update(msg)
	return cmd
}

func (h *harness) key(t tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: t})
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// run executes cmd and every command it batches, feeding the messages
// that matter back into the app. Commands returned in response are not
// run, so cursor blinks and reconnects stay out of the way.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case generateDoneMsg, exportDoneMsg, setupCompleteMsg, setupErrorMsg:
		h.send(msg)
	}
}

func (h *harness) fillForm(topic string) {
	h.typeText(topic)
	h.key(tea.KeyTab)
	h.key(tea.KeyRight)
}

func (h *harness) notice() session.Notice {
	return h.app.state.form.Notice
}

func TestGenerateFlow(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "Intro.\n\nBody.\n\nConclusion."})
	h.fillForm("Climate Change")

	assert.Equal(t, "Climate Change", h.app.state.form.Topic)
	assert.Equal(t, essay.Styles[0], h.app.state.form.Style)

	cmd := h.key(tea.KeyCtrlG)
	require.NotNil(t, cmd)
	assert.Equal(t, viewGenerating, h.app.view)
	assert.True(t, h.app.state.form.Generating)

	// a second trigger while pending is rejected without a call
	assert.Nil(t, h.key(tea.KeyCtrlG))
	assert.Equal(t, "An essay is already being generated", h.notice().Text)

	h.run(cmd)

	assert.EqualValues(t, 1, h.provider.calls.Load())
	assert.Equal(t, viewEssay, h.app.view)
	assert.False(t, h.app.state.form.Generating)
	assert.Equal(t, "Intro.\n\nBody.\n\nConclusion.", h.app.state.editor.Value())
	assert.Equal(t, session.NoticeSuccess, h.notice().Kind)
	assert.Contains(t, h.app.View(), "Save .docx")
}

func TestGenerateValidation(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "text"})

	assert.Nil(t, h.key(tea.KeyCtrlG))
	assert.Equal(t, "Please enter a subject title", h.notice().Text)

	h.typeText("   ")
	assert.Nil(t, h.key(tea.KeyCtrlG))
	assert.Equal(t, "Please enter a subject title", h.notice().Text)

	h.typeText("Topic")
	assert.Nil(t, h.key(tea.KeyCtrlG))
	assert.Equal(t, "Please select a writing style", h.notice().Text)

	assert.Equal(t, viewForm, h.app.view)
	assert.EqualValues(t, 0, h.provider.calls.Load())
}

func TestGenerateFailureKeepsForm(t *testing.T) {
	h := newHarness(t, &fakeProvider{err: errors.New("boom")})
	h.fillForm("Climate Change")

	h.run(h.key(tea.KeyCtrlG))

	assert.Equal(t, viewForm, h.app.view)
	assert.False(t, h.app.state.form.Generating)
	assert.Equal(t, "Failed to generate essay. Please try again.", h.notice().Text)
	assert.Empty(t, h.app.state.form.Essay)
}

func TestEnterOnButtonGenerates(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "Body."})
	h.fillForm("Climate Change")
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	require.Equal(t, fieldGenerate, h.app.state.focus)

	h.run(h.key(tea.KeyEnter))
	assert.EqualValues(t, 1, h.provider.calls.Load())
	assert.Equal(t, viewEssay, h.app.view)
}

func TestWordCountSlider(t *testing.T) {
	h := newHarness(t, &fakeProvider{})
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	require.Equal(t, fieldWords, h.app.state.focus)

	h.key(tea.KeyRight)
	assert.Equal(t, 1600, h.app.state.form.WordCount)

	for i := 0; i < 30; i++ {
		h.key(tea.KeyLeft)
	}
	assert.Equal(t, essay.MinWords, h.app.state.form.WordCount)

	for i := 0; i < 40; i++ {
		h.key(tea.KeyRight)
	}
	assert.Equal(t, essay.MaxWords, h.app.state.form.WordCount)
}

func TestStyleSelectorWraps(t *testing.T) {
	h := newHarness(t, &fakeProvider{})
	h.key(tea.KeyTab)

	h.key(tea.KeyLeft)
	assert.Equal(t, essay.Styles[len(essay.Styles)-1], h.app.state.form.Style)
	h.key(tea.KeyRight)
	assert.Equal(t, essay.Styles[0], h.app.state.form.Style)
}

func TestExportEditedEssay(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "First."})
	h.fillForm("AI & Society")
	h.run(h.key(tea.KeyCtrlG))
	require.Equal(t, viewEssay, h.app.view)

	h.key(tea.KeyEnter)
	h.key(tea.KeyEnter)
	h.typeText("Second.")
	assert.Equal(t, "First.\n\nSecond.", h.app.state.form.Essay)

	h.run(h.key(tea.KeyCtrlS))

	require.NotNil(t, h.renderer.got)
	assert.Equal(t, "AI & Society", h.renderer.got.Title)
	assert.Equal(t, []string{"First.", "Second."}, h.renderer.got.Paragraphs)
	assert.Equal(t, "Essay saved to /out/ai___society_essay.docx", h.notice().Text)
}

func TestExportFailure(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "First."})
	h.saver.err = errors.New("disk full")
	h.fillForm("Topic")
	h.run(h.key(tea.KeyCtrlG))

	h.run(h.key(tea.KeyCtrlS))
	assert.Equal(t, "Failed to download essay. Please try again.", h.notice().Text)
}

func TestExportClearedEssay(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "First."})
	h.fillForm("Topic")
	h.run(h.key(tea.KeyCtrlG))

	h.app.state.editor.SetValue("")
	h.app.state.form = h.app.state.form.WithEssay(h.app.state.editor.Value())

	h.run(h.key(tea.KeyCtrlS))
	assert.Equal(t, 0, h.saver.calls)
	assert.Equal(t, "Please generate an essay first", h.notice().Text)
}

func TestExportKeepsBlankParagraphs(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "One.\n\n\n\nTwo."})
	h.fillForm("Topic")
	h.run(h.key(tea.KeyCtrlG))

	h.run(h.key(tea.KeyCtrlS))
	require.NotNil(t, h.renderer.got)
	assert.Equal(t, []string{"One.", "", "Two."}, h.renderer.got.Paragraphs)
	assert.Equal(t, 1, h.saver.calls)
}

func TestCopyEssay(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "Copied text."})
	h.fillForm("Topic")
	h.run(h.key(tea.KeyCtrlG))

	h.key(tea.KeyCtrlY)
	assert.Equal(t, "Copied text.", h.copied)
	assert.Equal(t, "Essay copied to clipboard", h.notice().Text)
}

func TestEscReturnsToFormAndReopens(t *testing.T) {
	h := newHarness(t, &fakeProvider{content: "Body."})
	h.fillForm("Topic")
	h.run(h.key(tea.KeyCtrlG))

	h.key(tea.KeyEsc)
	assert.Equal(t, viewForm, h.app.view)
	assert.Equal(t, "Body.", h.app.state.form.Essay)

	h.key(tea.KeyTab)
	h.typeText("e")
	assert.Equal(t, viewEssay, h.app.view)
}

func TestGenerateWithoutProvider(t *testing.T) {
	a := NewApp(Options{Config: config.DefaultConfig()})
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Topic")})
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(tea.KeyMsg{Type: tea.KeyRight})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Nil(t, cmd)
	assert.Equal(t, viewForm, a.view)
	assert.False(t, a.state.form.Generating)
	assert.Equal(t, "Failed to generate essay. Please try again.", a.state.form.Notice.Text)
}

func TestSetupWizard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	config.SetPath(path)
	t.Cleanup(func() { config.SetPath("") })

	h := &harness{provider: &fakeProvider{}}
	h.app = NewApp(Options{
		Config:     config.DefaultConfig(),
		NeedsSetup: true,
		Provider:   h.provider,
	})
	require.Equal(t, viewSetup, h.app.view)
	view := h.app.View()
	assert.Contains(t, view, "Choose where essays are generated")
	assert.Contains(t, view, "Gemini")
	assert.Contains(t, view, "(default)")
	assert.Contains(t, view, "(no key)")
	assert.Contains(t, view, path)

	h.key(tea.KeyEnter)
	require.Equal(t, 1, h.app.state.setupStep)
	assert.Contains(t, h.app.View(), "QUILL_API_KEY")

	// empty key is ignored
	assert.Nil(t, h.key(tea.KeyEnter))

	h.typeText("secret-key")
	cmd := h.key(tea.KeyEnter)
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, setupCompleteMsg{}, msg)
	h.send(msg)

	assert.Equal(t, viewForm, h.app.view)
	assert.FileExists(t, path)

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", loaded.Provider)
	assert.Equal(t, "secret-key", loaded.APIKey)
}

func TestSettingsChangeModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	config.SetPath(path)
	t.Cleanup(func() { config.SetPath("") })

	h := newHarness(t, &fakeProvider{})
	h.key(tea.KeyCtrlO)
	require.Equal(t, viewSettings, h.app.view)
	assert.Contains(t, h.app.View(), "Settings")

	h.typeText("m")
	require.Equal(t, "model", h.app.state.settingsMode)
	h.key(tea.KeyDown)
	h.run(h.key(tea.KeyEnter))

	assert.Equal(t, "gemini-1.5-pro", h.app.state.config.Model)
	assert.Equal(t, "", h.app.state.settingsMode)
	assert.FileExists(t, path)

	h.key(tea.KeyEsc)
	assert.Equal(t, viewForm, h.app.view)
}

func TestHelpView(t *testing.T) {
	h := newHarness(t, &fakeProvider{})
	h.key(tea.KeyTab)
	h.typeText("?")
	require.Equal(t, viewHelp, h.app.view)
	assert.Contains(t, h.app.View(), "Ctrl+S")

	h.key(tea.KeyEsc)
	assert.Equal(t, viewForm, h.app.view)
}

func TestProviderHints(t *testing.T) {
	assert.Nil(t, providerHints(nil))
	assert.NotEmpty(t, providerHints(errors.New("gemini: invalid API key")))
	assert.NotEmpty(t, providerHints(errors.New("status 429")))
	assert.Nil(t, providerHints(errors.New("odd failure")))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "Not set", maskKey(""))
	assert.Equal(t, "****", maskKey("short"))
	assert.Equal(t, "AIza****wxyz", maskKey("AIzaSyAbcdefwxyz"))
}

func TestSettingsViewsRender(t *testing.T) {
	h := newHarness(t, &fakeProvider{})
	h.key(tea.KeyCtrlO)

	h.typeText("p")
	assert.Contains(t, h.app.View(), "Gemini (current)")
	h.key(tea.KeyEsc)

	h.typeText("m")
	assert.Contains(t, h.app.View(), "gemini-1.5-flash (current)")
	h.key(tea.KeyEsc)
	assert.Equal(t, "", h.app.state.settingsMode)
	assert.Equal(t, viewSettings, h.app.view)
}
