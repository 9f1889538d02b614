package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/essay"
)

const logo = `
             _ _ _
  __ _ _   _(_) | |
 / _' | | | | | | |
| (_| | |_| | | | |
 \__, |\__,_|_|_|_|
    |_|            `

const sliderWidth = 30

func (a *App) renderForm() string {
	var b strings.Builder
	s := a.state

	b.WriteString(a.renderHeader())

	fields := []string{
		a.formLabel(fieldTopic, "Subject title"),
		s.topicInput.View(),
		"",
		a.formLabel(fieldStyle, "Writing style"),
		a.renderStyleSelector(),
		"",
		a.formLabel(fieldWords, "Word count"),
		renderSlider(s.form.WordCount),
		"",
		a.renderGenerateButton(),
	}

	box := styleBox.Copy().
		Width(min(64, max(40, a.width-4))).
		Render(strings.Join(fields, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if n := a.renderNotice(); n != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, n))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderProviderLine()))
	b.WriteString("\n")

	hints := "[Tab] Next  [←/→] Change  [Ctrl+G] Generate  [Ctrl+O] Settings  [?] Help  [Esc] Quit"
	if s.form.CanExport() {
		hints = "[e] Open essay  " + hints
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(hints)))

	return a.centerVertically(b.String())
}

func (a *App) formLabel(f formField, text string) string {
	if a.state.focus == f {
		return styleSelected.Render("> " + text)
	}
	return styleLabel.Render("  " + text)
}

func (a *App) renderStyleSelector() string {
	if a.state.styleIndex < 0 {
		return styleSubtitle.Render("  < Select writing style >")
	}
	label := essay.Styles[a.state.styleIndex].Label()
	if a.state.focus == fieldStyle {
		return styleSelected.Render("  < " + label + " >")
	}
	return "  " + label
}

// renderSlider draws the word target as a bar between MinWords and MaxWords
func renderSlider(words int) string {
	span := essay.MaxWords - essay.MinWords
	filled := (words - essay.MinWords) * sliderWidth / span
	filled = min(sliderWidth, max(0, filled))

	bar := lipgloss.NewStyle().Foreground(colorPrimary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(colorMuted).Render(strings.Repeat("░", sliderWidth-filled))

	return fmt.Sprintf("  %d %s %d   %s", essay.MinWords, bar, essay.MaxWords, styleLabel.Render(fmt.Sprintf("%d words", words)))
}

func (a *App) renderGenerateButton() string {
	text := "[ Generate Essay ]"
	if a.state.form.Generating {
		text = "[ Generating Essay... ]"
	}
	if a.state.focus == fieldGenerate {
		return lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorPrimary).
			Bold(true).
			Render(text)
	}
	return styleTitle.Render(text)
}

func (a *App) renderProviderLine() string {
	name := a.state.config.Provider
	if p := config.GetProvider(name); p != nil {
		name = p.Name
	}
	line := fmt.Sprintf("%s · %s", name, a.state.config.Model)

	switch {
	case a.state.providerError != nil:
		return styleNoticeErr.Render(line + " · not connected")
	case a.state.providerReady:
		return styleNoticeOK.Render(line + " · connected")
	default:
		return styleSubtitle.Render(line + " · connecting...")
	}
}
