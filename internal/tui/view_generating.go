package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderGenerating() string {
	var b strings.Builder
	form := a.state.form

	title := fmt.Sprintf("%s Generating Essay...", a.state.spinner.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render(title)))
	b.WriteString("\n\n")

	info := []string{
		fmt.Sprintf("  Topic: %s", truncate(form.Topic, 44)),
		fmt.Sprintf("  Style: %s", form.Style.Label()),
		fmt.Sprintf("  Words: %d", form.WordCount),
	}
	box := styleBox.Copy().
		Width(56).
		Render(strings.Join(info, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render("[Ctrl+C] Quit")))

	return a.centerVertically(b.String())
}
