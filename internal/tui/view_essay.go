package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/document"
)

func (a *App) renderEssay() string {
	var b strings.Builder
	form := a.state.form

	title := styleTitle.Render(truncate(form.Topic, max(10, a.width-30)))
	words := len(strings.Fields(form.Essay))
	meta := styleSubtitle.Render(fmt.Sprintf("  %s · %d/%d words · %d paragraphs",
		form.Style.Label(), words, form.WordCount, len(document.SplitParagraphs(form.Essay))))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title+meta))
	b.WriteString("\n\n")

	editor := styleBox.Copy().
		BorderForeground(colorPrimary).
		Render(a.state.editor.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, editor))
	b.WriteString("\n\n")

	if n := a.renderNotice(); n != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, n))
		b.WriteString("\n")
	}

	status := styleStatusBar.Render("[Ctrl+S] Save .docx  [Ctrl+Y] Copy  [Ctrl+G] Regenerate  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return b.String()
}
