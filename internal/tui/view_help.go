package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	sections := []struct {
		name  string
		lines []string
	}{
		{"Form", []string{
			"  Tab / Shift+Tab  Next / previous field",
			"  Left / Right     Change style or word count",
			"  Enter            Next field, or generate on the button",
			"  Ctrl+G           Generate essay",
			"  e                Open the last essay",
			"  Ctrl+O           Settings",
		}},
		{"Essay", []string{
			"  Ctrl+S           Save as .docx",
			"  Ctrl+Y           Copy to clipboard",
			"  Ctrl+G           Regenerate",
			"  Esc              Back to the form",
		}},
	}

	for _, sec := range sections {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(sec.name)))
		b.WriteString("\n")
		box := styleBox.Copy().
			Width(56).
			Render(strings.Join(sec.lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
		b.WriteString("\n\n")
	}

	// Instructions
	instructions := styleStatusBar.Render("[Esc/?] Back  [Ctrl+C] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
