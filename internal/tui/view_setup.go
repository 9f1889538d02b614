package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/config"
)

func (a *App) renderSetup() string {
	var body string
	switch a.state.setupStep {
	case 0:
		body = a.renderProviderSelection()
	case 1:
		body = a.renderAPIKeyEntry()
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString(body)

	if err := a.state.providerError; err != nil && a.view == viewSetup {
		b.WriteString("\n\n")
		b.WriteString(a.centerLine(styleNoticeErr.Render("Could not save settings: " + truncate(err.Error(), 60))))
	}
	return a.centerVertically(b.String())
}

// renderHeader is the logo block shared by the setup and form screens
func (a *App) renderHeader() string {
	return a.centerLine(styleLogo.Render(logo)) + "\n" +
		a.centerLine(styleSubtitle.Render("AI essay writer")) + "\n\n"
}

func (a *App) centerLine(s string) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}

func (a *App) renderProviderSelection() string {
	var b strings.Builder

	b.WriteString(a.centerLine(styleLabel.Render("Step 1 of 2 · Choose where essays are generated")))
	b.WriteString("\n\n")

	rows := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		var tags []string
		if p.ID == config.DefaultProvider {
			tags = append(tags, "default")
		}
		if !p.NeedsAPIKey {
			tags = append(tags, "no key")
		}
		note := p.Description
		if len(tags) > 0 {
			note += " (" + strings.Join(tags, ", ") + ")"
		}

		row := fmt.Sprintf("  %-11s %s", p.Name, note)
		if i == a.state.selectedProvider {
			row = styleSelected.Render("> " + row[2:])
		} else {
			row = styleSubtitle.Render(row)
		}
		rows[i] = row
	}

	b.WriteString(a.centerLine(styleBox.Copy().Width(64).Render(strings.Join(rows, "\n"))))
	b.WriteString("\n\n")

	if path, err := config.ConfigPath(); err == nil {
		b.WriteString(a.centerLine(styleSubtitle.Render("Settings are saved to " + path)))
		b.WriteString("\n")
	}
	b.WriteString(a.centerLine(styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Quit")))

	return b.String()
}

func (a *App) renderAPIKeyEntry() string {
	var b strings.Builder

	name := a.state.config.Provider
	signup := ""
	if p := config.GetProvider(a.state.config.Provider); p != nil {
		name = p.Name
		signup = p.SignupURL
	}

	b.WriteString(a.centerLine(styleLabel.Render(fmt.Sprintf("Step 2 of 2 · Paste your %s API key", name))))
	b.WriteString("\n\n")

	if signup != "" {
		b.WriteString(a.centerLine(styleSubtitle.Render("Get one at: " + signup)))
		b.WriteString("\n\n")
	}

	input := styleBox.Copy().
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(a.centerLine(input))
	b.WriteString("\n\n")

	hints := []string{
		"The key is stored in the config file, readable only by you.",
		"To keep it out of the file, quit and set QUILL_API_KEY",
		"in your environment or in a .env file instead.",
	}
	for _, h := range hints {
		b.WriteString(a.centerLine(styleSubtitle.Render(h)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.centerLine(styleStatusBar.Render("[Enter] Continue  [Esc] Back")))

	return b.String()
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
