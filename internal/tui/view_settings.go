package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/config"
)

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Current config
	provider := config.GetProvider(a.state.config.Provider)
	providerName := a.state.config.Provider
	if provider != nil {
		providerName = provider.Name
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", a.state.config.Model),
		fmt.Sprintf("  API Key:  %s", maskKey(a.state.config.APIKey)),
		"",
		fmt.Sprintf("  Save to:  %s", truncate(a.state.config.ExportDir(), 38)),
		fmt.Sprintf("  Words:    %d (default)", a.state.config.DefaultWords),
	}

	if a.state.providerError != nil {
		configLines = append(configLines, "", styleNoticeErr.Render("  "+truncate(a.state.providerError.Error(), 44)))
	} else if a.state.providerReady {
		configLines = append(configLines, "", styleNoticeOK.Render("  Connected"))
	}

	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	// Actions
	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [r] Reset setup",
	}
	actionsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	names := make([]string, len(config.Providers))
	current := ""
	for i, p := range config.Providers {
		names[i] = p.Name
		if p.ID == a.state.config.Provider {
			current = p.Name
		}
	}
	return a.renderPicker("Select Provider", "", names, current)
}

func (a *App) renderSettingsModel() string {
	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		return a.renderPicker("Select Model", "No provider selected", nil, "")
	}
	if len(provider.Models) == 0 {
		return a.renderPicker("Select Model", provider.Name+" takes the model from your config file", nil, "")
	}
	return a.renderPicker("Select Model", "Provider: "+provider.Name, provider.Models, a.state.config.Model)
}

// renderPicker draws a vertical list with the settings cursor and marks the
// entry currently in use.
func (a *App) renderPicker(title, subtitle string, items []string, current string) string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render(title)))
	b.WriteString("\n\n")

	if subtitle != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(subtitle)))
		b.WriteString("\n\n")
	}

	if len(items) > 0 {
		lines := make([]string, len(items))
		for i, item := range items {
			cursor := "  "
			if i == a.state.settingsSelected {
				cursor = "> "
			}
			if item == current {
				item += " (current)"
			}
			line := cursor + item
			if i == a.state.settingsSelected {
				line = styleSelected.Render(line)
			}
			lines[i] = line
		}

		listBox := styleBox.Copy().
			Width(50).
			Render(strings.Join(lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}
