package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/quill/internal/config"
)

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Back):
			a.quitting = true
			return tea.Quit, true
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey && a.state.config.APIKey == "" {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			return a.saveConfig(), true
		}
		return nil, true

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Back):
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			if a.state.apiKeyInput.Value() == "" {
				return nil, true
			}
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			a.state.apiKeyInput.Reset()
			return a.saveConfig(), true
		}
	}

	return nil, false
}

func (a *App) saveConfig() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) openSettings() {
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
	a.view = viewSettings
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state

	switch s.settingsMode {
	case "provider":
		switch {
		case key.Matches(msg, keys.Back):
			s.settingsMode = ""
		case key.Matches(msg, keys.Up):
			s.settingsSelected = max(0, s.settingsSelected-1)
		case key.Matches(msg, keys.Down):
			s.settingsSelected = min(len(config.Providers)-1, s.settingsSelected+1)
		case key.Matches(msg, keys.Enter):
			p := config.Providers[s.settingsSelected]
			s.config.Provider = p.ID
			s.config.Model = p.DefaultModel
			if p.NeedsAPIKey && s.config.APIKey == "" {
				s.settingsMode = "apikey"
				s.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			s.settingsMode = ""
			return a.saveConfig(), true
		}
		return nil, true

	case "model":
		provider := config.GetProvider(s.config.Provider)
		switch {
		case key.Matches(msg, keys.Back):
			s.settingsMode = ""
		case provider == nil || len(provider.Models) == 0:
		case key.Matches(msg, keys.Up):
			s.settingsSelected = max(0, s.settingsSelected-1)
		case key.Matches(msg, keys.Down):
			s.settingsSelected = min(len(provider.Models)-1, s.settingsSelected+1)
		case key.Matches(msg, keys.Enter):
			s.config.Model = provider.Models[s.settingsSelected]
			s.settingsMode = ""
			return a.saveConfig(), true
		}
		return nil, true

	case "apikey":
		switch {
		case key.Matches(msg, keys.Back):
			s.apiKeyInput.Reset()
			s.apiKeyInput.Blur()
			s.settingsMode = ""
			return nil, true
		case key.Matches(msg, keys.Enter):
			if s.apiKeyInput.Value() != "" {
				s.config.APIKey = s.apiKeyInput.Value()
			}
			s.apiKeyInput.Reset()
			s.apiKeyInput.Blur()
			s.settingsMode = ""
			return a.saveConfig(), true
		}
		return nil, false
	}

	switch msg.String() {
	case "esc":
		a.view = viewForm
	case "p":
		s.settingsMode = "provider"
		s.settingsSelected = providerIndex(s.config.Provider)
	case "m":
		s.settingsMode = "model"
		s.settingsSelected = 0
	case "k":
		s.settingsMode = "apikey"
		s.apiKeyInput.Focus()
		return textinput.Blink, true
	case "r":
		// rerun the first-run wizard
		s.setupStep = 0
		s.selectedProvider = providerIndex(s.config.Provider)
		s.config.APIKey = ""
		a.view = viewSetup
	}
	return nil, true
}

func providerIndex(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return 0
}
