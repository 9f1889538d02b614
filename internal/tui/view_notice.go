package tui

import (
	"strings"

	"github.com/sant0-9/quill/internal/session"
)

// renderNotice shows the last user-facing notice, with a hint when the
// provider is the likely cause of a failure.
func (a *App) renderNotice() string {
	n := a.state.form.Notice
	switch n.Kind {
	case session.NoticeSuccess:
		return styleNoticeOK.Render(n.Text)
	case session.NoticeError:
		text := styleNoticeErr.Render(n.Text)
		if hints := providerHints(a.state.providerError); len(hints) > 0 {
			text += "\n" + styleSubtitle.Render(strings.Join(hints, "\n"))
		}
		return text
	}
	return ""
}

func providerHints(err error) []string {
	if err == nil {
		return nil
	}
	errLower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		return []string{
			"Check your API key (QUILL_API_KEY or ~/.config/quill/config.yaml)",
			"Or press [Ctrl+O] to open settings",
		}
	case strings.Contains(errLower, "ollama"):
		return []string{
			"Make sure Ollama is running: ollama serve",
			"Or switch to a cloud provider in settings",
		}
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout"):
		return []string{"Check your internet connection"}
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429"):
		return []string{"You've hit the API rate limit, wait a moment and try again"}
	}
	return nil
}
