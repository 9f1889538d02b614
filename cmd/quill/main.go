// Package main is the entry point for the quill CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/document"
	"github.com/sant0-9/quill/internal/essay"
	"github.com/sant0-9/quill/internal/logging"
	"github.com/sant0-9/quill/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Write essays with an LLM and save them as Word documents",
	Long: `quill asks a text-generation provider for an essay on a topic, in a
chosen writing style and length, and saves the result as a .docx file.

Run without arguments for the interactive editor, or use "quill write" for
a single headless run.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			config.SetPath(path)
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/quill/config.yaml)")
}

// bootstrap resolves configuration and starts logging. Every command goes
// through it before touching a provider or the filesystem.
func bootstrap() (*config.Config, bool, error) {
	cfg, found, err := config.Resolve()
	if err != nil {
		return nil, false, err
	}

	if err := logging.Init(logging.Options{
		File:       cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return nil, false, fmt.Errorf("starting logger: %w", err)
	}
	return cfg, found, nil
}

func newExporter(cfg *config.Config, dir string) *document.Exporter {
	if dir == "" {
		dir = cfg.ExportDir()
	}
	return document.NewExporter(document.NewDocxRenderer(), document.FileSaver{Dir: dir})
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New(`stdout is not a terminal; use "quill write" for headless runs`)
	}

	cfg, found, err := bootstrap()
	if err != nil {
		return err
	}

	exporter := newExporter(cfg, "")

	// A missing file is fine when the environment already carries a usable
	// provider setup.
	needsSetup := !found && cfg.Validate() != nil
	logging.Info("starting tui", "version", version, "provider", cfg.Provider, "needs_setup", needsSetup)

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		NeedsSetup: needsSetup,
		Exporter:   exporter,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// userError turns a domain error into the fixed notice, keeping the cause
// for anything that is not a plain validation problem.
func userError(err error) error {
	msg := essay.UserMessage(err)
	var ve *essay.ValidationError
	if errors.As(err, &ve) {
		return errors.New(msg)
	}
	return fmt.Errorf("%s (%v)", msg, err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
