package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"terminal_assist/internal/browse"
	"terminal_assist/internal/config"
	"terminal_assist/internal/keymap"
	"terminal_assist/internal/library"
	"terminal_assist/internal/prefs"
	"terminal_assist/internal/tui"
)

type options struct {
	source     string
	configPath string
	watch      bool
	platform   string
	query      string
	debugLog   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "terminal-assist",
		Short: "Browse and copy Windows, Linux and macOS commands",
		Long: `terminal-assist - searchable command reference for the terminal
  - ctrl+t opens the overlay, type to search
  - arrows select a command, enter copies it`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.source, "source", "", "command library URL or local JSON file (overrides config)")
	f.StringVar(&opts.configPath, "config", "", "config file (default: search standard locations)")
	f.BoolVar(&opts.watch, "watch", false, "reload a local source file when it changes")
	f.StringVar(&opts.platform, "platform", "", "start with a platform selected (Windows, Linux, macOS)")
	f.StringVar(&opts.query, "query", "", "start with a search query")
	f.StringVar(&opts.debugLog, "debug-log", "", "write debug logs to this file")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	closeLog, err := setupLogging(opts.debugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.source != "" {
		cfg.Source = opts.source
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = opts.watch
	}
	config.SetGlobal(cfg)

	keys := keymap.Default()
	if err := keys.Apply(cfg.Keys); err != nil {
		return fmt.Errorf("invalid key bindings: %w", err)
	}

	src, err := library.NewSource(cfg.Source)
	if err != nil {
		return err
	}

	store, err := prefs.Open(prefs.DefaultPath())
	if err != nil {
		// A corrupt preferences file should not block the tool
		slog.Warn("failed to read preferences, using defaults", "error", err)
		store = prefs.Memory()
	}

	model := tui.NewModel(tui.ModelOptions{
		Config: cfg,
		Source: src,
		Keys:   keys,
		Prefs:  store,
		Filter: browse.FilterState{Query: opts.query, Platform: opts.platform},
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		if cerr := m.Close(); cerr != nil {
			slog.Warn("failed to stop source watcher", "error", cerr)
		}
	}
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromDefaultPath()
}

// setupLogging sends slog output to path, or discards it; the terminal
// belongs to the UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { _ = f.Close() }, nil
}
