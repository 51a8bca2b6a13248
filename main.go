package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwfields/grit/internal/config"
	"github.com/cwfields/grit/internal/gitops"
	"github.com/cwfields/grit/internal/tui"
	flag "github.com/spf13/pflag"
)

var (
	showVersion  bool
	help         bool
	themeName    string
	highContrast bool
	tickInterval time.Duration
	noWatch      bool
	logFile      string
	verbose      bool
)

func init() {
	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.StringVar(&themeName, "theme", "default", "Color theme: default, solarized, or dracula")
	flag.BoolVar(&highContrast, "high-contrast", false, "Increase color contrast for readability")
	flag.DurationVar(&tickInterval, "tick", 250*time.Millisecond, "Background refresh interval")
	flag.BoolVar(&noWatch, "no-watch", false, "Disable filesystem watching; rely on the refresh tick only")
	flag.StringVar(&logFile, "log-file", "", "Write debug logs to the provided file path")
	flag.BoolVar(&verbose, "verbose", false, "Log at debug level (requires --log-file)")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.Usage = usage
}

func usage() {
	fmt.Println("grit - an interactive terminal front-end for git")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  grit [options] [repository path]")
	fmt.Println("")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  grit                          # Open the repository in the current directory")
	fmt.Println("  grit ~/src/project            # Open a specific repository")
	fmt.Println("  grit --theme dracula          # Use the dracula color theme")
	fmt.Println("")
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  Tab    Switch to the next view")
	fmt.Println("  j/↓    Move selection down")
	fmt.Println("  k/↑    Move selection up")
	fmt.Println("  Enter  Confirm the current action")
	fmt.Println("  Esc    Cancel the current action")
	fmt.Println("  a      Stage the selected file (Status view)")
	fmt.Println("  c      Create a branch (Branch view) / write a commit (Commit view)")
	fmt.Println("  d      Delete a branch (Branch view)")
	fmt.Println("  m      Merge the selected branch (Branch view)")
	fmt.Println("  r      Refresh the commit log (Log view)")
	fmt.Println("  ?      Show the help view")
	fmt.Println("  q      Quit")
}

func parseTheme(raw string) (config.ThemePreset, error) {
	switch raw {
	case "", string(config.PresetDefault):
		return config.PresetDefault, nil
	case string(config.PresetSolarize):
		return config.PresetSolarize, nil
	case string(config.PresetDracula):
		return config.PresetDracula, nil
	default:
		return "", fmt.Errorf("unsupported theme: %s", raw)
	}
}

func setupLogging() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	flag.Parse()

	if help {
		usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Println("grit version 0.1.0")
		fmt.Println("An interactive terminal front-end for git")
		os.Exit(0)
	}

	if err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	repoPath := "."
	if args := flag.Args(); len(args) > 0 {
		repoPath = args[0]
	}

	if err := gitops.ValidateRepo(repoPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset, err := parseTheme(themeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	cfg.ThemePreset = preset
	cfg.HighContrast = highContrast
	cfg.Theme = config.ThemeForPreset(preset, highContrast)
	if tickInterval > 0 {
		cfg.TickInterval = tickInterval
	}

	var watcher *tui.RepoWatcher
	if !noWatch {
		watcher, err = tui.NewRepoWatcher(repoPath)
		if err != nil {
			slog.Warn("filesystem watching unavailable", slog.Any("error", err))
			watcher = nil
		}
	}

	model := tui.NewModel(repoPath, cfg, watcher)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
