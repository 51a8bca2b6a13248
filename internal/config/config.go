package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Config holds the application configuration
type Config struct {
	Theme           Theme
	ThemePreset     ThemePreset
	HighContrast    bool
	TickInterval    time.Duration
	MessageCapacity int
	Keybindings     Keybindings
}

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Keybindings maps semantic actions to one or more key sequences.
type Keybindings map[string][]string

// Theme defines the color scheme for the application
type Theme struct {
	TitleFg    lipgloss.Color
	TitleBg    lipgloss.Color
	BorderFg   lipgloss.Color
	SelectedFg lipgloss.Color
	ItemFg     lipgloss.Color
	MessageFg  lipgloss.Color
	ErrorFg    lipgloss.Color
	HelpFg     lipgloss.Color
	PromptFg   lipgloss.Color
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ThemePreset:     PresetDefault,
		Theme:           ThemeForPreset(PresetDefault, false),
		HighContrast:    false,
		TickInterval:    250 * time.Millisecond,
		MessageCapacity: 200,
		Keybindings:     DefaultKeybindings(),
	}
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		TitleFg:    lipgloss.Color("#FFD75F"),
		TitleBg:    lipgloss.Color("#262626"),
		BorderFg:   lipgloss.Color("#3A3A3A"),
		SelectedFg: lipgloss.Color("#FFD75F"),
		ItemFg:     lipgloss.Color("#B0B0B0"),
		MessageFg:  lipgloss.Color("#D787D7"),
		ErrorFg:    lipgloss.Color("#E6A3A3"),
		HelpFg:     lipgloss.Color("#888888"),
		PromptFg:   lipgloss.Color("#A8E6A3"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetSolarize:
		return applyContrast(Theme{
			TitleFg:    lipgloss.Color("#EEE8D5"),
			TitleBg:    lipgloss.Color("#073642"),
			BorderFg:   lipgloss.Color("#657B83"),
			SelectedFg: lipgloss.Color("#B58900"),
			ItemFg:     lipgloss.Color("#93A1A1"),
			MessageFg:  lipgloss.Color("#6C71C4"),
			ErrorFg:    lipgloss.Color("#DC322F"),
			HelpFg:     lipgloss.Color("#586E75"),
			PromptFg:   lipgloss.Color("#859900"),
		}, highContrast)
	case PresetDracula:
		return applyContrast(Theme{
			TitleFg:    lipgloss.Color("#F8F8F2"),
			TitleBg:    lipgloss.Color("#44475A"),
			BorderFg:   lipgloss.Color("#44475A"),
			SelectedFg: lipgloss.Color("#50FA7B"),
			ItemFg:     lipgloss.Color("#F8F8F2"),
			MessageFg:  lipgloss.Color("#FF79C6"),
			ErrorFg:    lipgloss.Color("#FF5555"),
			HelpFg:     lipgloss.Color("#6272A4"),
			PromptFg:   lipgloss.Color("#50FA7B"),
		}, highContrast)
	default:
		return applyContrast(DefaultTheme(), highContrast)
	}
}

// DefaultKeybindings returns the built-in keybinding map.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		"quit":          {"ctrl+c", "q"},
		"switch_view":   {"tab"},
		"help":          {"?"},
		"up":            {"up", "k"},
		"down":          {"down", "j"},
		"confirm":       {"enter"},
		"cancel":        {"esc"},
		"stage":         {"a"},
		"create_branch": {"c"},
		"delete_branch": {"d"},
		"merge_branch":  {"m"},
		"write_commit":  {"c"},
		"refresh":       {"r"},
	}
}

// MergeKeybindings overlays user overrides onto defaults.
func MergeKeybindings(overrides Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	for action, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		defaults[action] = keys
	}
	return defaults
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	return Theme{
		TitleFg:    lipgloss.Color(adjustBrightness(string(theme.TitleFg), 0.2)),
		TitleBg:    lipgloss.Color(adjustBrightness(string(theme.TitleBg), 0.15)),
		BorderFg:   lipgloss.Color(adjustBrightness(string(theme.BorderFg), 0.2)),
		SelectedFg: lipgloss.Color(adjustBrightness(string(theme.SelectedFg), 0.25)),
		ItemFg:     lipgloss.Color(adjustBrightness(string(theme.ItemFg), 0.2)),
		MessageFg:  lipgloss.Color(adjustBrightness(string(theme.MessageFg), 0.2)),
		ErrorFg:    lipgloss.Color(adjustBrightness(string(theme.ErrorFg), 0.25)),
		HelpFg:     lipgloss.Color(adjustBrightness(string(theme.HelpFg), 0.2)),
		PromptFg:   lipgloss.Color(adjustBrightness(string(theme.PromptFg), 0.25)),
	}
}

func adjustBrightness(hex string, factor float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	_, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return hex
	}

	boost := func(value int) int {
		adjusted := float64(value) * (1 + factor)
		if adjusted > 255 {
			adjusted = 255
		}
		return int(adjusted)
	}

	return fmt.Sprintf("#%02x%02x%02x", boost(r), boost(g), boost(b))
}
