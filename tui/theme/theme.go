// Package theme provides the color palette and shared styles for pictor's
// terminal UI.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pictorlabs/pictor/config"
)

const defaultThemeName = "dusk"

// --- Dusk palette ---
const (
	duskDarkGreen              = "#98BB6C"
	duskDarkYellow             = "#FF9E3B"
	duskDarkRed                = "#FF5D62"
	duskDarkOrange             = "#FFA066"
	duskDarkBlue               = "#7FB4CA"
	duskDarkViolet             = "#957FB8"
	duskDarkLightText          = "#DCD7BA"
	duskDarkMutedText          = "#727169"
	duskDarkBorder             = "#363646"
	duskDarkSelectedBackground = "#223249"

	duskLightGreen              = "#4E7C5A"
	duskLightYellow             = "#A68A64"
	duskLightRed                = "#C34043"
	duskLightOrange             = "#CC6B4E"
	duskLightBlue               = "#4F7CAC"
	duskLightViolet             = "#674D7A"
	duskLightLightText          = "#2B2F42"
	duskLightMutedText          = "#6C7086"
	duskLightBorder             = "#B5BDC5"
	duskLightSelectedBackground = "#E2E6F3"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen              = "2"
	terminalYellow             = "3"
	terminalRed                = "1"
	terminalOrange             = "208"
	terminalBlue               = "4"
	terminalViolet             = "5"
	terminalLightText          = "7"
	terminalMutedText          = "8"
	terminalBorder             = "8"
	terminalSelectedBackground = "8"
)

// Colors encapsulates the palette used by a theme. lipgloss.TerminalColor
// allows a mix of adaptive and static colors.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Blue               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
}

// DefaultColors exposes the active color palette selected for the current
// terminal.
var DefaultColors Colors

// Theme holds the pre-configured styles for pictor's UI.
type Theme struct {
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Progress lipgloss.Style

	Bold     lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Gallery styles
	Folder     lipgloss.Style // folders stand out from files
	Image      lipgloss.Style
	Favorite   lipgloss.Style
	DropTarget lipgloss.Style // hovered folder during a drag
	Dragging   lipgloss.Style // the picked-up item

	// Breadcrumb styles
	Crumb       lipgloss.Style
	CrumbActive lipgloss.Style

	Box    lipgloss.Style
	Input  lipgloss.Style
	Cursor lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"dusk":     newDuskColors,
	"terminal": newTerminalColors,
}

// DefaultTheme is the theme instance pictor renders with.
var DefaultTheme = initDefaultTheme()

// NewTheme creates a theme based on the configured theme selection.
func NewTheme() *Theme {
	return newThemeFromColors(resolveThemeColors(getThemeName()))
}

func initDefaultTheme() *Theme {
	colors := resolveThemeColors(getThemeName())
	DefaultColors = colors
	return newThemeFromColors(colors)
}

func newThemeFromColors(colors Colors) *Theme {
	return &Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(colors.Blue).
			Bold(true),

		Progress: lipgloss.NewStyle().
			Foreground(colors.Orange),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Faint(true),

		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		Folder: lipgloss.NewStyle().
			Foreground(colors.Blue).
			Bold(true),

		Image: lipgloss.NewStyle().
			Foreground(colors.LightText),

		Favorite: lipgloss.NewStyle().
			Foreground(colors.Yellow),

		DropTarget: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true).
			Underline(true),

		Dragging: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Italic(true),

		Crumb: lipgloss.NewStyle().
			Foreground(colors.MutedText),

		CrumbActive: lipgloss.NewStyle().
			Foreground(colors.LightText).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Input: lipgloss.NewStyle().
			Foreground(colors.LightText),

		Cursor: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),
	}
}

func resolveThemeColors(name string) Colors {
	if builder, ok := themeRegistry[normalizeThemeName(name)]; ok {
		return builder()
	}
	return themeRegistry[defaultThemeName]()
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("PICTOR_THEME")); theme != "" {
		return theme
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}

	var tuiCfg struct {
		Theme string `yaml:"theme"`
	}
	if err := cfg.UnmarshalExtension("tui", &tuiCfg); err == nil {
		if theme := normalizeThemeName(tuiCfg.Theme); theme != "" {
			return theme
		}
	}

	return defaultThemeName
}

func newDuskColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: duskLightGreen, Dark: duskDarkGreen},
		Yellow:             lipgloss.AdaptiveColor{Light: duskLightYellow, Dark: duskDarkYellow},
		Red:                lipgloss.AdaptiveColor{Light: duskLightRed, Dark: duskDarkRed},
		Orange:             lipgloss.AdaptiveColor{Light: duskLightOrange, Dark: duskDarkOrange},
		Blue:               lipgloss.AdaptiveColor{Light: duskLightBlue, Dark: duskDarkBlue},
		Violet:             lipgloss.AdaptiveColor{Light: duskLightViolet, Dark: duskDarkViolet},
		LightText:          lipgloss.AdaptiveColor{Light: duskLightLightText, Dark: duskDarkLightText},
		MutedText:          lipgloss.AdaptiveColor{Light: duskLightMutedText, Dark: duskDarkMutedText},
		Border:             lipgloss.AdaptiveColor{Light: duskLightBorder, Dark: duskDarkBorder},
		SelectedBackground: lipgloss.AdaptiveColor{Light: duskLightSelectedBackground, Dark: duskDarkSelectedBackground},
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color(terminalGreen),
		Yellow:             lipgloss.Color(terminalYellow),
		Red:                lipgloss.Color(terminalRed),
		Orange:             lipgloss.Color(terminalOrange),
		Blue:               lipgloss.Color(terminalBlue),
		Violet:             lipgloss.Color(terminalViolet),
		LightText:          lipgloss.Color(terminalLightText),
		MutedText:          lipgloss.Color(terminalMutedText),
		Border:             lipgloss.Color(terminalBorder),
		SelectedBackground: lipgloss.Color(terminalSelectedBackground),
	}
}
