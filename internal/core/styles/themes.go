package styles

import "github.com/charmbracelet/lipgloss"

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Theme names. The dark theme is used when the darkMode setting is on.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultTheme is the name of the default theme.
const DefaultTheme = ThemeLight

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	ThemeDark: {
		Primary:    lipgloss.Color("#7aa2f7"), // tokyo-night blue
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	ThemeLight: {
		Primary:    lipgloss.Color("#2e7de9"), // tokyo-day blue
		Secondary:  lipgloss.Color("#007197"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#848cb5"),
		Surface:    lipgloss.Color("#c4c8da"),
		Success:    lipgloss.Color("#587539"),
		Warning:    lipgloss.Color("#8c6c3e"),
		Error:      lipgloss.Color("#f52a65"),
	},
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// ThemeFor maps the darkMode setting to a theme name.
func ThemeFor(darkMode bool) string {
	if darkMode {
		return ThemeDark
	}
	return ThemeLight
}
