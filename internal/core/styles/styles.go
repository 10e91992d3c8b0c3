// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/colonyops/techtrack/internal/core/stats"
	"github.com/colonyops/techtrack/internal/core/tech"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	HeaderStyle  lipgloss.Style
	TitleStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	DividerStyle lipgloss.Style

	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	StatusNotStartedStyle lipgloss.Style
	StatusInProgressStyle lipgloss.Style
	StatusCompletedStyle  lipgloss.Style

	DeadlineOverdueStyle lipgloss.Style
	DeadlineUrgentStyle  lipgloss.Style
	DeadlineWarningStyle lipgloss.Style
	DeadlineNormalStyle  lipgloss.Style

	BarFilledStyle lipgloss.Style
	BarEmptyStyle  lipgloss.Style
)

// Status glyphs.
const (
	IconNotStarted = "○"
	IconInProgress = "◐"
	IconCompleted  = "●"
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Surface)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	StatusNotStartedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	StatusInProgressStyle = lipgloss.NewStyle().Foreground(p.Warning)
	StatusCompletedStyle = lipgloss.NewStyle().Foreground(p.Success)

	DeadlineOverdueStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	DeadlineUrgentStyle = lipgloss.NewStyle().Foreground(p.Error)
	DeadlineWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	DeadlineNormalStyle = lipgloss.NewStyle().Foreground(p.Secondary)

	BarFilledStyle = lipgloss.NewStyle().Foreground(p.Success)
	BarEmptyStyle = lipgloss.NewStyle().Foreground(p.Surface)
}

// UseTheme activates the named theme, falling back to the default for
// unknown names.
func UseTheme(name string) {
	p, ok := GetPalette(name)
	if !ok {
		p, _ = GetPalette(DefaultTheme)
	}
	SetTheme(p)
}

// StatusIcon returns the glyph for a status.
func StatusIcon(s tech.Status) string {
	switch s {
	case tech.StatusInProgress:
		return IconInProgress
	case tech.StatusCompleted:
		return IconCompleted
	default:
		return IconNotStarted
	}
}

// StatusStyle returns the style used to render a status.
func StatusStyle(s tech.Status) lipgloss.Style {
	switch s {
	case tech.StatusInProgress:
		return StatusInProgressStyle
	case tech.StatusCompleted:
		return StatusCompletedStyle
	default:
		return StatusNotStartedStyle
	}
}

// DeadlineStyle returns the style for a deadline classification.
func DeadlineStyle(s stats.DeadlineState) lipgloss.Style {
	switch s {
	case stats.DeadlineOverdue:
		return DeadlineOverdueStyle
	case stats.DeadlineUrgent:
		return DeadlineUrgentStyle
	case stats.DeadlineWarning:
		return DeadlineWarningStyle
	case stats.DeadlineCompleted:
		return StatusCompletedStyle
	default:
		return DeadlineNormalStyle
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
