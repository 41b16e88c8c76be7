// Package styles holds the shared lipgloss palette and component styles.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple (violet-400)
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray (gray-500)
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	FieldLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	FieldLabelFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	// Selected-recipient tag. Padding is one cell on each side; the
	// recipient widget relies on that when locating the dismiss glyph.
	Tag = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	// Suggestion panel
	Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(BorderColor).
		PaddingLeft(1)

	PanelHeader = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	SuggestionItem = lipgloss.NewStyle().
			Foreground(TextColor)

	SuggestionItemSelected = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true)

	SuggestionMeta = lipgloss.NewStyle().
			Foreground(MutedColor)

	Avatar = lipgloss.NewStyle().
		Bold(true).
		Foreground(SurfaceColor).
		Background(BlueColor).
		Width(4).
		Align(lipgloss.Center)

	// Inline hints inside the suggestion panel
	AddHint = lipgloss.NewStyle().
		Foreground(SecondaryColor)

	InvalidHint = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// Content area
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	// Error message
	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)
