package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants - single source of truth for viewport dimensions
const (
	MinViewportWidth = 100
	MaxViewportWidth = 140
	DefaultWidth     = 110 // Used when terminal size is unknown
	TableHeight      = 15
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth int // clamped terminal width
	InnerWidth    int // width for content inside borders
}

// NewLayout creates a Layout from the terminal width, clamping to min/max
func NewLayout(terminalWidth int) Layout {
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	return Layout{
		ViewportWidth: width,
		InnerWidth:    width - 2,
	}
}

// DefaultLayout returns a layout using the default width
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth)
}

// clamp restricts a value to the given range
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Column widths for the results table
const (
	ColWidthName    = 24
	ColWidthAddress = 26
	ColWidthPhone   = 15
	ColWidthWebsite = 20
	ColWidthLive    = 7
	ColWidthRating  = 10
)

// BuildResultColumns creates the business results table columns
func BuildResultColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: ColWidthName},
		{Title: "Address", Width: ColWidthAddress},
		{Title: "Phone", Width: ColWidthPhone},
		{Title: "Website", Width: ColWidthWebsite},
		{Title: "Live", Width: ColWidthLive},
		{Title: "Rating", Width: ColWidthRating},
	}
}

// Color palette - centralized color definitions
var (
	ColorBorder    = lipgloss.Color("39")  // blue
	ColorHighlight = lipgloss.Color("24")  // dark blue background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("42")  // green
	ColorWarn      = lipgloss.Color("214") // orange
	ColorError     = lipgloss.Color("196") // red
	ColorTextDim   = lipgloss.Color("241") // gray
)

// Shared styles
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarn)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// NewResultsTable builds a styled table over the given columns and rows
func NewResultsTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(TableHeight),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = SelectedStyle
	t.SetStyles(styles)

	return t
}

// PrintSuccess prints a green checkmark message
func PrintSuccess(msg string) {
	fmt.Println(SuccessStyle.Render("✓ " + msg))
}

// PrintError prints a red error message
func PrintError(msg string) {
	fmt.Println(ErrorStyle.Render("✗ " + msg))
}

// PrintWarn prints an orange warning message
func PrintWarn(msg string) {
	fmt.Println(WarnStyle.Render("! " + msg))
}

// PrintProgress renders an in-place enrichment progress line
func PrintProgress(done, total int, name string) {
	fmt.Printf("\r%s", DimStyle.Render(fmt.Sprintf("Enriching %d/%d: %s", done, total, truncate(name, 40))))
}

// truncate shortens a string to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
