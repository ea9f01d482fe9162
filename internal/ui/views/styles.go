package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Dim         lipgloss.Style
	Card        lipgloss.Style
	FocusedCard lipgloss.Style
	CardTitle   lipgloss.Style
	BigValue    lipgloss.Style
	Up          lipgloss.Style
	Down        lipgloss.Style
	Badge       lipgloss.Style
	Insight     lipgloss.Style
	Dot         lipgloss.Style
	ActiveDot   lipgloss.Style
	Button      lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Selected    lipgloss.Style
	Liked       lipgloss.Style
	Potential   lipgloss.Style
	UserMsg     lipgloss.Style
	AdvisorMsg  lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("78")),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Card:        card,
		FocusedCard: card.BorderForeground(lipgloss.Color("78")),
		CardTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		BigValue:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")),
		Up:          lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Down:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("78")).
			Padding(0, 1),
		Insight:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
		Dot:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ActiveDot: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Button:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("78")).
			Padding(0, 1),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Liked:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Potential:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		UserMsg:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		AdvisorMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}

// Trend picks the up or down style
func (s *Styles) Trend(up bool) lipgloss.Style {
	if up {
		return s.Up
	}
	return s.Down
}

// Arrow returns the marker shown next to a value
func Arrow(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}
