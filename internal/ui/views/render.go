package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Marker wraps s so that clicks inside it can be resolved to id later.
type Marker func(id, s string) string

// Renderer draws the dashboard pieces
type Renderer struct {
	styles *Styles
	mark   Marker
}

// NewRenderer creates a new renderer. A nil mark leaves output unmarked.
func NewRenderer(styles *Styles, mark Marker) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	if mark == nil {
		mark = func(_, s string) string { return s }
	}
	return &Renderer{styles: styles, mark: mark}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Zone ids for the clickable parts of a carousel card.
func ZonePrev(id string) string       { return id + ":prev" }
func ZoneNext(id string) string       { return id + ":next" }
func ZoneDot(id string, i int) string { return fmt.Sprintf("%s:dot:%d", id, i) }

// CarouselView describes one carousel card
type CarouselView struct {
	ID      string
	Title   string
	Body    string
	Index   int
	Len     int
	Paused  bool
	Focused bool
	Width   int
}

// Counter formats the 1-based position, e.g. "2 / 6".
func Counter(index, n int) string {
	if n == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", index+1, n)
}

// Carousel renders a card with a counter, the current slide body and the
// prev/dots/next control row.
func (r *Renderer) Carousel(v CarouselView) string {
	s := r.styles
	inner := max(v.Width-4, 10)

	status := Counter(v.Index, v.Len)
	if v.Paused {
		status = "⏸ " + status
	}
	title := s.CardTitle.Render(v.Title)
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(status), 1)
	header := title + strings.Repeat(" ", gap) + s.Dim.Render(status)

	dots := make([]string, v.Len)
	for i := range dots {
		if i == v.Index {
			dots[i] = r.mark(ZoneDot(v.ID, i), s.ActiveDot.Render("●"))
		} else {
			dots[i] = r.mark(ZoneDot(v.ID, i), s.Dot.Render("○"))
		}
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		r.mark(ZonePrev(v.ID), s.Button.Render("‹ prev")),
		"  ", strings.Join(dots, " "), "  ",
		r.mark(ZoneNext(v.ID), s.Button.Render("next ›")),
	)
	controls = lipgloss.PlaceHorizontal(inner, lipgloss.Center, controls)

	body := lipgloss.NewStyle().Width(inner).Render(v.Body)
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", controls)

	card := s.Card
	if v.Focused {
		card = s.FocusedCard
	}
	return r.mark(v.ID, card.Width(v.Width-2).Render(content))
}
