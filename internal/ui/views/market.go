package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"valu/internal/domain"
	"valu/internal/portfolio"
)

// ZoneCategory and ZoneLike identify marketplace click targets.
func ZoneCategory(i int) string { return fmt.Sprintf("market:cat:%d", i) }
func ZoneLike(i int) string     { return fmt.Sprintf("market:like:%d", i) }

// MarketView describes the marketplace page
type MarketView struct {
	Categories []string
	Category   string
	SortLabel  string
	Search     string
	Items      []domain.MarketItem
	Liked      func(title string) bool
	Selected   int
	Offset     int
	Rows       int
	Width      int
}

// Market renders the category tabs and the visible window of listings
func (r *Renderer) Market(v MarketView) string {
	s := r.styles

	tabs := make([]string, len(v.Categories))
	for i, c := range v.Categories {
		style := s.Tab
		if c == v.Category {
			style = s.ActiveTab
		}
		tabs[i] = r.mark(ZoneCategory(i), style.Render(c))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	info := fmt.Sprintf("%d listings · sort: %s", len(v.Items), v.SortLabel)
	if v.Search != "" {
		info += fmt.Sprintf(" · search: %q", v.Search)
	}
	b.WriteString(s.Dim.Render(info))
	b.WriteString("\n")

	end := min(v.Offset+max(v.Rows, 1), len(v.Items))
	for i := v.Offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(r.marketRow(v, i))
	}
	if len(v.Items) == 0 {
		b.WriteString("\n" + s.Dim.Render("No listings match."))
	}
	return b.String()
}

func (r *Renderer) marketRow(v MarketView, i int) string {
	s := r.styles
	item := v.Items[i]

	heart := "♡"
	if v.Liked != nil && v.Liked(item.Title) {
		heart = s.Liked.Render("♥")
	}
	badge := item.Badge
	if item.IsNew {
		badge = "NEW"
	}
	potential := ""
	if item.Potential != "" {
		potential = s.Potential.Render(item.Potential + " potential")
	}

	row := fmt.Sprintf("%s %-28s %-14s %10s  %s %-9s %s",
		r.mark(ZoneLike(i), heart),
		truncate(item.Title, 28),
		truncate(badge, 14),
		s.Dim.Render(portfolio.FormatUSD(item.Price)),
		s.Dim.Render("est"),
		portfolio.FormatUSD(item.Est),
		potential,
	)
	if i == v.Selected {
		return s.Selected.Width(max(v.Width, 1)).Render(row)
	}
	return row
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
