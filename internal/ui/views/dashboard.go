package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"valu/internal/domain"
	"valu/internal/portfolio"
	"valu/internal/ui/chart"
)

// StatSlide renders one statistics card body
func (r *Renderer) StatSlide(slide domain.StatSlide) string {
	s := r.styles
	detail := s.Trend(slide.Up).Render(Arrow(slide.Up) + " " + slide.Detail)
	if slide.Detail == "" {
		detail = ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Dim.Render(slide.Label),
		s.BigValue.Render(slide.Value),
		detail,
	)
}

// Asset renders one asset history card body
func (r *Renderer) Asset(a domain.Asset, width int) string {
	s := r.styles
	up := a.Appreciated()

	head := s.CardTitle.Render(a.Title) + " " + s.Badge.Render(a.Category)
	prices := fmt.Sprintf("%s %s   %s %s",
		s.Dim.Render("Purchase"), portfolio.FormatUSD(a.PurchasePrice),
		s.Dim.Render("Market"), s.Trend(up).Render(Arrow(up)+" "+portfolio.FormatUSD(a.CurrentValue)))
	spark := s.Trend(chart.Trend(a.ChartData)).Render(chart.Sparkline(a.ChartData, min(max(width, 7), 40)))

	return lipgloss.JoinVertical(lipgloss.Left,
		head,
		prices+"  "+s.Trend(up).Render(a.Change),
		spark,
		s.Dim.Render("Valu Insight"),
		s.Insight.Width(max(width, 10)).Render(a.Insight),
	)
}

// History renders the portfolio value chart and the recent transactions
func (r *Renderer) History(p *portfolio.Portfolio, width int) string {
	s := r.styles
	inner := max(width-4, 10)
	values := p.HistoryValues()
	up := p.Trend()

	var b strings.Builder
	b.WriteString(s.CardTitle.Render("Portfolio History"))
	b.WriteString("\n")
	b.WriteString(s.Trend(up).Render(chart.Sparkline(values, inner)))
	b.WriteString("\n")
	if n := len(p.History); n > 0 {
		first, last := p.History[0], p.History[n-1]
		b.WriteString(s.Dim.Render(fmt.Sprintf("%s %s → %s %s",
			first.Date.Format("Jan 2006"), portfolio.FormatUSD(int(first.Value)),
			last.Date.Format("Jan 2006"), portfolio.FormatUSD(int(last.Value)))))
		b.WriteString("\n")
	}
	for _, tx := range p.Transactions {
		amount := s.Trend(tx.Amount > 0).Render(FormatAmount(tx.Amount))
		line := fmt.Sprintf("%s  %s", s.Subtitle.Render(tx.Title), s.Dim.Render(tx.Kind+" · "+tx.Date))
		gap := max(inner-lipgloss.Width(line)-lipgloss.Width(amount), 1)
		b.WriteString("\n" + line + strings.Repeat(" ", gap) + amount)
	}
	return s.Card.Width(width - 2).Render(b.String())
}

// FormatAmount renders a transaction amount as "+$150" or "$200" for
// outgoing amounts.
func FormatAmount(n int) string {
	if n > 0 {
		return portfolio.FormatSigned(n)
	}
	return portfolio.FormatUSD(-n)
}

// ChatLine is one rendered chat message
type ChatLine struct {
	FromUser bool
	Text     string
}

// Chat renders the advisor transcript
func (r *Renderer) Chat(lines []ChatLine, assets int) string {
	s := r.styles
	var b strings.Builder
	b.WriteString(s.CardTitle.Render("Valu Advisor"))
	b.WriteString(s.Dim.Render(fmt.Sprintf("  watching %d assets", assets)))
	for _, l := range lines {
		b.WriteString("\n")
		if l.FromUser {
			b.WriteString(s.UserMsg.Render("you ") + l.Text)
		} else {
			b.WriteString(s.AdvisorMsg.Render("valu ") + l.Text)
		}
	}
	return b.String()
}
