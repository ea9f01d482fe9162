package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"valu/internal/carousel"
	"valu/internal/ui/views"
)

// wideLayout is the width from which the two carousels sit side by side
const wideLayout = 100

func (m *Model) dashboardView() string {
	width := m.contentWidth()
	cardWidth := width
	if width >= wideLayout {
		cardWidth = width / 2
	}

	statsBody := ""
	if slide, ok := m.stats.Current(); ok {
		statsBody = m.renderer.StatSlide(slide)
	}
	assetsBody := ""
	if a, ok := m.assets.Current(); ok {
		assetsBody = m.renderer.Asset(a, cardWidth-6)
	}

	stats := m.carouselCard(StatsZone, "Portfolio", statsBody, m.stats.State(), 0, cardWidth)
	assets := m.carouselCard(AssetsZone, "Asset History", assetsBody, m.assets.State(), 1, cardWidth)

	var cards string
	if width >= wideLayout {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, stats, assets)
	} else {
		cards = lipgloss.JoinVertical(lipgloss.Left, stats, assets)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		m.renderer.History(m.portfolio, width),
		m.chatView(),
	)
}

func (m *Model) carouselCard(id, title, body string, st carousel.State, index, width int) string {
	return m.renderer.Carousel(views.CarouselView{
		ID:      id,
		Title:   title,
		Body:    body,
		Index:   st.Index,
		Len:     st.Len,
		Paused:  st.Paused,
		Focused: m.focus == index,
		Width:   width,
	})
}

func (m *Model) chatView() string {
	s := m.renderer.Styles()
	var b strings.Builder
	b.WriteString(m.renderer.Chat(m.chat, len(m.portfolio.Assets)))
	if m.pending > 0 {
		b.WriteString("\n" + m.spinner.View() + s.Dim.Render(" analysing..."))
	}
	b.WriteString("\n")
	if m.chatting {
		b.WriteString(m.chatInput.View())
	} else {
		b.WriteString(s.Dim.Render("press c to ask the advisor"))
	}
	return s.Card.Width(m.contentWidth() - 2).Render(b.String())
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.chatting = false
		m.chatInput.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.Close()
		return m, tea.Quit
	case tea.KeyEnter:
		return m, m.ask(m.chatInput.Value())
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// ask records the question and schedules the reply after the typing delay
func (m *Model) ask(question string) tea.Cmd {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}
	m.chatInput.Reset()
	m.chat = append(m.chat, views.ChatLine{FromUser: true, Text: question})

	reply := m.advisor.Reply(question)
	m.pending++
	delay := m.config.Advisor.ReplyDelay.Duration
	deliver := tea.Tick(delay, func(time.Time) tea.Msg {
		return advisorReplyMsg{question: question, reply: reply}
	})
	if m.pending == 1 {
		return tea.Batch(deliver, m.spinner.Tick)
	}
	return deliver
}
