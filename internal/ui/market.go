package ui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"valu/internal/market"
	"valu/internal/ui/views"
)

// marketChrome is the number of lines around the listing rows
const marketChrome = 8

func (m *Model) refreshListing() error {
	categories, err := m.market.Categories()
	if err != nil {
		return fmt.Errorf("failed to load marketplace: %w", err)
	}
	listing, err := m.market.Listing(m.query)
	if err != nil {
		return fmt.Errorf("failed to load marketplace: %w", err)
	}
	m.categories = categories
	m.listing = listing
	m.clampSelection()
	return nil
}

func (m *Model) marketRows() int {
	if m.height <= 0 {
		return 10
	}
	return max(m.height-marketChrome, 1)
}

func (m *Model) clampSelection() {
	if len(m.listing) == 0 {
		m.selected, m.offset = 0, 0
		return
	}
	m.selected = min(max(m.selected, 0), len(m.listing)-1)
	rows := m.marketRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *Model) marketView() string {
	view := m.renderer.Market(views.MarketView{
		Categories: m.categories,
		Category:   m.query.Category,
		SortLabel:  m.query.Sort.Label(),
		Search:     m.query.Search,
		Items:      m.listing,
		Liked:      m.isLiked,
		Selected:   m.selected,
		Offset:     m.offset,
		Rows:       m.marketRows(),
		Width:      m.contentWidth(),
	})
	if m.searching {
		view += "\n" + m.searchInput.View()
	}
	return view
}

func (m *Model) isLiked(title string) bool {
	liked, err := m.market.Liked(title)
	if err != nil {
		m.logger.Debug("liked lookup failed", zap.String("title", title), zap.Error(err))
		return false
	}
	return liked
}

func (m *Model) handleMarketKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Market):
		m.page = pageDashboard
	case key.Matches(msg, m.keys.Up):
		m.selected--
		m.clampSelection()
	case key.Matches(msg, m.keys.Down):
		m.selected++
		m.clampSelection()
	case key.Matches(msg, m.keys.Sort):
		i := slices.Index(market.SortModes, m.query.Sort)
		m.query.Sort = market.SortModes[(i+1)%len(market.SortModes)]
		return m, m.applyQuery()
	case key.Matches(msg, m.keys.Category):
		step := 1
		if msg.String() == "[" {
			step = -1
		}
		return m, m.cycleCategory(step)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.query.Search)
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Like):
		return m, m.toggleLike(m.selected)
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		m.query.Search = ""
		return m, m.applyQuery()
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.Close()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.query.Search {
		m.query.Search = m.searchInput.Value()
		return m, tea.Batch(cmd, m.applyQuery())
	}
	return m, cmd
}

func (m *Model) handleMarketMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.selected--
		m.clampSelection()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.selected++
		m.clampSelection()
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for i, c := range m.categories {
		if m.zones.InBounds(views.ZoneCategory(i), msg) {
			m.query.Category = c
			return m, m.applyQuery()
		}
	}
	end := min(m.offset+m.marketRows(), len(m.listing))
	for i := m.offset; i < end; i++ {
		if m.zones.InBounds(views.ZoneLike(i), msg) {
			m.selected = i
			return m, m.toggleLike(i)
		}
	}
	return m, nil
}

func (m *Model) cycleCategory(step int) tea.Cmd {
	if len(m.categories) == 0 {
		return nil
	}
	i := max(slices.Index(m.categories, m.query.Category), 0)
	n := len(m.categories)
	m.query.Category = m.categories[((i+step)%n+n)%n]
	return m.applyQuery()
}

func (m *Model) applyQuery() tea.Cmd {
	m.selected, m.offset = 0, 0
	if err := m.refreshListing(); err != nil {
		return m.setStatus(err.Error(), true)
	}
	return nil
}

func (m *Model) toggleLike(i int) tea.Cmd {
	if i < 0 || i >= len(m.listing) {
		return nil
	}
	title := m.listing[i].Title
	liked, err := m.market.ToggleLike(title)
	if err != nil {
		m.logger.Error("failed to toggle like", zap.String("title", title), zap.Error(err))
		return m.setStatus(fmt.Sprintf("Could not save like: %v", err), true)
	}
	if liked {
		return m.setStatus("♥ "+title, false)
	}
	return m.setStatus("♡ "+title, false)
}
