package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"valu/internal/advisor"
	"valu/internal/carousel"
	"valu/internal/config"
	"valu/internal/domain"
	"valu/internal/eventbus"
	"valu/internal/logging"
	"valu/internal/market"
	"valu/internal/portfolio"
	"valu/internal/ui/views"
)

// Carousel zone ids
const (
	StatsZone  = "stats"
	AssetsZone = "assets"
)

const statusTimeout = 3 * time.Second

type page int

const (
	pageDashboard page = iota
	pageMarket
)

// Deps carries what the model needs from main
type Deps struct {
	Bus       eventbus.EventBus
	Config    *config.Config
	Portfolio *portfolio.Portfolio
	Market    *market.Service
	Logger    *zap.Logger
	// Scheduler drives auto-advance; nil uses wall-clock tickers.
	Scheduler carousel.Scheduler
	Zones     Zones
	// RendererStyle is the glamour style for advisor replies; empty
	// detects the terminal background.
	RendererStyle string
	Now           func() time.Time
}

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	logger    *zap.Logger
	portfolio *portfolio.Portfolio
	market    *market.Service
	advisor   *advisor.Advisor
	markdown  *advisor.Renderer
	mdStyle   string
	zones     Zones
	renderer  *views.Renderer
	keys      keyMap
	help      help.Model

	stats     *carousel.Controller[domain.StatSlide]
	assets    *carousel.Controller[domain.Asset]
	carousels []rotator
	focus     int
	pointer   *pointer

	page   page
	width  int
	height int
	scroll int

	// chat
	chatInput textinput.Model
	chatting  bool
	chat      []views.ChatLine
	pending   int
	spinner   spinner.Model

	// marketplace
	query       market.Query
	searchInput textinput.Model
	searching   bool
	listing     []domain.MarketItem
	categories  []string
	selected    int
	offset      int

	status      string
	statusError bool
	inPagerMode bool
	disposed    bool

	// pager is set once the program exists
	pager *PagerOps
}

// NewModel creates the dashboard model. The carousels are created here and
// started by Init.
func NewModel(d Deps) (*Model, error) {
	if d.Config == nil {
		d.Config = config.DefaultConfig()
	}
	if d.Portfolio == nil {
		return nil, errors.New("portfolio is required")
	}
	if d.Market == nil {
		return nil, errors.New("market service is required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Zones == nil {
		d.Zones = NewZones()
	}

	m := &Model{
		bus:       d.Bus,
		config:    d.Config,
		logger:    logging.Component(d.Logger, "ui"),
		portfolio: d.Portfolio,
		market:    d.Market,
		advisor:   advisor.New(d.Portfolio),
		mdStyle:   d.RendererStyle,
		zones:     d.Zones,
		keys:      defaultKeyMap(),
		help:      help.New(),
		query:     market.Query{Category: market.AllCategories, Sort: market.SortNewest},
	}
	m.renderer = views.NewRenderer(views.NewStyles(), m.zones.Mark)

	statsCfg, err := m.carouselConfig(StatsZone, d.Config.Carousels.Stats, d)
	if err != nil {
		return nil, err
	}
	assetsCfg, err := m.carouselConfig(AssetsZone, d.Config.Carousels.Assets, d)
	if err != nil {
		return nil, err
	}
	m.stats = carousel.New(d.Portfolio.StatSlides(), statsCfg)
	m.assets = carousel.New(d.Portfolio.Assets, assetsCfg)
	m.carousels = []rotator{m.stats, m.assets}

	m.pointer = newPointer(m.zones, d.Config.Input.CellWidth, d.Config.Input.CellHeight, d.Now,
		binding{
			zone:  StatsZone,
			ctl:   m.stats,
			wheel: d.Config.Carousels.Stats.EnableWheel,
			drag:  d.Config.Carousels.Stats.EnableDrag,
		},
		binding{
			zone:  AssetsZone,
			ctl:   m.assets,
			wheel: d.Config.Carousels.Assets.EnableWheel,
			drag:  d.Config.Carousels.Assets.EnableDrag,
		},
	)

	m.chatInput = textinput.New()
	m.chatInput.Placeholder = "Ask about your portfolio..."
	m.chatInput.CharLimit = 200
	m.chatInput.Prompt = "> "

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search titles"
	m.searchInput.CharLimit = 60
	m.searchInput.Prompt = "/ "

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.setMarkdownWidth(60)
	m.chat = []views.ChatLine{{Text: m.markdown.Render(advisor.Greeting)}}

	if err := m.refreshListing(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) carouselConfig(name string, cs config.CarouselSettings, d Deps) (carousel.Config, error) {
	cc, err := m.config.CarouselConfig(name, cs)
	if err != nil {
		return carousel.Config{}, err
	}
	cc.Scheduler = d.Scheduler
	cc.Logger = d.Logger
	bus := d.Bus
	cc.OnIndexChange = func(index int) {
		if bus != nil {
			bus.Publish(eventbus.SlideChangedEvent{Carousel: name, Index: index})
		}
	}
	return cc, nil
}

func (m *Model) setMarkdownWidth(width int) {
	r, err := advisor.NewRenderer(width, m.mdStyle)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return
	}
	m.markdown = r
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	if p == nil {
		return
	}
	m.pager = NewPagerOps(p)
}

// Close disposes both carousels. It is safe to call more than once.
func (m *Model) Close() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.pointer.Reset()
	for _, c := range m.carousels {
		c.Dispose()
	}
}

// Init starts the carousels
func (m *Model) Init() tea.Cmd {
	var failed []string
	for _, c := range []interface{ Start() error }{m.stats, m.assets} {
		if err := c.Start(); err != nil {
			m.logger.Warn("carousel not started", zap.Error(err))
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		return m.setStatus(strings.Join(failed, "; "), true)
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.chatInput.Width = max(msg.Width-8, 10)
		m.setMarkdownWidth(max(msg.Width-10, 20))
		m.clampScroll()
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.inPagerMode {
			return m, nil
		}
		if m.page == pageMarket {
			return m.handleMarketMouse(msg)
		}
		res := m.pointer.Handle(msg)
		if res.Scroll != 0 {
			m.scroll += res.Scroll
			m.clampScroll()
		}
		if res.Err != nil {
			return m, m.setStatus(res.Err.Error(), true)
		}
		return m, nil

	case EventMsg:
		return m.handleEvent(msg.Event)

	case advisorReplyMsg:
		m.pending = max(m.pending-1, 0)
		m.chat = append(m.chat, views.ChatLine{Text: m.markdown.Render(msg.reply)})
		if m.bus != nil {
			m.bus.Publish(eventbus.AdvisorReplyEvent{Question: msg.question, Reply: msg.reply})
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case historyPagerMsg:
		if msg.err != nil {
			m.logger.Warn("history pager failed", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		m.pointer.Reset()
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.status = ""
		m.statusError = false
		return m, nil
	}

	return m, m.updateInputs(msg)
}

// updateInputs forwards cursor blinks to the focused text input
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.chatting:
		m.chatInput, cmd = m.chatInput.Update(msg)
	case m.searching:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return cmd
}

func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.SlideChangedEvent:
		// View reads the controllers directly; the message only triggers a redraw.
	case eventbus.LikeToggledEvent:
		if err := m.refreshListing(); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
	case eventbus.ErrorEvent:
		return m, m.setStatus(e.Message, true)
	case eventbus.StoreSavedEvent:
		m.logger.Debug("store saved", zap.String("key", e.Key))
	}
	return m, nil
}

func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.status = text
	m.statusError = isError
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chatting {
		return m.handleChatKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.History):
		return m, m.openHistory()
	}

	if m.page == pageMarket {
		return m.handleMarketKey(msg)
	}
	return m.handleDashboardKey(msg)
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := m.carousels[m.focus]

	switch {
	case key.Matches(msg, m.keys.Focus):
		m.focus = (m.focus + 1) % len(m.carousels)
	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Up):
		focused.PressPrev()
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Down):
		focused.PressNext()
	case key.Matches(msg, m.keys.Indicator):
		n := int(msg.String()[0] - '1')
		if err := focused.SelectIndicator(n); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
	case key.Matches(msg, m.keys.Pause):
		if focused.State().Paused {
			focused.Resume()
			return m, m.setStatus(fmt.Sprintf("%s resumed", focused.Name()), false)
		}
		focused.Pause()
		return m, m.setStatus(fmt.Sprintf("%s paused", focused.Name()), false)
	case key.Matches(msg, m.keys.Market):
		m.pointer.Reset()
		m.page = pageMarket
		m.scroll = 0
	case key.Matches(msg, m.keys.Chat):
		m.chatting = true
		return m, m.chatInput.Focus()
	}
	return m, nil
}

func (m *Model) openHistory() tea.Cmd {
	if m.pager == nil {
		return m.setStatus("History pager unavailable", true)
	}
	return m.pager.showHistory(RenderHistory(m.portfolio))
}

// View renders the current page
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	var body string
	if m.page == pageMarket {
		body = m.marketView()
	} else {
		body = m.dashboardView()
	}

	out := lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer())
	if m.page == pageDashboard && m.height > 0 {
		out = m.viewport(out)
	}
	return m.zones.Scan(out)
}

func (m *Model) header() string {
	s := m.renderer.Styles()
	tab := func(label string, active bool) string {
		if active {
			return s.ActiveTab.Render(label)
		}
		return s.Tab.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render("valu "),
		tab("Dashboard", m.page == pageDashboard),
		tab("Marketplace", m.page == pageMarket),
	) + "\n"
}

func (m *Model) footer() string {
	s := m.renderer.Styles()
	var b strings.Builder
	if m.status != "" {
		if m.statusError {
			b.WriteString(s.StatusError.Render(m.status))
		} else {
			b.WriteString(s.Status.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(s.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// viewport drops the lines scrolled past and trims to the window height
func (m *Model) viewport(out string) string {
	lines := strings.Split(out, "\n")
	start := min(m.scroll, max(len(lines)-1, 0))
	lines = lines[start:]
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) clampScroll() {
	if m.scroll < 0 {
		m.scroll = 0
	}
	if m.height <= 0 {
		return
	}
	total := lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, m.header(), m.dashboardView(), m.footer()))
	m.scroll = min(m.scroll, max(total-m.height, 0))
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}
