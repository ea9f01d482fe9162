package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"valu/internal/carousel/carouseltest"
	"valu/internal/config"
	"valu/internal/fixtures"
	"valu/internal/market"
	"valu/internal/portfolio"
	"valu/internal/store"
)

type rect struct{ x0, y0, x1, y1 int }

// fakeZones resolves clicks against rectangles set by the test
type fakeZones struct {
	rects map[string]rect
}

func newFakeZones() *fakeZones {
	return &fakeZones{rects: make(map[string]rect)}
}

func (z *fakeZones) set(id string, x0, y0, x1, y1 int) {
	z.rects[id] = rect{x0, y0, x1, y1}
}

func (z *fakeZones) Mark(_, v string) string { return v }
func (z *fakeZones) Scan(v string) string    { return v }
func (z *fakeZones) Close()                  {}

func (z *fakeZones) InBounds(id string, msg tea.MouseMsg) bool {
	r, ok := z.rects[id]
	return ok && msg.X >= r.x0 && msg.X <= r.x1 && msg.Y >= r.y0 && msg.Y <= r.y1
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	model *Model
	sched *carouseltest.ManualScheduler
	zones *fakeZones
	clock *testClock
}

func newHarness(t *testing.T, opts ...func(*Deps)) *harness {
	t.Helper()

	data := fixtures.MustLoad()
	p := &portfolio.Portfolio{Assets: data.Assets, Transactions: data.Transactions, History: data.History}
	svc := market.NewService(store.NewMemoryStore(), data.Market, market.Options{Count: 20, Seed: 7}, nil, nil)

	h := &harness{
		sched: carouseltest.NewManualScheduler(),
		zones: newFakeZones(),
		clock: &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	deps := Deps{
		Config:        config.DefaultConfig(),
		Portfolio:     p,
		Market:        svc,
		Scheduler:     h.sched,
		Zones:         h.zones,
		RendererStyle: "notty",
		Now:           h.clock.Now,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	m, err := NewModel(deps)
	require.NoError(t, err)
	m.Init()
	t.Cleanup(m.Close)
	h.model = m
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.model.Update(msg)
	return cmd
}

func (h *harness) keys(s ...string) {
	for _, k := range s {
		h.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func motion(x, y int) tea.MouseMsg {
	return mouse(x, y, tea.MouseActionMotion, tea.MouseButtonNone)
}

func press(x, y int) tea.MouseMsg {
	return mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft)
}

func release(x, y int) tea.MouseMsg {
	return mouse(x, y, tea.MouseActionRelease, tea.MouseButtonLeft)
}

func wheel(x, y int, down bool) tea.MouseMsg {
	if down {
		return mouse(x, y, tea.MouseActionPress, tea.MouseButtonWheelDown)
	}
	return mouse(x, y, tea.MouseActionPress, tea.MouseButtonWheelUp)
}
