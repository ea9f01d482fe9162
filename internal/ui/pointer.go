package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"valu/internal/carousel"
	"valu/internal/ui/views"
)

// rotator is the non-generic surface of a carousel controller the input
// adapter drives.
type rotator interface {
	Name() string
	Len() int
	Index() int
	State() carousel.State
	PressNext()
	PressPrev()
	SelectIndicator(i int) error
	Pause()
	Resume()
	PointerEnter()
	PointerLeave()
	HandleWheel(deltaY float64, now time.Time) bool
	HandleDragStart(p carousel.Point)
	HandleDragEnd(p carousel.Point)
	CancelDrag()
	Dispose()
}

// binding ties a rendered carousel zone to its controller
type binding struct {
	zone  string
	ctl   rotator
	wheel bool
	drag  bool
}

// pointerResult tells the model what a mouse event did
type pointerResult struct {
	// Scroll is the number of lines the page should scroll; non-zero only
	// for wheel events no carousel captured.
	Scroll int
	// Err is a failed indicator selection.
	Err error
}

// pointer translates terminal mouse events into carousel operations.
// Cell positions are scaled by the configured cell size so the swipe
// threshold keeps its pixel meaning.
type pointer struct {
	zones    Zones
	bindings []binding
	hovered  map[string]bool
	dragging string
	cellW    float64
	cellH    float64
	now      func() time.Time
}

func newPointer(zones Zones, cellW, cellH float64, now func() time.Time, bindings ...binding) *pointer {
	if now == nil {
		now = time.Now
	}
	return &pointer{
		zones:    zones,
		bindings: bindings,
		hovered:  make(map[string]bool),
		cellW:    cellW,
		cellH:    cellH,
		now:      now,
	}
}

func (p *pointer) point(msg tea.MouseMsg) carousel.Point {
	return carousel.Point{X: float64(msg.X) * p.cellW, Y: float64(msg.Y) * p.cellH}
}

func (p *pointer) find(zone string) *binding {
	for i := range p.bindings {
		if p.bindings[i].zone == zone {
			return &p.bindings[i]
		}
	}
	return nil
}

// hit returns the carousel under the pointer, if any
func (p *pointer) hit(msg tea.MouseMsg) *binding {
	for i := range p.bindings {
		if p.zones.InBounds(p.bindings[i].zone, msg) {
			return &p.bindings[i]
		}
	}
	return nil
}

// Handle applies one mouse event
func (p *pointer) Handle(msg tea.MouseMsg) pointerResult {
	p.trackHover(msg)
	b := p.hit(msg)

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		return p.wheel(b, msg)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if b == nil {
			return pointerResult{}
		}
		if handled, err := p.click(b, msg); handled {
			return pointerResult{Err: err}
		}
		if b.drag {
			b.ctl.HandleDragStart(p.point(msg))
			p.dragging = b.zone
		}

	case msg.Action == tea.MouseActionRelease:
		p.release(b, msg)

	case msg.Action == tea.MouseActionMotion:
		if p.dragging != "" && (b == nil || b.zone != p.dragging) {
			p.cancelDrag()
		}
	}
	return pointerResult{}
}

func (p *pointer) wheel(b *binding, msg tea.MouseMsg) pointerResult {
	delta := 1
	if msg.Button == tea.MouseButtonWheelUp {
		delta = -1
	}
	if b == nil || !b.wheel {
		return pointerResult{Scroll: delta}
	}
	if b.ctl.HandleWheel(float64(delta), p.now()) {
		return pointerResult{}
	}
	return pointerResult{Scroll: delta}
}

// click resolves the control row of a card. It reports false when the
// press landed on the card body.
func (p *pointer) click(b *binding, msg tea.MouseMsg) (bool, error) {
	switch {
	case p.zones.InBounds(views.ZonePrev(b.zone), msg):
		b.ctl.PressPrev()
		return true, nil
	case p.zones.InBounds(views.ZoneNext(b.zone), msg):
		b.ctl.PressNext()
		return true, nil
	}
	for i := 0; i < b.ctl.Len(); i++ {
		if p.zones.InBounds(views.ZoneDot(b.zone, i), msg) {
			return true, b.ctl.SelectIndicator(i)
		}
	}
	return false, nil
}

func (p *pointer) release(b *binding, msg tea.MouseMsg) {
	if p.dragging == "" {
		return
	}
	if b == nil || b.zone != p.dragging {
		p.cancelDrag()
		return
	}
	b.ctl.HandleDragEnd(p.point(msg))
	p.dragging = ""
}

func (p *pointer) cancelDrag() {
	if b := p.find(p.dragging); b != nil {
		b.ctl.CancelDrag()
	}
	p.dragging = ""
}

func (p *pointer) trackHover(msg tea.MouseMsg) {
	for _, b := range p.bindings {
		inside := p.zones.InBounds(b.zone, msg)
		switch {
		case inside && !p.hovered[b.zone]:
			p.hovered[b.zone] = true
			b.ctl.PointerEnter()
		case !inside && p.hovered[b.zone]:
			delete(p.hovered, b.zone)
			b.ctl.PointerLeave()
		}
	}
}

// Reset ends hover and drag state, for example when the dashboard is hidden
func (p *pointer) Reset() {
	if p.dragging != "" {
		p.cancelDrag()
	}
	for _, b := range p.bindings {
		if p.hovered[b.zone] {
			b.ctl.PointerLeave()
		}
	}
	p.hovered = make(map[string]bool)
}
