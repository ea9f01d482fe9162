// Package carousel implements the rotation engine behind the dashboard
// carousels. A Controller owns the current index of a fixed sequence of items
// and reconciles the auto-advance timer, wheel, drag, touch and explicit
// selection inputs into a single index.
package carousel

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Axis selects the coordinate a drag or touch gesture is measured on.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseAxis parses "vertical" or "horizontal".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v", "y":
		return AxisVertical, nil
	case "horizontal", "h", "x":
		return AxisHorizontal, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// Point is a pointer position in host units.
type Point struct {
	X float64
	Y float64
}

// Defaults applied to zero Config fields.
const (
	DefaultAutoAdvance    = 5 * time.Second
	DefaultWheelCooldown  = 800 * time.Millisecond
	DefaultSwipeThreshold = 50.0
)

// Config parameterises one carousel instance.
type Config struct {
	Name           string
	AutoAdvance    time.Duration
	WheelCooldown  time.Duration
	SwipeThreshold float64
	Axis           Axis
	StartIndex     int

	// CaptureWheel and CaptureTouchMove tell the host whether to suppress its
	// default scrolling for those events.
	CaptureWheel     bool
	CaptureTouchMove bool

	// OnIndexChange is called with the new index, under the controller lock,
	// each time the index changes. It must not call back into the controller.
	OnIndexChange func(index int)

	Scheduler Scheduler
	Logger    *zap.Logger
}

func (c Config) withDefaults() Config {
	if c.AutoAdvance <= 0 {
		c.AutoAdvance = DefaultAutoAdvance
	}
	if c.WheelCooldown <= 0 {
		c.WheelCooldown = DefaultWheelCooldown
	}
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = DefaultSwipeThreshold
	}
	if c.Scheduler == nil {
		c.Scheduler = TickerScheduler{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// State is a point-in-time snapshot of a controller.
type State struct {
	Index    int
	Len      int
	Paused   bool
	Hovered  bool
	Dragging bool
	Running  bool
	Disposed bool
}

// Controller is safe for concurrent use; every operation runs to completion
// under one mutex.
type Controller[T any] struct {
	mu     sync.Mutex
	cfg    Config
	items  []T
	logger *zap.Logger

	index     int
	paused    bool
	hovered   bool
	dragging  bool
	dragStart Point
	lastWheel time.Time
	wheelSeen bool
	disposed  bool

	timer    Stopper
	timerGen uint64
}

// New creates a controller over a copy of items. The timer is not started
// until Start is called. A controller with no items is valid; navigation on
// it does nothing.
func New[T any](items []T, cfg Config) *Controller[T] {
	cfg = cfg.withDefaults()
	owned := make([]T, len(items))
	copy(owned, items)

	c := &Controller[T]{
		cfg:    cfg,
		items:  owned,
		logger: cfg.Logger.With(zap.String("carousel", cfg.Name)),
	}
	if cfg.StartIndex > 0 && cfg.StartIndex < len(owned) {
		c.index = cfg.StartIndex
	}
	if len(owned) == 0 {
		c.logger.Warn("carousel created without items")
	}
	return c
}

// Name returns the configured name.
func (c *Controller[T]) Name() string {
	return c.cfg.Name
}

// Len returns the number of items.
func (c *Controller[T]) Len() int {
	return len(c.items)
}

// Index returns the current index.
func (c *Controller[T]) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Current returns the item at the current index.
func (c *Controller[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[c.index], true
}

// Items returns a copy of the items.
func (c *Controller[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// State returns a snapshot of the controller.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Index:    c.index,
		Len:      len(c.items),
		Paused:   c.paused,
		Hovered:  c.hovered,
		Dragging: c.dragging,
		Running:  c.timer != nil,
		Disposed: c.disposed,
	}
}

// Start mounts the controller and starts auto-advance.
func (c *Controller[T]) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if len(c.items) == 0 {
		return ErrEmptyCollection
	}
	c.restartTimerLocked()
	c.logger.Debug("carousel started",
		zap.Int("items", len(c.items)),
		zap.Int("index", c.index),
		zap.Duration("interval", c.cfg.AutoAdvance))
	return nil
}

// Next advances to the following item, wrapping to the first.
func (c *Controller[T]) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stepLocked(1, "next")
}

// Prev moves to the preceding item, wrapping to the last.
func (c *Controller[T]) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stepLocked(-1, "prev")
}

// PressNext is the next button: Next followed by a timer reset.
func (c *Controller[T]) PressNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active() {
		return
	}
	c.stepLocked(1, "button")
	c.restartTimerLocked()
}

// PressPrev is the previous button: Prev followed by a timer reset.
func (c *Controller[T]) PressPrev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active() {
		return
	}
	c.stepLocked(-1, "button")
	c.restartTimerLocked()
}

// GoTo jumps to index i. An index outside [0, Len) returns an
// *OutOfRangeError and leaves the index unchanged. Jumping to the current
// index does not invoke OnIndexChange.
func (c *Controller[T]) GoTo(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToLocked(i, "goto")
}

// SelectIndicator is GoTo followed by a timer reset.
func (c *Controller[T]) SelectIndicator(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.goToLocked(i, "indicator"); err != nil {
		return err
	}
	c.restartTimerLocked()
	return nil
}

// Pause suppresses auto-advance ticks. Manual navigation still works.
func (c *Controller[T]) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.paused = true
}

// Resume clears the pause flag and restarts the timer from a full interval.
func (c *Controller[T]) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active() {
		return
	}
	c.paused = false
	c.restartTimerLocked()
}

// PointerEnter marks the pointer as over the carousel. The timer keeps
// running; its ticks are ignored until PointerLeave.
func (c *Controller[T]) PointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.hovered = true
}

// PointerLeave undoes PointerEnter without touching the timer.
func (c *Controller[T]) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.hovered = false
}

// StartAutoAdvance replaces any running timer with a fresh one.
func (c *Controller[T]) StartAutoAdvance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active() {
		return
	}
	c.restartTimerLocked()
}

// StopAutoAdvance cancels the timer if one is running.
func (c *Controller[T]) StopAutoAdvance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

// HandleWheel handles a wheel event at time now. Events arriving within the
// cooldown of the last accepted one are ignored. It reports whether the host
// should suppress its default scroll.
func (c *Controller[T]) HandleWheel(deltaY float64, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	capture := c.cfg.CaptureWheel
	if !c.active() {
		return capture
	}
	if c.wheelSeen && now.Sub(c.lastWheel) < c.cfg.WheelCooldown {
		return capture
	}
	if deltaY > 0 {
		c.stepLocked(1, "wheel")
	} else {
		c.stepLocked(-1, "wheel")
	}
	c.lastWheel = now
	c.wheelSeen = true
	c.restartTimerLocked()
	return capture
}

// HandleDragStart begins a mouse drag at p.
func (c *Controller[T]) HandleDragStart(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beginGestureLocked(p)
}

// HandleDragEnd finishes a drag at p. Without a matching start it does nothing.
func (c *Controller[T]) HandleDragEnd(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endGestureLocked(p, "drag")
}

// CancelDrag abandons a gesture in progress without navigating, for example
// when the pointer leaves the carousel mid-drag.
func (c *Controller[T]) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging || c.disposed {
		return
	}
	c.finishGestureLocked()
}

// HandleTouchStart begins a touch gesture at p.
func (c *Controller[T]) HandleTouchStart(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beginGestureLocked(p)
}

// HandleTouchMove never navigates. It reports whether the host should
// suppress its default scroll.
func (c *Controller[T]) HandleTouchMove(Point) bool {
	return c.cfg.CaptureTouchMove
}

// HandleTouchEnd finishes a touch gesture at p.
func (c *Controller[T]) HandleTouchEnd(p Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endGestureLocked(p, "touch")
}

// Dispose stops the timer. Every later operation is a no-op.
func (c *Controller[T]) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.stopTimerLocked()
	c.disposed = true
	c.dragging = false
	c.logger.Debug("carousel disposed")
}

func (c *Controller[T]) active() bool {
	return !c.disposed && len(c.items) > 0
}

func (c *Controller[T]) beginGestureLocked(p Point) {
	if !c.active() {
		return
	}
	c.dragStart = p
	c.dragging = true
	c.paused = true
	c.stopTimerLocked()
}

func (c *Controller[T]) endGestureLocked(p Point, source string) {
	if !c.dragging || c.disposed {
		return
	}
	d := c.displacement(p)
	if math.Abs(d) >= c.cfg.SwipeThreshold {
		// Swiping up or left moves forward.
		if d < 0 {
			c.stepLocked(1, source)
		} else {
			c.stepLocked(-1, source)
		}
	}
	c.finishGestureLocked()
}

func (c *Controller[T]) finishGestureLocked() {
	c.dragging = false
	c.paused = false
	c.restartTimerLocked()
}

func (c *Controller[T]) displacement(p Point) float64 {
	if c.cfg.Axis == AxisHorizontal {
		return p.X - c.dragStart.X
	}
	return p.Y - c.dragStart.Y
}

func (c *Controller[T]) stepLocked(delta int, source string) bool {
	if !c.active() {
		return false
	}
	n := len(c.items)
	return c.setIndexLocked(((c.index+delta)%n+n)%n, source)
}

func (c *Controller[T]) goToLocked(i int, source string) error {
	if c.disposed {
		return ErrDisposed
	}
	if i < 0 || i >= len(c.items) {
		return &OutOfRangeError{Index: i, Len: len(c.items)}
	}
	c.setIndexLocked(i, source)
	return nil
}

func (c *Controller[T]) setIndexLocked(i int, source string) bool {
	if i == c.index {
		return false
	}
	from := c.index
	c.index = i
	c.logger.Debug("index changed",
		zap.Int("from", from),
		zap.Int("to", i),
		zap.String("source", source))
	c.notifyLocked(i)
	return true
}

// notifyLocked runs the render callback. The index is already committed, so a
// panicking callback is logged and otherwise ignored.
func (c *Controller[T]) notifyLocked(index int) {
	if c.cfg.OnIndexChange == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("index change callback panicked",
				zap.Int("index", index),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	c.cfg.OnIndexChange(index)
}

func (c *Controller[T]) restartTimerLocked() {
	c.stopTimerLocked()
	if !c.active() {
		return
	}
	c.timerGen++
	gen := c.timerGen
	c.timer = c.cfg.Scheduler.Every(c.cfg.AutoAdvance, func() {
		c.tick(gen)
	})
}

func (c *Controller[T]) stopTimerLocked() {
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
	// Invalidate ticks from the stopped timer that are already in flight.
	c.timerGen++
}

func (c *Controller[T]) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil || gen != c.timerGen || !c.active() {
		return
	}
	if c.paused || c.hovered {
		return
	}
	c.stepLocked(1, "timer")
}
