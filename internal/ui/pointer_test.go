package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valu/internal/ui/views"
)

// layoutCards places the stats card on the left and the assets card on the
// right, with the stats control row on line 8.
func layoutCards(z *fakeZones) {
	z.set(StatsZone, 0, 0, 39, 9)
	z.set(views.ZonePrev(StatsZone), 2, 8, 7, 8)
	z.set(views.ZoneNext(StatsZone), 30, 8, 35, 8)
	for i := 0; i < 5; i++ {
		z.set(views.ZoneDot(StatsZone, i), 12+2*i, 8, 12+2*i, 8)
	}
	z.set(AssetsZone, 40, 0, 79, 12)
}

func TestPointer_HoverSuppressesTicks(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(motion(5, 5))
	assert.True(t, h.model.stats.State().Hovered)

	h.sched.Advance(4 * time.Second)
	assert.Equal(t, 0, h.model.stats.Index())

	h.send(motion(100, 30))
	assert.False(t, h.model.stats.State().Hovered)

	h.sched.Advance(4 * time.Second)
	assert.Equal(t, 1, h.model.stats.Index())
}

func TestPointer_WheelRespectsCooldown(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(wheel(5, 5, true))
	assert.Equal(t, 1, h.model.stats.Index())
	assert.Zero(t, h.model.scroll, "captured wheel must not scroll the page")

	h.clock.Advance(300 * time.Millisecond)
	h.send(wheel(5, 5, true))
	assert.Equal(t, 1, h.model.stats.Index())

	h.clock.Advance(800 * time.Millisecond)
	h.send(wheel(5, 5, false))
	assert.Equal(t, 0, h.model.stats.Index())
}

func TestPointer_WheelRestartsTimer(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.sched.Advance(3 * time.Second)
	h.send(wheel(5, 5, true))
	h.send(motion(100, 30))
	require.Equal(t, 1, h.model.stats.Index())

	h.sched.Advance(3 * time.Second)
	assert.Equal(t, 1, h.model.stats.Index())
	h.sched.Advance(time.Second)
	assert.Equal(t, 2, h.model.stats.Index())
}

func TestPointer_WheelOverAssetsNavigates(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(wheel(60, 5, true))
	assert.Equal(t, 2, h.model.assets.Index())
	assert.Equal(t, 0, h.model.stats.Index())
	assert.Zero(t, h.model.scroll, "captured wheel must not scroll the page")
}

func TestPointer_WheelOutsideCardsScrollsPage(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(wheel(100, 30, true))
	assert.Equal(t, 1, h.model.scroll)
	assert.Equal(t, 1, h.model.assets.Index())
	assert.Equal(t, 0, h.model.stats.Index())

	h.send(wheel(100, 30, false))
	assert.Zero(t, h.model.scroll)
}

func TestPointer_UncapturedWheelScrollsPage(t *testing.T) {
	h := newHarness(t, func(d *Deps) {
		d.Config.Carousels.Assets.CaptureWheel = false
	})
	layoutCards(h.zones)

	h.send(wheel(60, 5, true))
	assert.Equal(t, 2, h.model.assets.Index())
	assert.Equal(t, 1, h.model.scroll)
}

func TestPointer_DragPastThreshold(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(press(60, 5))
	st := h.model.assets.State()
	assert.True(t, st.Dragging)
	assert.True(t, st.Paused)

	// 10 cells at 8 units per cell is past the 50 unit threshold.
	h.send(release(50, 5))
	st = h.model.assets.State()
	assert.Equal(t, 2, st.Index)
	assert.False(t, st.Dragging)
	assert.False(t, st.Paused)

	h.send(press(50, 5))
	h.send(release(60, 5))
	assert.Equal(t, 1, h.model.assets.Index())
}

func TestPointer_ShortDragDoesNothing(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(press(60, 5))
	h.send(release(57, 5))
	assert.Equal(t, 1, h.model.assets.Index())
	assert.False(t, h.model.assets.State().Dragging)
}

func TestPointer_LeavingMidDragCancels(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(press(60, 5))
	h.send(motion(10, 5))
	st := h.model.assets.State()
	assert.False(t, st.Dragging)
	assert.False(t, st.Paused)
	assert.Equal(t, 1, st.Index)

	h.send(release(10, 5))
	assert.Equal(t, 1, h.model.assets.Index())
}

func TestPointer_ButtonsAndDots(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(press(3, 8))
	assert.Equal(t, 4, h.model.stats.Index(), "prev wraps to the last slide")

	h.send(press(31, 8))
	assert.Equal(t, 0, h.model.stats.Index())

	h.send(press(18, 8))
	assert.Equal(t, 3, h.model.stats.Index())
	assert.False(t, h.model.stats.State().Dragging, "control clicks do not start a drag")
}

func TestPointer_Reset(t *testing.T) {
	h := newHarness(t)
	layoutCards(h.zones)

	h.send(motion(60, 5))
	h.send(press(60, 5))
	require.True(t, h.model.assets.State().Hovered)

	h.keys("m")
	st := h.model.assets.State()
	assert.False(t, st.Hovered)
	assert.False(t, st.Dragging)
}
