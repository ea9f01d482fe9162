package carousel

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestTickerScheduler_Fires(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls int32
	stop := TickerScheduler{}.Every(10*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 2 }, time.Second, 5*time.Millisecond)
	stop.Stop()
}

func TestTickerScheduler_StopIsFinal(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls int32
	stop := TickerScheduler{}.Every(10*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})
	stop.Stop()
	stop.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestController_RealTimerDispose(t *testing.T) {
	defer goleak.VerifyNone(t)

	var changes int32
	c := New([]string{"a", "b", "c"}, Config{
		AutoAdvance:   10 * time.Millisecond,
		OnIndexChange: func(int) { atomic.AddInt32(&changes, 1) },
	})
	assert.NoError(t, c.Start())
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&changes) >= 2 }, time.Second, 5*time.Millisecond)

	// Restarting many times must not leave extra goroutines behind.
	for i := 0; i < 20; i++ {
		c.StartAutoAdvance()
	}
	c.Dispose()

	settled := atomic.LoadInt32(&changes)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt32(&changes))
}
