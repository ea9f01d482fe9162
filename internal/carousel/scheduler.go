package carousel

import (
	"sync"
	"time"
)

// Stopper cancels a scheduled task. Stop must be safe to call more than once.
type Stopper interface {
	Stop()
}

// Scheduler starts repeating tasks. Every calls fn once per interval until
// the returned Stopper is stopped.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Stopper
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(interval time.Duration, fn func()) Stopper {
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) run(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			// Stop may have raced with the tick.
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

// Stop does not wait for an in-flight fn to return, so it is safe to call
// while holding a lock that fn also takes.
func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
