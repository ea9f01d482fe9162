package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"valu/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSlideChanged    = domain.EventSlideChanged
	EventLikeToggled     = domain.EventLikeToggled
	EventStoreSaved      = domain.EventStoreSaved
	EventError           = domain.EventError
	EventConfigLoaded    = domain.EventConfigLoaded
	EventConfigSaved     = domain.EventConfigSaved
	EventAdvisorReply    = domain.EventAdvisorReply
	EventPortfolioSeeded = domain.EventPortfolioSeed
)

// Re-export domain event types
type SlideChangedEvent = domain.SlideChangedEvent
type LikeToggledEvent = domain.LikeToggledEvent
type StoreSavedEvent = domain.StoreSavedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type AdvisorReplyEvent = domain.AdvisorReplyEvent
type PortfolioSeededEvent = domain.PortfolioSeededEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

const queueSize = 1000

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	handlerWG sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    *zap.Logger
}

// New creates a new event bus
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, queueSize),
		quit:      make(chan struct{}),
		logger:    logger.With(zap.String("component", "eventbus")),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		b.logger.Debug("bus closed, dropping event", zap.String("type", string(event.Type())))
		return
	default:
	}

	// Slide changes fire every few seconds per carousel
	if event.Type() != EventSlideChanged {
		b.logger.Debug("publishing event", zap.String("type", string(event.Type())))
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("event bus channel full, dropping event", zap.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close delivers events already queued, then stops the dispatcher and
// waits for running handlers.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
		b.handlerWG.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.handlerWG.Add(1)
		go func(h EventHandler) {
			defer b.handlerWG.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panic",
						zap.String("type", string(event.Type())),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()))
				}
			}()
			h(event)
		}(s.handler)
	}
}
