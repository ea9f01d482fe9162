package market

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"valu/internal/domain"
	"valu/internal/eventbus"
	"valu/internal/store"
)

// Options controls listing generation.
type Options struct {
	Count int
	// Seed fixes the price jitter. Zero seeds from the clock.
	Seed int64
}

// Service owns the persisted listing and the liked titles.
type Service struct {
	mu     sync.Mutex
	store  store.Store
	base   []domain.MarketItem
	opts   Options
	bus    eventbus.EventBus
	logger *zap.Logger

	items []domain.MarketItem
	likes *Likes
}

// NewService creates a service. Nothing is read until first use. bus may be
// nil.
func NewService(s store.Store, base []domain.MarketItem, opts Options, bus eventbus.EventBus, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Count <= 0 {
		opts.Count = 20
	}
	return &Service{
		store:  s,
		base:   base,
		opts:   opts,
		bus:    bus,
		logger: logger.With(zap.String("component", "market")),
	}
}

// Items returns the full listing. It is generated and stored on first use
// and read back from the store afterwards.
func (s *Service) Items() ([]domain.MarketItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return append([]domain.MarketItem(nil), s.items...), nil
}

// Listing applies q to the stored listing.
func (s *Service) Listing(q Query) ([]domain.MarketItem, error) {
	items, err := s.Items()
	if err != nil {
		return nil, err
	}
	return q.Apply(items), nil
}

// Categories lists the filter tabs for the stored listing.
func (s *Service) Categories() ([]string, error) {
	items, err := s.Items()
	if err != nil {
		return nil, err
	}
	return Categories(items), nil
}

// Liked reports whether title is liked.
func (s *Service) Liked(title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLikesLocked(); err != nil {
		return false, err
	}
	return s.likes.Has(title), nil
}

// LikedTitles returns every liked title in the order they were liked.
func (s *Service) LikedTitles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLikesLocked(); err != nil {
		return nil, err
	}
	return s.likes.Titles(), nil
}

// ToggleLike flips the like on title, persists the set and returns the new
// state.
func (s *Service) ToggleLike(title string) (bool, error) {
	s.mu.Lock()
	if err := s.loadLikesLocked(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	liked := s.likes.Toggle(title)
	if err := s.store.Set(store.KeyLikedItems, s.likes.Titles()); err != nil {
		s.likes.Toggle(title)
		s.mu.Unlock()
		return false, fmt.Errorf("failed to save likes: %w", err)
	}
	s.mu.Unlock()

	s.logger.Debug("like toggled", zap.String("title", title), zap.Bool("liked", liked))
	if s.bus != nil {
		s.bus.Publish(eventbus.LikeToggledEvent{Title: title, Liked: liked})
	}
	return liked, nil
}

func (s *Service) loadLocked() error {
	if s.items != nil {
		return nil
	}

	var items []domain.MarketItem
	found, err := s.store.Get(store.KeyMarketplaceItems, &items)
	if err != nil {
		return fmt.Errorf("failed to load marketplace: %w", err)
	}
	if found && len(items) > 0 {
		s.items = items
		return nil
	}

	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	items = Generate(s.base, s.opts.Count, rand.New(rand.NewSource(seed)))
	if err := s.store.Set(store.KeyMarketplaceItems, items); err != nil {
		return fmt.Errorf("failed to save marketplace: %w", err)
	}
	s.logger.Info("generated marketplace", zap.Int("items", len(items)), zap.Int64("seed", seed))
	s.items = items
	return nil
}

func (s *Service) loadLikesLocked() error {
	if s.likes != nil {
		return nil
	}
	var titles []string
	if _, err := s.store.Get(store.KeyLikedItems, &titles); err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	s.likes = NewLikes(titles)
	return nil
}
