package portfolio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"valu/internal/domain"
	"valu/internal/eventbus"
	"valu/internal/fixtures"
	"valu/internal/store"
)

// Repository loads and saves the portfolio.
type Repository interface {
	Load(ctx context.Context) (*Portfolio, error)
	Save(ctx context.Context, p *Portfolio) error
}

// StoreRepository keeps the asset list under store.KeyMyAssets. Transactions
// and history always come from the fixtures.
type StoreRepository struct {
	store    store.Store
	fixtures *fixtures.Data
	bus      eventbus.EventBus
	logger   *zap.Logger
}

var _ Repository = (*StoreRepository)(nil)

// NewStoreRepository creates a repository. bus may be nil.
func NewStoreRepository(s store.Store, data *fixtures.Data, bus eventbus.EventBus, logger *zap.Logger) *StoreRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreRepository{
		store:    s,
		fixtures: data,
		bus:      bus,
		logger:   logger.With(zap.String("component", "portfolio")),
	}
}

// Load reads the stored assets. When none are stored the fixture assets are
// written back and used.
func (r *StoreRepository) Load(ctx context.Context) (*Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var assets []domain.Asset
	found, err := r.store.Get(store.KeyMyAssets, &assets)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	p := &Portfolio{
		Assets:       assets,
		Transactions: append([]domain.Transaction(nil), r.fixtures.Transactions...),
		History:      append([]domain.ValuePoint(nil), r.fixtures.History...),
	}

	if !found || len(assets) == 0 {
		p.Assets = append([]domain.Asset(nil), r.fixtures.Assets...)
		if err := r.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to seed assets: %w", err)
		}
		r.logger.Info("seeded portfolio", zap.Int("assets", len(p.Assets)))
		if r.bus != nil {
			r.bus.Publish(eventbus.PortfolioSeededEvent{Assets: len(p.Assets)})
		}
	}
	return p, nil
}

func (r *StoreRepository) Save(ctx context.Context, p *Portfolio) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.Set(store.KeyMyAssets, p.Assets); err != nil {
		return fmt.Errorf("failed to save assets: %w", err)
	}
	return nil
}
