package memory

import (
	"context"
	"sync"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

// ConfigRepository is an in-memory implementation of
// repository.ConfigRepository.
type ConfigRepository struct {
	mu  sync.RWMutex
	cfg *domain.PlatformConfig
}

// NewConfigRepository creates an uninitialized in-memory config repository.
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

func (r *ConfigRepository) Init(ctx context.Context, cfg *domain.PlatformConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg != nil {
		return nil // owner is fixed at first initialization
	}
	stored := *cfg
	r.cfg = &stored
	return nil
}

func (r *ConfigRepository) Get(ctx context.Context) (*domain.PlatformConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cfg == nil {
		return nil, repository.ErrNotFound
	}
	copy := *r.cfg
	return &copy, nil
}

func (r *ConfigRepository) SetFeeBps(ctx context.Context, bps int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg == nil {
		return repository.ErrNotFound
	}
	r.cfg.FeeBps = bps
	return nil
}
