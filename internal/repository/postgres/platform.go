package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

// ConfigRepository is a PostgreSQL implementation of
// repository.ConfigRepository. The platform_config table holds a single row.
type ConfigRepository struct {
	q Querier
}

// NewConfigRepository creates a new PostgreSQL config repository.
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{q: db}
}

// Init stores the configuration unless a row already exists.
func (r *ConfigRepository) Init(ctx context.Context, cfg *domain.PlatformConfig) error {
	query := `
		INSERT INTO platform_config (id, owner_address, fee_bps)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.q.ExecContext(ctx, query, cfg.OwnerAddress, cfg.FeeBps)
	return err
}

// Get retrieves the configuration.
func (r *ConfigRepository) Get(ctx context.Context) (*domain.PlatformConfig, error) {
	query := `SELECT owner_address, fee_bps FROM platform_config`

	var cfg domain.PlatformConfig
	err := r.q.QueryRowContext(ctx, query).Scan(&cfg.OwnerAddress, &cfg.FeeBps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// SetFeeBps updates the stored fee fraction.
func (r *ConfigRepository) SetFeeBps(ctx context.Context, bps int64) error {
	query := `UPDATE platform_config SET fee_bps = $1`

	result, err := r.q.ExecContext(ctx, query, bps)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
