package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (address, name, contact, role, rating, rating_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		user.Address,
		user.Name,
		user.Contact,
		user.Role,
		user.Rating,
		user.RatingCount,
		user.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return repository.ErrAlreadyExists
	}
	return err
}

// GetByAddress retrieves a user by address.
func (r *UserRepository) GetByAddress(ctx context.Context, address string) (*domain.User, error) {
	query := `
		SELECT address, name, contact, role, rating, rating_count, created_at
		FROM users WHERE address = $1
	`

	var user domain.User
	err := r.q.QueryRowContext(ctx, query, address).Scan(
		&user.Address,
		&user.Name,
		&user.Contact,
		&user.Role,
		&user.Rating,
		&user.RatingCount,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	user.Registered = true
	return &user, nil
}

// GetByRole retrieves all users with the given role.
func (r *UserRepository) GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	query := `
		SELECT address, name, contact, role, rating, rating_count, created_at
		FROM users WHERE role = $1 ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.Address,
			&user.Name,
			&user.Contact,
			&user.Role,
			&user.Rating,
			&user.RatingCount,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		user.Registered = true
		users = append(users, &user)
	}
	return users, rows.Err()
}

// UpdateRating sets the rating fields of an existing user.
func (r *UserRepository) UpdateRating(ctx context.Context, address string, rating float64, count int64) error {
	query := `UPDATE users SET rating = $1, rating_count = $2 WHERE address = $3`

	result, err := r.q.ExecContext(ctx, query, rating, count, address)
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
