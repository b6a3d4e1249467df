package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride. The id comes from the rides sequence and is
// stored back on the ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (rider_address, driver_address, pickup, dropoff, fare, status, rated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var driverAddress sql.NullString
	if ride.DriverAddress != "" {
		driverAddress = sql.NullString{String: ride.DriverAddress, Valid: true}
	}

	return r.q.QueryRowContext(ctx, query,
		ride.RiderAddress,
		driverAddress,
		ride.Pickup,
		ride.Dropoff,
		ride.Fare,
		ride.Status,
		ride.Rated,
		ride.CreatedAt,
	).Scan(&ride.ID)
}

// GetByID retrieves a ride by id.
func (r *RideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	query := `
		SELECT id, rider_address, driver_address, pickup, dropoff, fare, status, rated, created_at
		FROM rides WHERE id = $1
	`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetByParticipant retrieves all rides where the address is rider or driver,
// in creation order.
func (r *RideRepository) GetByParticipant(ctx context.Context, address string) ([]*domain.Ride, error) {
	query := `
		SELECT id, rider_address, driver_address, pickup, dropoff, fare, status, rated, created_at
		FROM rides WHERE rider_address = $1 OR driver_address = $1 ORDER BY id
	`

	rows, err := r.q.QueryContext(ctx, query, address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// GetBusyDriverAddresses retrieves the distinct addresses of drivers with
// an InProgress ride.
func (r *RideRepository) GetBusyDriverAddresses(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT driver_address FROM rides
		WHERE status = $1 AND driver_address IS NOT NULL
	`

	rows, err := r.q.QueryContext(ctx, query, domain.RideStatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var busy []string
	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, err
		}
		busy = append(busy, address)
	}
	return busy, rows.Err()
}

// Update updates an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET driver_address = $1, status = $2, rated = $3
		WHERE id = $4
	`

	var driverAddress sql.NullString
	if ride.DriverAddress != "" {
		driverAddress = sql.NullString{String: ride.DriverAddress, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query, driverAddress, ride.Status, ride.Rated, ride.ID)
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

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRide(s scanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverAddress sql.NullString
	if err := s.Scan(
		&ride.ID,
		&ride.RiderAddress,
		&driverAddress,
		&ride.Pickup,
		&ride.Dropoff,
		&ride.Fare,
		&ride.Status,
		&ride.Rated,
		&ride.CreatedAt,
	); err != nil {
		return nil, err
	}
	if driverAddress.Valid {
		ride.DriverAddress = driverAddress.String
	}
	return &ride, nil
}
