package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const availableDriversKey = "available_drivers"

// AvailabilityStore keeps the set of driver addresses currently free to
// accept a ride. It is a fast-path mirror of the ledger; on any miss the
// caller recomputes from the authoritative store and writes back.
type AvailabilityStore struct {
	client *redis.Client
}

// NewAvailabilityStore creates a new AvailabilityStore.
func NewAvailabilityStore(client *redis.Client) *AvailabilityStore {
	return &AvailabilityStore{client: client}
}

// GetAvailableDrivers returns all driver addresses in the set.
func (s *AvailabilityStore) GetAvailableDrivers(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, availableDriversKey).Result()
}

// SetAvailableDrivers replaces the whole set.
func (s *AvailabilityStore) SetAvailableDrivers(ctx context.Context, addresses []string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, availableDriversKey)
	if len(addresses) > 0 {
		members := make([]any, len(addresses))
		for i, a := range addresses {
			members[i] = a
		}
		pipe.SAdd(ctx, availableDriversKey, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// AddAvailableDriver inserts one driver address into the set.
func (s *AvailabilityStore) AddAvailableDriver(ctx context.Context, address string) error {
	return s.client.SAdd(ctx, availableDriversKey, address).Err()
}

// RemoveAvailableDriver removes one driver address from the set.
func (s *AvailabilityStore) RemoveAvailableDriver(ctx context.Context, address string) error {
	return s.client.SRem(ctx, availableDriversKey, address).Err()
}
