package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"breadroute/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService is a JSON-marshalling cache over Redis with a default TTL.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get unmarshals the cached value into dest. The bool reports whether the
// key was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Entity helpers

func userKey(id uint) string  { return fmt.Sprintf("user:%d", id) }
func storeKey(id uint) string { return fmt.Sprintf("store:%d", id) }
func tripKey(id uint) string  { return fmt.Sprintf("trip:%d", id) }

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return nil
	}
	return s.Set(ctx, userKey(user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, userKey(id), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id uint) error {
	return s.Delete(ctx, userKey(id))
}

func (s *CacheService) CacheStore(ctx context.Context, store *models.Store) error {
	if store == nil {
		return nil
	}
	return s.Set(ctx, storeKey(store.ID), store)
}

func (s *CacheService) GetStore(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	found, err := s.Get(ctx, storeKey(id), &store)
	if err != nil || !found {
		return nil, err
	}
	return &store, nil
}

func (s *CacheService) InvalidateStore(ctx context.Context, id uint) error {
	return s.Delete(ctx, storeKey(id))
}

func (s *CacheService) CacheTrip(ctx context.Context, trip *models.Trip) error {
	if trip == nil {
		return nil
	}
	return s.Set(ctx, tripKey(trip.ID), trip)
}

func (s *CacheService) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	found, err := s.Get(ctx, tripKey(id), &trip)
	if err != nil || !found {
		return nil, err
	}
	return &trip, nil
}

func (s *CacheService) InvalidateTrip(ctx context.Context, id uint) error {
	return s.Delete(ctx, tripKey(id))
}

// Maintenance

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
