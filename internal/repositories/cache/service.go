package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"playpark/internal/models"

	"github.com/redis/go-redis/v9"
)

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

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
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
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching pattern using SCAN.
func (s *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return s.Delete(ctx, keys...)
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Plan caching
func (s *CacheService) CachePlan(ctx context.Context, plan *models.Plan) error {
	if plan == nil {
		return errors.New("cannot cache nil plan")
	}
	if err := s.Set(ctx, s.GenerateKey("plan", "id", plan.ID), plan); err != nil {
		return err
	}
	return s.Set(ctx, s.GenerateKey("plan", "slug", plan.Slug), plan)
}

func (s *CacheService) GetPlan(ctx context.Context, key string) (*models.Plan, bool, error) {
	var plan models.Plan
	found, err := s.Get(ctx, key, &plan)
	if err != nil || !found {
		return nil, false, err
	}
	return &plan, true, nil
}

func (s *CacheService) CachePlanList(ctx context.Context, key string, plans []models.Plan) error {
	return s.Set(ctx, key, plans)
}

func (s *CacheService) GetPlanList(ctx context.Context, key string) ([]models.Plan, bool, error) {
	var plans []models.Plan
	found, err := s.Get(ctx, key, &plans)
	if err != nil || !found {
		return nil, false, err
	}
	return plans, true, nil
}

// InvalidatePlans drops every cached plan entry.
func (s *CacheService) InvalidatePlans(ctx context.Context) error {
	return s.DeletePattern(ctx, "plan:*")
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
