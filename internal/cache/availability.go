package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	apperrors "go-ticket-sales/pkg/app_errors"
)

// Availability is the cached view of one event's sale state.
type Availability struct {
	Remaining int
	Price     float64
}

// AvailabilityCache mirrors each event's remaining stock for fast reads on
// the listing path. It is advisory: the ledger store stays authoritative and
// a cache failure never blocks a sale.
type AvailabilityCache interface {
	// WarmUp loads an event's availability, called on creation and on boot.
	WarmUp(ctx context.Context, eventID int64, remaining int, price float64) error
	// Get returns the cached availability; ErrEventNotFound on a miss.
	Get(ctx context.Context, eventID int64) (Availability, error)
	// SetRemaining overwrites the remaining count after a sale or a
	// reconciliation correction.
	SetRemaining(ctx context.Context, eventID int64, remaining int) error
	Invalidate(ctx context.Context, eventID int64) error
}

type RedisAvailabilityCache struct {
	client *redis.Client
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client}
}

func (c *RedisAvailabilityCache) key(eventID int64) string {
	return fmt.Sprintf("event:%d:availability", eventID)
}

func (c *RedisAvailabilityCache) WarmUp(ctx context.Context, eventID int64, remaining int, price float64) error {
	return c.client.HSet(ctx, c.key(eventID), map[string]interface{}{
		"remaining": remaining,
		"price":     price,
	}).Err()
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, eventID int64) (Availability, error) {
	result, err := c.client.HGetAll(ctx, c.key(eventID)).Result()
	if err != nil {
		return Availability{}, err
	}
	if len(result) == 0 {
		return Availability{}, apperrors.ErrEventNotFound
	}

	remaining, err := strconv.Atoi(result["remaining"])
	if err != nil {
		return Availability{}, fmt.Errorf("invalid remaining: %v", err)
	}
	price, err := strconv.ParseFloat(result["price"], 64)
	if err != nil {
		return Availability{}, fmt.Errorf("invalid price: %v", err)
	}

	return Availability{Remaining: remaining, Price: price}, nil
}

func (c *RedisAvailabilityCache) SetRemaining(ctx context.Context, eventID int64, remaining int) error {
	return c.client.HSet(ctx, c.key(eventID), "remaining", remaining).Err()
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, eventID int64) error {
	return c.client.Del(ctx, c.key(eventID)).Err()
}

// Noop satisfies AvailabilityCache when no redis is wired (tests, local dev).
type Noop struct{}

func (Noop) WarmUp(context.Context, int64, int, float64) error { return nil }

func (Noop) Get(context.Context, int64) (Availability, error) {
	return Availability{}, apperrors.ErrEventNotFound
}

func (Noop) SetRemaining(context.Context, int64, int) error { return nil }

func (Noop) Invalidate(context.Context, int64) error { return nil }
