package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// idempotencyTTL bounds how long a claimed payment key blocks retries.
// After it expires a shopper may legitimately try the checkout again.
const idempotencyTTL = 15 * time.Minute

// IdempotencyGuard claims payment attempt keys in redis so a double
// submit of the checkout form cannot charge a card twice.
type IdempotencyGuard struct {
	client *redis.Client
}

func NewIdempotencyGuard(client *redis.Client) *IdempotencyGuard {
	return &IdempotencyGuard{client: client}
}

// Acquire atomically claims the key. It returns false when another
// attempt already holds it.
func (g *IdempotencyGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, "payment:attempt:"+key, 1, idempotencyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claiming payment key: %w", err)
	}
	return ok, nil
}
