package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// pending marks a key whose first request has not finished yet.
const pending = "pending"

var (
	ErrInFlight = errors.New("request with this idempotency key is still in progress")
	ErrNotFound = errors.New("idempotency key not found")
)

type Store interface {
	// Claim stores value under key only if the key is absent.
	Claim(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Guard makes create operations replayable: the first request with a key
// runs create and remembers the new id, later requests get that id back.
type Guard struct {
	Store Store
	TTL   time.Duration
}

func NewGuard(store Store, ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Guard{Store: store, TTL: ttl}
}

// Do runs create unless key was already used in scope. replayed reports that
// id comes from an earlier request. An empty key or a nil guard disables the check.
func (g *Guard) Do(ctx context.Context, scope, key string, create func() (uint, error)) (id uint, replayed bool, err error) {
	if g == nil || g.Store == nil || key == "" {
		id, err = create()
		return id, false, err
	}

	storeKey := fmt.Sprintf("idempotency:%s:%s", scope, key)

	claimed, err := g.Store.Claim(ctx, storeKey, pending, g.TTL)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: %w", err)
	}

	if !claimed {
		val, err := g.Store.Get(ctx, storeKey)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return 0, false, ErrInFlight
			}
			return 0, false, fmt.Errorf("idempotency get: %w", err)
		}
		if val == pending {
			return 0, false, ErrInFlight
		}
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("idempotency value %q: %w", val, err)
		}
		return uint(n), true, nil
	}

	id, err = create()
	if err != nil {
		// let the client retry with the same key
		_ = g.Store.Delete(context.WithoutCancel(ctx), storeKey)
		return 0, false, err
	}

	if err := g.Store.Set(context.WithoutCancel(ctx), storeKey, strconv.FormatUint(uint64(id), 10), g.TTL); err != nil {
		return id, false, fmt.Errorf("idempotency set: %w", err)
	}
	return id, false, nil
}
