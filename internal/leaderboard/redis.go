package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// KeyPrefix namespaces leaderboard keys in Redis.
const KeyPrefix = "highscores:"

// maxTxRetries bounds optimistic-lock retries on concurrent submissions.
const maxTxRetries = 5

// sharedReadTimeout bounds a coalesced read, which runs detached from any
// single caller's context.
const sharedReadTimeout = 5 * time.Second

// RedisGateway stores each list as a JSON array under
// "highscores:<difficulty>". Submissions use WATCH so concurrent writers
// cannot drop each other's entries.
type RedisGateway struct {
	client *redis.Client
	size   int
	ttl    time.Duration
	sf     singleflight.Group
}

var _ Gateway = (*RedisGateway)(nil)

// NewRedisGateway creates a gateway keeping size entries per difficulty.
// A zero ttl stores lists without expiry.
func NewRedisGateway(client *redis.Client, size int, ttl time.Duration) *RedisGateway {
	if size <= 0 {
		size = DefaultSize
	}
	return &RedisGateway{client: client, size: size, ttl: ttl}
}

func (r *RedisGateway) Top(ctx context.Context, difficulty string) ([]Entry, error) {
	if !ValidKey(difficulty) {
		return nil, ErrInvalidDifficulty
	}

	// Concurrent readers of the same list share one round trip. The read
	// outlives any one caller so a cancelled reader cannot fail the rest.
	ch := r.sf.DoChan(difficulty, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedReadTimeout)
		defer cancel()
		return readList(ctx, r.client, r.key(difficulty))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]Entry)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *RedisGateway) Submit(ctx context.Context, e Entry) ([]Entry, error) {
	e, err := validate(e)
	if err != nil {
		return nil, err
	}
	key := r.key(e.Difficulty)

	var next []Entry
	txf := func(tx *redis.Tx) error {
		list, err := readList(ctx, tx, key)
		if err != nil {
			return err
		}
		next = Insert(list, e, r.size)
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode high scores: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			// A read already in flight may predate this write; later
			// readers must not join it.
			r.sf.Forget(e.Difficulty)
			return next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, fmt.Errorf("submit high score: %w", err)
	}
	return nil, fmt.Errorf("submit high score: %w", redis.TxFailedErr)
}

func (r *RedisGateway) key(difficulty string) string {
	return KeyPrefix + difficulty
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// readList loads a stored list. A missing key is an empty list.
func readList(ctx context.Context, c stringGetter, key string) ([]Entry, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var list []Entry
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if list == nil {
		list = []Entry{}
	}
	return list, nil
}
