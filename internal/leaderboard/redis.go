package leaderboard

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "cuptoss:leaderboard"

// RedisBoard keeps the board in a Redis sorted set so several server processes share it.
// The key expires after ttl of inactivity when ttl > 0.
type RedisBoard struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedisBoard(rdb *redis.Client, key string, ttl time.Duration) *RedisBoard {
	if key == "" {
		key = defaultKey
	}
	return &RedisBoard{rdb: rdb, key: key, ttl: ttl}
}

// Seed adds entries that are not already present.
func (b *RedisBoard) Seed(ctx context.Context, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(entries))
	for _, e := range entries {
		members = append(members, redis.Z{Score: float64(e.Score), Member: e.Name})
	}
	if err := b.rdb.ZAddNX(ctx, b.key, members...).Err(); err != nil {
		return fmt.Errorf("seed leaderboard: %w", err)
	}
	return b.refresh(ctx)
}

// Submit records e, keeping the higher of the stored and submitted score.
func (b *RedisBoard) Submit(ctx context.Context, e Entry) error {
	pipe := b.rdb.TxPipeline()
	// GT still inserts new members; it only refuses to lower an existing score.
	pipe.ZAddGT(ctx, b.key, redis.Z{Score: float64(e.Score), Member: e.Name})
	if b.ttl > 0 {
		pipe.Expire(ctx, b.key, b.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("submit score for %s: %w", e.Name, err)
	}
	log.Printf("[LEADERBOARD] recorded %s=%d", e.Name, e.Score)
	return nil
}

func (b *RedisBoard) Top(ctx context.Context, n int) ([]Entry, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n - 1)
	}
	zs, err := b.rdb.ZRevRangeWithScores(ctx, b.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	// ZREVRANGE breaks ties by member descending. Fetch everyone tied with the last entry so
	// the cut follows the same name order as MemoryBoard.
	if n > 0 && len(zs) == n {
		cutoff := strconv.FormatFloat(zs[n-1].Score, 'f', -1, 64)
		zs, err = b.rdb.ZRevRangeByScoreWithScores(ctx, b.key, &redis.ZRangeBy{Min: cutoff, Max: "+inf"}).Result()
		if err != nil {
			return nil, fmt.Errorf("read leaderboard ties: %w", err)
		}
	}
	return pageEntries(zs, n), nil
}

// pageEntries orders sorted-set members like MemoryBoard.Top and keeps the first n.
func pageEntries(zs []redis.Z, n int) []Entry {
	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		entries = append(entries, Entry{Name: fmt.Sprint(z.Member), Score: int(z.Score)})
	}
	sortEntries(entries)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func (b *RedisBoard) refresh(ctx context.Context) error {
	if b.ttl <= 0 {
		return nil
	}
	return b.rdb.Expire(ctx, b.key, b.ttl).Err()
}
