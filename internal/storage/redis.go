package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	backend "github.com/redis/go-redis/v9"
)

// RedisLeaderboard keeps leaderboards in Redis sorted sets so several
// servers can share them.
type RedisLeaderboard struct {
	client *backend.Client
	prefix string
}

// RedisOption configures a RedisLeaderboard.
type RedisOption func(*RedisLeaderboard)

// WithPrefix sets the key prefix for leaderboards.
func WithPrefix(prefix string) RedisOption {
	return func(l *RedisLeaderboard) {
		l.prefix = prefix
	}
}

// NewRedisLeaderboard connects to the Redis server at address.
func NewRedisLeaderboard(address, password string, db int, opts ...RedisOption) *RedisLeaderboard {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisLeaderboardFromClient(client, opts...)
}

// NewRedisLeaderboardFromClient wraps an existing client.
func NewRedisLeaderboardFromClient(client *backend.Client, opts ...RedisOption) *RedisLeaderboard {
	l := &RedisLeaderboard{
		client: client,
		prefix: "circlepop:leaderboard:",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLeaderboard) key(gameID string) string {
	return l.prefix + gameID
}

// Ping checks the connection.
func (l *RedisLeaderboard) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("storage: redis unreachable: %w", err)
	}
	return nil
}

// Submit records score for player, keeping the better of the old and new score.
func (l *RedisLeaderboard) Submit(ctx context.Context, gameID, player string, score int) error {
	err := l.client.ZAddGT(ctx, l.key(gameID), backend.Z{
		Score:  float64(score),
		Member: player,
	}).Err()
	if err != nil {
		return fmt.Errorf("storage: cannot submit score: %w", err)
	}
	return nil
}

// Top returns up to n players ordered by best score, highest first.
// Equal scores are ordered by player name so the result matches the SQL store.
func (l *RedisLeaderboard) Top(ctx context.Context, gameID string, n int) ([]LeaderEntry, error) {
	if n <= 0 {
		n = 10
	}
	key := l.key(gameID)

	zs, err := l.client.ZRevRangeWithScores(ctx, key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	if len(zs) == n {
		// Sorted sets break ties by member, descending. Pull every player tied
		// with the last place so the cut happens after the name ordering.
		cutoff := strconv.FormatFloat(zs[n-1].Score, 'f', -1, 64)
		zs, err = l.client.ZRevRangeByScoreWithScores(ctx, key, &backend.ZRangeBy{
			Min: cutoff,
			Max: "+inf",
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
		}
	}

	entries := make([]LeaderEntry, 0, len(zs))
	for _, z := range zs {
		player, _ := z.Member.(string)
		entries = append(entries, LeaderEntry{Player: player, Score: int(z.Score)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Player < entries[j].Player
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Close closes the underlying client.
func (l *RedisLeaderboard) Close() error {
	return l.client.Close()
}

var (
	_ Leaderboard = (*RedisLeaderboard)(nil)
	_ Leaderboard = storeLeaderboard{}
)
