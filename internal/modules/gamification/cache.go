package gamification

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const leaderboardKey = "portal:leaderboard"

// LeaderboardCache mirrors total points into a Redis sorted set so ranking
// reads avoid a full table scan. It is optional: a nil cache (or a nil
// client) turns every method into a no-op and callers fall back to the
// relational store.
type LeaderboardCache struct {
	rdb *redis.Client
}

func NewLeaderboardCache(rdb *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb}
}

func (c *LeaderboardCache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Update writes the user's current total into the sorted set.
func (c *LeaderboardCache) Update(ctx context.Context, userID int64, totalPoints int) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.ZAdd(ctx, leaderboardKey, &redis.Z{
		Score:  float64(totalPoints),
		Member: strconv.FormatInt(userID, 10),
	}).Err()
}

// TopIDs returns up to limit user ids ordered by score descending.
func (c *LeaderboardCache) TopIDs(ctx context.Context, limit int) ([]int64, error) {
	if !c.enabled() {
		return nil, redis.Nil
	}
	members, err := c.rdb.ZRevRange(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
