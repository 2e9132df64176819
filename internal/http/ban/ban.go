// Package ban counts rate-limit strikes per client in Redis and bans clients
// that collect too many. Without a Redis client every call is a no-op.
package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/bookkeeper/internal/redissvc"
	logx "github.com/rogerio-castellano/bookkeeper/pkg/logger"
)

const (
	DailyBanLogKey = "ratelimit:banlog:daily"
	strikeWindow   = 10 * time.Minute
)

var (
	rdb *redis.Client

	maxStrikes  = 5
	banDuration = 15 * time.Minute
)

func SetRedisService(rs *redissvc.RedisService) {
	if rs == nil {
		rdb = nil
		return
	}
	rdb = rs.Rdb()
}

// Configure sets how many strikes ban a client and for how long. Zero strikes
// disables banning.
func Configure(strikes int, duration time.Duration) {
	maxStrikes = strikes
	banDuration = duration
}

func Enabled() bool {
	return rdb != nil && maxStrikes > 0
}

func strikeKey(target string) string { return "ratelimit:strikes:" + target }
func banKey(target string) string    { return "ratelimit:banned:" + target }

// IsBanned reports whether target is currently banned.
func IsBanned(ctx context.Context, target string) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	n, err := rdb.Exists(ctx, banKey(target)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddStrike records a rejected request by target on route and bans the target
// once it reaches the strike limit inside the strike window.
func AddStrike(ctx context.Context, target, route string) (bool, error) {
	if !Enabled() {
		return false, nil
	}

	key := strikeKey(target)
	strikes, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if strikes == 1 {
		rdb.Expire(ctx, key, strikeWindow)
	}
	if strikes < int64(maxStrikes) {
		return false, nil
	}

	if err := rdb.Set(ctx, banKey(target), route, banDuration).Err(); err != nil {
		return false, err
	}
	rdb.Del(ctx, key)

	logx.Warn().Str("target", target).Str("route", route).Int64("strikes", strikes).Msg("client banned")
	logBanEvent(ctx, target, route, int(strikes))
	return true, nil
}

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

func logBanEvent(ctx context.Context, target, route string, strikes int) {
	entry := BanLogEntry{
		Target:  target,
		Route:   route,
		Strikes: strikes,
		Time:    time.Now(),
	}
	data, _ := json.Marshal(entry)
	_ = rdb.RPush(ctx, DailyBanLogKey, data).Err()
}

// Summary aggregates the ban log.
type Summary struct {
	Total    int
	ByRoute  map[string]int
	ByTarget map[string]int
}

// DrainSummary reads and clears the ban log.
func DrainSummary(ctx context.Context) (Summary, error) {
	s := Summary{ByRoute: map[string]int{}, ByTarget: map[string]int{}}
	if rdb == nil {
		return s, nil
	}

	entries, err := rdb.LRange(ctx, DailyBanLogKey, 0, -1).Result()
	if err != nil {
		return s, fmt.Errorf("read ban log: %w", err)
	}
	if len(entries) == 0 {
		return s, nil
	}
	_ = rdb.Del(ctx, DailyBanLogKey).Err()

	for _, item := range entries {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			s.Total++
			s.ByRoute[entry.Route]++
			s.ByTarget[entry.Target]++
		}
	}
	return s, nil
}

// StartDailyBanSummary logs the ban summary every day at 23:59 until ctx ends.
func StartDailyBanSummary(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.AddDate(0, 0, 1)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		s, err := DrainSummary(ctx)
		if err != nil {
			logx.Error().Err(err).Msg("daily ban summary failed")
			continue
		}
		if s.Total > 0 {
			logx.Info().Int("total", s.Total).Interface("by_route", s.ByRoute).Interface("by_target", s.ByTarget).Msg("daily ban summary")
		}
	}
}
