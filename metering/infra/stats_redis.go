package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tts-gateway/metering/domain"

	"github.com/redis/go-redis/v9"
)

type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas em chaves de série temporal / por usuário.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackUsers bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackUsers(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackUsers = track }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "tts:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	outcome := string(ev.Outcome)
	if outcome == "" {
		outcome = "unknown"
	}

	totalKey := s.prefix + ":total"

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, totalKey, outcome, 1)
	if ev.Outcome == domain.OutcomeOK {
		pipe.HIncrBy(ctx, totalKey, "credits", int64(ev.Credits))
	}

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, outcome, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if s.trackUsers {
		u := strings.TrimSpace(ev.User)
		if u != "" {
			userKey := s.prefix + ":user:" + u
			pipe.HIncrBy(ctx, userKey, outcome, 1)
			if ev.Outcome == domain.OutcomeOK {
				pipe.HIncrBy(ctx, userKey, "credits", int64(ev.Credits))
			}
			if s.ttl > 0 {
				pipe.Expire(ctx, userKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
