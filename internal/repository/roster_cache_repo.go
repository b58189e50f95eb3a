package repository

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// LatestRoster 最近一次成功抓取的名单
type LatestRoster struct {
	ClubID     string              `json:"club_id"`
	CapturedAt time.Time           `json:"captured_at"`
	Records    []*dto.MemberRecord `json:"records"`
}

// RosterCacheRepo 缓存最近一次抓取结果，未命中返回 nil
type RosterCacheRepo interface {
	SaveLatest(ctx context.Context, roster *LatestRoster) error
	GetLatest(ctx context.Context, clubID string) (*LatestRoster, error)
}

type redisRosterCacheImpl struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRosterCache(rdb *redis.Client, ttl time.Duration) RosterCacheRepo {
	return &redisRosterCacheImpl{rdb: rdb, ttl: ttl}
}

func (s *redisRosterCacheImpl) SaveLatest(ctx context.Context, roster *LatestRoster) error {
	data, err := json.Marshal(roster)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, consts.LatestRosterKey+roster.ClubID, data, s.ttl).Err()
}

func (s *redisRosterCacheImpl) GetLatest(ctx context.Context, clubID string) (*LatestRoster, error) {
	value, err := s.rdb.Get(ctx, consts.LatestRosterKey+clubID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var roster LatestRoster
	if err = json.Unmarshal(value, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

type localRosterCacheImpl struct {
	cache *freecache.Cache
	ttl   time.Duration
}

// NewLocalRosterCache 未配置 Redis 时使用的进程内缓存
func NewLocalRosterCache(size int, ttl time.Duration) RosterCacheRepo {
	return &localRosterCacheImpl{cache: freecache.NewCache(size), ttl: ttl}
}

func (s *localRosterCacheImpl) SaveLatest(_ context.Context, roster *LatestRoster) error {
	data, err := json.Marshal(roster)
	if err != nil {
		return err
	}
	return s.cache.Set([]byte(consts.LatestRosterKey+roster.ClubID), data, int(s.ttl.Seconds()))
}

func (s *localRosterCacheImpl) GetLatest(_ context.Context, clubID string) (*LatestRoster, error) {
	value, err := s.cache.Get([]byte(consts.LatestRosterKey + clubID))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var roster LatestRoster
	if err = json.Unmarshal(value, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}
