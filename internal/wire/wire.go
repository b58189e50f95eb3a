package wire

import (
	"Fanboard/internal/api"
	"Fanboard/internal/api/config"
	"Fanboard/internal/api/handler"
	"Fanboard/internal/job"
	"Fanboard/internal/pkg/cron"
	"Fanboard/internal/pkg/minio"
	"Fanboard/internal/pkg/notify"
	"Fanboard/internal/pkg/redis"
	"Fanboard/internal/pkg/scraper"
	"Fanboard/internal/pkg/util"
	"Fanboard/internal/repository"
	"Fanboard/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *redisv9.Client
	CronMgr *cron.Manager
}

func BuildApplication(ctx context.Context, db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}

	historyRepo, err := buildHistoryRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb, rosterCache := buildRosterCache(ctx, cfg)

	snapshotRepo := repository.NewSnapshotRepo(db)
	source := scraper.NewChromeRosterSource(cfg.Scraper)

	scrapeService := service.NewScrapeService(source, snapshotRepo, historyRepo, rosterCache, util.NewRunGuard(), loc)
	leaderboardService := service.NewLeaderboardService(snapshotRepo, historyRepo, rosterCache, cfg.Club, cfg.Scraper.ClubID, loc)

	handlers := &api.HandlersGroup{
		ScrapeHandler:      handler.NewScrapeHandler(scrapeService, cfg.Scraper.ClubID),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService),
	}

	router := api.SetupRouter(handlers)

	scrapeJob := job.NewScrapeJob(scrapeService, notify.NewDiscordNotifier(cfg.Notify.WebhookURL),
		cfg.Scraper.ClubID, cfg.Club.Name, cfg.Club.WeeklyTarget, loc)
	cronMgr := cron.NewCronManager(cfg.Schedule.Spec, loc, scrapeJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		Redis:   rdb,
		CronMgr: cronMgr,
	}, nil
}

func buildHistoryRepo(ctx context.Context, cfg *config.Config) (repository.HistoryRepo, error) {
	switch cfg.Archive.Driver {
	case config.ArchiveMinIO:
		client, err := minio.NewClient(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init minio: %w", err)
		}
		return repository.NewMinIOHistoryRepo(client, cfg.MinIO.Bucket, cfg.Archive.Prefix), nil
	default:
		return repository.NewFSHistoryRepo(cfg.Archive.Dir)
	}
}

// buildRosterCache 未配置或连不上 Redis 时退回进程内缓存
func buildRosterCache(ctx context.Context, cfg *config.Config) (*redisv9.Client, repository.RosterCacheRepo) {
	ttl := time.Duration(cfg.Cache.TTL) * time.Minute
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err == nil {
			return rdb, repository.NewRedisRosterCache(rdb, ttl)
		}
		log.WarnContext(ctx, "Failed to connect to redis, using local cache", "err", err)
	}
	return nil, repository.NewLocalRosterCache(cfg.Cache.LocalSize, ttl)
}
