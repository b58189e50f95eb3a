package service

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/consts"
	"Fanboard/internal/pkg/scraper"
	"Fanboard/internal/pkg/util"
	"Fanboard/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// ScrapeService 单飞抓取流程：抓取 -> 归一化 -> 写快照 -> 当日归档 -> 刷新缓存
type ScrapeService interface {
	Run(ctx context.Context, clubID string) (*dto.ScrapeResult, error)
	Running() bool
}

type ScrapeServiceImpl struct {
	source       scraper.RosterSource
	snapshotRepo repository.SnapshotRepo
	historyRepo  repository.HistoryRepo
	rosterCache  repository.RosterCacheRepo
	guard        *util.RunGuard
	loc          *time.Location
	now          func() time.Time
}

func NewScrapeService(
	source scraper.RosterSource,
	snapshotRepo repository.SnapshotRepo,
	historyRepo repository.HistoryRepo,
	rosterCache repository.RosterCacheRepo,
	guard *util.RunGuard,
	loc *time.Location,
) ScrapeService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScrapeServiceImpl{
		source:       source,
		snapshotRepo: snapshotRepo,
		historyRepo:  historyRepo,
		rosterCache:  rosterCache,
		guard:        guard,
		loc:          loc,
		now:          time.Now,
	}
}

// Run 同一时刻只允许一次抓取，忙时直接返回 busy 状态而不是错误
func (s *ScrapeServiceImpl) Run(ctx context.Context, clubID string) (*dto.ScrapeResult, error) {
	if !s.guard.TryAcquire() {
		log.WarnContext(ctx, "scrape already running, skip", "club_id", clubID)
		return &dto.ScrapeResult{Status: dto.ScrapeBusy, ClubID: clubID}, nil
	}
	defer s.guard.Release()

	// 一旦开始就执行到结束，调用方断开（如 HTTP 客户端关闭连接）不会中断写入；trace_id 等值仍保留
	ctx = context.WithoutCancel(ctx)

	start := s.now()
	log.InfoContext(ctx, "scrape started", "club_id", clubID)

	rows, err := s.source.FetchRoster(ctx, clubID)
	if err != nil {
		log.ErrorContext(ctx, "fetch roster failed", "club_id", clubID, "err", err)
		return &dto.ScrapeResult{Status: dto.ScrapeNoData, ClubID: clubID}, fmt.Errorf("%w: %w", ErrNoDataExtracted, err)
	}
	if len(rows) == 0 {
		log.WarnContext(ctx, "roster is empty", "club_id", clubID)
		return &dto.ScrapeResult{Status: dto.ScrapeNoData, ClubID: clubID}, ErrNoDataExtracted
	}

	records := util.NormalizeRoster(rows)
	capturedAt := s.now()

	if err = s.snapshotRepo.WriteBatch(ctx, records, capturedAt); err != nil {
		log.ErrorContext(ctx, "write snapshot batch failed", "club_id", clubID, "count", len(records), "err", err)
		return &dto.ScrapeResult{Status: dto.ScrapeStoreFailed, ClubID: clubID, CapturedAt: capturedAt}, fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}

	result := &dto.ScrapeResult{
		Status:     dto.ScrapeOK,
		ClubID:     clubID,
		CapturedAt: capturedAt,
		Records:    records,
	}

	// 快照已落库，归档与缓存失败只记日志
	artifact := &dto.HistoryArtifact{
		Date:       capturedAt.In(s.loc).Format(consts.HistoryDateLayout),
		ClubID:     clubID,
		CapturedAt: capturedAt,
		Members:    records,
	}
	written, err := s.historyRepo.WriteIfAbsent(ctx, artifact)
	if err != nil {
		log.ErrorContext(ctx, "write history artifact failed", "date", artifact.Date, "err", err)
	} else {
		result.Archived = written
		if !written {
			log.InfoContext(ctx, "history artifact already exists", "date", artifact.Date)
		}
	}

	if s.rosterCache != nil {
		latest := &repository.LatestRoster{ClubID: clubID, CapturedAt: capturedAt, Records: records}
		if err = s.rosterCache.SaveLatest(ctx, latest); err != nil {
			log.WarnContext(ctx, "save latest roster to cache failed", "club_id", clubID, "err", err)
		}
	}

	log.InfoContext(ctx, "scrape finished",
		"club_id", clubID,
		"count", len(records),
		"archived", result.Archived,
		"cost", time.Since(start),
	)
	return result, nil
}

func (s *ScrapeServiceImpl) Running() bool {
	return s.guard.Running()
}
