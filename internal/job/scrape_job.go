package job

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/logger"
	"Fanboard/internal/pkg/notify"
	"Fanboard/internal/pkg/report"
	"Fanboard/internal/service"
	"context"
	log "log/slog"
	"time"
)

// ScrapeJob 定时抓取并推送日报
type ScrapeJob struct {
	scrapeSvc    service.ScrapeService
	notifier     notify.Notifier
	clubID       string
	clubName     string
	weeklyTarget int64
	loc          *time.Location
}

func NewScrapeJob(scrapeSvc service.ScrapeService, notifier notify.Notifier, clubID, clubName string, weeklyTarget int64, loc *time.Location) *ScrapeJob {
	if loc == nil {
		loc = time.UTC
	}
	return &ScrapeJob{
		scrapeSvc:    scrapeSvc,
		notifier:     notifier,
		clubID:       clubID,
		clubName:     clubName,
		weeklyTarget: weeklyTarget,
		loc:          loc,
	}
}

func (s *ScrapeJob) Run() {
	s.RunContext(logger.NewTraceContext(context.Background(), "job-scrape"))
}

// RunContext 抓取失败或忙碌时不推送
func (s *ScrapeJob) RunContext(ctx context.Context) {
	result, err := s.scrapeSvc.Run(ctx, s.clubID)
	if err != nil {
		log.ErrorContext(ctx, "scheduled scrape failed", "club_id", s.clubID, "err", err)
		return
	}
	if result.Status != dto.ScrapeOK {
		log.WarnContext(ctx, "scheduled scrape skipped", "club_id", s.clubID, "status", result.Status)
		return
	}

	r := report.BuildDailyReport(s.clubName, result.Records, s.weeklyTarget, result.CapturedAt.In(s.loc))
	if err = s.notifier.NotifyReport(ctx, r); err != nil {
		log.ErrorContext(ctx, "notify daily report failed", "err", err)
		return
	}
	log.InfoContext(ctx, "daily report sent", "members", len(r.Lines), "total_gain", r.TotalGain)
}
