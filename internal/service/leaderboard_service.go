package service

import (
	"Fanboard/internal/api/config"
	"Fanboard/internal/api/dto"
	"Fanboard/internal/model"
	"Fanboard/internal/pkg/consts"
	"Fanboard/internal/pkg/report"
	"Fanboard/internal/pkg/util"
	"Fanboard/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

// PeriodCustom 以 since 指定起点时的周期名
const PeriodCustom = "custom"

// LeaderboardService 只读查询：窗口排行榜、成员生涯统计、最新日报与历史归档
type LeaderboardService interface {
	Leaderboard(ctx context.Context, period, since string) (*dto.LeaderboardDTO, error)
	Lookup(ctx context.Context, nameQuery string) (*dto.MemberLookup, error)
	ListMembers(ctx context.Context, activeOnly bool) ([]*dto.MemberDTO, error)
	LatestReport(ctx context.Context) (*dto.DailyReport, error)
	History(ctx context.Context, date string) (*dto.HistoryArtifact, error)
}

type LeaderboardServiceImpl struct {
	snapshotRepo repository.SnapshotRepo
	historyRepo  repository.HistoryRepo
	rosterCache  repository.RosterCacheRepo
	club         config.ClubConfig
	clubID       string
	loc          *time.Location
	now          func() time.Time
}

func NewLeaderboardService(
	snapshotRepo repository.SnapshotRepo,
	historyRepo repository.HistoryRepo,
	rosterCache repository.RosterCacheRepo,
	club config.ClubConfig,
	clubID string,
	loc *time.Location,
) LeaderboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &LeaderboardServiceImpl{
		snapshotRepo: snapshotRepo,
		historyRepo:  historyRepo,
		rosterCache:  rosterCache,
		club:         club,
		clubID:       clubID,
		loc:          loc,
		now:          time.Now,
	}
}

// Leaderboard since 非空时优先生效，否则按 period 计算起点（俱乐部时区）
func (s *LeaderboardServiceImpl) Leaderboard(ctx context.Context, period, since string) (*dto.LeaderboardDTO, error) {
	var start time.Time
	var err error
	if since != "" {
		period = PeriodCustom
		start, err = util.ParseSince(since, s.loc)
	} else {
		if period == "" {
			period = consts.PeriodWeek
		}
		start, err = util.PeriodStart(period, s.now().In(s.loc))
	}
	if err != nil {
		return nil, ErrParamInvalid
	}

	entries, err := s.snapshotRepo.Leaderboard(ctx, start)
	if err != nil {
		log.ErrorContext(ctx, "query leaderboard failed", "period", period, "err", err)
		return nil, UnExpectedError
	}

	var total int64
	for _, e := range entries {
		total += e.PeriodGain
	}

	return &dto.LeaderboardDTO{
		Period:      period,
		PeriodStart: start,
		TotalGain:   total,
		Entries:     entries,
		Blocks:      report.FormatLeaderboard(entries),
	}, nil
}

// Lookup 非活跃成员同样可查；累计增长 = 最新快照 - 首条快照
func (s *LeaderboardServiceImpl) Lookup(ctx context.Context, nameQuery string) (*dto.MemberLookup, error) {
	nameQuery = strings.TrimSpace(nameQuery)
	if nameQuery == "" {
		return nil, ErrParamInvalid
	}

	member, first, latest, err := s.snapshotRepo.Lookup(ctx, nameQuery)
	if err != nil {
		log.ErrorContext(ctx, "lookup member failed", "query", nameQuery, "err", err)
		return nil, UnExpectedError
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	result := &dto.MemberLookup{
		FriendID:    member.FriendID,
		Name:        member.CurrentName,
		JoinedAt:    member.JoinedAt,
		IsActive:    member.IsActive,
		First:       toSnapshotPoint(first),
		Latest:      toSnapshotPoint(latest),
		Accumulated: latest.TotalFans - first.TotalFans,
	}
	return result, nil
}

func (s *LeaderboardServiceImpl) ListMembers(ctx context.Context, activeOnly bool) ([]*dto.MemberDTO, error) {
	members, err := s.snapshotRepo.ListMembers(ctx, activeOnly)
	if err != nil {
		log.ErrorContext(ctx, "list members failed", "err", err)
		return nil, UnExpectedError
	}

	result := make([]*dto.MemberDTO, 0, len(members))
	if err = copier.Copy(&result, &members); err != nil {
		log.ErrorContext(ctx, "copy members failed", "err", err)
		return nil, UnExpectedError
	}
	return result, nil
}

// LatestReport 基于缓存中最近一次抓取的名单生成日报
func (s *LeaderboardServiceImpl) LatestReport(ctx context.Context) (*dto.DailyReport, error) {
	latest, err := s.rosterCache.GetLatest(ctx, s.clubID)
	if err != nil {
		log.ErrorContext(ctx, "get latest roster failed", "club_id", s.clubID, "err", err)
		return nil, UnExpectedError
	}
	if latest == nil || len(latest.Records) == 0 {
		return nil, ErrReportNotReady
	}
	return report.BuildDailyReport(s.club.Name, latest.Records, s.club.WeeklyTarget, latest.CapturedAt.In(s.loc)), nil
}

func (s *LeaderboardServiceImpl) History(ctx context.Context, date string) (*dto.HistoryArtifact, error) {
	day, err := time.ParseInLocation(consts.HistoryDateLayout, date, s.loc)
	if err != nil {
		return nil, ErrParamInvalid
	}

	artifact, err := s.historyRepo.Read(ctx, day)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return nil, ErrArchiveNotFound
		}
		log.ErrorContext(ctx, "read history artifact failed", "date", date, "err", err)
		return nil, UnExpectedError
	}
	return artifact, nil
}

func toSnapshotPoint(snapshot *model.Snapshot) *dto.SnapshotPoint {
	point := &dto.SnapshotPoint{}
	_ = copier.Copy(point, snapshot)
	return point
}
