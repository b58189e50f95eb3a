package service

import (
	"Fanboard/internal/api/config"
	"Fanboard/internal/api/dto"
	"Fanboard/internal/model"
	"Fanboard/internal/pkg/database"
	"Fanboard/internal/pkg/logger"
	"Fanboard/internal/pkg/util"
	"Fanboard/internal/repository"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScrapeService(source *fakeSource, snapshots *fakeSnapshotRepo, history *fakeHistoryRepo, cache repository.RosterCacheRepo) *ScrapeServiceImpl {
	svc := NewScrapeService(source, snapshots, history, cache, util.NewRunGuard(), time.UTC).(*ScrapeServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestScrapeRun_Success(t *testing.T) {
	snapshots := &fakeSnapshotRepo{}
	history := newFakeHistoryRepo()
	cache := repository.NewLocalRosterCache(32*1024*1024, time.Hour)
	svc := newTestScrapeService(&fakeSource{rows: sampleRows(3)}, snapshots, history, cache)

	result, err := svc.Run(context.Background(), "club")
	require.NoError(t, err)

	assert.Equal(t, dto.ScrapeOK, result.Status)
	assert.True(t, result.Archived)
	require.Len(t, result.Records, 3)
	assert.Equal(t, int64(1_000_000), result.Records[0].Fans)
	assert.Equal(t, int64(1000), result.Records[0].Gain)
	assert.Equal(t, 1, snapshots.writes())
	assert.Contains(t, history.artifacts, "2024-06-01")
	assert.False(t, svc.Running())

	latest, err := cache.GetLatest(context.Background(), "club")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Len(t, latest.Records, 3)
}

func TestScrapeRun_TwiceSameDayOneArtifact(t *testing.T) {
	snapshots := &fakeSnapshotRepo{}
	history := newFakeHistoryRepo()
	source := &fakeSource{rows: sampleRows(5)}
	svc := newTestScrapeService(source, snapshots, history, nil)

	first, err := svc.Run(context.Background(), "club")
	require.NoError(t, err)
	assert.True(t, first.Archived)

	source.rows = sampleRows(5)
	source.rows[0].TotalFans = "2,000,000"
	second, err := svc.Run(context.Background(), "club")
	require.NoError(t, err)
	assert.Equal(t, dto.ScrapeOK, second.Status)
	assert.False(t, second.Archived)

	assert.Equal(t, 2, snapshots.writes())
	require.Len(t, history.artifacts, 1)
	assert.Equal(t, int64(1_000_000), history.artifacts["2024-06-01"].Members[0].Fans)
}

func TestScrapeRun_ConcurrentCallIsBusy(t *testing.T) {
	snapshots := &fakeSnapshotRepo{}
	history := newFakeHistoryRepo()
	source := &fakeSource{rows: sampleRows(2), gate: make(chan struct{})}
	svc := newTestScrapeService(source, snapshots, history, nil)

	done := make(chan *dto.ScrapeResult, 1)
	go func() {
		result, _ := svc.Run(context.Background(), "club")
		done <- result
	}()

	require.Eventually(t, svc.Running, time.Second, 5*time.Millisecond)

	busy, err := svc.Run(context.Background(), "club")
	require.NoError(t, err)
	assert.Equal(t, dto.ScrapeBusy, busy.Status)
	assert.Equal(t, 0, snapshots.writes())
	assert.Equal(t, 0, history.calls)

	close(source.gate)
	first := <-done
	assert.Equal(t, dto.ScrapeOK, first.Status)
	assert.Equal(t, 1, snapshots.writes())
	assert.Equal(t, 1, source.calls)
	assert.False(t, svc.Running())
}

func TestScrapeRun_NoData(t *testing.T) {
	snapshots := &fakeSnapshotRepo{}
	history := newFakeHistoryRepo()

	svc := newTestScrapeService(&fakeSource{}, snapshots, history, nil)
	result, err := svc.Run(context.Background(), "club")
	assert.ErrorIs(t, err, ErrNoDataExtracted)
	assert.Equal(t, dto.ScrapeNoData, result.Status)

	svc = newTestScrapeService(&fakeSource{err: errors.New("timeout")}, snapshots, history, nil)
	result, err = svc.Run(context.Background(), "club")
	assert.ErrorIs(t, err, ErrNoDataExtracted)
	assert.Equal(t, dto.ScrapeNoData, result.Status)

	assert.Equal(t, 0, snapshots.writes())
	assert.Equal(t, 0, history.calls)
	assert.False(t, svc.Running())
}

func TestScrapeRun_StoreFailed(t *testing.T) {
	snapshots := &fakeSnapshotRepo{err: errors.New("database is locked")}
	history := newFakeHistoryRepo()
	svc := newTestScrapeService(&fakeSource{rows: sampleRows(2)}, snapshots, history, nil)

	result, err := svc.Run(context.Background(), "club")
	assert.ErrorIs(t, err, ErrSnapshotWrite)
	assert.Equal(t, dto.ScrapeStoreFailed, result.Status)
	assert.Equal(t, 0, history.calls)
	assert.False(t, svc.Running())

	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, InternalServerError, code)
}

func TestScrapeRun_ArchiveFailureStillSucceeds(t *testing.T) {
	snapshots := &fakeSnapshotRepo{}
	history := newFakeHistoryRepo()
	history.err = errors.New("bucket unavailable")
	svc := newTestScrapeService(&fakeSource{rows: sampleRows(1)}, snapshots, history, nil)

	result, err := svc.Run(context.Background(), "club")
	require.NoError(t, err)
	assert.Equal(t, dto.ScrapeOK, result.Status)
	assert.False(t, result.Archived)
	assert.Equal(t, 1, snapshots.writes())
}

func TestScrapeRun_CallerCancelDoesNotAbortWrite(t *testing.T) {
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      config.DriverSQLite,
		DSN:         filepath.Join(t.TempDir(), "club.db"),
		MaxIdle:     1,
		MaxOpen:     1,
		MaxLifetime: 5,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx, cancel := context.WithCancel(logger.WithTraceID(context.Background(), "req-disconnect"))
	defer cancel()
	source := &fakeSource{rows: sampleRows(3), onFetch: cancel}

	history := newFakeHistoryRepo()
	svc := NewScrapeService(source, repository.NewSnapshotRepo(db), history, nil, util.NewRunGuard(), time.UTC)

	result, err := svc.Run(ctx, "club")
	require.NoError(t, err)
	require.Error(t, ctx.Err())
	assert.Equal(t, dto.ScrapeOK, result.Status)
	assert.True(t, result.Archived)

	var count int64
	require.NoError(t, db.Model(&model.Snapshot{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	assert.False(t, svc.Running())
}
