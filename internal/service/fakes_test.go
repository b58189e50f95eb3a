package service

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/model"
	"Fanboard/internal/repository"
	"context"
	"sync"
	"time"
)

type fakeSource struct {
	rows    []*dto.RawMemberRow
	err     error
	gate    chan struct{}
	onFetch func()
	calls   int
	mu      sync.Mutex
}

func (f *fakeSource) FetchRoster(ctx context.Context, _ string) ([]*dto.RawMemberRow, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.rows, f.err
}

type fakeSnapshotRepo struct {
	mu      sync.Mutex
	batches [][]*dto.MemberRecord
	err     error

	entries []*dto.LeaderboardEntry
	since   time.Time
	member  *model.Member
	first   *model.Snapshot
	latest  *model.Snapshot
	members []*model.Member
}

func (f *fakeSnapshotRepo) WriteBatch(_ context.Context, records []*dto.MemberRecord, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, records)
	return nil
}

func (f *fakeSnapshotRepo) Leaderboard(_ context.Context, periodStart time.Time) ([]*dto.LeaderboardEntry, error) {
	f.since = periodStart
	return f.entries, f.err
}

func (f *fakeSnapshotRepo) Lookup(context.Context, string) (*model.Member, *model.Snapshot, *model.Snapshot, error) {
	return f.member, f.first, f.latest, f.err
}

func (f *fakeSnapshotRepo) ListMembers(context.Context, bool) ([]*model.Member, error) {
	return f.members, f.err
}

func (f *fakeSnapshotRepo) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	artifacts map[string]*dto.HistoryArtifact
	calls     int
	err       error
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{artifacts: map[string]*dto.HistoryArtifact{}}
}

func (f *fakeHistoryRepo) WriteIfAbsent(_ context.Context, artifact *dto.HistoryArtifact) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.artifacts[artifact.Date]; ok {
		return false, nil
	}
	f.artifacts[artifact.Date] = artifact
	return true, nil
}

func (f *fakeHistoryRepo) Read(_ context.Context, date time.Time) (*dto.HistoryArtifact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.artifacts[date.Format("2006-01-02")]; ok {
		return a, nil
	}
	return nil, repository.ErrHistoryNotFound
}

func sampleRows(n int) []*dto.RawMemberRow {
	rows := make([]*dto.RawMemberRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &dto.RawMemberRow{
			Name:      string(rune('A' + i)),
			FriendID:  string(rune('a' + i)),
			TotalFans: "1,000,000",
			FanChange: "+1,000",
		})
	}
	return rows
}
