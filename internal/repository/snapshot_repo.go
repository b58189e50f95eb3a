package repository

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/model"
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepo 成员与快照时序存储
type SnapshotRepo interface {
	WriteBatch(ctx context.Context, records []*dto.MemberRecord, at time.Time) error
	Leaderboard(ctx context.Context, periodStart time.Time) ([]*dto.LeaderboardEntry, error)
	Lookup(ctx context.Context, nameQuery string) (*model.Member, *model.Snapshot, *model.Snapshot, error)
	ListMembers(ctx context.Context, activeOnly bool) ([]*model.Member, error)
}

type snapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return &snapshotRepoImpl{db: db}
}

// StoreTime 统一存储时间精度与时区，保证 SQLite 文本比较与 MySQL datetime(3) 的行为一致
func StoreTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// WriteBatch 在同一事务中：全部成员置为非活跃 -> 逐条 upsert 成员并激活 -> 追加快照
// 任何一步失败整批回滚
func (s *snapshotRepoImpl) WriteBatch(ctx context.Context, records []*dto.MemberRecord, at time.Time) error {
	at = StoreTime(at)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Member{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		if len(records) == 0 {
			return nil
		}

		snapshots := make([]*model.Snapshot, 0, len(records))
		for _, r := range records {
			member := &model.Member{
				FriendID:    r.ID,
				CurrentName: r.Name,
				JoinedAt:    at,
				IsActive:    true,
			}
			// joined_at 只在首次插入时写入
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "friend_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"current_name", "is_active"}),
			}).Create(member).Error; err != nil {
				return err
			}

			snapshots = append(snapshots, &model.Snapshot{
				FriendID:  r.ID,
				Timestamp: at,
				TotalFans: r.Fans,
				DailyGain: r.Gain,
			})
		}

		return tx.CreateInBatches(snapshots, 100).Error
	})
}

// Leaderboard 计算活跃成员自 periodStart 以来的增长
// current 取该成员最新一条快照，baseline 取 periodStart 之后最早的一条；没有 baseline 的成员不返回
func (s *snapshotRepoImpl) Leaderboard(ctx context.Context, periodStart time.Time) ([]*dto.LeaderboardEntry, error) {
	var rows []struct {
		FriendID     string
		Name         string
		BaselineFans int64
		CurrentFans  int64
		BaselineAt   time.Time
		CurrentAt    time.Time
	}

	// 同一成员的快照时间随 id 单调不减，因此 MAX(id)/MIN(id) 即最新/最早
	err := s.db.WithContext(ctx).
		Table("members AS m").
		Select("m.friend_id AS friend_id, m.current_name AS name, "+
			"base.total_fans AS baseline_fans, cur.total_fans AS current_fans, "+
			"base.timestamp AS baseline_at, cur.timestamp AS current_at").
		Joins("JOIN snapshots cur ON cur.id = (SELECT MAX(s1.id) FROM snapshots s1 WHERE s1.friend_id = m.friend_id)").
		Joins("JOIN snapshots base ON base.id = (SELECT MIN(s2.id) FROM snapshots s2 WHERE s2.friend_id = m.friend_id AND s2.timestamp >= ?)", StoreTime(periodStart)).
		Where("m.is_active = ?", true).
		Order("(cur.total_fans - base.total_fans) DESC").
		Order("m.current_name ASC").
		Order("m.friend_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, &dto.LeaderboardEntry{
			FriendID:     r.FriendID,
			Name:         r.Name,
			BaselineFans: r.BaselineFans,
			CurrentFans:  r.CurrentFans,
			PeriodGain:   r.CurrentFans - r.BaselineFans,
			BaselineAt:   r.BaselineAt,
			CurrentAt:    r.CurrentAt,
		})
	}
	return entries, nil
}

// Lookup 按名字模糊匹配（不区分大小写）第一个成员，返回成员、首条快照与最新快照
// 未匹配或没有任何快照时返回 nil
func (s *snapshotRepoImpl) Lookup(ctx context.Context, nameQuery string) (*model.Member, *model.Snapshot, *model.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var member model.Member
	pattern := "%" + escapeLike(strings.ToLower(nameQuery)) + "%"
	err := db.Where("LOWER(current_name) LIKE ? ESCAPE '!'", pattern).
		Order("friend_id ASC").
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, nil
		}
		return nil, nil, nil, err
	}

	var first model.Snapshot
	err = db.Where("friend_id = ?", member.FriendID).
		Order("timestamp ASC").
		Order("id ASC").
		First(&first).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, nil
		}
		return nil, nil, nil, err
	}

	var latest model.Snapshot
	err = db.Where("friend_id = ?", member.FriendID).
		Order("id DESC").
		First(&latest).Error
	if err != nil {
		return nil, nil, nil, err
	}

	return &member, &first, &latest, nil
}

func (s *snapshotRepoImpl) ListMembers(ctx context.Context, activeOnly bool) ([]*model.Member, error) {
	members := make([]*model.Member, 0)
	query := s.db.WithContext(ctx).Order("current_name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
