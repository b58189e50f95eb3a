package dto

import "time"

// LeaderboardEntry 时间窗口内单个活跃成员的增长
type LeaderboardEntry struct {
	FriendID     string    `json:"friend_id"`
	Name         string    `json:"name"`
	BaselineFans int64     `json:"baseline_fans"`
	CurrentFans  int64     `json:"current_fans"`
	PeriodGain   int64     `json:"period_gain"`
	BaselineAt   time.Time `json:"baseline_at"`
	CurrentAt    time.Time `json:"current_at"`
}

// LeaderboardDTO 排行榜返回包装
type LeaderboardDTO struct {
	Period      string              `json:"period"`
	PeriodStart time.Time           `json:"period_start"`
	TotalGain   int64               `json:"total_gain"`
	Entries     []*LeaderboardEntry `json:"entries"`
	Blocks      []string            `json:"blocks"`
}

// SnapshotPoint 单条快照
type SnapshotPoint struct {
	Timestamp time.Time `json:"timestamp"`
	TotalFans int64     `json:"total_fans"`
	DailyGain int64     `json:"daily_gain"`
}

// MemberLookup 成员生涯统计
type MemberLookup struct {
	FriendID    string         `json:"friend_id"`
	Name        string         `json:"name"`
	JoinedAt    time.Time      `json:"joined_at"`
	IsActive    bool           `json:"is_active"`
	First       *SnapshotPoint `json:"first"`
	Latest      *SnapshotPoint `json:"latest"`
	Accumulated int64          `json:"accumulated"`
}

// MemberDTO 成员列表项
type MemberDTO struct {
	FriendID    string    `json:"friend_id"`
	CurrentName string    `json:"current_name"`
	JoinedAt    time.Time `json:"joined_at"`
	IsActive    bool      `json:"is_active"`
}
