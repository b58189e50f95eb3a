package dto

import "time"

// RawMemberRow 抓取层产出的原始成员行，所有字段均为页面文本，可能缺失
type RawMemberRow struct {
	Rank      string `json:"rank"`
	Name      string `json:"name"`
	FriendID  string `json:"friend_id"`
	Role      string `json:"role"`
	TotalFans string `json:"total_fans"`
	FanChange string `json:"fan_change"`
	DailyAvg  string `json:"daily_avg"`
	LastLogin string `json:"last_login"`
}

// MemberRecord 归一化后的成员记录，下游不再重新解析
type MemberRecord struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Fans      int64  `json:"fans"`
	Gain      int64  `json:"gain"`
	DailyAvg  int64  `json:"daily_avg"`
	Rank      string `json:"rank"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login"`
}

// HistoryArtifact 每日归档内容，当天首次抓取写入后不再覆盖
type HistoryArtifact struct {
	Date       string          `json:"date"`
	ClubID     string          `json:"club_id"`
	CapturedAt time.Time       `json:"captured_at"`
	Members    []*MemberRecord `json:"members"`
}
