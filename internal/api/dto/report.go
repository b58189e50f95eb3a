package dto

import "time"

// Tier 成员当日表现分级
type Tier string

const (
	TierTop     Tier = "top"
	TierOnTrack Tier = "on_track"
	TierBehind  Tier = "behind"
	TierStalled Tier = "stalled"
)

// ReportLine 日报中的一行
type ReportLine struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	FriendID string `json:"friend_id"`
	Gain     int64  `json:"gain"`
	Tier     Tier   `json:"tier"`
}

// DailyReport 日报投影，按增长降序
type DailyReport struct {
	Title       string        `json:"title"`
	Target      string        `json:"target"`
	DailyTarget int64         `json:"daily_target"`
	TotalGain   int64         `json:"total_gain"`
	GeneratedAt time.Time     `json:"generated_at"`
	Lines       []*ReportLine `json:"lines"`
	Blocks      []string      `json:"blocks"`
	Legend      string        `json:"legend"`
}

// ScrapeStatus 一次抓取的结果分类
type ScrapeStatus string

const (
	ScrapeOK          ScrapeStatus = "ok"
	ScrapeBusy        ScrapeStatus = "busy"
	ScrapeNoData      ScrapeStatus = "no_data"
	ScrapeStoreFailed ScrapeStatus = "store_failed"
)

// ScrapeResult 抓取流程返回值
type ScrapeResult struct {
	Status     ScrapeStatus    `json:"status"`
	ClubID     string          `json:"club_id"`
	CapturedAt time.Time       `json:"captured_at"`
	Archived   bool            `json:"archived"`
	Records    []*MemberRecord `json:"records,omitempty"`
}
