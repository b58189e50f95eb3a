package model

import "time"

// Snapshot 某次抓取时成员粉丝数的不可变记录，只追加不修改
type Snapshot struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FriendID  string    `gorm:"type:varchar(64);not null;index:idx_snapshot_member_time,priority:1" json:"friendId"`
	Timestamp time.Time `gorm:"not null;index:idx_snapshot_member_time,priority:2;index" json:"timestamp"`
	TotalFans int64     `gorm:"not null;default:0" json:"totalFans"`
	DailyGain int64     `gorm:"not null;default:0" json:"dailyGain"`
}

func (Snapshot) TableName() string {
	return "snapshots"
}
