package model

import "time"

// Member 俱乐部成员身份，FriendID 为游戏内好友 ID，创建后不再变化
type Member struct {
	FriendID    string    `gorm:"primaryKey;type:varchar(64)" json:"friendId"`
	CurrentName string    `gorm:"type:varchar(128);not null;default:'';index" json:"currentName"`
	JoinedAt    time.Time `gorm:"not null" json:"joinedAt"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"isActive"`
}

func (Member) TableName() string {
	return "members"
}
