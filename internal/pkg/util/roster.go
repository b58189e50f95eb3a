package util

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/consts"
	"strconv"
	"strings"
)

const (
	DefaultName      = "Unknown"
	DefaultFriendID  = "N/A"
	DefaultRank      = "N/A"
	DefaultRole      = consts.RoleMember
	DefaultLastLogin = "-"
)

var fanNumberReplacer = strings.NewReplacer(",", "", "+", "", " ", "", "\u00a0", "")

// ParseFanCount 解析页面上的粉丝数文本，如 "58,844,280"、"+1,440,104"、"-12,000"
// 任何无法解析的内容都返回 0
func ParseFanCount(raw string) int64 {
	cleaned := fanNumberReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// NormalizeRow 将一行原始数据转换为 MemberRecord，缺失的文本字段使用占位值
func NormalizeRow(row *dto.RawMemberRow) *dto.MemberRecord {
	if row == nil {
		row = &dto.RawMemberRow{}
	}
	return &dto.MemberRecord{
		Name:      textOr(row.Name, DefaultName),
		ID:        textOr(row.FriendID, DefaultFriendID),
		Fans:      ParseFanCount(row.TotalFans),
		Gain:      ParseFanCount(row.FanChange),
		DailyAvg:  ParseFanCount(row.DailyAvg),
		Rank:      textOr(row.Rank, DefaultRank),
		Role:      textOr(row.Role, DefaultRole),
		LastLogin: textOr(row.LastLogin, DefaultLastLogin),
	}
}

// NormalizeRoster 按原顺序归一化整份名单
func NormalizeRoster(rows []*dto.RawMemberRow) []*dto.MemberRecord {
	records := make([]*dto.MemberRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, NormalizeRow(row))
	}
	return records
}

func textOr(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
