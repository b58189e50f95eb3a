package util

import (
	"Fanboard/internal/pkg/consts"
	"fmt"
	"time"
)

// GetMidnight 返回 t 所在时区当天 0 点
func GetMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PeriodStart 计算统计周期起点，周以周一开始
func PeriodStart(period string, now time.Time) (time.Time, error) {
	midnight := GetMidnight(now)
	switch period {
	case consts.PeriodDay:
		return midnight, nil
	case consts.PeriodWeek:
		offset := (int(midnight.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset), nil
	case consts.PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

// ParseSince 支持 YYYY-MM-DD（按 loc 解析）与 RFC3339
func ParseSince(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
