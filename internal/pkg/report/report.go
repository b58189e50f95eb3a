package report

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/consts"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

const Legend = "🔥=1M+ | ✅=On Track | ⚠️=Behind Pace | 💤=Zero"

// Classify 按固定阈值划分当日表现
// 日目标 weeklyTarget/7 可能不是整数，按 gain*7 与周目标比较
func Classify(gain, weeklyTarget int64) dto.Tier {
	switch {
	case gain >= consts.TopTierGain:
		return dto.TierTop
	case gain*7 >= weeklyTarget:
		return dto.TierOnTrack
	case gain > 0:
		return dto.TierBehind
	default:
		return dto.TierStalled
	}
}

// Icon 分级对应的展示图标
func Icon(tier dto.Tier) string {
	switch tier {
	case dto.TierTop:
		return "🔥"
	case dto.TierOnTrack:
		return "✅"
	case dto.TierBehind:
		return "⚠️"
	default:
		return "💤"
	}
}

// SignedComma 带符号与千分位的数字，如 +1,440,104
func SignedComma(n int64) string {
	if n < 0 {
		return humanize.Comma(n)
	}
	return "+" + humanize.Comma(n)
}

// BuildDailyReport 从归一化名单生成日报：按当日增长降序（稳定排序）、分级、汇总并切分展示块
// 不修改传入的 records
func BuildDailyReport(clubName string, records []*dto.MemberRecord, weeklyTarget int64, now time.Time) *dto.DailyReport {
	// 仅用于展示
	dailyTarget := weeklyTarget / 7

	sorted := make([]*dto.MemberRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Gain > sorted[j].Gain
	})

	var total int64
	lines := make([]*dto.ReportLine, 0, len(sorted))
	texts := make([]string, 0, len(sorted))
	for i, m := range sorted {
		total += m.Gain
		line := &dto.ReportLine{
			Position: i + 1,
			Name:     m.Name,
			FriendID: m.ID,
			Gain:     m.Gain,
			Tier:     Classify(m.Gain, weeklyTarget),
		}
		lines = append(lines, line)
		texts = append(texts, FormatLine(line))
	}

	return &dto.DailyReport{
		Title:       fmt.Sprintf("📊 Daily Check: %s", clubName),
		Target:      fmt.Sprintf("%s/day (%s/week)", humanize.Comma(dailyTarget), humanize.Comma(weeklyTarget)),
		DailyTarget: dailyTarget,
		TotalGain:   total,
		GeneratedAt: now,
		Lines:       lines,
		Blocks:      ChunkLines(texts, consts.MaxBlockSize),
		Legend:      Legend,
	}
}

// FormatLine 单行格式：`#01` 🔥 **Name**: +1,234
func FormatLine(line *dto.ReportLine) string {
	return fmt.Sprintf("`#%02d` %s **%s**: %s\n", line.Position, Icon(line.Tier), line.Name, SignedComma(line.Gain))
}

// FormatLeaderboard 把窗口排行榜渲染成与日报相同格式的展示块
func FormatLeaderboard(entries []*dto.LeaderboardEntry) []string {
	texts := make([]string, 0, len(entries))
	for i, e := range entries {
		texts = append(texts, fmt.Sprintf("`#%02d` **%s**: %s\n", i+1, e.Name, SignedComma(e.PeriodGain)))
	}
	return ChunkLines(texts, consts.MaxBlockSize)
}

// ChunkLines 将行依次装入块中，追加下一行会超过 maxSize 个字符时先关闭当前块再以该行开新块
// 行不会被拆分；单行本身超过 maxSize 时独占一块
func ChunkLines(lines []string, maxSize int) []string {
	blocks := make([]string, 0)
	var current strings.Builder
	size := 0
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if size > 0 && size+n > maxSize {
			blocks = append(blocks, current.String())
			current.Reset()
			size = 0
		}
		current.WriteString(line)
		size += n
	}
	if current.Len() > 0 {
		blocks = append(blocks, current.String())
	}
	return blocks
}
