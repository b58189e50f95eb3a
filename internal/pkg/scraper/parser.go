package scraper

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/consts"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	MemberTableSelector = "table.club-member-table"
	MemberRowSelector   = "table.club-member-table tbody tr"

	missingText = "N/A"
)

// ParseRoster 解析俱乐部页面中的成员表格，单元格不足 4 个的行会被跳过
func ParseRoster(r io.Reader) ([]*dto.RawMemberRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.RawMemberRow, 0)
	doc.Find(MemberTableSelector).First().
		Find("tbody tr.club-member-row-container").
		Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 4 {
				return
			}

			profile := cells.Eq(0)
			fans := cells.Eq(1)

			fanChange := spanText(fans, "span.club-profile-positive, span.club-profile-negative")
			if fanChange == missingText {
				fanChange = "0"
			}

			rows = append(rows, &dto.RawMemberRow{
				Rank:      spanText(profile, "span.club-profile-rank-eval"),
				Name:      spanText(profile, "span.club-profile-name"),
				FriendID:  spanText(profile, "span.club-profile-fid"),
				Role:      roleOf(row),
				TotalFans: spanText(fans, "span.club-profile-cell-reg-span"),
				FanChange: fanChange,
				DailyAvg:  spanText(cells.Eq(2), "span.club-profile-cell-reg-span"),
				LastLogin: spanText(cells.Eq(3), "span.club-profile-cell-reg-span"),
			})
		})

	return rows, nil
}

// ParseRosterHTML ParseRoster 的字符串版本
func ParseRosterHTML(html string) ([]*dto.RawMemberRow, error) {
	return ParseRoster(strings.NewReader(html))
}

func roleOf(row *goquery.Selection) string {
	switch {
	case row.HasClass("leader"):
		return consts.RoleLeader
	case row.HasClass("sub-leader"):
		return consts.RoleOfficer
	default:
		return consts.RoleMember
	}
}

func spanText(cell *goquery.Selection, selector string) string {
	span := cell.Find(selector).First()
	if span.Length() == 0 {
		return missingText
	}
	return strings.TrimSpace(span.Text())
}
