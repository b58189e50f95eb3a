package dto

// LeaderboardQuery since 非空时忽略 period
type LeaderboardQuery struct {
	Period string `form:"period" validate:"omitempty,oneof=day week month"`
	Since  string `form:"since" validate:"omitempty,max=32"`
}

type LookupQuery struct {
	Name string `form:"name" binding:"required" validate:"min=1,max=64"`
}

type MembersQuery struct {
	Active bool `form:"active"`
}

// ScrapeRequest 请求体可省略，默认抓取配置中的俱乐部
type ScrapeRequest struct {
	ClubID string `json:"club_id" validate:"omitempty,max=64"`
}
