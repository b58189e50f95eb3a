package consts

const (
	// LatestRosterKey 最近一次成功抓取的归一化名单，后接俱乐部 ID
	LatestRosterKey = "fanboard:roster:latest:"
)
