package consts

const (
	RoleLeader  = "Leader"
	RoleOfficer = "Officer"
	RoleMember  = "Member"
)

const (
	// TopTierGain 单日增长达到该值视为主力
	TopTierGain = 1_000_000
	// MaxBlockSize 单个展示块的最大字符数（Discord embed 字段上限 1024）
	MaxBlockSize = 1000
)

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

const (
	HistoryDateLayout = "2006-01-02"
)
