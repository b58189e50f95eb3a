package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("参数错误")
	ErrMemberNotFound  = errors.New("成员不存在")
	ErrScrapeBusy      = errors.New("抓取任务正在运行")
	ErrNoDataExtracted = errors.New("未抓取到成员数据")
	ErrSnapshotWrite   = errors.New("快照写入失败")
	ErrReportNotReady  = errors.New("暂无可用的日报")
	ErrArchiveNotFound = errors.New("该日期没有历史归档")
	UnExpectedError    = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrMemberNotFound:  NotFound,
	ErrScrapeBusy:      Conflict,
	ErrNoDataExtracted: InternalServerError,
	ErrSnapshotWrite:   InternalServerError,
	ErrReportNotReady:  NotFound,
	ErrArchiveNotFound: NotFound,
	UnExpectedError:    InternalServerError,
}

// CodeOf 按错误链查找业务码，包装过的错误也能命中
func CodeOf(err error) (int, bool) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}
