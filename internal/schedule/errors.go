package schedule

import "errors"

// 提交班次时可能出现的业务错误，
// handler 根据这些错误决定返回给前端的提示信息
var (
	ErrInvalidTimeRange      = errors.New("班次的结束时间必须晚于开始时间")
	ErrBelowMinimumDuration  = errors.New("班次时长不能少于半小时")
	ErrOutsideOperatingHours = errors.New("班次时间必须在营业时间 08:00 到 23:00 之内")
	ErrNotOnHalfHour         = errors.New("班次时间必须对齐到半小时刻度")
	ErrSchedulingConflict    = errors.New("该员工在这个时间段已有其他班次")
	ErrEmptySelection        = errors.New("班次信息不完整")
)
