package schedule

import (
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/timegrid"
)

// ValidateShiftTime 检查提交的班次时间是否满足约束：
// 结束时间晚于开始时间、时长不少于半小时、
// 落在营业时间段内且对齐到半小时刻度
func ValidateShiftTime(startTime, endTime string) error {
	startMinutes, err := clockToMinutes(startTime)
	if err != nil {
		return err
	}
	endMinutes, err := clockToMinutes(endTime)
	if err != nil {
		return err
	}

	if endMinutes <= startMinutes {
		return ErrInvalidTimeRange
	}
	if endMinutes-startMinutes < int(MinShiftHours*60) {
		return ErrBelowMinimumDuration
	}

	openMinutes := int(timegrid.StartHour * 60)
	closeMinutes := int(timegrid.EndHour * 60)
	if startMinutes < openMinutes || endMinutes > closeMinutes {
		return ErrOutsideOperatingHours
	}

	if startMinutes%30 != 0 || endMinutes%30 != 0 {
		return ErrNotOnHalfHour
	}

	return nil
}
