package schedule

import (
	"math"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/timegrid"
)

// MinShiftHours 是允许的最短班次时长
const MinShiftHours = 0.5

// Duration 计算班次时长（小时），保留两位小数。
// 班次不允许跨天，结束时间不晚于开始时间的输入由 ValidateShiftTime 拒绝，
// 这里不猜测跨天语义
func Duration(startTime, endTime string) float64 {
	startMinutes, err := clockToMinutes(startTime)
	if err != nil {
		return 0
	}
	endMinutes, err := clockToMinutes(endTime)
	if err != nil {
		return 0
	}
	if endMinutes <= startMinutes {
		return 0
	}

	return math.Round(float64(endMinutes-startMinutes)/60*100) / 100
}

// clockToMinutes 将 HH:mm 转换为从零点开始的分钟数
func clockToMinutes(clock string) (int, error) {
	hour, err := timegrid.ClockToHour(clock)
	if err != nil {
		return 0, err
	}

	return int(math.Round(hour * 60)), nil
}
