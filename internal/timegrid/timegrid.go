package timegrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 日历网格只覆盖营业时间段 [08:00, 23:00]，所有时间都落在半小时刻度上
const (
	StartHour = 8.0
	EndHour   = 23.0

	// 网格容器上下的固定留白（像素）
	TopPadding    = 8.0
	BottomPadding = 8.0
)

// PixelToHour 将网格内的纵向偏移量转换为小时数，
// 先做线性映射，再对齐到最近的半小时刻度，最后收敛到营业时间段内。
// 该函数对 y 单调不减
func PixelToHour(y float64, containerHeight float64) float64 {
	usable := containerHeight - TopPadding - BottomPadding
	if usable <= 0 {
		return StartHour
	}

	ratio := (y - TopPadding) / usable
	hour := StartHour + ratio*(EndHour-StartHour)

	return clampHour(SnapHour(hour))
}

// SnapHour 将小时数对齐到最近的半小时刻度
func SnapHour(hour float64) float64 {
	return math.Round(hour*2) / 2
}

// HourToPercent 是渲染用的反向映射，返回该时间在网格中的纵向百分比
func HourToPercent(hour float64) float64 {
	return (hour - StartHour) / (EndHour - StartHour) * 100
}

// HourToClock 将小数形式的小时数转换为 HH:mm 字符串，
// 对越界的小时和分钟做防御性收敛
func HourToClock(hour float64) string {
	h := int(math.Floor(hour))
	m := int(math.Round((hour - math.Floor(hour)) * 60))

	if m > 59 {
		m = 59
	}
	if m < 0 {
		m = 0
	}
	if h > 23 {
		h = 23
	}
	if h < 0 {
		h = 0
	}

	return fmt.Sprintf("%02d:%02d", h, m)
}

// ClockToHour 将 HH:mm 字符串解析为小数形式的小时数
func ClockToHour(clock string) (float64, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return 0, err
	}

	return float64(h) + float64(m)/60, nil
}

// SnapClock 将外部传入的 HH:mm 时间对齐到最近的半小时刻度，
// 分钟进位到 60 时向小时进位，整体不超过 23:00
func SnapClock(clock string) (string, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return "", err
	}

	m = int(math.Round(float64(m)/30)) * 30
	if m == 60 {
		h++
		m = 0
	}

	if h > 23 || (h == 23 && m > 0) {
		return "23:00", nil
	}

	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func clampHour(hour float64) float64 {
	if hour < StartHour {
		return StartHour
	}
	if hour > EndHour {
		return EndHour
	}
	return hour
}

func parseClock(clock string) (int, int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("时间 %s 的格式错误", clock)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("时间 %s 的小时部分格式错误", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("时间 %s 的分钟部分格式错误", clock)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("时间 %s 超出合法范围", clock)
	}

	return h, m, nil
}
