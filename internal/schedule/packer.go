package schedule

import (
	"sort"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
)

// DayLayout 是某一天所有班次的列布局结果
type DayLayout struct {
	Columns      [][]*domain.Shift
	WidthPercent float64
}

// TotalColumns 返回这一天需要的列数
func (l *DayLayout) TotalColumns() int {
	return len(l.Columns)
}

// LeftPercent 返回第 column 列的左侧偏移百分比
func (l *DayLayout) LeftPercent(column int) float64 {
	return float64(column) * l.WidthPercent
}

// PackDay 将同一天互相重叠的班次分配到并排的列中。
// 按开始时间稳定排序后贪心地放入第一个末尾班次已结束的列，
// 放不下就新开一列。这个贪心算法是确定性的，
// 但对某些重叠图不是列数最优的，这里接受这个取舍
func PackDay(shifts []*domain.Shift) *DayLayout {
	sorted := make([]*domain.Shift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		iStart, _ := clockToMinutes(sorted[i].StartTime)
		jStart, _ := clockToMinutes(sorted[j].StartTime)
		return iStart < jStart
	})

	columns := [][]*domain.Shift{}
	lastEnds := []int{} // 每一列最后放入班次的结束分钟数

	for _, shift := range sorted {
		start, err := clockToMinutes(shift.StartTime)
		if err != nil {
			continue
		}
		end, err := clockToMinutes(shift.EndTime)
		if err != nil {
			continue
		}

		placed := false
		for i := range columns {
			if lastEnds[i] <= start {
				columns[i] = append(columns[i], shift)
				lastEnds[i] = end
				placed = true
				break
			}
		}

		if !placed {
			columns = append(columns, []*domain.Shift{shift})
			lastEnds = append(lastEnds, end)
		}
	}

	layout := &DayLayout{Columns: columns, WidthPercent: 100}
	if len(columns) > 0 {
		layout.WidthPercent = 100 / float64(len(columns))
	}

	return layout
}
