package schedule

import (
	"testing"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
)

func TestPackDay(t *testing.T) {
	a := &domain.Shift{ID: 1, EmployeeID: 7, Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00"}
	b := &domain.Shift{ID: 2, EmployeeID: 7, Date: "2024-01-10", StartTime: "09:30", EndTime: "10:30"}
	c := &domain.Shift{ID: 3, EmployeeID: 7, Date: "2024-01-10", StartTime: "10:00", EndTime: "11:00"}

	// A 和 B 重叠、B 和 C 重叠、A 和 C 首尾相接，
	// 所以 A、C 共用第一列，B 独占第二列
	layout := PackDay([]*domain.Shift{a, b, c})

	if layout.TotalColumns() != 2 {
		t.Fatalf("列数 = %d，期望 2", layout.TotalColumns())
	}

	wantColumns := [][]int64{{1, 3}, {2}}
	for i, wantIDs := range wantColumns {
		if len(layout.Columns[i]) != len(wantIDs) {
			t.Fatalf("第 %d 列有 %d 个班次，期望 %d 个", i, len(layout.Columns[i]), len(wantIDs))
		}
		for j, id := range wantIDs {
			if layout.Columns[i][j].ID != id {
				t.Fatalf("第 %d 列第 %d 个班次 ID = %d，期望 %d", i, j, layout.Columns[i][j].ID, id)
			}
		}
	}

	if layout.WidthPercent != 50 {
		t.Errorf("WidthPercent = %v，期望 50", layout.WidthPercent)
	}
	if layout.LeftPercent(1) != 50 {
		t.Errorf("LeftPercent(1) = %v，期望 50", layout.LeftPercent(1))
	}
}

func TestPackDayNoOverlap(t *testing.T) {
	shifts := []*domain.Shift{
		{ID: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: 2, StartTime: "10:00", EndTime: "11:00"},
		{ID: 3, StartTime: "12:00", EndTime: "13:00"},
	}

	layout := PackDay(shifts)
	if layout.TotalColumns() != 1 {
		t.Fatalf("互不重叠的班次应只占一列，实际为 %d 列", layout.TotalColumns())
	}
	if layout.WidthPercent != 100 {
		t.Errorf("WidthPercent = %v，期望 100", layout.WidthPercent)
	}
}

func TestPackDayStableOnTies(t *testing.T) {
	// 开始时间相同的班次保持输入顺序
	shifts := []*domain.Shift{
		{ID: 5, StartTime: "09:00", EndTime: "10:00"},
		{ID: 6, StartTime: "09:00", EndTime: "11:00"},
	}

	layout := PackDay(shifts)
	if layout.TotalColumns() != 2 {
		t.Fatalf("列数 = %d，期望 2", layout.TotalColumns())
	}
	if layout.Columns[0][0].ID != 5 || layout.Columns[1][0].ID != 6 {
		t.Fatalf("开始时间相同的班次没有保持输入顺序")
	}
}

func TestPackDayEmpty(t *testing.T) {
	layout := PackDay(nil)
	if layout.TotalColumns() != 0 {
		t.Fatalf("空输入的列数 = %d，期望 0", layout.TotalColumns())
	}
	if layout.WidthPercent != 100 {
		t.Errorf("空输入的 WidthPercent = %v，期望 100", layout.WidthPercent)
	}
}
