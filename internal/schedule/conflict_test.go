package schedule

import (
	"testing"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
)

func TestHasConflict(t *testing.T) {
	existing := []*domain.Shift{
		{ID: 1, EmployeeID: 7, Date: "2024-01-10", StartTime: "09:00", EndTime: "12:00"},
	}

	tests := []struct {
		name      string
		candidate *domain.Shift
		want      bool
	}{
		{
			name:      "区间重叠",
			candidate: &domain.Shift{EmployeeID: 7, Date: "2024-01-10", StartTime: "11:00", EndTime: "13:00"},
			want:      true,
		},
		{
			name:      "首尾相接不算冲突",
			candidate: &domain.Shift{EmployeeID: 7, Date: "2024-01-10", StartTime: "12:00", EndTime: "14:00"},
			want:      false,
		},
		{
			name:      "候选区间被完全包含",
			candidate: &domain.Shift{EmployeeID: 7, Date: "2024-01-10", StartTime: "10:00", EndTime: "11:00"},
			want:      true,
		},
		{
			name:      "候选区间完全覆盖已有班次",
			candidate: &domain.Shift{EmployeeID: 7, Date: "2024-01-10", StartTime: "08:00", EndTime: "13:00"},
			want:      true,
		},
		{
			name:      "不同员工不冲突",
			candidate: &domain.Shift{EmployeeID: 8, Date: "2024-01-10", StartTime: "09:00", EndTime: "12:00"},
			want:      false,
		},
		{
			name:      "不同日期不冲突",
			candidate: &domain.Shift{EmployeeID: 7, Date: "2024-01-11", StartTime: "09:00", EndTime: "12:00"},
			want:      false,
		},
		{
			name:      "更新时排除自身",
			candidate: &domain.Shift{ID: 1, EmployeeID: 7, Date: "2024-01-10", StartTime: "09:30", EndTime: "12:00"},
			want:      false,
		},
		{
			name:      "字段缺失时视为无冲突",
			candidate: &domain.Shift{EmployeeID: 7, Date: "2024-01-10", StartTime: "", EndTime: "13:00"},
			want:      false,
		},
		{
			name:      "候选为空",
			candidate: nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasConflict(existing, tt.candidate); got != tt.want {
				t.Fatalf("HasConflict = %v，期望 %v", got, tt.want)
			}
		})
	}
}
