package schedule

import (
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
)

// HasConflict 检查候选班次是否和已有班次冲突。
// 只比较同一员工同一天的班次，并排除候选班次自身（更新场景），
// 区间按左闭右开比较，首尾相接不算冲突。
// 候选班次缺少必要字段时返回 false，由调用方拒绝这种提交
func HasConflict(existing []*domain.Shift, candidate *domain.Shift) bool {
	if candidate == nil || candidate.EmployeeID == 0 || candidate.Date == "" ||
		candidate.StartTime == "" || candidate.EndTime == "" {
		return false
	}

	candidateStart, err := clockToMinutes(candidate.StartTime)
	if err != nil {
		return false
	}
	candidateEnd, err := clockToMinutes(candidate.EndTime)
	if err != nil {
		return false
	}

	for _, shift := range existing {
		if shift.EmployeeID != candidate.EmployeeID || shift.Date != candidate.Date {
			continue
		}
		if candidate.ID != 0 && shift.ID == candidate.ID {
			continue
		}

		shiftStart, err := clockToMinutes(shift.StartTime)
		if err != nil {
			continue
		}
		shiftEnd, err := clockToMinutes(shift.EndTime)
		if err != nil {
			continue
		}

		if candidateStart < shiftEnd && candidateEnd > shiftStart {
			return true
		}
	}

	return false
}
