package replication

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/schedule"
)

const dateLayout = "2006-01-02"

// Engine 负责班次的复制粘贴。
// checkWeekConflicts 控制整周粘贴是否逐个候选班次做冲突检查，
// 单个班次的粘贴始终做冲突检查
type Engine struct {
	checkWeekConflicts bool
}

func NewEngine(checkWeekConflicts bool) *Engine {
	return &Engine{
		checkWeekConflicts: checkWeekConflicts,
	}
}

// WeekStart 返回日期所在周的起始日（周日），格式为 YYYY-MM-DD
func WeekStart(date string) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("日期 %s 的格式错误", date)
	}

	return d.AddDate(0, 0, -int(d.Weekday())).Format(dateLayout), nil
}

// CollectWeek 收集归属于某一周的所有班次。
// 用周归属判断而不是原始日期范围比较，
// 保证无论传入的参考日期是不是周日，周边界都是一致的
func CollectWeek(shifts []*domain.Shift, weekStart string) ([]*domain.Shift, error) {
	normalized, err := WeekStart(weekStart)
	if err != nil {
		return nil, err
	}

	collected := make([]*domain.Shift, 0)
	for _, shift := range shifts {
		ws, err := WeekStart(shift.Date)
		if err != nil {
			continue
		}
		if ws == normalized {
			collected = append(collected, shift)
		}
	}

	return collected, nil
}

// BuildShiftPaste 根据单班次模板和目标日期生成候选班次，
// 和已有班次冲突时返回 ErrSchedulingConflict 且不产生任何变更
func (e *Engine) BuildShiftPaste(template domain.ShiftTemplate, targetDate string, existing []*domain.Shift) (*domain.Shift, error) {
	if template.EmployeeID == 0 || template.StartTime == "" || template.EndTime == "" {
		return nil, schedule.ErrEmptySelection
	}
	if _, err := time.Parse(dateLayout, targetDate); err != nil {
		return nil, fmt.Errorf("日期 %s 的格式错误", targetDate)
	}

	candidate := &domain.Shift{
		EmployeeID: template.EmployeeID,
		Date:       targetDate,
		StartTime:  template.StartTime,
		EndTime:    template.EndTime,
		Hours:      schedule.Duration(template.StartTime, template.EndTime),
	}

	if schedule.HasConflict(existing, candidate) {
		return nil, schedule.ErrSchedulingConflict
	}

	return candidate, nil
}

// BuildWeekPaste 把源周的所有班次平移到目标周，
// 返回的候选班次应作为一个批次原子地写入。
// 只有在开启 checkWeekConflicts 时才逐个候选做冲突检查
func (e *Engine) BuildWeekPaste(all []*domain.Shift, sourceWeekStart string, targetWeekStart string) ([]*domain.Shift, error) {
	sourceStart, err := WeekStart(sourceWeekStart)
	if err != nil {
		return nil, err
	}
	targetStart, err := WeekStart(targetWeekStart)
	if err != nil {
		return nil, err
	}

	source, _ := time.Parse(dateLayout, sourceStart)
	target, _ := time.Parse(dateLayout, targetStart)
	offsetDays := int(target.Sub(source).Hours() / 24)

	sourceShifts, err := CollectWeek(all, sourceStart)
	if err != nil {
		return nil, err
	}

	candidates := make([]*domain.Shift, 0, len(sourceShifts))
	for _, shift := range sourceShifts {
		d, err := time.Parse(dateLayout, shift.Date)
		if err != nil {
			continue
		}

		candidate := &domain.Shift{
			EmployeeID: shift.EmployeeID,
			Date:       d.AddDate(0, 0, offsetDays).Format(dateLayout),
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
			Hours:      shift.Hours,
		}

		if e.checkWeekConflicts && schedule.HasConflict(all, candidate) {
			return nil, schedule.ErrSchedulingConflict
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
