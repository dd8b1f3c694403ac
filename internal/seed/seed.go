package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/utils"
)

const dateLayout = "2006-01-02"

// SeedRandomEmployees 插入 n 个随机员工，返回成功插入的数量
func SeedRandomEmployees(r *repository.Repository, n int, emailDomainName string) int {
	cnt := 0
	for i := 0; i < n; i++ {
		employee := utils.GenerateRandomEmployee(emailDomainName)
		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("无法插入员工", slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	return cnt
}

// SeedRandomShifts 从本周的周日开始，给每个员工随机排若干周的班，
// 生成时用冲突检查保证种子数据本身不含冲突
func SeedRandomShifts(r *repository.Repository, weeks int) int {
	employees, err := r.GetAllEmployees()
	if err != nil {
		slog.Error("无法获取员工列表", slog.String("error", err.Error()))
		return 0
	}

	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))

	cnt := 0
	for day := 0; day < weeks*7; day++ {
		date := weekStart.AddDate(0, 0, day).Format(dateLayout)

		dayShifts := make([]*domain.Shift, 0)
		for _, employee := range employees {
			// 每个员工每天至多两个班次
			for i := 0; i < rand.Intn(3); i++ {
				shift := utils.GenerateRandomShift(employee.ID, date)
				if schedule.HasConflict(dayShifts, shift) {
					continue
				}

				if err := r.CreateShift(shift); err != nil {
					slog.Error("无法插入班次", slog.String("error", err.Error()))
					continue
				}

				dayShifts = append(dayShifts, shift)
				cnt++
			}
		}
	}

	return cnt
}
