package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/replication"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/schedule"
)

// 剪贴板按用户隔离地存在 redis 中，不设置过期时间，
// 直到用户显式清空前可以反复粘贴
func (h *Handler) shiftClipboardKey(r *http.Request) string {
	return fmt.Sprintf("clipboard_shift_%s", r.Context().Value(SubCtxKey).(string))
}

func (h *Handler) weekClipboardKey(r *http.Request) string {
	return fmt.Sprintf("clipboard_week_%s", r.Context().Value(SubCtxKey).(string))
}

func (h *Handler) redisContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
}

func (h *Handler) CopyShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftID int64 `json:"shiftID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.repository.GetShiftByID(req.ShiftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 模板不带日期和 ID，粘贴时再结合目标日期
	template := domain.ShiftTemplate{
		EmployeeID: shift.EmployeeID,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}

	body, err := json.Marshal(template)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.redisClient.Set(ctx, h.shiftClipboardKey(r), body, 0).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "复制班次成功", template)
}

func (h *Handler) PasteShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	body, err := h.redisClient.Get(ctx, h.shiftClipboardKey(r)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "剪贴板中没有班次")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	template := domain.ShiftTemplate{}
	if err := json.Unmarshal([]byte(body), &template); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	existing, err := h.repository.GetShiftsByDate(req.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shift, err := h.replicationEngine.BuildShiftPaste(template, req.Date, existing)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSchedulingConflict), errors.Is(err, schedule.ErrEmptySelection):
			h.errorResponse(w, r, err.Error())
		default:
			h.badRequest(w, r, err)
		}
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.notifyShiftChange("shift_created", shift)

	h.successResponse(w, r, "粘贴班次成功", shift)
}

func (h *Handler) CopyWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStart string `json:"weekStart" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 无论传入的是星期几，都归一化到所在周的周日
	weekStart, err := replication.WeekStart(req.WeekStart)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := domain.WeekTemplate{WeekStart: weekStart}
	body, err := json.Marshal(template)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.redisClient.Set(ctx, h.weekClipboardKey(r), body, 0).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "复制周班表成功", template)
}

func (h *Handler) PasteWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStart string `json:"weekStart" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	targetWeekStart, err := replication.WeekStart(req.WeekStart)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	body, err := h.redisClient.Get(ctx, h.weekClipboardKey(r)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "剪贴板中没有周班表")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	template := domain.WeekTemplate{}
	if err := json.Unmarshal([]byte(body), &template); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	all, err := h.weekShifts(template.WeekStart, targetWeekStart)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	candidates, err := h.replicationEngine.BuildWeekPaste(all, template.WeekStart, targetWeekStart)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSchedulingConflict):
			h.errorResponse(w, r, err.Error())
		default:
			h.badRequest(w, r, err)
		}
		return
	}

	if len(candidates) == 0 {
		h.errorResponse(w, r, "源周中没有可粘贴的班次")
		return
	}

	// 整周粘贴是全有或全无的：批量插入失败时不会产生任何班次
	if err := h.repository.CreateShifts(candidates); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "粘贴周班表成功", candidates)
}

func (h *Handler) ClearClipboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.redisClient.Del(ctx, h.shiftClipboardKey(r), h.weekClipboardKey(r)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "清空剪贴板成功", nil)
}

// weekShifts 取出源周和目标周的全部班次，
// 冲突检查需要同时看到两边
func (h *Handler) weekShifts(sourceWeekStart string, targetWeekStart string) ([]*domain.Shift, error) {
	shifts, err := h.repository.GetShiftsByDateRange(sourceWeekStart, weekEnd(sourceWeekStart))
	if err != nil {
		return nil, err
	}

	if targetWeekStart == sourceWeekStart {
		return shifts, nil
	}

	targetShifts, err := h.repository.GetShiftsByDateRange(targetWeekStart, weekEnd(targetWeekStart))
	if err != nil {
		return nil, err
	}

	return append(shifts, targetShifts...), nil
}

func weekEnd(weekStart string) string {
	d, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return weekStart
	}
	return d.AddDate(0, 0, 6).Format(dateLayout)
}
