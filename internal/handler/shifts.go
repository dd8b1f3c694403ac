package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/timegrid"
)

const dateLayout = "2006-01-02"

func (h *Handler) GetShiftsByDateRange(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start")
	endDate := r.URL.Query().Get("end")

	if _, err := time.Parse(dateLayout, startDate); err != nil {
		h.errorResponse(w, r, "起始日期无效")
		return
	}
	if _, err := time.Parse(dateLayout, endDate); err != nil {
		h.errorResponse(w, r, "结束日期无效")
		return
	}

	shifts, err := h.repository.GetShiftsByDateRange(startDate, endDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次成功", shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID int64  `json:"employeeID" validate:"required"`
		Date       string `json:"date" validate:"required"`
		StartTime  string `json:"startTime" validate:"required"`
		EndTime    string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.buildShift(req.EmployeeID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 提交前做冲突检查，这是整个排班面上唯一的一致性保证
	existing, err := h.repository.GetShiftsByDate(shift.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if schedule.HasConflict(existing, shift) {
		h.errorResponse(w, r, schedule.ErrSchedulingConflict.Error())
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_employee_id_fkey":
				h.errorResponse(w, r, "员工不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyShiftChange("shift_created", shift)

	h.successResponse(w, r, "创建班次成功", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftInfoCtx).(*domain.Shift)

	var req struct {
		EmployeeID *int64  `json:"employeeID"`
		Date       *string `json:"date"`
		StartTime  *string `json:"startTime"`
		EndTime    *string `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.EmployeeID != nil {
		shift.EmployeeID = *req.EmployeeID
	}
	if req.Date != nil {
		shift.Date = *req.Date
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}

	updated, err := h.buildShift(shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	shift.StartTime = updated.StartTime
	shift.EndTime = updated.EndTime
	shift.Hours = updated.Hours

	// 冲突检查排除班次自身
	existing, err := h.repository.GetShiftsByDate(shift.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if schedule.HasConflict(existing, shift) {
		h.errorResponse(w, r, schedule.ErrSchedulingConflict.Error())
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_employee_id_fkey":
				h.errorResponse(w, r, "员工不存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyShiftChange("shift_updated", shift)

	h.successResponse(w, r, "更新班次成功", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftInfoCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.notifyShiftChange("shift_deleted", shift)

	h.successResponse(w, r, "删除班次成功", nil)
}

// buildShift 把提交的时间对齐到半小时刻度并检查所有约束，
// 通过后算出班次时长
func (h *Handler) buildShift(employeeID int64, date string, startTime string, endTime string) (*domain.Shift, error) {
	if employeeID == 0 || date == "" || startTime == "" || endTime == "" {
		return nil, schedule.ErrEmptySelection
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, errors.New("日期格式错误")
	}

	snappedStart, err := timegrid.SnapClock(startTime)
	if err != nil {
		return nil, err
	}
	snappedEnd, err := timegrid.SnapClock(endTime)
	if err != nil {
		return nil, err
	}

	if err := schedule.ValidateShiftTime(snappedStart, snappedEnd); err != nil {
		return nil, err
	}

	return &domain.Shift{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  snappedStart,
		EndTime:    snappedEnd,
		Hours:      schedule.Duration(snappedStart, snappedEnd),
	}, nil
}

// notifyShiftChange 把班次变动通知发送到消息队列。
// 通知是尽力而为的，发送失败只记录日志，不影响已完成的写操作
func (h *Handler) notifyShiftChange(changeType string, shift *domain.Shift) {
	employee, err := h.repository.GetEmployeeByID(shift.EmployeeID)
	if err != nil {
		slog.Error("无法获取班次变动通知的收件人", "employeeID", shift.EmployeeID, "error", err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: changeType,
		To:   employee.Email,
		Data: domain.ShiftChangedMailData{
			FullName:  employee.FullName,
			Date:      shift.Date,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
		},
	}

	body, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("班次变动通知序列化失败", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("无法发送班次变动通知", "error", err)
	}
}
