package repository

import (
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
)

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (employee_id, work_date, start_time, end_time, hours)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime, shift.Hours}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT employee_id, work_date, start_time, end_time, hours, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	var workDate time.Time
	dst := []any{&shift.EmployeeID, &workDate, &shift.StartTime, &shift.EndTime, &shift.Hours, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	shift.Date = workDate.Format(dateLayout)

	return shift, nil
}

func (r *Repository) GetShiftsByDate(date string) ([]*domain.Shift, error) {
	query := `
		SELECT id, employee_id, work_date, start_time, end_time, hours, created_at, version
		FROM shifts
		WHERE work_date = $1
		ORDER BY start_time, id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

func (r *Repository) GetShiftsByDateRange(startDate string, endDate string) ([]*domain.Shift, error) {
	query := `
		SELECT id, employee_id, work_date, start_time, end_time, hours, created_at, version
		FROM shifts
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date, start_time, id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			employee_id = $1,
			work_date = $2,
			start_time = $3,
			end_time = $4,
			hours = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime, shift.Hours, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// CreateShifts 在一个事务中批量插入班次，整周粘贴要求全有或全无，
// 任何一条失败整个批次都会回滚
func (r *Repository) CreateShifts(shifts []*domain.Shift) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (employee_id, work_date, start_time, end_time, hours)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	for _, shift := range shifts {
		args := []any{shift.EmployeeID, shift.Date, shift.StartTime, shift.EndTime, shift.Hours}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func scanShifts(rows *sql.Rows) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		var workDate time.Time
		dst := []any{&shift.ID, &shift.EmployeeID, &workDate, &shift.StartTime, &shift.EndTime, &shift.Hours, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.Date = workDate.Format(dateLayout)
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
