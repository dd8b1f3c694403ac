package domain

import "time"

type Shift struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeID"`
	Date       string    `json:"date"`      // 格式为 YYYY-MM-DD
	StartTime  string    `json:"startTime"` // 格式为 HH:mm
	EndTime    string    `json:"endTime"`   // 格式为 HH:mm
	Hours      float64   `json:"hours"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
