package domain

// ShiftTemplate 是复制单个班次时存下的模板，不带日期和 ID，
// 粘贴时才会结合目标日期生成新班次
type ShiftTemplate struct {
	EmployeeID int64  `json:"employeeID"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// WeekTemplate 是复制整周班表时存下的模板，只记录归一化后的周起始日（周日）
type WeekTemplate struct {
	WeekStart string `json:"weekStart"` // 格式为 YYYY-MM-DD
}
