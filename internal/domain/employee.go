package domain

import "time"

type Role string

const (
	// 角色信息来自统一认证服务签发的令牌，本服务只做校验
	RoleScheduler Role = "排班员"
	RoleViewer    Role = "查看者"
)

type Employee struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Color     string    `json:"color"` // 日历中渲染该员工班次所用的颜色
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
