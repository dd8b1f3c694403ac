package interaction

import "github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"

// Kind 表示对已有班次的拖拽方式
type Kind int

const (
	KindMove Kind = iota
	KindResizeTop
	KindResizeBottom
)

// Region 表示指针按下时命中班次块的哪个子区域，
// 顶部和底部的窄条触发缩放，其余部分触发移动
type Region int

const (
	RegionBody Region = iota
	RegionTop
	RegionBottom
)

// PointerEvent 携带指针在网格容器内的纵向位置
type PointerEvent struct {
	Y               float64
	ContainerHeight float64
}

// Target 描述指针按下的位置：Shift 为 nil 表示按在空白网格上
type Target struct {
	Day    string // 格式为 YYYY-MM-DD
	Shift  *domain.Shift
	Region Region
}

// sessionState 把拖拽会话建模为带标签的联合类型，
// 避免用一堆可空字段组合出非法状态。nil 即 Idle
type sessionState interface {
	sessionState()
}

// selectingState：在空白网格上拖拽划出新班次的时间段
type selectingState struct {
	day         string
	startHour   float64
	currentHour float64
}

// interactingState：移动或缩放一个已有班次。
// anchor 是会话开始时班次的快照，initialStart 和 initialEnd
// 是快照时间换算成的小数小时，pointerOffsetHours 记录指针
// 相对班次开始时间的偏移，保证移动时抓取点始终在指针下方
type interactingState struct {
	anchor             *domain.Shift
	kind               Kind
	initialStart       float64
	initialEnd         float64
	initialStartClock  string
	initialEndClock    string
	pointerOffsetHours float64
	candidate          *domain.Shift
}

func (*selectingState) sessionState() {}

func (*interactingState) sessionState() {}
