package interaction

import (
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/timegrid"
)

// Callbacks 是控制器对宿主界面的回调约定。
// OnAddShift 在完成一次创建拖拽或单击时触发，单击时两个时间为 nil，
// 宿主应打开空白表单；OnSaveShift 在移动或缩放改变了时间后触发
type Callbacks struct {
	OnAddShift  func(date string, startTime *string, endTime *string)
	OnSaveShift func(shift *domain.Shift)
}

// ReleaseBinder 把全局的指针释放事件建模为显式的订阅：
// 会话开始时订阅，会话结束（提交或放弃）时必须取消，
// 这样即使指针移出网格，松开时拖拽也能正常结束
type ReleaseBinder interface {
	Bind(handler func()) (cancel func())
}

// Controller 驱动日历网格上的拖拽交互。
// 同一时刻最多只有一个会话，会话进行中按下指针会被忽略，
// 只读模式下拒绝开启任何新会话
type Controller struct {
	callbacks Callbacks
	binder    ReleaseBinder
	readOnly  bool

	state   sessionState // nil 表示 Idle
	release func()
}

func NewController(callbacks Callbacks, binder ReleaseBinder, readOnly bool) *Controller {
	return &Controller{
		callbacks: callbacks,
		binder:    binder,
		readOnly:  readOnly,
	}
}

func (c *Controller) SetReadOnly(readOnly bool) {
	c.readOnly = readOnly
}

// Active 报告当前是否有进行中的会话
func (c *Controller) Active() bool {
	return c.state != nil
}

// Candidate 返回移动或缩放会话中的实时候选班次，供宿主渲染预览
func (c *Controller) Candidate() (*domain.Shift, bool) {
	s, ok := c.state.(*interactingState)
	if !ok {
		return nil, false
	}
	return s.candidate, true
}

// Selection 返回创建会话当前划出的时间段，供宿主渲染选区
func (c *Controller) Selection() (day string, startHour float64, currentHour float64, ok bool) {
	s, isSelecting := c.state.(*selectingState)
	if !isSelecting {
		return "", 0, 0, false
	}
	return s.day, s.startHour, s.currentHour, true
}

// PointerDown 处理指针按下。按在空白网格上开启创建会话，
// 按在班次块上根据命中的子区域开启移动或缩放会话
func (c *Controller) PointerDown(target Target, ev PointerEvent) {
	if c.state != nil || c.readOnly {
		return
	}

	hour := timegrid.PixelToHour(ev.Y, ev.ContainerHeight)

	if target.Shift == nil {
		c.state = &selectingState{
			day:         target.Day,
			startHour:   hour,
			currentHour: hour,
		}
		c.bindRelease()
		return
	}

	initialStart, err := timegrid.ClockToHour(target.Shift.StartTime)
	if err != nil {
		return
	}
	initialEnd, err := timegrid.ClockToHour(target.Shift.EndTime)
	if err != nil {
		return
	}

	kind := KindMove
	switch target.Region {
	case RegionTop:
		kind = KindResizeTop
	case RegionBottom:
		kind = KindResizeBottom
	}

	s := &interactingState{
		anchor:            target.Shift,
		kind:              kind,
		initialStart:      initialStart,
		initialEnd:        initialEnd,
		initialStartClock: timegrid.HourToClock(initialStart),
		initialEndClock:   timegrid.HourToClock(initialEnd),
	}
	if kind == KindMove {
		// 记录抓取点相对班次开始时间的偏移
		s.pointerOffsetHours = hour - initialStart
	}
	s.rebuildCandidate(initialStart, initialEnd)

	c.state = s
	c.bindRelease()
}

// PointerMove 处理指针移动，重新计算对齐后的指针时间并更新会话
func (c *Controller) PointerMove(ev PointerEvent) {
	hour := timegrid.PixelToHour(ev.Y, ev.ContainerHeight)

	switch s := c.state.(type) {
	case *selectingState:
		s.currentHour = hour
	case *interactingState:
		start, end := s.nextRange(hour)
		s.rebuildCandidate(start, end)
	}
}

// PointerUp 处理全局的指针释放，提交或放弃当前会话。
// 无论走哪条路径，会话都会被清除、释放订阅都会被取消
func (c *Controller) PointerUp() {
	state := c.state
	c.state = nil
	c.unbindRelease()

	switch s := state.(type) {
	case *selectingState:
		lo, hi := s.startHour, s.currentHour
		if hi < lo {
			lo, hi = hi, lo
		}

		if hi-lo >= schedule.MinShiftHours {
			startClock := timegrid.HourToClock(lo)
			endClock := timegrid.HourToClock(hi)
			c.callbacks.OnAddShift(s.day, &startClock, &endClock)
			return
		}

		// 零距离拖拽等价于单击，让宿主打开空白表单
		c.callbacks.OnAddShift(s.day, nil, nil)
	case *interactingState:
		if s.candidate.StartTime == s.initialStartClock && s.candidate.EndTime == s.initialEndClock {
			return
		}
		c.callbacks.OnSaveShift(s.candidate)
	}
}

// nextRange 根据拖拽方式算出新的开始和结束时间（小数小时），
// 开始收敛到 [8, 22.5]、结束收敛到 [8.5, 23]，且结束不早于开始加半小时
func (s *interactingState) nextRange(pointerHour float64) (float64, float64) {
	switch s.kind {
	case KindResizeTop:
		start := pointerHour
		if start > s.initialEnd-schedule.MinShiftHours {
			start = s.initialEnd - schedule.MinShiftHours
		}
		return clamp(start, timegrid.StartHour, timegrid.EndHour-schedule.MinShiftHours), s.initialEnd
	case KindResizeBottom:
		end := pointerHour
		if end < s.initialStart+schedule.MinShiftHours {
			end = s.initialStart + schedule.MinShiftHours
		}
		return s.initialStart, clamp(end, timegrid.StartHour+schedule.MinShiftHours, timegrid.EndHour)
	default:
		// 移动时保持班次时长不变，整体收敛到营业时间段内
		duration := s.initialEnd - s.initialStart
		start := clamp(pointerHour-s.pointerOffsetHours, timegrid.StartHour, timegrid.EndHour-duration)
		return start, start + duration
	}
}

func (s *interactingState) rebuildCandidate(startHour, endHour float64) {
	startClock := timegrid.HourToClock(startHour)
	endClock := timegrid.HourToClock(endHour)

	s.candidate = &domain.Shift{
		ID:         s.anchor.ID,
		EmployeeID: s.anchor.EmployeeID,
		Date:       s.anchor.Date,
		StartTime:  startClock,
		EndTime:    endClock,
		Hours:      schedule.Duration(startClock, endClock),
		Version:    s.anchor.Version,
	}
}

func (c *Controller) bindRelease() {
	if c.binder != nil {
		c.release = c.binder.Bind(c.PointerUp)
	}
}

func (c *Controller) unbindRelease() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

func clamp(v float64, lo float64, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
