package interaction

import (
	"testing"

	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/timegrid"
)

// 测试用的网格几何：每小时 60 像素，900 像素加上下留白
const testContainerHeight = 15*60 + timegrid.TopPadding + timegrid.BottomPadding

// yFor 返回某个小时在测试网格中对应的纵向偏移
func yFor(hour float64) float64 {
	return timegrid.TopPadding + (hour-timegrid.StartHour)*60
}

func eventAt(hour float64) PointerEvent {
	return PointerEvent{Y: yFor(hour), ContainerHeight: testContainerHeight}
}

// fakeBinder 模拟全局指针释放事件的订阅
type fakeBinder struct {
	handler func()
	binds   int
	cancels int
}

func (b *fakeBinder) Bind(handler func()) func() {
	b.binds++
	b.handler = handler
	return func() {
		b.cancels++
		b.handler = nil
	}
}

// release 模拟指针在任意位置（包括网格外）松开
func (b *fakeBinder) release(t *testing.T) {
	t.Helper()
	if b.handler == nil {
		t.Fatal("会话没有订阅指针释放事件")
	}
	b.handler()
}

type recorder struct {
	addCalls  []addCall
	saveCalls []*domain.Shift
}

type addCall struct {
	date      string
	startTime *string
	endTime   *string
}

func newController(readOnly bool) (*Controller, *recorder, *fakeBinder) {
	rec := &recorder{}
	binder := &fakeBinder{}
	c := NewController(Callbacks{
		OnAddShift: func(date string, startTime *string, endTime *string) {
			rec.addCalls = append(rec.addCalls, addCall{date, startTime, endTime})
		},
		OnSaveShift: func(shift *domain.Shift) {
			rec.saveCalls = append(rec.saveCalls, shift)
		},
	}, binder, readOnly)
	return c, rec, binder
}

func testShift() *domain.Shift {
	return &domain.Shift{
		ID:         42,
		EmployeeID: 7,
		Date:       "2024-01-10",
		StartTime:  "09:00",
		EndTime:    "11:00",
		Hours:      2,
	}
}

func TestCreateDrag(t *testing.T) {
	c, rec, binder := newController(false)

	c.PointerDown(Target{Day: "2024-01-10"}, eventAt(9))
	if !c.Active() {
		t.Fatal("按下后应存在活动会话")
	}
	c.PointerMove(eventAt(11))
	binder.release(t)

	if c.Active() {
		t.Fatal("释放后会话应被清除")
	}
	if len(rec.addCalls) != 1 {
		t.Fatalf("OnAddShift 被调用 %d 次，期望 1 次", len(rec.addCalls))
	}
	call := rec.addCalls[0]
	if call.date != "2024-01-10" {
		t.Errorf("日期 = %q，期望 2024-01-10", call.date)
	}
	if call.startTime == nil || *call.startTime != "09:00" {
		t.Errorf("开始时间 = %v，期望 09:00", call.startTime)
	}
	if call.endTime == nil || *call.endTime != "11:00" {
		t.Errorf("结束时间 = %v，期望 11:00", call.endTime)
	}
	if binder.binds != 1 || binder.cancels != 1 {
		t.Errorf("订阅/取消次数 = %d/%d，期望 1/1", binder.binds, binder.cancels)
	}
}

func TestCreateDragUpward(t *testing.T) {
	c, rec, binder := newController(false)

	// 向上拖拽时两端交换
	c.PointerDown(Target{Day: "2024-01-10"}, eventAt(11))
	c.PointerMove(eventAt(9))
	binder.release(t)

	call := rec.addCalls[0]
	if *call.startTime != "09:00" || *call.endTime != "11:00" {
		t.Fatalf("时间段 = %s-%s，期望 09:00-11:00", *call.startTime, *call.endTime)
	}
}

func TestClickEmitsBlankAdd(t *testing.T) {
	c, rec, binder := newController(false)

	c.PointerDown(Target{Day: "2024-01-10"}, eventAt(9))
	binder.release(t)

	if len(rec.addCalls) != 1 {
		t.Fatalf("OnAddShift 被调用 %d 次，期望 1 次", len(rec.addCalls))
	}
	call := rec.addCalls[0]
	if call.startTime != nil || call.endTime != nil {
		t.Fatal("单击时不应携带时间")
	}
	if call.date != "2024-01-10" {
		t.Errorf("日期 = %q，期望 2024-01-10", call.date)
	}
}

func TestMovePreservesDuration(t *testing.T) {
	c, rec, binder := newController(false)
	shift := testShift() // 09:00-11:00，时长 2 小时

	// 抓在班次中间 09:30 处
	c.PointerDown(Target{Day: shift.Date, Shift: shift, Region: RegionBody}, eventAt(9.5))
	c.PointerMove(eventAt(14.5))

	candidate, ok := c.Candidate()
	if !ok {
		t.Fatal("移动会话应有实时候选班次")
	}
	if candidate.StartTime != "14:00" || candidate.EndTime != "16:00" {
		t.Fatalf("候选时间段 = %s-%s，期望 14:00-16:00", candidate.StartTime, candidate.EndTime)
	}
	if candidate.Hours != 2 {
		t.Errorf("候选时长 = %v，期望 2", candidate.Hours)
	}

	binder.release(t)
	if len(rec.saveCalls) != 1 {
		t.Fatalf("OnSaveShift 被调用 %d 次，期望 1 次", len(rec.saveCalls))
	}
	saved := rec.saveCalls[0]
	if saved.ID != shift.ID || saved.EmployeeID != shift.EmployeeID || saved.Date != shift.Date {
		t.Error("提交的候选班次应保留原班次的标识字段")
	}
}

func TestMoveClampsAtWindowEdges(t *testing.T) {
	c, _, binder := newController(false)
	shift := testShift()

	c.PointerDown(Target{Day: shift.Date, Shift: shift, Region: RegionBody}, eventAt(9))

	// 拖到网格最底部，班次整体贴住 23:00 且时长不变
	c.PointerMove(PointerEvent{Y: testContainerHeight + 100, ContainerHeight: testContainerHeight})
	candidate, _ := c.Candidate()
	if candidate.StartTime != "21:00" || candidate.EndTime != "23:00" {
		t.Fatalf("底部收敛结果 = %s-%s，期望 21:00-23:00", candidate.StartTime, candidate.EndTime)
	}

	// 拖到网格最顶部
	c.PointerMove(PointerEvent{Y: -100, ContainerHeight: testContainerHeight})
	candidate, _ = c.Candidate()
	if candidate.StartTime != "08:00" || candidate.EndTime != "10:00" {
		t.Fatalf("顶部收敛结果 = %s-%s，期望 08:00-10:00", candidate.StartTime, candidate.EndTime)
	}

	binder.release(t)
}

func TestResizeTopRespectsMinimumDuration(t *testing.T) {
	c, rec, binder := newController(false)
	shift := &domain.Shift{ID: 1, EmployeeID: 7, Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00", Hours: 1}

	c.PointerDown(Target{Day: shift.Date, Shift: shift, Region: RegionTop}, eventAt(9))

	// 顶部把手向下拖过结束时间，开始时间停在 end - 0.5
	c.PointerMove(eventAt(10.5))
	candidate, _ := c.Candidate()
	if candidate.StartTime != "09:30" || candidate.EndTime != "10:00" {
		t.Fatalf("候选时间段 = %s-%s，期望 09:30-10:00", candidate.StartTime, candidate.EndTime)
	}

	// 向上拖则正常延长
	c.PointerMove(eventAt(8))
	candidate, _ = c.Candidate()
	if candidate.StartTime != "08:00" || candidate.EndTime != "10:00" {
		t.Fatalf("候选时间段 = %s-%s，期望 08:00-10:00", candidate.StartTime, candidate.EndTime)
	}

	binder.release(t)
	if len(rec.saveCalls) != 1 {
		t.Fatalf("OnSaveShift 被调用 %d 次，期望 1 次", len(rec.saveCalls))
	}
}

func TestResizeBottomRespectsMinimumDuration(t *testing.T) {
	c, _, binder := newController(false)
	shift := &domain.Shift{ID: 1, EmployeeID: 7, Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00", Hours: 1}

	c.PointerDown(Target{Day: shift.Date, Shift: shift, Region: RegionBottom}, eventAt(10))

	// 底部把手向上拖过开始时间，结束时间停在 start + 0.5
	c.PointerMove(eventAt(8))
	candidate, _ := c.Candidate()
	if candidate.StartTime != "09:00" || candidate.EndTime != "09:30" {
		t.Fatalf("候选时间段 = %s-%s，期望 09:00-09:30", candidate.StartTime, candidate.EndTime)
	}

	binder.release(t)
}

func TestUnchangedInteractionIsDiscarded(t *testing.T) {
	c, rec, binder := newController(false)
	shift := testShift()

	c.PointerDown(Target{Day: shift.Date, Shift: shift, Region: RegionBody}, eventAt(9.5))
	binder.release(t)

	if len(rec.saveCalls) != 0 {
		t.Fatal("时间没有变化时不应触发 OnSaveShift")
	}
	if len(rec.addCalls) != 0 {
		t.Fatal("移动会话不应触发 OnAddShift")
	}
	if binder.cancels != 1 {
		t.Fatal("放弃会话时也必须取消释放订阅")
	}
}

func TestReadOnlyRejectsSessions(t *testing.T) {
	c, rec, binder := newController(true)

	c.PointerDown(Target{Day: "2024-01-10"}, eventAt(9))
	if c.Active() {
		t.Fatal("只读模式下不应开启会话")
	}
	c.PointerDown(Target{Day: "2024-01-10", Shift: testShift(), Region: RegionBody}, eventAt(9.5))
	if c.Active() {
		t.Fatal("只读模式下不应开启移动会话")
	}
	if binder.binds != 0 {
		t.Fatal("只读模式下不应订阅释放事件")
	}

	// 解除只读后恢复正常
	c.SetReadOnly(false)
	c.PointerDown(Target{Day: "2024-01-10"}, eventAt(9))
	if !c.Active() {
		t.Fatal("解除只读后应能开启会话")
	}
	binder.release(t)
	if len(rec.addCalls) != 1 {
		t.Fatal("解除只读后的会话应正常提交")
	}
}

func TestNestedPointerDownIgnored(t *testing.T) {
	c, rec, binder := newController(false)

	c.PointerDown(Target{Day: "2024-01-10"}, eventAt(9))
	// 会话进行中的再次按下被忽略
	c.PointerDown(Target{Day: "2024-01-11"}, eventAt(12))

	day, startHour, _, ok := c.Selection()
	if !ok || day != "2024-01-10" || startHour != 9 {
		t.Fatal("嵌套按下不应覆盖已有会话")
	}
	if binder.binds != 1 {
		t.Fatalf("订阅次数 = %d，期望 1", binder.binds)
	}

	binder.release(t)
	if len(rec.addCalls) != 1 {
		t.Fatal("原会话应正常提交")
	}
}

func TestPointerMoveWithoutSession(t *testing.T) {
	c, rec, _ := newController(false)

	// 没有会话时移动和释放都应是无害的空操作
	c.PointerMove(eventAt(10))
	c.PointerUp()

	if c.Active() || len(rec.addCalls) != 0 || len(rec.saveCalls) != 0 {
		t.Fatal("空闲状态下的指针事件不应产生任何效果")
	}
}

func TestSelectionUpdatesOnMove(t *testing.T) {
	c, _, binder := newController(false)

	c.PointerDown(Target{Day: "2024-01-10"}, eventAt(9))
	c.PointerMove(eventAt(10.5))

	_, startHour, currentHour, ok := c.Selection()
	if !ok {
		t.Fatal("创建会话应能读取选区")
	}
	if startHour != 9 || currentHour != 10.5 {
		t.Fatalf("选区 = [%v, %v]，期望 [9, 10.5]", startHour, currentHour)
	}

	binder.release(t)
}
