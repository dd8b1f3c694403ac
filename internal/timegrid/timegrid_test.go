package timegrid

import (
	"math"
	"testing"
)

func TestPixelToHourRange(t *testing.T) {
	containerHeight := 916.0

	// 无论 y 在哪里（包括越界），结果都必须落在营业时间段内
	for y := -200.0; y <= containerHeight+200; y += 7 {
		hour := PixelToHour(y, containerHeight)
		if hour < StartHour || hour > EndHour {
			t.Fatalf("PixelToHour(%v) = %v，超出 [%v, %v]", y, hour, StartHour, EndHour)
		}
		if snapped := SnapHour(hour); snapped != hour {
			t.Fatalf("PixelToHour(%v) = %v，没有对齐到半小时刻度", y, hour)
		}
	}
}

func TestPixelToHourMonotonic(t *testing.T) {
	containerHeight := 916.0

	prev := PixelToHour(0, containerHeight)
	for y := 1.0; y <= containerHeight; y++ {
		hour := PixelToHour(y, containerHeight)
		if hour < prev {
			t.Fatalf("PixelToHour 在 y=%v 处不单调：%v < %v", y, hour, prev)
		}
		prev = hour
	}
}

func TestPixelToHourEndpoints(t *testing.T) {
	containerHeight := 916.0

	if hour := PixelToHour(TopPadding, containerHeight); hour != StartHour {
		t.Fatalf("网格顶部应映射到 %v，实际为 %v", StartHour, hour)
	}
	if hour := PixelToHour(containerHeight-BottomPadding, containerHeight); hour != EndHour {
		t.Fatalf("网格底部应映射到 %v，实际为 %v", EndHour, hour)
	}

	// 容器高度非法时退回起始时间
	if hour := PixelToHour(100, 0); hour != StartHour {
		t.Fatalf("容器高度为 0 时应返回 %v，实际为 %v", StartHour, hour)
	}
}

func TestSnapHourIdempotent(t *testing.T) {
	for hour := StartHour; hour <= EndHour; hour += 0.1 {
		once := SnapHour(hour)
		if twice := SnapHour(once); twice != once {
			t.Fatalf("SnapHour 不幂等：SnapHour(%v) = %v，再次对齐得到 %v", hour, once, twice)
		}
	}
}

func TestHourToPercent(t *testing.T) {
	tests := []struct {
		hour float64
		want float64
	}{
		{8, 0},
		{15.5, 50},
		{23, 100},
	}

	for _, tt := range tests {
		if got := HourToPercent(tt.hour); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HourToPercent(%v) = %v，期望 %v", tt.hour, got, tt.want)
		}
	}
}

func TestHourToClock(t *testing.T) {
	tests := []struct {
		hour float64
		want string
	}{
		{8, "08:00"},
		{9.5, "09:30"},
		{22.5, "22:30"},
		{23, "23:00"},
		{-1, "00:00"}, // 防御性收敛
		{25.5, "23:30"},
	}

	for _, tt := range tests {
		if got := HourToClock(tt.hour); got != tt.want {
			t.Errorf("HourToClock(%v) = %q，期望 %q", tt.hour, got, tt.want)
		}
	}
}

func TestClockToHour(t *testing.T) {
	tests := []struct {
		clock   string
		want    float64
		wantErr bool
	}{
		{"08:00", 8, false},
		{"09:30", 9.5, false},
		{"23:00", 23, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"0930", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tt := range tests {
		got, err := ClockToHour(tt.clock)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ClockToHour(%q) 应返回错误", tt.clock)
			}
			continue
		}
		if err != nil {
			t.Errorf("ClockToHour(%q) 返回错误：%v", tt.clock, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ClockToHour(%q) = %v，期望 %v", tt.clock, got, tt.want)
		}
	}
}

func TestSnapClock(t *testing.T) {
	tests := []struct {
		clock string
		want  string
	}{
		{"09:00", "09:00"},
		{"09:10", "09:00"},
		{"09:15", "09:30"},
		{"09:40", "09:30"},
		{"09:50", "10:00"}, // 进位到下一小时
		{"22:45", "23:00"},
		{"23:20", "23:00"}, // 不超过 23:00
		{"23:50", "23:00"},
	}

	for _, tt := range tests {
		got, err := SnapClock(tt.clock)
		if err != nil {
			t.Fatalf("SnapClock(%q) 返回错误：%v", tt.clock, err)
		}
		if got != tt.want {
			t.Errorf("SnapClock(%q) = %q，期望 %q", tt.clock, got, tt.want)
		}

		// 幂等性
		again, err := SnapClock(got)
		if err != nil {
			t.Fatalf("SnapClock(%q) 返回错误：%v", got, err)
		}
		if again != got {
			t.Errorf("SnapClock 不幂等：%q -> %q -> %q", tt.clock, got, again)
		}
	}

	if _, err := SnapClock("25:00"); err == nil {
		t.Error("SnapClock(\"25:00\") 应返回错误")
	}
}
