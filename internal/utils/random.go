package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/schedule"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

// 日历中用来区分员工的颜色
var shiftColors = []string{
	"#f87171", "#fb923c", "#fbbf24", "#4ade80", "#2dd4bf",
	"#60a5fa", "#818cf8", "#a78bfa", "#f472b6", "#fb7185",
}

func GenerateRandomColor() string {
	return shiftColors[rand.Intn(len(shiftColors))]
}

func GenerateRandomEmployee(emailDomainName string) *domain.Employee {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	return &domain.Employee{
		Username: username,
		FullName: fullName,
		Email:    username + "@" + emailDomainName,
		Color:    GenerateRandomColor(),
	}
}

// GenerateRandomShift 在营业时间内随机生成一个对齐到半小时刻度的班次，
// 时长在半小时到四小时之间
func GenerateRandomShift(employeeID int64, date string) *domain.Shift {
	// 以半小时为单位：开始刻度在 [16, 45]，即 08:00 到 22:30
	startSlot := 16 + rand.Intn(30)
	maxSlots := 46 - startSlot
	if maxSlots > 8 {
		maxSlots = 8
	}
	endSlot := startSlot + rand.Intn(maxSlots) + 1

	startTime := fmt.Sprintf("%02d:%02d", startSlot/2, startSlot%2*30)
	endTime := fmt.Sprintf("%02d:%02d", endSlot/2, endSlot%2*30)

	return &domain.Shift{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		Hours:      schedule.Duration(startTime, endTime),
	}
}
