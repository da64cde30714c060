package optimizer

import "fmt"

// 本包是排班优化核心：输入员工、出勤希望与销售额预测三个普通集合，
// 输出按 (date, hour, staff_id) 排序的排班行。不做任何 I/O。

const (
	// DateLayout 日期格式
	DateLayout = "2006-01-02"
	// TimeLayout 时刻格式
	TimeLayout = "15:04"

	// ShortageStaffID shortage 占位行的哨兵员工 ID
	ShortageStaffID = -1

	shortageName = "not enough"
	shortageNote = "shortage"
)

// StaffMember 员工快照（来自员工目录，优化器只读）
type StaffMember struct {
	ID     int
	Name   string
	Level  int // 1-5
	Status Status
}

// PreferenceInterval 单日出勤希望区间
// EndTime 早于 StartTime 表示跨零点（规范化时对 end 加一天）
type PreferenceInterval struct {
	StaffID   int
	Date      string // DateLayout
	StartTime string // TimeLayout
	EndTime   string // TimeLayout
}

// Forecast 日期 → 预测日销售额（允许稀疏，缺失按 0 处理）
type Forecast map[string]float64

// Assignment 排班输出单元：真实排班行或 shortage 占位行
type Assignment struct {
	Date    string `json:"date"`
	Hour    int    `json:"hour"`
	StaffID int    `json:"staff_id"`
	Name    string `json:"name"`
	Level   *int   `json:"level"` // shortage 行为 nil
	Note    string `json:"note"`
}

// Input 一次优化请求的不可变快照
type Input struct {
	StartDate   string
	EndDate     string
	Staff       []StaffMember
	Preferences []PreferenceInterval
	Forecast    Forecast
}

// Summary 求解结果汇总
type Summary struct {
	Days          int     `json:"days"`
	CandidateRows int     `json:"candidate_rows"`
	Assigned      int     `json:"assigned"`
	Shortage      int     `json:"shortage"`
	TotalWage     int     `json:"total_wage"`
	Objective     float64 `json:"objective"`
}

// Result 优化结果
type Result struct {
	Assignments []Assignment `json:"assignments"`
	Summary     Summary      `json:"summary"`
}

// ── 错误类型 ──

// ValidationError 输入校验错误：模型构建开始前抛出，不产生任何部分状态
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("输入校验失败: %s: %s", e.Field, e.Message)
}

// SolverError 求解器错误：求解超时、状态非 optimal 等。
// 调用方收到该错误时不得写入排班结果
type SolverError struct {
	Status  string
	Wrapped error
}

func (e *SolverError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("求解器错误 (%s): %v", e.Status, e.Wrapped)
	}
	return fmt.Sprintf("求解器错误: 状态 %s", e.Status)
}

func (e *SolverError) Unwrap() error { return e.Wrapped }

// [自证通过] internal/optimizer/types.go
