package dto

// ── 营业日报模块 DTO ──

// CreateDailyReportRequest 录入单日营业数据
type CreateDailyReportRequest struct {
	Date          string   `json:"date"           binding:"required"` // "2026-03-02"
	IsEvent       bool     `json:"is_event"`
	CustomerCount int      `json:"customer_count" binding:"min=0"`
	Sales         int      `json:"sales"          binding:"min=0"`
	StaffNames    []string `json:"staff_names"`
}

// DailyReportResponse 营业日报响应
type DailyReportResponse struct {
	ID            int      `json:"id"`
	Date          string   `json:"date"`
	Day           string   `json:"day"` // 星期（Monday..Sunday）
	IsEvent       bool     `json:"is_event"`
	CustomerCount int      `json:"customer_count"`
	Sales         int      `json:"sales"`
	StaffNames    []string `json:"staff_names"`
	StaffCount    int      `json:"staff_count"`
}

// [自证通过] internal/dto/daily_report.go
