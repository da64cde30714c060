package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/call-it-is/CCC-project-test/internal/dto"
	"github.com/call-it-is/CCC-project-test/internal/optimizer"
	"github.com/call-it-is/CCC-project-test/internal/service"
	"github.com/call-it-is/CCC-project-test/pkg/response"
)

// ShiftHandler 排班接口
type ShiftHandler struct {
	svc    service.ShiftService
	logger *zap.Logger
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(svc service.ShiftService, logger *zap.Logger) *ShiftHandler {
	return &ShiftHandler{svc: svc, logger: logger}
}

// Run POST /api/v1/shifts
// 对日期范围执行排班优化并替换该范围的旧排班
func (h *ShiftHandler) Run(c *gin.Context) {
	var req dto.RunShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "请求参数无效: "+err.Error())
		return
	}

	result, err := h.svc.Run(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// List GET /api/v1/shifts?start_date=..&end_date=..
func (h *ShiftHandler) List(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		response.BadRequest(c, 40000, "start_date 和 end_date 不能为空")
		return
	}

	rows, err := h.svc.List(c.Request.Context(), start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, rows)
}

// ExportExcel GET /api/v1/shifts/export.xlsx?start_date=..&end_date=..
func (h *ShiftHandler) ExportExcel(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		response.BadRequest(c, 40000, "start_date 和 end_date 不能为空")
		return
	}

	buf, filename, err := h.svc.ExportExcel(c.Request.Context(), start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// ExportCalendar GET /api/v1/shifts/staff/:id/calendar.ics?start_date=..&end_date=..
func (h *ShiftHandler) ExportCalendar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		response.BadRequest(c, 40000, "start_date 和 end_date 不能为空")
		return
	}

	ical, err := h.svc.ExportCalendar(c.Request.Context(), id, start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical))
}

func (h *ShiftHandler) handleError(c *gin.Context, err error) {
	var verr *optimizer.ValidationError
	var serr *optimizer.SolverError

	switch {
	case errors.Is(err, service.ErrInvalidShiftRange):
		response.BadRequest(c, 13001, "排班日期范围无效")
	case errors.Is(err, service.ErrShiftExportEmpty):
		response.NotFound(c, 13002, "该范围内没有排班数据")
	case errors.Is(err, service.ErrStaffNotFound):
		response.NotFound(c, 11001, "员工不存在")
	case errors.As(err, &verr):
		response.UnprocessableEntity(c, 13003, "排班输入校验失败: "+verr.Error())
	case errors.As(err, &serr):
		h.logger.Error("排班求解失败", zap.String("status", serr.Status), zap.Error(err))
		if serr.Status == "timeout" {
			response.Error(c, http.StatusGatewayTimeout, 13004, "排班求解超时")
			return
		}
		response.Error(c, http.StatusInternalServerError, 13004, "排班求解失败")
	default:
		h.logger.Error("排班接口处理失败", zap.Error(err))
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_handler.go
