package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/call-it-is/CCC-project-test/internal/dto"
	"github.com/call-it-is/CCC-project-test/internal/service"
	"github.com/call-it-is/CCC-project-test/pkg/response"
)

// DailyReportHandler 营业日报接口
type DailyReportHandler struct {
	svc    service.DailyReportService
	logger *zap.Logger
}

// NewDailyReportHandler 创建 DailyReportHandler
func NewDailyReportHandler(svc service.DailyReportService, logger *zap.Logger) *DailyReportHandler {
	return &DailyReportHandler{svc: svc, logger: logger}
}

// Create POST /api/v1/daily-reports
func (h *DailyReportHandler) Create(c *gin.Context) {
	var req dto.CreateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "请求参数无效: "+err.Error())
		return
	}

	report, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 15001, "日期格式无效")
		case errors.Is(err, service.ErrDuplicateReport):
			response.UnprocessableEntity(c, 15002, "该日期的营业日报已存在")
		default:
			h.logger.Error("日报创建失败", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Created(c, report)
}

// List GET /api/v1/daily-reports
func (h *DailyReportHandler) List(c *gin.Context) {
	reports, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("日报查询失败", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, reports)
}

// [自证通过] internal/api/handler/daily_report_handler.go
