package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"employee-schedule/server/config"
	"employee-schedule/server/internal/api/handler"
	"employee-schedule/server/internal/api/middleware"
	"employee-schedule/server/internal/model"
	"employee-schedule/server/pkg/jwt"
	"employee-schedule/server/pkg/redis"
)

// 全局请求体上限 1MB
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 密码重置（无需认证，限流防滥用）
		reset := v1.Group("/password-reset")
		reset.Use(middleware.RateLimit(rdb, 5, time.Minute))
		{
			reset.POST("/request", h.PasswordReset.RequestReset)
			reset.POST("/confirm", h.PasswordReset.ConfirmReset)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块（读开放，写仅 admin）
			users := authorized.Group("/users")
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.CreateUser)
				users.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.UpdateUser)
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.DeleteUser)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.ListShifts)
				shifts.GET("/my/calendar.ics", h.Export.MyCalendar)
				shifts.GET("/:id", h.Shift.GetShift)
				shifts.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Shift.CreateShift)
				shifts.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Shift.UpdateShift)
				shifts.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Shift.DeleteShift)
				// 指派仅要求已认证（与既有客户端行为一致）
				shifts.POST("/:id/assign-user", h.Shift.AssignUser)
			}

			// 可用性模块（对象级鉴权在 Service 层）
			availabilities := authorized.Group("/availabilities")
			{
				availabilities.GET("", h.Availability.ListAvailabilities)
				availabilities.GET("/:id", h.Availability.GetAvailability)
				availabilities.POST("", h.Availability.CreateAvailability)
				availabilities.PUT("/:id", h.Availability.UpdateAvailability)
				availabilities.DELETE("/:id", h.Availability.DeleteAvailability)
			}

			// 请假模块
			ptoRequests := authorized.Group("/pto-requests")
			{
				ptoRequests.GET("", h.PTO.ListPTORequests)
				ptoRequests.GET("/:id", h.PTO.GetPTORequest)
				ptoRequests.POST("", h.PTO.CreatePTORequest)
				ptoRequests.PUT("/:id", h.PTO.UpdatePTORequest)
				ptoRequests.DELETE("/:id", h.PTO.DeletePTORequest)
				ptoRequests.POST("/:id/approve", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.PTO.ApprovePTORequest)
				ptoRequests.POST("/:id/reject", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.PTO.RejectPTORequest)
			}

			// 换班模块（接班人校验在 Service 层）
			shiftSwaps := authorized.Group("/shift-swaps")
			{
				shiftSwaps.GET("", h.Swap.ListSwaps)
				shiftSwaps.GET("/:id", h.Swap.GetSwap)
				shiftSwaps.POST("", h.Swap.CreateSwap)
				shiftSwaps.DELETE("/:id", h.Swap.DeleteSwap)
				shiftSwaps.POST("/:id/accept", h.Swap.AcceptSwap)
				shiftSwaps.POST("/:id/reject", h.Swap.RejectSwap)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/shifts", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Export.ExportShifts)
			}
		}
	}

	return r
}
