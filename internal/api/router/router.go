package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mayank0365/SlotSwapper/config"
	"github.com/mayank0365/SlotSwapper/internal/api/handler"
	"github.com/mayank0365/SlotSwapper/internal/api/middleware"
	"github.com/mayank0365/SlotSwapper/pkg/jwt"
)

// Deps 路由依赖
// Blacklist / Limiter 为 nil 时对应功能降级跳过
type Deps struct {
	Config    *config.Config
	Handler   *handler.Handler
	JWT       *jwt.Manager
	Blacklist middleware.TokenChecker
	Limiter   middleware.RateLimiter
	Logger    *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(d Deps) *gin.Engine {
	cfg, h := d.Config, d.Handler

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Check)

	// 换班协商接口限流
	negotiationLimit := middleware.RateLimit(d.Limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(d.JWT, d.Blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 个人日程
			events := authorized.Group("/events")
			{
				events.POST("", h.Event.CreateEvent)
				events.GET("", h.Event.ListEvents)
				events.GET("/export", h.Export.ExportEvents)
				events.PUT("/:id", h.Event.UpdateEvent)
				events.DELETE("/:id", h.Event.DeleteEvent)
			}

			// 换班市场与协商
			authorized.GET("/swappable-slots", h.Swap.ListSwappable)
			authorized.POST("/swap-request", negotiationLimit, h.Swap.CreateSwapRequest)
			authorized.POST("/swap-response/:id", negotiationLimit, h.Swap.RespondSwapRequest)
			authorized.GET("/swap-requests/incoming", h.Swap.ListIncoming)
			authorized.GET("/swap-requests/outgoing", h.Swap.ListOutgoing)
		}
	}

	return r
}
