package router

import (
	"fmt"
	"strings"

	"github.com/meiduo-next/mall/internal/cache"
	"github.com/meiduo-next/mall/internal/config"
	"github.com/meiduo-next/mall/internal/constants"
	publichandlers "github.com/meiduo-next/mall/internal/http/handlers/public"
	"github.com/meiduo-next/mall/internal/logger"
	"github.com/meiduo-next/mall/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	orderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order", redisPrefix),
		WindowSeconds: cfg.Security.OrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OrderRateLimit.MaxRequests,
		Message:       "order too frequently",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 用户接口（身份由上游网关注入）
		user := apiV1.Group("")
		user.Use(UserIdentityMiddleware())
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.UpsertCartItem)
			user.DELETE("/cart/items/:sku_id", publicHandler.DeleteCartItem)
			user.PUT("/cart/selection", publicHandler.UpdateCartSelection)
			user.POST("/cart/merge", publicHandler.MergeCart)
			user.GET("/orders/settlement", publicHandler.GetSettlement)
			user.POST("/orders", RateLimitMiddleware(redisClient, orderRule, KeyByUserID), publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByOrderNo)
			user.POST("/orders/:id/receive", publicHandler.ConfirmReceive)
			user.POST("/orders/:id/comment", publicHandler.FinishComment)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
