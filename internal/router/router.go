package router

import (
	"github.com/blues/bookstore/internal/config"
	"github.com/blues/bookstore/internal/handler"
	"github.com/blues/bookstore/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "bookstore-service",
		})
	})

	identity := handler.Identity(db)

	api := r.Group("/api")
	{
		// 买家：购物车
		cartHandler := handler.NewCartHandler(db)
		cart := api.Group("/users/me/cart", identity)
		{
			cart.GET("", cartHandler.Get)
			cart.POST("/items", cartHandler.AddItem)
			cart.PATCH("/items/:itemId", cartHandler.PatchItem)
			cart.DELETE("/items/:itemId", cartHandler.DeleteItem)
			cart.DELETE("", cartHandler.Clear)
		}

		// 买家：订单
		orderHandler := handler.NewOrderHandler(db)
		orders := api.Group("/users/me/orders", identity)
		{
			orders.POST("", orderHandler.Create)
			orders.POST("/from-cart", orderHandler.CreateFromCart)
			orders.GET("", orderHandler.List)
			orders.GET("/:orderId", orderHandler.Detail)
			orders.PATCH("/:orderId/pay", orderHandler.Pay)
		}

		// 卖家：订单与结算
		sellerOrderHandler := handler.NewSellerOrderHandler(db)
		sellerSettlementHandler := handler.NewSellerSettlementHandler(db)
		seller := api.Group("/seller", identity, handler.RequireRole(model.RoleSeller))
		{
			seller.GET("/orders", sellerOrderHandler.List)
			seller.GET("/orders/:orderId", sellerOrderHandler.Detail)
			seller.PATCH("/orders/:orderId/ship", sellerOrderHandler.Ship)

			seller.GET("/settlements", sellerSettlementHandler.List)
			seller.GET("/settlements/:settlementId", sellerSettlementHandler.Detail)
			seller.PATCH("/settlements/:settlementId/confirm", sellerSettlementHandler.Confirm)
		}

		// 管理员：订单、结算与统计
		adminOrderHandler := handler.NewAdminOrderHandler(db)
		adminSettlementHandler := handler.NewAdminSettlementHandler(db)
		adminStatsHandler := handler.NewAdminStatsHandler(db)
		admin := api.Group("/admin", identity, handler.RequireRole(model.RoleAdmin))
		{
			admin.GET("/orders", adminOrderHandler.List)
			admin.PATCH("/orders/:orderId/status", adminOrderHandler.PatchStatus)

			admin.POST("/settlements", adminSettlementHandler.Generate)
			admin.GET("/settlements", adminSettlementHandler.List)
			admin.GET("/settlements/:settlementId", adminSettlementHandler.Detail)
			admin.PATCH("/settlements/:settlementId/approve", adminSettlementHandler.Approve)
			admin.PATCH("/settlements/:settlementId/pay", adminSettlementHandler.Pay)

			admin.GET("/stats/daily-sales", adminStatsHandler.DailySales)
			admin.GET("/stats/top-books", adminStatsHandler.TopBooks)
			admin.GET("/stats/top-sellers", adminStatsHandler.TopSellers)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-User-Id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
