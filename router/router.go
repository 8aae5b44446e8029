package router

import (
	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, email *service.EmailService) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API v1，全部需要 JWT 认证
	v1 := r.Group("/api/v1")
	v1.Use(
		middleware.JWTAuth(),
		api.ProvisionUser(),
		middleware.RateLimit(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
	)
	{
		accountHandler := api.NewAccountHandler()
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", accountHandler.List)
			accounts.POST("", accountHandler.Create)
			accounts.GET("/:id", accountHandler.Get)
			accounts.PUT("/:id", accountHandler.Update)
			accounts.DELETE("/:id", accountHandler.Delete)
			accounts.POST("/:id/default", accountHandler.SetDefault)
			accounts.POST("/:id/archive", accountHandler.Archive)
			accounts.POST("/:id/reconcile", accountHandler.Reconcile)
			accounts.GET("/:id/summary", accountHandler.Summary)
		}

		categoryHandler := api.NewCategoryHandler()
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:id", categoryHandler.Get)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
			categories.GET("/:id/analysis", categoryHandler.Analysis)
		}

		transactionHandler := api.NewTransactionHandler()
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("", transactionHandler.Create)
			transactions.GET("/:id", transactionHandler.Get)
			transactions.PUT("/:id", transactionHandler.Update)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		// 周期交易
		recurringHandler := api.NewRecurringHandler()
		recurring := v1.Group("/recurring")
		{
			recurring.GET("", recurringHandler.List)
			recurring.POST("", recurringHandler.Create)
			recurring.GET("/:id", recurringHandler.Get)
			recurring.PUT("/:id", recurringHandler.Update)
			recurring.DELETE("/:id", recurringHandler.Delete)
			recurring.POST("/:id/pause", recurringHandler.Pause)
			recurring.POST("/:id/resume", recurringHandler.Resume)
			recurring.POST("/:id/cancel", recurringHandler.Cancel)
		}

		budgetHandler := api.NewBudgetHandler()
		budgets := v1.Group("/budgets")
		{
			budgets.GET("", budgetHandler.List)
			budgets.POST("", budgetHandler.Create)
			budgets.GET("/:id", budgetHandler.Get)
			budgets.PUT("/:id", budgetHandler.Update)
			budgets.DELETE("/:id", budgetHandler.Delete)
			budgets.GET("/:id/progress", budgetHandler.Progress)
		}

		goalHandler := api.NewGoalHandler(email)
		goals := v1.Group("/goals")
		{
			goals.GET("", goalHandler.List)
			goals.POST("", goalHandler.Create)
			goals.GET("/:id", goalHandler.Get)
			goals.PUT("/:id", goalHandler.Update)
			goals.DELETE("/:id", goalHandler.Delete)
			goals.POST("/:id/contribute", goalHandler.Contribute)
		}

		// 概览、报表、图表
		reportHandler := api.NewReportHandler()
		v1.GET("/dashboard", reportHandler.Dashboard)
		reports := v1.Group("/reports")
		{
			reports.GET("/expense-summary", reportHandler.ExpenseSummary)
			reports.GET("/income-summary", reportHandler.IncomeSummary)
			reports.GET("/cash-flow", reportHandler.CashFlow)
			reports.GET("/monthly-trend", reportHandler.MonthlyTrend)
		}
		charts := v1.Group("/charts")
		{
			charts.GET("/transactions", reportHandler.TransactionChart)
			charts.GET("/categories", reportHandler.CategoryChart)
			charts.GET("/budget-progress", reportHandler.BudgetChart)
		}

		settingsHandler := api.NewSettingsHandler(email)
		v1.GET("/settings", settingsHandler.Get)
		v1.PUT("/settings", settingsHandler.Update)
		v1.POST("/settings/test-email", settingsHandler.TestEmail)

		// 导出相关
		exportHandler := api.NewExportHandler()
		export := v1.Group("/export")
		{
			export.GET("/transactions", exportHandler.Transactions)
			export.GET("/report/:type", exportHandler.Report)
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
