// Package router assembles the gin engine: middleware, health and swagger
// endpoints, and the versioned API routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/wzsamuels/budget-project/internal/docs" // swagger spec registration
	"github.com/wzsamuels/budget-project/internal/handlers"
	"github.com/wzsamuels/budget-project/internal/middleware"
	"github.com/wzsamuels/budget-project/internal/paystub"
	"github.com/wzsamuels/budget-project/internal/services"
)

// Options carries the settings and services the routes depend on.
type Options struct {
	JWTSecret          string
	JWTIssuer          string
	PipelineAPIKey     string
	CORSAllowedOrigins []string

	// SeedDefaultCategories exposes POST /categories/seed.
	SeedDefaultCategories bool

	Paychecks         services.PaycheckServicer
	RecurringExpenses services.RecurringExpenseServicer
	Transactions      services.TransactionServicer
	Categories        services.BudgetCategoryServicer
	Reports           services.ReportServicer
	Audit             services.AuditServicer

	// Extractor defaults to the built-in payroll labels.
	Extractor *paystub.Extractor
}

// New builds the engine.
func New(opts Options) *gin.Engine {
	paycheckHandler := handlers.NewPaycheckHandler(opts.Paychecks, opts.Audit)
	recurringHandler := handlers.NewRecurringExpenseHandler(opts.RecurringExpenses, opts.Audit)
	transactionHandler := handlers.NewTransactionHandler(opts.Transactions, opts.Audit)
	categoryHandler := handlers.NewBudgetCategoryHandler(opts.Categories, opts.Audit)
	reportHandler := handlers.NewReportHandler(opts.Reports)
	paystubHandler := handlers.NewPaystubHandler(opts.Extractor)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSAllowedOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Machine-to-machine routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(opts.PipelineAPIKey))
	pipeline.POST("/paystubs/extract", paystubHandler.ExtractPaystub)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.JWTSecret, opts.JWTIssuer))

	paychecks := protected.Group("/paychecks")
	paychecks.POST("", paycheckHandler.CreatePaycheck)
	paychecks.GET("", paycheckHandler.ListPaychecks)
	paychecks.GET("/:id", paycheckHandler.GetPaycheck)
	paychecks.PUT("/:id", paycheckHandler.UpdatePaycheck)
	paychecks.DELETE("/:id", paycheckHandler.DeletePaycheck)
	paychecks.POST("/:id/project", paycheckHandler.ProjectPaycheck)

	protected.POST("/paystubs/extract", paystubHandler.ExtractPaystub)

	recurring := protected.Group("/recurring-expenses")
	recurring.POST("", recurringHandler.CreateRecurringExpense)
	recurring.GET("", recurringHandler.ListRecurringExpenses)
	recurring.GET("/:id", recurringHandler.GetRecurringExpense)
	recurring.PUT("/:id", recurringHandler.UpdateRecurringExpense)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringExpense)
	recurring.POST("/:id/stop", recurringHandler.StopRecurringExpense)
	recurring.POST("/:id/skip", recurringHandler.SkipRecurringExpense)
	recurring.POST("/:id/pay", recurringHandler.MarkRecurringExpensePaid)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	if opts.SeedDefaultCategories {
		categories.POST("/seed", categoryHandler.SeedDefaultCategories)
	}
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.GetDashboard)
	reports.GET("/annual.xlsx", reportHandler.ExportAnnualReport)

	return router
}
