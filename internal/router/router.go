package router

import (
	"github.com/gin-gonic/gin"

	"maktab/internal/domain"
	"maktab/internal/handler"
	"maktab/internal/middleware"
	"maktab/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	clientH *handler.ClientHandler,
	quotationH *handler.QuotationHandler,
	invoiceH *handler.InvoiceHandler,
	paymentH *handler.PaymentHandler,
	applicationH *handler.ApplicationHandler,
	reportH *handler.ReportHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/forgot-password", authH.ForgotPassword)
	auth.POST("/reset-password", authH.ResetPassword)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)
	protected.POST("/auth/logout", authH.Logout)
	protected.POST("/auth/change-password", authH.ChangePassword)

	// Client routes
	clients := protected.Group("/clients")
	clients.POST("", clientH.Create)
	clients.GET("", clientH.List)
	clients.GET("/:id", clientH.GetByID)
	clients.PUT("/:id", clientH.Update)
	clients.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), clientH.Delete)

	// Quotation routes
	quotations := protected.Group("/quotations")
	quotations.POST("", quotationH.Create)
	quotations.GET("", quotationH.List)
	quotations.GET("/:id", quotationH.GetByID)
	quotations.PUT("/:id", quotationH.Update)
	quotations.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), quotationH.Delete)
	quotations.POST("/:id/convert", quotationH.Convert)
	quotations.GET("/:id/pdf", quotationH.PDF)

	// Invoice routes
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), invoiceH.Delete)
	invoices.GET("/:id/pdf", invoiceH.PDF)
	invoices.GET("/:id/audit", invoiceH.History)
	invoices.POST("/:id/payments", invoiceH.RecordPayment)
	invoices.GET("/:id/payments", invoiceH.ListPayments)

	// Flat payment ledger
	protected.POST("/payments", paymentH.Record)
	protected.GET("/payments", paymentH.List)

	// Application workflow routes
	applications := protected.Group("/applications")
	applications.POST("", applicationH.Create)
	applications.GET("", applicationH.List)
	applications.GET("/types/:type/steps", applicationH.Steps)
	applications.GET("/:id", applicationH.GetByID)
	applications.PUT("/:id", applicationH.Update)
	applications.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), applicationH.Delete)
	applications.POST("/:id/steps", applicationH.CompleteStep)
	applications.POST("/:id/complete", applicationH.Complete)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/summary", reportH.RevenueSummary)
	reports.GET("/outstanding", reportH.OutstandingInvoices)
	reports.GET("/payments-by-method", reportH.PaymentsByMethod)
	reports.GET("/applications", reportH.ApplicationPipeline)
	reports.GET("/invoices.csv", reportH.ExportInvoices)
	reports.GET("/payments.csv", reportH.ExportPayments)

	// User management (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	users.POST("", userH.Create)
	users.GET("", userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", userH.Delete)

	return r
}
