package main

import (
	"fmt"
	"log"

	"maktab/internal/config"
	"maktab/internal/email/noop"
	"maktab/internal/email/ses"
	"maktab/internal/handler"
	"maktab/internal/pdf"
	"maktab/internal/port"
	"maktab/internal/repository/postgres"
	"maktab/internal/router"
	"maktab/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	clientRepo := postgres.NewClientRepo(db)
	quotationRepo := postgres.NewQuotationRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	applicationRepo := postgres.NewApplicationRepo(db)
	userRepo := postgres.NewUserRepo(db)
	auditRepo := postgres.NewAuditLogRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	renderer := pdf.NewRenderer(cfg.Company)
	limiter := service.NewLoginLimiter(cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutWindow)
	audit := service.NewAuditRecorder(auditRepo)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, limiter, cfg.JWT)
	passwordResetSvc := service.NewPasswordResetService(userRepo, emailSender, cfg.JWT)
	clientSvc := service.NewClientService(clientRepo)
	quotationSvc := service.NewQuotationService(quotationRepo, clientRepo, audit, renderer)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, paymentRepo, clientRepo, auditRepo, renderer, audit)
	paymentSvc := service.NewPaymentService(paymentRepo)
	applicationSvc := service.NewApplicationService(applicationRepo, clientRepo)
	reportSvc := service.NewReportService(reportRepo)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc, passwordResetSvc)
	clientH := handler.NewClientHandler(clientSvc)
	quotationH := handler.NewQuotationHandler(quotationSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, paymentSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	applicationH := handler.NewApplicationHandler(applicationSvc)
	reportH := handler.NewReportHandler(reportSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(
		authSvc,
		cfg.CORS.AllowedOrigins,
		authH,
		clientH,
		quotationH,
		invoiceH,
		paymentH,
		applicationH,
		reportH,
		userH,
		healthH,
	)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
