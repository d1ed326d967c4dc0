package service

import (
	"context"
	"time"

	"maktab/internal/domain"
	"maktab/internal/port"
)

// ReportService exposes the reporting aggregates and CSV exports.
type ReportService interface {
	RevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error)
	OutstandingInvoices(ctx context.Context) ([]domain.OutstandingInvoiceRow, error)
	PaymentsByMethod(ctx context.Context, from, to time.Time) ([]domain.MethodTotalRow, error)
	ApplicationPipeline(ctx context.Context) ([]domain.ApplicationPipelineRow, error)
	InvoiceRegister(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
	PaymentLedger(ctx context.Context, from, to time.Time) ([]domain.Payment, error)
}

type reportService struct {
	repo port.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo port.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) RevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error) {
	return s.repo.RevenueSummary(ctx, from, to)
}

func (s *reportService) OutstandingInvoices(ctx context.Context) ([]domain.OutstandingInvoiceRow, error) {
	return s.repo.OutstandingInvoices(ctx)
}

func (s *reportService) PaymentsByMethod(ctx context.Context, from, to time.Time) ([]domain.MethodTotalRow, error) {
	return s.repo.PaymentsByMethod(ctx, from, to)
}

func (s *reportService) ApplicationPipeline(ctx context.Context) ([]domain.ApplicationPipelineRow, error) {
	return s.repo.ApplicationPipeline(ctx)
}

func (s *reportService) InvoiceRegister(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	return s.repo.InvoiceRegister(ctx, from, to)
}

func (s *reportService) PaymentLedger(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	return s.repo.PaymentLedger(ctx, from, to)
}
