package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"maktab/internal/domain"
	"maktab/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) RevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error) {
	var s domain.RevenueSummary
	err := r.db.GetContext(ctx, &s, `
		SELECT
			COUNT(*)                          AS invoice_count,
			COALESCE(SUM(total), 0)           AS total_invoiced,
			COALESCE(SUM(amount_paid), 0)     AS total_collected,
			COALESCE(SUM(balance), 0)         AS total_outstanding,
			COALESCE(SUM(vat_amount), 0)      AS total_vat,
			(SELECT COUNT(*) FROM payments WHERE payment_date >= $1 AND payment_date < $2) AS payment_count
		FROM invoices
		WHERE invoice_date >= $1 AND invoice_date < $2`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.RevenueSummary: %w", err)
	}
	s.From = from
	s.To = to
	return &s, nil
}

func (r *reportRepo) OutstandingInvoices(ctx context.Context) ([]domain.OutstandingInvoiceRow, error) {
	var rows []domain.OutstandingInvoiceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT invoice_number, client_name, invoice_date, total, amount_paid, balance, payment_status
		FROM invoices
		WHERE payment_status IN ('unpaid', 'partial')
		ORDER BY invoice_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.OutstandingInvoices: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) PaymentsByMethod(ctx context.Context, from, to time.Time) ([]domain.MethodTotalRow, error) {
	var rows []domain.MethodTotalRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total
		FROM payments
		WHERE payment_date >= $1 AND payment_date < $2
		GROUP BY method
		ORDER BY total DESC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.PaymentsByMethod: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) ApplicationPipeline(ctx context.Context) ([]domain.ApplicationPipelineRow, error) {
	var rows []domain.ApplicationPipelineRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT application_type, status, COUNT(*) AS count
		FROM applications
		GROUP BY application_type, status
		ORDER BY application_type, status`)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ApplicationPipeline: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) InvoiceRegister(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices, `
		SELECT * FROM invoices
		WHERE invoice_date >= $1 AND invoice_date < $2
		ORDER BY invoice_number ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.InvoiceRegister: %w", err)
	}
	return invoices, nil
}

func (r *reportRepo) PaymentLedger(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments, `
		SELECT * FROM payments
		WHERE payment_date >= $1 AND payment_date < $2
		ORDER BY payment_date ASC, created_at ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.PaymentLedger: %w", err)
	}
	return payments, nil
}
