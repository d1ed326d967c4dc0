package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"maktab/internal/domain"
	"maktab/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

// CreateAndRecalculate inserts the payment and rebuilds the parent
// invoice's derived payment fields from the full payment set, in one
// transaction. Recomputing from scratch (rather than incrementing) keeps
// the aggregate consistent even if a payment row was corrected out of band.
func (r *paymentRepo) CreateAndRecalculate(ctx context.Context, p *domain.Payment) (*domain.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.CreateAndRecalculate begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the invoice row so concurrent payments recalculate serially.
	var inv domain.Invoice
	err = tx.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1 FOR UPDATE", p.InvoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("paymentRepo.CreateAndRecalculate lock invoice: %w", err)
	}

	if p.Amount > inv.Balance+0.005 {
		return nil, domain.ErrOverpayment
	}

	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.InvoiceNumber = inv.InvoiceNumber
	if p.ClientName == "" {
		p.ClientName = inv.ClientName
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, invoice_id, invoice_number, client_name, amount, method,
			payment_date, reference, notes, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.InvoiceID, p.InvoiceNumber, p.ClientName, p.Amount, p.Method,
		p.PaymentDate, p.Reference, p.Notes, p.CreatedBy, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.CreateAndRecalculate insert: %w", err)
	}

	var amountPaid float64
	err = tx.GetContext(ctx, &amountPaid,
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1", p.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.CreateAndRecalculate sum: %w", err)
	}

	amountPaid = domain.Round2(amountPaid)
	balance, status := domain.DerivePaymentState(inv.Total, amountPaid)

	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET amount_paid = $1, balance = $2, payment_status = $3, updated_at = $4
		 WHERE id = $5`,
		amountPaid, balance, status, now, p.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.CreateAndRecalculate update invoice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("paymentRepo.CreateAndRecalculate commit: %w", err)
	}

	inv.AmountPaid = amountPaid
	inv.Balance = balance
	inv.PaymentStatus = status
	inv.UpdatedAt = now
	return &inv, nil
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments WHERE invoice_id = $1 ORDER BY payment_date ASC, created_at ASC", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByInvoice: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM payments")
	if err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.List count: %w", err)
	}

	var payments []domain.Payment
	err = r.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments ORDER BY payment_date DESC, created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.List: %w", err)
	}
	return payments, total, nil
}
