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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = now
	}

	query := `INSERT INTO invoices (id, invoice_number, quotation_id, client_id, client_name, items,
		include_vat, subtotal, vat_amount, total, amount_paid, balance, payment_status,
		invoice_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.QuotationID, inv.ClientID, inv.ClientName, inv.Items,
		inv.IncludeVAT, inv.Subtotal, inv.VATAmount, inv.Total, inv.AmountPaid, inv.Balance,
		inv.PaymentStatus, inv.InvoiceDate, inv.Notes, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error) {
	where := "TRUE"
	args := []interface{}{}
	if status != "" {
		where = "payment_status = $1"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		fmt.Sprintf("SELECT * FROM invoices WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
			where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

// Update rewrites the invoice's editable fields and its recomputed totals.
// Payment-derived fields are not touched here; they belong to the payment
// recalculation path.
func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	query := `UPDATE invoices SET client_id = $1, client_name = $2, items = $3, include_vat = $4,
		subtotal = $5, vat_amount = $6, total = $7, balance = $8, payment_status = $9,
		invoice_date = $10, notes = $11, updated_at = $12
		WHERE id = $13`
	result, err := r.db.ExecContext(ctx, query,
		inv.ClientID, inv.ClientName, inv.Items, inv.IncludeVAT,
		inv.Subtotal, inv.VATAmount, inv.Total, inv.Balance, inv.PaymentStatus,
		inv.InvoiceDate, inv.Notes, inv.UpdatedAt, inv.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the invoice; the payments FK is ON DELETE CASCADE, so the
// payment rows go with it. An invoice born from a quotation conversion is
// unlinked first and the quotation released for re-conversion, in the same
// transaction, so the quotation is never left pointing at a dead invoice.
func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`UPDATE quotations SET converted_to_invoice = false, invoice_id = NULL, updated_at = $1
		 WHERE invoice_id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete release quotation: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Delete commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) LastNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.GetContext(ctx, &number,
		"SELECT invoice_number FROM invoices ORDER BY created_at DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("invoiceRepo.LastNumber: %w", err)
	}
	return number, nil
}
