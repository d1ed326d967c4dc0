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

type quotationRepo struct {
	db *sqlx.DB
}

// NewQuotationRepo creates a new PostgreSQL-backed QuotationRepository.
func NewQuotationRepo(db *sqlx.DB) port.QuotationRepository {
	return &quotationRepo{db: db}
}

func (r *quotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	q.ID = uuid.New()
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	query := `INSERT INTO quotations (id, quotation_number, client_id, client_name, items,
		include_vat, subtotal, vat_amount, total, status, notes, converted_to_invoice, invoice_id,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.QuotationNumber, q.ClientID, q.ClientName, q.Items,
		q.IncludeVAT, q.Subtotal, q.VATAmount, q.Total, q.Status, q.Notes,
		q.ConvertedToInvoice, q.InvoiceID, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quotationRepo.Create: %w", err)
	}
	return nil
}

func (r *quotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var q domain.Quotation
	err := r.db.GetContext(ctx, &q, "SELECT * FROM quotations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("quotationRepo.GetByID: %w", err)
	}
	return &q, nil
}

func (r *quotationRepo) List(ctx context.Context, offset, limit int) ([]domain.Quotation, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM quotations")
	if err != nil {
		return nil, 0, fmt.Errorf("quotationRepo.List count: %w", err)
	}

	var quotations []domain.Quotation
	err = r.db.SelectContext(ctx, &quotations,
		"SELECT * FROM quotations ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("quotationRepo.List: %w", err)
	}
	return quotations, total, nil
}

func (r *quotationRepo) Update(ctx context.Context, q *domain.Quotation) error {
	q.UpdatedAt = time.Now().UTC()
	query := `UPDATE quotations SET client_id = $1, client_name = $2, items = $3, include_vat = $4,
		subtotal = $5, vat_amount = $6, total = $7, status = $8, notes = $9, updated_at = $10
		WHERE id = $11 AND converted_to_invoice = false`
	result, err := r.db.ExecContext(ctx, query,
		q.ClientID, q.ClientName, q.Items, q.IncludeVAT,
		q.Subtotal, q.VATAmount, q.Total, q.Status, q.Notes, q.UpdatedAt, q.ID)
	if err != nil {
		return fmt.Errorf("quotationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quotationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM quotations WHERE id = $1 AND converted_to_invoice = false", id)
	if err != nil {
		return fmt.Errorf("quotationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quotationRepo) LastNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.GetContext(ctx, &number,
		"SELECT quotation_number FROM quotations ORDER BY created_at DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("quotationRepo.LastNumber: %w", err)
	}
	return number, nil
}

// ConvertToInvoice materializes a quotation into an invoice. The invoice
// insert and the quotation's converted flag are committed atomically so a
// quotation can never end up flagged without its invoice, or vice versa.
// The conditional UPDATE is the idempotency gate: a second conversion
// attempt matches zero rows and rolls back.
func (r *quotationRepo) ConvertToInvoice(ctx context.Context, quotationID uuid.UUID, inv *domain.Invoice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("quotationRepo.ConvertToInvoice begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Serialize conversions of the same quotation.
	var converted bool
	err = tx.GetContext(ctx, &converted,
		"SELECT converted_to_invoice FROM quotations WHERE id = $1 FOR UPDATE", quotationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("quotationRepo.ConvertToInvoice lock: %w", err)
	}
	if converted {
		return domain.ErrQuotationConverted
	}

	// Allocate the invoice number inside the transaction.
	var last string
	err = tx.GetContext(ctx, &last,
		"SELECT invoice_number FROM invoices ORDER BY created_at DESC LIMIT 1")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("quotationRepo.ConvertToInvoice last number: %w", err)
	}

	now := time.Now().UTC()
	inv.ID = uuid.New()
	inv.InvoiceNumber = domain.NextInvoiceNumber(last, now)
	inv.QuotationID = &quotationID
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = now
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (id, invoice_number, quotation_id, client_id, client_name, items,
			include_vat, subtotal, vat_amount, total, amount_paid, balance, payment_status,
			invoice_date, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		inv.ID, inv.InvoiceNumber, inv.QuotationID, inv.ClientID, inv.ClientName, inv.Items,
		inv.IncludeVAT, inv.Subtotal, inv.VATAmount, inv.Total, inv.AmountPaid, inv.Balance,
		inv.PaymentStatus, inv.InvoiceDate, inv.Notes, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quotationRepo.ConvertToInvoice insert invoice: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE quotations SET converted_to_invoice = true, invoice_id = $1, status = $2, updated_at = $3
		 WHERE id = $4 AND converted_to_invoice = false`,
		inv.ID, domain.QuotationStatusAccepted, now, quotationID)
	if err != nil {
		return fmt.Errorf("quotationRepo.ConvertToInvoice flag quotation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuotationConverted
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("quotationRepo.ConvertToInvoice commit: %w", err)
	}
	return nil
}
