package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"maktab/internal/domain"
)

// ClientRepository defines the contract for client persistence. Listings
// exclude soft-deleted clients; reads by ID do not, so documents created
// before deletion stay resolvable.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Client, int, error)
	FindDuplicate(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	LastNumber(ctx context.Context) (string, error)
}

// QuotationRepository defines the contract for quotation persistence.
type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, offset, limit int) ([]domain.Quotation, int, error)
	Update(ctx context.Context, q *domain.Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	LastNumber(ctx context.Context) (string, error)

	// ConvertToInvoice inserts the invoice and flags the quotation as
	// converted in one transaction. The invoice number is allocated
	// inside the transaction. Returns domain.ErrQuotationConverted when
	// the quotation was already converted.
	ConvertToInvoice(ctx context.Context, quotationID uuid.UUID, inv *domain.Invoice) error
}

// InvoiceRepository defines the contract for invoice persistence.
// Deleting an invoice cascades to its payments and releases any quotation
// linked to it, making the quotation convertible again.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	LastNumber(ctx context.Context) (string, error)
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	// CreateAndRecalculate inserts the payment and recomputes the parent
	// invoice's amount_paid/balance/payment_status from the full payment
	// set, all in one transaction. Returns the updated invoice.
	CreateAndRecalculate(ctx context.Context, p *domain.Payment) (*domain.Invoice, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error)
	List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error)
}

// ApplicationRepository defines the contract for application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, status domain.ApplicationStatus, offset, limit int) ([]domain.Application, int, error)
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	LastNumber(ctx context.Context) (string, error)
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetPasswordResetToken(ctx context.Context, id uuid.UUID, tokenID string) error
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash, expectedTokenID string) error
}

// AuditLogRepository defines the contract for the append-only audit log.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
	ListByRecord(ctx context.Context, tableName string, recordID uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error)
}

// ReportRepository defines the aggregate queries behind the reports.
type ReportRepository interface {
	RevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error)
	OutstandingInvoices(ctx context.Context) ([]domain.OutstandingInvoiceRow, error)
	PaymentsByMethod(ctx context.Context, from, to time.Time) ([]domain.MethodTotalRow, error)
	ApplicationPipeline(ctx context.Context) ([]domain.ApplicationPipelineRow, error)
	InvoiceRegister(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
	PaymentLedger(ctx context.Context, from, to time.Time) ([]domain.Payment, error)
}
