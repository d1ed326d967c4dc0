package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/port"
)

// PaymentInput is the DTO for recording a payment.
type PaymentInput struct {
	InvoiceID   uuid.UUID            `json:"invoice_id"`
	Amount      float64              `json:"amount" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"required"`
	PaymentDate *time.Time           `json:"payment_date"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
}

// PaymentResult pairs the recorded payment with the invoice's refreshed
// derived fields.
type PaymentResult struct {
	Payment *domain.Payment `json:"payment"`
	Invoice *domain.Invoice `json:"invoice"`
}

// PaymentService defines the payment recording contract. Recording a
// payment is the sole mutator of the parent invoice's payment state.
type PaymentService interface {
	Record(ctx context.Context, input PaymentInput, createdBy string) (*PaymentResult, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error)
	List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error)
}

type paymentService struct {
	repo port.PaymentRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo port.PaymentRepository) PaymentService {
	return &paymentService{repo: repo}
}

// Record validates and persists the payment. Overpaying past the open
// balance is rejected outright rather than clamped or held as credit.
func (s *paymentService) Record(ctx context.Context, input PaymentInput, createdBy string) (*PaymentResult, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidPaymentAmount
	}
	if !domain.AllowedPaymentMethods[input.Method] {
		return nil, domain.ErrInvalidPaymentMethod
	}

	p := &domain.Payment{
		InvoiceID: input.InvoiceID,
		Amount:    domain.Round2(input.Amount),
		Method:    input.Method,
		Reference: input.Reference,
		Notes:     input.Notes,
		CreatedBy: createdBy,
	}
	if input.PaymentDate != nil {
		p.PaymentDate = *input.PaymentDate
	}

	inv, err := s.repo.CreateAndRecalculate(ctx, p)
	if err != nil {
		return nil, err
	}
	return &PaymentResult{Payment: p, Invoice: inv}, nil
}

func (s *paymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}

func (s *paymentService) List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error) {
	return s.repo.List(ctx, offset, limit)
}
