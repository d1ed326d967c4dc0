package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/port"
)

// InvoiceInput is the DTO for creating and updating invoices.
type InvoiceInput struct {
	ClientID    *uuid.UUID        `json:"client_id"`
	ClientName  string            `json:"client_name"`
	Items       []domain.LineItem `json:"items" binding:"required,min=1"`
	IncludeVAT  bool              `json:"include_vat"`
	InvoiceDate *time.Time        `json:"invoice_date"`
	Notes       string            `json:"notes"`
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	Create(ctx context.Context, input InvoiceInput, meta AuditMeta) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, id uuid.UUID, input InvoiceInput, meta AuditMeta) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID, meta AuditMeta) error
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
	AuditHistory(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error)
}

type invoiceService struct {
	repo        port.InvoiceRepository
	paymentRepo port.PaymentRepository
	clientRepo  port.ClientRepository
	auditRepo   port.AuditLogRepository
	renderer    port.DocumentRenderer
	audit       *AuditRecorder
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	repo port.InvoiceRepository,
	paymentRepo port.PaymentRepository,
	clientRepo port.ClientRepository,
	auditRepo port.AuditLogRepository,
	renderer port.DocumentRenderer,
	audit *AuditRecorder,
) InvoiceService {
	return &invoiceService{
		repo:        repo,
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		auditRepo:   auditRepo,
		renderer:    renderer,
		audit:       audit,
	}
}

func (s *invoiceService) Create(ctx context.Context, input InvoiceInput, meta AuditMeta) (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ClientID:      input.ClientID,
		ClientName:    input.ClientName,
		Items:         input.Items,
		IncludeVAT:    input.IncludeVAT,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Notes:         input.Notes,
	}
	if input.InvoiceDate != nil {
		inv.InvoiceDate = *input.InvoiceDate
	}
	if err := s.resolveClientName(ctx, inv); err != nil {
		return nil, err
	}

	totals, err := domain.ComputeTotals(inv.Items, inv.IncludeVAT)
	if err != nil {
		return nil, err
	}
	inv.Subtotal = totals.Subtotal
	inv.VATAmount = totals.VATAmount
	inv.Total = totals.Total
	inv.Balance = totals.Total

	last, err := s.repo.LastNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoice.Create numbering: %w", err)
	}
	inv.InvoiceNumber = domain.NextInvoiceNumber(last, time.Now().UTC())

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "invoices", inv.ID, domain.AuditActionCreated, meta, nil, inv)
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Payments = payments
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, status domain.PaymentStatus, offset, limit int) ([]domain.Invoice, int, error) {
	return s.repo.List(ctx, status, offset, limit)
}

// Update recomputes totals from the new items and re-derives the payment
// state against the already collected amount.
func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input InvoiceInput, meta AuditMeta) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *inv

	inv.ClientID = input.ClientID
	inv.ClientName = input.ClientName
	inv.Items = input.Items
	inv.IncludeVAT = input.IncludeVAT
	if input.InvoiceDate != nil {
		inv.InvoiceDate = *input.InvoiceDate
	}
	inv.Notes = input.Notes
	if err := s.resolveClientName(ctx, inv); err != nil {
		return nil, err
	}

	totals, err := domain.ComputeTotals(inv.Items, inv.IncludeVAT)
	if err != nil {
		return nil, err
	}
	inv.Subtotal = totals.Subtotal
	inv.VATAmount = totals.VATAmount
	inv.Total = totals.Total
	inv.Balance, inv.PaymentStatus = domain.DerivePaymentState(inv.Total, inv.AmountPaid)

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "invoices", inv.ID, domain.AuditActionUpdated, meta, &before, inv)
	return inv, nil
}

// Delete removes the invoice and, by cascade, its payments.
func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID, meta AuditMeta) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "invoices", id, domain.AuditActionDeleted, meta, inv, nil)
	return nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderInvoice(inv)
}

func (s *invoiceService) AuditHistory(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.auditRepo.ListByRecord(ctx, "invoices", id, offset, limit)
}

func (s *invoiceService) resolveClientName(ctx context.Context, inv *domain.Invoice) error {
	if inv.ClientName != "" || inv.ClientID == nil {
		if inv.ClientName == "" {
			return domain.ErrValidation
		}
		return nil
	}
	client, err := s.clientRepo.GetByID(ctx, *inv.ClientID)
	if err != nil {
		return err
	}
	inv.ClientName = client.DisplayName()
	return nil
}
