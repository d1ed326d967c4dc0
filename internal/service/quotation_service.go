package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/port"
)

// QuotationInput is the DTO for creating and updating quotations.
type QuotationInput struct {
	ClientID   *uuid.UUID             `json:"client_id"`
	ClientName string                 `json:"client_name"`
	Items      []domain.LineItem      `json:"items" binding:"required,min=1"`
	IncludeVAT bool                   `json:"include_vat"`
	Status     domain.QuotationStatus `json:"status"`
	Notes      string                 `json:"notes"`
}

// QuotationService defines the quotation management contract.
type QuotationService interface {
	Create(ctx context.Context, input QuotationInput) (*domain.Quotation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, offset, limit int) ([]domain.Quotation, int, error)
	Update(ctx context.Context, id uuid.UUID, input QuotationInput) (*domain.Quotation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ConvertToInvoice(ctx context.Context, id uuid.UUID, meta AuditMeta) (*domain.Invoice, error)
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type quotationService struct {
	repo       port.QuotationRepository
	clientRepo port.ClientRepository
	audit      *AuditRecorder
	renderer   port.DocumentRenderer
}

// NewQuotationService creates a new QuotationService.
func NewQuotationService(repo port.QuotationRepository, clientRepo port.ClientRepository, audit *AuditRecorder, renderer port.DocumentRenderer) QuotationService {
	return &quotationService{repo: repo, clientRepo: clientRepo, audit: audit, renderer: renderer}
}

func (s *quotationService) Create(ctx context.Context, input QuotationInput) (*domain.Quotation, error) {
	q := &domain.Quotation{
		ClientID:   input.ClientID,
		ClientName: input.ClientName,
		Items:      input.Items,
		IncludeVAT: input.IncludeVAT,
		Status:     input.Status,
		Notes:      input.Notes,
	}
	if q.Status == "" {
		q.Status = domain.QuotationStatusDraft
	}
	if !domain.AllowedQuotationStatuses[q.Status] {
		return nil, domain.ErrValidation
	}
	if err := s.resolveClientName(ctx, q); err != nil {
		return nil, err
	}

	totals, err := domain.ComputeTotals(q.Items, q.IncludeVAT)
	if err != nil {
		return nil, err
	}
	q.Subtotal = totals.Subtotal
	q.VATAmount = totals.VATAmount
	q.Total = totals.Total

	last, err := s.repo.LastNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("quotation.Create numbering: %w", err)
	}
	q.QuotationNumber = domain.NextQuotationNumber(last, time.Now().UTC())

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *quotationService) List(ctx context.Context, offset, limit int) ([]domain.Quotation, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *quotationService) Update(ctx context.Context, id uuid.UUID, input QuotationInput) (*domain.Quotation, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.ConvertedToInvoice {
		return nil, domain.ErrQuotationLocked
	}

	q.ClientID = input.ClientID
	q.ClientName = input.ClientName
	q.Items = input.Items
	q.IncludeVAT = input.IncludeVAT
	if input.Status != "" {
		if !domain.AllowedQuotationStatuses[input.Status] {
			return nil, domain.ErrValidation
		}
		q.Status = input.Status
	}
	q.Notes = input.Notes
	if err := s.resolveClientName(ctx, q); err != nil {
		return nil, err
	}

	totals, err := domain.ComputeTotals(q.Items, q.IncludeVAT)
	if err != nil {
		return nil, err
	}
	q.Subtotal = totals.Subtotal
	q.VATAmount = totals.VATAmount
	q.Total = totals.Total

	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quotationService) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q.ConvertedToInvoice {
		return domain.ErrQuotationLocked
	}
	return s.repo.Delete(ctx, id)
}

// ConvertToInvoice materializes the quotation into a fresh invoice with
// payment fields reset. A quotation holds at most one live invoice;
// deleting that invoice releases the quotation for conversion again.
func (s *quotationService) ConvertToInvoice(ctx context.Context, id uuid.UUID, meta AuditMeta) (*domain.Invoice, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.ConvertedToInvoice {
		return nil, domain.ErrQuotationConverted
	}

	inv := &domain.Invoice{
		ClientID:      q.ClientID,
		ClientName:    q.ClientName,
		Items:         q.Items,
		IncludeVAT:    q.IncludeVAT,
		Subtotal:      q.Subtotal,
		VATAmount:     q.VATAmount,
		Total:         q.Total,
		AmountPaid:    0,
		Balance:       q.Total,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Notes:         q.Notes,
	}

	if err := s.repo.ConvertToInvoice(ctx, q.ID, inv); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "invoices", inv.ID, domain.AuditActionCreatedFromQuotation, meta, nil, inv)
	s.audit.Record(ctx, "quotations", q.ID, domain.AuditActionConvertedToInvoice, meta, nil, map[string]interface{}{
		"quotation_number": q.QuotationNumber,
		"invoice_id":       inv.ID,
		"invoice_number":   inv.InvoiceNumber,
	})
	return inv, nil
}

func (s *quotationService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderQuotation(q)
}

// resolveClientName fills the display name from the linked client when a
// free-text name was not supplied.
func (s *quotationService) resolveClientName(ctx context.Context, q *domain.Quotation) error {
	if q.ClientName != "" || q.ClientID == nil {
		if q.ClientName == "" {
			return domain.ErrValidation
		}
		return nil
	}
	client, err := s.clientRepo.GetByID(ctx, *q.ClientID)
	if err != nil {
		return err
	}
	q.ClientName = client.DisplayName()
	return nil
}
