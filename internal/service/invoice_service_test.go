package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"maktab/internal/domain"
	"maktab/internal/service"
	"maktab/mocks"
)

type invoiceServiceFixture struct {
	repo        *mocks.MockInvoiceRepo
	paymentRepo *mocks.MockPaymentRepo
	clientRepo  *mocks.MockClientRepo
	auditRepo   *mocks.MockAuditLogRepo
	renderer    *mocks.MockDocumentRenderer
	svc         service.InvoiceService
}

func newInvoiceFixture() *invoiceServiceFixture {
	f := &invoiceServiceFixture{
		repo:        new(mocks.MockInvoiceRepo),
		paymentRepo: new(mocks.MockPaymentRepo),
		clientRepo:  new(mocks.MockClientRepo),
		auditRepo:   new(mocks.MockAuditLogRepo),
		renderer:    new(mocks.MockDocumentRenderer),
	}
	f.svc = service.NewInvoiceService(
		f.repo, f.paymentRepo, f.clientRepo, f.auditRepo, f.renderer,
		service.NewAuditRecorder(f.auditRepo),
	)
	return f
}

func TestInvoiceService_Create_ComputesTotalsAndNumber(t *testing.T) {
	f := newInvoiceFixture()

	f.repo.On("LastNumber", mock.Anything).Return("INV-2026-00041", nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.Create(context.Background(), service.InvoiceInput{
		ClientName: "Al Noor Trading LLC",
		Items:      []domain.LineItem{{Description: "Establishment card", Amount: 2000}},
		IncludeVAT: true,
	}, service.AuditMeta{Actor: "fatima"})

	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{4}-00042$`, inv.InvoiceNumber)
	assert.Equal(t, 2000.0, inv.Subtotal)
	assert.Equal(t, 100.0, inv.VATAmount)
	assert.Equal(t, 2100.0, inv.Total)
	assert.Equal(t, 2100.0, inv.Balance)
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)
	f.repo.AssertExpectations(t)
}

func TestInvoiceService_Update_ReDerivesPaymentState(t *testing.T) {
	f := newInvoiceFixture()

	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{
		ID:            id,
		InvoiceNumber: "INV-2026-00007",
		ClientName:    "Al Noor Trading LLC",
		Items:         domain.LineItems{{Description: "Visa typing", Amount: 1000}},
		Subtotal:      1000,
		Total:         1000,
		AmountPaid:    1000,
		Balance:       0,
		PaymentStatus: domain.PaymentStatusPaid,
	}, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// Raising the total past the collected amount reopens the invoice.
	inv, err := f.svc.Update(context.Background(), id, service.InvoiceInput{
		ClientName: "Al Noor Trading LLC",
		Items:      []domain.LineItem{{Description: "Visa typing", Amount: 1500}},
	}, service.AuditMeta{Actor: "fatima"})

	require.NoError(t, err)
	assert.Equal(t, 1500.0, inv.Total)
	assert.Equal(t, 500.0, inv.Balance)
	assert.Equal(t, domain.PaymentStatusPartial, inv.PaymentStatus)
	f.repo.AssertExpectations(t)
}

func TestInvoiceService_GetByID_AttachesPayments(t *testing.T) {
	f := newInvoiceFixture()

	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id}, nil)
	f.paymentRepo.On("ListByInvoice", mock.Anything, id).Return([]domain.Payment{
		{InvoiceID: id, Amount: 250, Method: domain.PaymentMethodCash},
	}, nil)

	inv, err := f.svc.GetByID(context.Background(), id)

	require.NoError(t, err)
	require.Len(t, inv.Payments, 1)
	assert.Equal(t, 250.0, inv.Payments[0].Amount)
}

func TestInvoiceService_Delete_RecordsAuditEntry(t *testing.T) {
	f := newInvoiceFixture()

	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id, InvoiceNumber: "INV-2026-00009"}, nil)
	f.repo.On("Delete", mock.Anything, id).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
		return e.TableName == "invoices" && e.Action == domain.AuditActionDeleted && e.ChangedBy == "fatima"
	})).Return(nil)

	err := f.svc.Delete(context.Background(), id, service.AuditMeta{Actor: "fatima"})

	require.NoError(t, err)
	f.auditRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_AuditFailureDoesNotBlock(t *testing.T) {
	f := newInvoiceFixture()

	f.repo.On("LastNumber", mock.Anything).Return("", nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("audit db down"))

	inv, err := f.svc.Create(context.Background(), service.InvoiceInput{
		ClientName: "Al Noor Trading LLC",
		Items:      []domain.LineItem{{Description: "Visa typing", Amount: 300}},
	}, service.AuditMeta{Actor: "fatima"})

	require.NoError(t, err)
	assert.NotEmpty(t, inv.InvoiceNumber)
	f.auditRepo.AssertExpectations(t)
}

func TestInvoiceService_Delete_AuditFailureDoesNotBlock(t *testing.T) {
	f := newInvoiceFixture()

	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id}, nil)
	f.repo.On("Delete", mock.Anything, id).Return(nil)
	f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("audit db down"))

	err := f.svc.Delete(context.Background(), id, service.AuditMeta{Actor: "fatima"})

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestInvoiceService_RenderPDF_NotFound(t *testing.T) {
	f := newInvoiceFixture()

	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.svc.RenderPDF(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.renderer.AssertNotCalled(t, "RenderInvoice", mock.Anything)
}
