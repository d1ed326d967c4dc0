package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"maktab/internal/domain"
	"maktab/internal/service"
	"maktab/mocks"
)

func newQuotationService(repo *mocks.MockQuotationRepo, clientRepo *mocks.MockClientRepo, auditRepo *mocks.MockAuditLogRepo, renderer *mocks.MockDocumentRenderer) service.QuotationService {
	return service.NewQuotationService(repo, clientRepo, service.NewAuditRecorder(auditRepo), renderer)
}

func quotationInput() service.QuotationInput {
	return service.QuotationInput{
		ClientName: "Al Noor Trading LLC",
		Items: []domain.LineItem{
			{Description: "Trade license renewal", Amount: 1200},
			{Description: "Typing charges", Amount: 150.50},
		},
		IncludeVAT: true,
	}
}

func TestQuotationService_Create_ComputesTotalsAndNumber(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	repo.On("LastNumber", mock.Anything).Return("QT-2026-0007", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	q, err := svc.Create(context.Background(), quotationInput())

	require.NoError(t, err)
	assert.Regexp(t, `^QT-\d{4}-0008$`, q.QuotationNumber)
	assert.Equal(t, 1350.50, q.Subtotal)
	assert.Equal(t, 67.53, q.VATAmount)
	assert.Equal(t, 1418.03, q.Total)
	assert.Equal(t, domain.QuotationStatusDraft, q.Status)
	repo.AssertExpectations(t)
}

func TestQuotationService_Create_ResolvesClientNameFromLinkedClient(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	clientRepo := new(mocks.MockClientRepo)
	svc := newQuotationService(repo, clientRepo, new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	clientID := uuid.New()
	clientRepo.On("GetByID", mock.Anything, clientID).Return(&domain.Client{
		ID:          clientID,
		ClientType:  domain.ClientTypeCompany,
		CompanyName: "Falcon Documents Clearing",
	}, nil)
	repo.On("LastNumber", mock.Anything).Return("", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := quotationInput()
	input.ClientName = ""
	input.ClientID = &clientID

	q, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Falcon Documents Clearing", q.ClientName)
	clientRepo.AssertExpectations(t)
}

func TestQuotationService_Create_RequiresClientNameOrClient(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	input := quotationInput()
	input.ClientName = ""

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuotationService_Create_RejectsUnknownStatus(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	input := quotationInput()
	input.Status = "approved-ish"

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuotationService_Update_RejectsUnknownStatus(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{ID: id, Status: domain.QuotationStatusDraft}, nil)

	input := quotationInput()
	input.Status = "finalised"

	_, err := svc.Update(context.Background(), id, input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestQuotationService_Update_RejectsConvertedQuotation(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{ID: id, ConvertedToInvoice: true}, nil)

	_, err := svc.Update(context.Background(), id, quotationInput())

	assert.ErrorIs(t, err, domain.ErrQuotationLocked)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestQuotationService_Delete_RejectsConvertedQuotation(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{ID: id, ConvertedToInvoice: true}, nil)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrQuotationLocked)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestQuotationService_ConvertToInvoice_ResetsPaymentFields(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), auditRepo, new(mocks.MockDocumentRenderer))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{
		ID:              id,
		QuotationNumber: "QT-2026-0012",
		ClientName:      "Al Noor Trading LLC",
		Items:           domain.LineItems{{Description: "Visa processing", Amount: 3000}},
		IncludeVAT:      true,
		Subtotal:        3000,
		VATAmount:       150,
		Total:           3150,
	}, nil)
	repo.On("ConvertToInvoice", mock.Anything, id, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := svc.ConvertToInvoice(context.Background(), id, service.AuditMeta{Actor: "fatima"})

	require.NoError(t, err)
	assert.Equal(t, 3150.0, inv.Total)
	assert.Equal(t, 0.0, inv.AmountPaid)
	assert.Equal(t, 3150.0, inv.Balance)
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)
	assert.Equal(t, "Al Noor Trading LLC", inv.ClientName)
	repo.AssertExpectations(t)
}

func TestQuotationService_ConvertToInvoice_RejectsSecondConversion(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), new(mocks.MockDocumentRenderer))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{ID: id, ConvertedToInvoice: true}, nil)

	_, err := svc.ConvertToInvoice(context.Background(), id, service.AuditMeta{Actor: "fatima"})

	assert.ErrorIs(t, err, domain.ErrQuotationConverted)
	repo.AssertNotCalled(t, "ConvertToInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuotationService_ConvertToInvoice_ReleasedQuotationConvertsAgain(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), auditRepo, new(mocks.MockDocumentRenderer))

	// Deleting a converted invoice clears the quotation's converted flag
	// and invoice link, so a fresh conversion goes through.
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{
		ID:                 id,
		QuotationNumber:    "QT-2026-0015",
		ClientName:         "Al Noor Trading LLC",
		Items:              domain.LineItems{{Description: "Visa processing", Amount: 3000}},
		Subtotal:           3000,
		Total:              3000,
		ConvertedToInvoice: false,
		InvoiceID:          nil,
	}, nil)
	repo.On("ConvertToInvoice", mock.Anything, id, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := svc.ConvertToInvoice(context.Background(), id, service.AuditMeta{Actor: "fatima"})

	require.NoError(t, err)
	assert.Equal(t, 3000.0, inv.Balance)
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)
	repo.AssertExpectations(t)
}

func TestQuotationService_RenderPDF(t *testing.T) {
	repo := new(mocks.MockQuotationRepo)
	renderer := new(mocks.MockDocumentRenderer)
	svc := newQuotationService(repo, new(mocks.MockClientRepo), new(mocks.MockAuditLogRepo), renderer)

	id := uuid.New()
	q := &domain.Quotation{ID: id, QuotationNumber: "QT-2026-0003"}
	repo.On("GetByID", mock.Anything, id).Return(q, nil)
	renderer.On("RenderQuotation", q).Return([]byte("%PDF-1.4"), nil)

	data, err := svc.RenderPDF(context.Background(), id)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	renderer.AssertExpectations(t)
}
