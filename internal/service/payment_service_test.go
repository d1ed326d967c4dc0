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

func TestPaymentService_Record_Success(t *testing.T) {
	repo := new(mocks.MockPaymentRepo)
	svc := service.NewPaymentService(repo)

	invoiceID := uuid.New()
	refreshed := &domain.Invoice{
		ID:            invoiceID,
		Total:         1418.03,
		AmountPaid:    500,
		Balance:       918.03,
		PaymentStatus: domain.PaymentStatusPartial,
	}
	repo.On("CreateAndRecalculate", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.InvoiceID == invoiceID && p.Amount == 500 && p.CreatedBy == "fatima"
	})).Return(refreshed, nil)

	result, err := svc.Record(context.Background(), service.PaymentInput{
		InvoiceID: invoiceID,
		Amount:    500,
		Method:    domain.PaymentMethodCash,
		Reference: "RCPT-1042",
	}, "fatima")

	require.NoError(t, err)
	assert.Equal(t, 500.0, result.Payment.Amount)
	assert.Equal(t, domain.PaymentStatusPartial, result.Invoice.PaymentStatus)
	assert.Equal(t, 918.03, result.Invoice.Balance)
	repo.AssertExpectations(t)
}

func TestPaymentService_Record_RoundsAmount(t *testing.T) {
	repo := new(mocks.MockPaymentRepo)
	svc := service.NewPaymentService(repo)

	repo.On("CreateAndRecalculate", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Amount == 100.13
	})).Return(&domain.Invoice{}, nil)

	_, err := svc.Record(context.Background(), service.PaymentInput{
		InvoiceID: uuid.New(),
		Amount:    100.125,
		Method:    domain.PaymentMethodBankTransfer,
	}, "fatima")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPaymentService_Record_RejectsNonPositiveAmount(t *testing.T) {
	repo := new(mocks.MockPaymentRepo)
	svc := service.NewPaymentService(repo)

	for _, amount := range []float64{0, -50} {
		_, err := svc.Record(context.Background(), service.PaymentInput{
			InvoiceID: uuid.New(),
			Amount:    amount,
			Method:    domain.PaymentMethodCash,
		}, "fatima")
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount)
	}
	repo.AssertNotCalled(t, "CreateAndRecalculate", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_RejectsUnknownMethod(t *testing.T) {
	repo := new(mocks.MockPaymentRepo)
	svc := service.NewPaymentService(repo)

	_, err := svc.Record(context.Background(), service.PaymentInput{
		InvoiceID: uuid.New(),
		Amount:    100,
		Method:    domain.PaymentMethod("cheque-maybe"),
	}, "fatima")

	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
	repo.AssertNotCalled(t, "CreateAndRecalculate", mock.Anything, mock.Anything)
}

func TestPaymentService_Record_SurfacesOverpayment(t *testing.T) {
	repo := new(mocks.MockPaymentRepo)
	svc := service.NewPaymentService(repo)

	repo.On("CreateAndRecalculate", mock.Anything, mock.Anything).Return(nil, domain.ErrOverpayment)

	_, err := svc.Record(context.Background(), service.PaymentInput{
		InvoiceID: uuid.New(),
		Amount:    5000,
		Method:    domain.PaymentMethodCard,
	}, "fatima")

	assert.ErrorIs(t, err, domain.ErrOverpayment)
}
