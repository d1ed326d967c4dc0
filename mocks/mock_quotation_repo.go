package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"maktab/internal/domain"
)

// MockQuotationRepo is a mock implementation of port.QuotationRepository.
type MockQuotationRepo struct {
	mock.Mock
}

func (m *MockQuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) List(ctx context.Context, offset, limit int) ([]domain.Quotation, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Quotation), args.Int(1), args.Error(2)
}

func (m *MockQuotationRepo) Update(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuotationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuotationRepo) LastNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockQuotationRepo) ConvertToInvoice(ctx context.Context, quotationID uuid.UUID, inv *domain.Invoice) error {
	args := m.Called(ctx, quotationID, inv)
	return args.Error(0)
}
