package mocks

import (
	"github.com/stretchr/testify/mock"

	"maktab/internal/domain"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderInvoice(inv *domain.Invoice) ([]byte, error) {
	args := m.Called(inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentRenderer) RenderQuotation(q *domain.Quotation) ([]byte, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
