package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"maktab/internal/domain"
)

// MockAuditLogRepo is a mock implementation of port.AuditLogRepository.
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepo) ListByRecord(ctx context.Context, tableName string, recordID uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error) {
	args := m.Called(ctx, tableName, recordID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Int(1), args.Error(2)
}
