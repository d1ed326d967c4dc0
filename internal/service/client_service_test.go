package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"maktab/internal/domain"
	"maktab/internal/service"
	"maktab/mocks"
)

func companyInput() service.ClientInput {
	return service.ClientInput{
		ClientType:  domain.ClientTypeCompany,
		CompanyName: "Al Noor Trading LLC",
		Phone:       "+971501234567",
		Email:       "info@alnoor.example",
		Emirate:     "Dubai",
	}
}

func TestClientService_Create_Success(t *testing.T) {
	repo := new(mocks.MockClientRepo)
	svc := service.NewClientService(repo)

	repo.On("FindDuplicate", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("LastNumber", mock.Anything).Return("CLI-2026-0011", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	client, err := svc.Create(context.Background(), companyInput())

	require.NoError(t, err)
	assert.Regexp(t, `^CLI-\d{4}-0012$`, client.ClientNumber)
	assert.Equal(t, "Al Noor Trading LLC", client.CompanyName)
	repo.AssertExpectations(t)
}

func TestClientService_Create_DuplicateCarriesExistingRecord(t *testing.T) {
	repo := new(mocks.MockClientRepo)
	svc := service.NewClientService(repo)

	existing := &domain.Client{ID: uuid.New(), ClientNumber: "CLI-2026-0003", CompanyName: "Al Noor Trading LLC"}
	repo.On("FindDuplicate", mock.Anything, mock.Anything).Return(existing, nil)

	_, err := svc.Create(context.Background(), companyInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateClient)

	var dup *service.DuplicateClientError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "CLI-2026-0003", dup.Existing.ClientNumber)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientService_Create_CompanyRequiresName(t *testing.T) {
	svc := service.NewClientService(new(mocks.MockClientRepo))

	input := companyInput()
	input.CompanyName = ""

	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClientService_Create_IndividualRequiresContactPerson(t *testing.T) {
	svc := service.NewClientService(new(mocks.MockClientRepo))

	_, err := svc.Create(context.Background(), service.ClientInput{
		ClientType: domain.ClientTypeIndividual,
		Phone:      "+971501234567",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClientService_Update_RejectsSoftDeleted(t *testing.T) {
	repo := new(mocks.MockClientRepo)
	svc := service.NewClientService(repo)

	id := uuid.New()
	deleted := time.Now().UTC()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Client{
		ID:          id,
		ClientType:  domain.ClientTypeCompany,
		CompanyName: "Gone LLC",
		DeletedAt:   &deleted,
	}, nil)

	_, err := svc.Update(context.Background(), id, companyInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientService_Update_Success(t *testing.T) {
	repo := new(mocks.MockClientRepo)
	svc := service.NewClientService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Client{
		ID:          id,
		ClientType:  domain.ClientTypeCompany,
		CompanyName: "Old Name LLC",
	}, nil)
	repo.On("FindDuplicate", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	client, err := svc.Update(context.Background(), id, companyInput())

	require.NoError(t, err)
	assert.Equal(t, "Al Noor Trading LLC", client.CompanyName)
	repo.AssertExpectations(t)
}
