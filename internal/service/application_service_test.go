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

func TestApplicationService_Create_StartsAtFirstCatalogStep(t *testing.T) {
	repo := new(mocks.MockApplicationRepo)
	svc := service.NewApplicationService(repo, new(mocks.MockClientRepo))

	repo.On("LastNumber", mock.Anything).Return("APP-260831-014", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	app, err := svc.Create(context.Background(), service.ApplicationInput{
		ApplicationType: domain.AppTypeVisaCancellation,
		ClientName:      "Al Noor Trading LLC",
		PersonName:      "Ramesh Kumar",
		Emirate:         "Sharjah",
	})

	require.NoError(t, err)
	assert.Regexp(t, `^APP-\d{6}-\d{3}$`, app.ApplicationNumber)
	assert.Equal(t, "labour_cancellation_typing", app.CurrentStep)
	assert.Equal(t, domain.AppStatusInProgress, app.Status)
	assert.False(t, app.StartDate.IsZero())
	repo.AssertExpectations(t)
}

func TestApplicationService_Create_RejectsUnknownType(t *testing.T) {
	repo := new(mocks.MockApplicationRepo)
	svc := service.NewApplicationService(repo, new(mocks.MockClientRepo))

	_, err := svc.Create(context.Background(), service.ApplicationInput{
		ApplicationType: domain.ApplicationType("golden_visa"),
		PersonName:      "Ramesh Kumar",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApplicationService_CompleteStep_AdvancesAndPersists(t *testing.T) {
	repo := new(mocks.MockApplicationRepo)
	svc := service.NewApplicationService(repo, new(mocks.MockClientRepo))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Application{
		ID:              id,
		ApplicationType: domain.AppTypeVisaCancellation,
		CurrentStep:     "labour_cancellation_typing",
		StepsCompleted:  domain.CompletedSteps{},
		Status:          domain.AppStatusInProgress,
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	app, err := svc.CompleteStep(context.Background(), id, service.CompleteStepInput{
		Step: "labour_cancellation_typing",
		Note: "typed and signed by sponsor",
	}, "fatima")

	require.NoError(t, err)
	assert.Equal(t, "labour_cancellation_submission", app.CurrentStep)
	require.Len(t, app.StepsCompleted, 1)
	assert.Equal(t, "fatima", app.StepsCompleted[0].UpdatedBy)
	repo.AssertExpectations(t)
}

func TestApplicationService_CompleteStep_WrongStepDoesNotPersist(t *testing.T) {
	repo := new(mocks.MockApplicationRepo)
	svc := service.NewApplicationService(repo, new(mocks.MockClientRepo))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Application{
		ID:              id,
		ApplicationType: domain.AppTypeVisaCancellation,
		CurrentStep:     "labour_cancellation_typing",
		StepsCompleted:  domain.CompletedSteps{},
		Status:          domain.AppStatusInProgress,
	}, nil)

	_, err := svc.CompleteStep(context.Background(), id, service.CompleteStepInput{
		Step: "immigration_cancellation",
		Note: "skipping ahead",
	}, "fatima")

	assert.ErrorIs(t, err, domain.ErrStepMismatch)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplicationService_MarkCompleted_FreeformOnly(t *testing.T) {
	repo := new(mocks.MockApplicationRepo)
	svc := service.NewApplicationService(repo, new(mocks.MockClientRepo))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Application{
		ID:              id,
		ApplicationType: domain.AppTypeNewVisa,
		CurrentStep:     "offer_letter_typing",
		Status:          domain.AppStatusInProgress,
	}, nil)

	_, err := svc.MarkCompleted(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFreeformType)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplicationService_Steps_ReturnsCatalog(t *testing.T) {
	svc := service.NewApplicationService(new(mocks.MockApplicationRepo), new(mocks.MockClientRepo))

	steps := svc.Steps(domain.AppTypeVisaCancellation)

	require.Len(t, steps, 3)
	assert.Equal(t, "labour_cancellation_typing", steps[0].ID)
	assert.Equal(t, "Labour Cancellation Typing", steps[0].Label)
}
