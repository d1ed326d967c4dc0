package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/port"
	"maktab/internal/workflow"
)

// ApplicationInput is the DTO for creating and updating applications.
type ApplicationInput struct {
	ApplicationType domain.ApplicationType `json:"application_type" binding:"required"`
	ClientID        *uuid.UUID             `json:"client_id"`
	ClientName      string                 `json:"client_name"`
	PersonName      string                 `json:"person_name" binding:"required"`
	Emirate         string                 `json:"emirate"`
	StartDate       *time.Time             `json:"start_date"`
	ExpectedDate    *time.Time             `json:"expected_date"`
	Notes           string                 `json:"notes"`
}

// CompleteStepInput is the DTO for completing an application's current step.
type CompleteStepInput struct {
	Step string `json:"step" binding:"required"`
	Note string `json:"note" binding:"required"`
}

// ApplicationService defines the application workflow contract.
type ApplicationService interface {
	Create(ctx context.Context, input ApplicationInput) (*domain.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, status domain.ApplicationStatus, offset, limit int) ([]domain.Application, int, error)
	Update(ctx context.Context, id uuid.UUID, input ApplicationInput) (*domain.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CompleteStep(ctx context.Context, id uuid.UUID, input CompleteStepInput, updatedBy string) (*domain.Application, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	Steps(appType domain.ApplicationType) []workflow.Step
}

type applicationService struct {
	repo       port.ApplicationRepository
	clientRepo port.ClientRepository
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(repo port.ApplicationRepository, clientRepo port.ClientRepository) ApplicationService {
	return &applicationService{repo: repo, clientRepo: clientRepo}
}

func (s *applicationService) Create(ctx context.Context, input ApplicationInput) (*domain.Application, error) {
	if workflow.StepsFor(input.ApplicationType) == nil && input.ApplicationType != domain.AppTypeOther {
		return nil, domain.ErrValidation
	}

	app := &domain.Application{
		ApplicationType: input.ApplicationType,
		ClientID:        input.ClientID,
		ClientName:      input.ClientName,
		PersonName:      input.PersonName,
		Emirate:         input.Emirate,
		CurrentStep:     workflow.FirstStep(input.ApplicationType),
		StepsCompleted:  domain.CompletedSteps{},
		Status:          domain.AppStatusInProgress,
		ExpectedDate:    input.ExpectedDate,
		Notes:           input.Notes,
	}
	app.StartDate = time.Now().UTC()
	if input.StartDate != nil {
		app.StartDate = *input.StartDate
	}
	if err := s.resolveClientName(ctx, app); err != nil {
		return nil, err
	}

	last, err := s.repo.LastNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("application.Create numbering: %w", err)
	}
	app.ApplicationNumber = domain.NextApplicationNumber(last, time.Now().UTC())

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *applicationService) List(ctx context.Context, status domain.ApplicationStatus, offset, limit int) ([]domain.Application, int, error) {
	return s.repo.List(ctx, status, offset, limit)
}

// Update edits descriptive fields only; progress moves exclusively
// through CompleteStep/MarkCompleted.
func (s *applicationService) Update(ctx context.Context, id uuid.UUID, input ApplicationInput) (*domain.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	app.ClientID = input.ClientID
	app.ClientName = input.ClientName
	app.PersonName = input.PersonName
	app.Emirate = input.Emirate
	if input.StartDate != nil {
		app.StartDate = *input.StartDate
	}
	app.ExpectedDate = input.ExpectedDate
	app.Notes = input.Notes
	if err := s.resolveClientName(ctx, app); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *applicationService) CompleteStep(ctx context.Context, id uuid.UUID, input CompleteStepInput, updatedBy string) (*domain.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := workflow.CompleteStep(app, input.Step, input.Note, updatedBy, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) MarkCompleted(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := workflow.MarkFreeformCompleted(app, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Steps(appType domain.ApplicationType) []workflow.Step {
	return workflow.StepsFor(appType)
}

func (s *applicationService) resolveClientName(ctx context.Context, app *domain.Application) error {
	if app.ClientName != "" || app.ClientID == nil {
		return nil
	}
	client, err := s.clientRepo.GetByID(ctx, *app.ClientID)
	if err != nil {
		return err
	}
	app.ClientName = client.DisplayName()
	return nil
}
