package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/port"
)

// ClientInput is the DTO for creating and updating clients.
type ClientInput struct {
	ClientType         domain.ClientType `json:"client_type" binding:"required,oneof=company individual"`
	CompanyName        string            `json:"company_name"`
	ContactPerson      string            `json:"contact_person"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email" binding:"omitempty,email"`
	TradeLicenseNumber string            `json:"trade_license_number"`
	Emirate            string            `json:"emirate"`
	Address            string            `json:"address"`
	IsNewClient        bool              `json:"is_new_client"`
	Notes              string            `json:"notes"`
}

// DuplicateClientError carries the conflicting record so the UI can show
// which existing client matched.
type DuplicateClientError struct {
	Existing *domain.Client
}

func (e *DuplicateClientError) Error() string { return domain.ErrDuplicateClient.Error() }

// Unwrap lets errors.Is match domain.ErrDuplicateClient.
func (e *DuplicateClientError) Unwrap() error { return domain.ErrDuplicateClient }

// ClientService defines the client management contract.
type ClientService interface {
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, id uuid.UUID, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	repo port.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(repo port.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	client := clientFromInput(input)
	if err := validateClient(client); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindDuplicate(ctx, client); err == nil {
		return nil, &DuplicateClientError{Existing: existing}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("client.Create duplicate check: %w", err)
	}

	last, err := s.repo.LastNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("client.Create numbering: %w", err)
	}
	client.ClientNumber = domain.NextClientNumber(last, time.Now().UTC())

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, search string, offset, limit int) ([]domain.Client, int, error) {
	return s.repo.List(ctx, search, offset, limit)
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, input ClientInput) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}

	client.ClientType = input.ClientType
	client.CompanyName = input.CompanyName
	client.ContactPerson = input.ContactPerson
	client.Phone = input.Phone
	client.Email = input.Email
	client.TradeLicenseNumber = input.TradeLicenseNumber
	client.Emirate = input.Emirate
	client.Address = input.Address
	client.IsNewClient = input.IsNewClient
	client.Notes = input.Notes

	if err := validateClient(client); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindDuplicate(ctx, client); err == nil {
		return nil, &DuplicateClientError{Existing: existing}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("client.Update duplicate check: %w", err)
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete soft-deletes: the row stays referenceable by documents created
// before the deletion.
func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func clientFromInput(input ClientInput) *domain.Client {
	return &domain.Client{
		ClientType:         input.ClientType,
		CompanyName:        input.CompanyName,
		ContactPerson:      input.ContactPerson,
		Phone:              input.Phone,
		Email:              input.Email,
		TradeLicenseNumber: input.TradeLicenseNumber,
		Emirate:            input.Emirate,
		Address:            input.Address,
		IsNewClient:        input.IsNewClient,
		Notes:              input.Notes,
	}
}

func validateClient(c *domain.Client) error {
	switch c.ClientType {
	case domain.ClientTypeCompany:
		if c.CompanyName == "" {
			return domain.ErrValidation
		}
	case domain.ClientTypeIndividual:
		if c.ContactPerson == "" {
			return domain.ErrValidation
		}
	default:
		return domain.ErrValidation
	}
	return nil
}
