package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"maktab/internal/domain"
	"maktab/internal/port"
)

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = uuid.New()
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	query := `INSERT INTO clients (id, client_number, client_type, company_name, contact_person,
		phone, email, trade_license_number, emirate, address, is_new_client, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.ClientNumber, client.ClientType, client.CompanyName, client.ContactPerson,
		client.Phone, client.Email, client.TradeLicenseNumber, client.Emirate, client.Address,
		client.IsNewClient, client.Notes, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateClient
		}
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client, "SELECT * FROM clients WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Client, int, error) {
	where := "deleted_at IS NULL"
	args := []interface{}{}
	if search != "" {
		where += ` AND (company_name ILIKE $1 OR contact_person ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1)`
		args = append(args, "%"+search+"%")
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM clients WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	var clients []domain.Client
	err = r.db.SelectContext(ctx, &clients,
		fmt.Sprintf("SELECT * FROM clients WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
			where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, total, nil
}

// FindDuplicate applies the identity rules for duplicate detection: same
// phone, email, or trade license, or the same name within the same client
// type. Soft-deleted rows are not considered duplicates.
func (r *clientRepo) FindDuplicate(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	conds := []string{}
	args := []interface{}{}
	add := func(cond string, vals ...interface{}) {
		placeholders := make([]interface{}, len(vals))
		for i, v := range vals {
			args = append(args, v)
			placeholders[i] = len(args)
		}
		conds = append(conds, fmt.Sprintf(cond, placeholders...))
	}

	if client.Phone != "" {
		add("phone = $%d", client.Phone)
	}
	if client.Email != "" {
		add("email = $%d", client.Email)
	}
	if client.TradeLicenseNumber != "" {
		add("trade_license_number = $%d", client.TradeLicenseNumber)
	}
	if client.ClientType == domain.ClientTypeCompany && client.CompanyName != "" {
		add("(client_type = 'company' AND company_name = $%d)", client.CompanyName)
	}
	if client.ClientType == domain.ClientTypeIndividual && client.ContactPerson != "" {
		add("(client_type = 'individual' AND contact_person = $%d)", client.ContactPerson)
	}
	if len(conds) == 0 {
		return nil, domain.ErrNotFound
	}

	args = append(args, client.ID)
	query := fmt.Sprintf(
		"SELECT * FROM clients WHERE deleted_at IS NULL AND id <> $%d AND (%s) LIMIT 1",
		len(args), strings.Join(conds, " OR "))

	var match domain.Client
	err := r.db.GetContext(ctx, &match, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("clientRepo.FindDuplicate: %w", err)
	}
	return &match, nil
}

func (r *clientRepo) Update(ctx context.Context, client *domain.Client) error {
	client.UpdatedAt = time.Now().UTC()
	query := `UPDATE clients SET client_type = $1, company_name = $2, contact_person = $3,
		phone = $4, email = $5, trade_license_number = $6, emirate = $7, address = $8,
		is_new_client = $9, notes = $10, updated_at = $11
		WHERE id = $12 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query,
		client.ClientType, client.CompanyName, client.ContactPerson,
		client.Phone, client.Email, client.TradeLicenseNumber, client.Emirate, client.Address,
		client.IsNewClient, client.Notes, client.UpdatedAt, client.ID)
	if err != nil {
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clients SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("clientRepo.SoftDelete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepo) LastNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.GetContext(ctx, &number,
		"SELECT client_number FROM clients ORDER BY created_at DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("clientRepo.LastNumber: %w", err)
	}
	return number, nil
}
