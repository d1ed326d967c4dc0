package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"maktab/internal/domain"
	"maktab/internal/port"
)

type applicationRepo struct {
	db *sqlx.DB
}

// NewApplicationRepo creates a new PostgreSQL-backed ApplicationRepository.
func NewApplicationRepo(db *sqlx.DB) port.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	app.ID = uuid.New()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.StartDate.IsZero() {
		app.StartDate = now
	}

	query := `INSERT INTO applications (id, application_number, application_type, client_id,
		client_name, person_name, emirate, current_step, steps_completed, status, start_date,
		expected_date, completion_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.ApplicationNumber, app.ApplicationType, app.ClientID,
		app.ClientName, app.PersonName, app.Emirate, app.CurrentStep, app.StepsCompleted,
		app.Status, app.StartDate, app.ExpectedDate, app.CompletionDate, app.Notes,
		app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("applicationRepo.Create: %w", err)
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	err := r.db.GetContext(ctx, &app, "SELECT * FROM applications WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applicationRepo.GetByID: %w", err)
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context, status domain.ApplicationStatus, offset, limit int) ([]domain.Application, int, error) {
	where := "TRUE"
	args := []interface{}{}
	if status != "" {
		where = "status = $1"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM applications WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	var apps []domain.Application
	err = r.db.SelectContext(ctx, &apps,
		fmt.Sprintf("SELECT * FROM applications WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
			where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.List: %w", err)
	}
	return apps, total, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	app.UpdatedAt = time.Now().UTC()
	query := `UPDATE applications SET client_id = $1, client_name = $2, person_name = $3,
		emirate = $4, current_step = $5, steps_completed = $6, status = $7, start_date = $8,
		expected_date = $9, completion_date = $10, notes = $11, updated_at = $12
		WHERE id = $13`
	result, err := r.db.ExecContext(ctx, query,
		app.ClientID, app.ClientName, app.PersonName,
		app.Emirate, app.CurrentStep, app.StepsCompleted, app.Status, app.StartDate,
		app.ExpectedDate, app.CompletionDate, app.Notes, app.UpdatedAt, app.ID)
	if err != nil {
		return fmt.Errorf("applicationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM applications WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("applicationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) LastNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.GetContext(ctx, &number,
		"SELECT application_number FROM applications ORDER BY created_at DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("applicationRepo.LastNumber: %w", err)
	}
	return number, nil
}
