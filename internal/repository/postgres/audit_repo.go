package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"maktab/internal/domain"
	"maktab/internal/port"
)

type auditLogRepo struct {
	db *sqlx.DB
}

// NewAuditLogRepo creates a new PostgreSQL-backed AuditLogRepository.
func NewAuditLogRepo(db *sqlx.DB) port.AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, table_name, record_id, action, changed_by, old_data, new_data,
			changed_fields, ip_address, user_agent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.TableName, entry.RecordID, entry.Action, entry.ChangedBy,
		nullableJSON(entry.OldData), nullableJSON(entry.NewData), entry.ChangedFields,
		entry.IPAddress, entry.UserAgent, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("auditLogRepo.Create: %w", err)
	}
	return nil
}

func (r *auditLogRepo) ListByRecord(ctx context.Context, tableName string, recordID uuid.UUID, offset, limit int) ([]domain.AuditLogEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM audit_log WHERE table_name = $1 AND record_id = $2",
		tableName, recordID)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.ListByRecord count: %w", err)
	}

	var entries []domain.AuditLogEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_log
		 WHERE table_name = $1 AND record_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		tableName, recordID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.ListByRecord: %w", err)
	}
	return entries, total, nil
}

// nullableJSON maps empty snapshots to SQL NULL instead of invalid ''.
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
