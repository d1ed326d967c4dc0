package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"

	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/port"
)

// AuditMeta carries the caller identity attached to audit entries.
type AuditMeta struct {
	Actor     string
	IPAddress string
	UserAgent string
}

// AuditRecorder writes append-only audit entries. Writes are
// fire-and-forget: a failed audit write is logged but never blocks or
// rolls back the primary operation.
type AuditRecorder struct {
	repo port.AuditLogRepository
}

// NewAuditRecorder creates a new AuditRecorder.
func NewAuditRecorder(repo port.AuditLogRepository) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

// Record persists one audit entry for a record mutation. oldData and
// newData may be nil for create/delete actions.
func (a *AuditRecorder) Record(ctx context.Context, table string, recordID uuid.UUID, action domain.AuditAction, meta AuditMeta, oldData, newData interface{}) {
	entry := &domain.AuditLogEntry{
		TableName: table,
		RecordID:  recordID,
		Action:    action,
		ChangedBy: meta.Actor,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	var oldJSON, newJSON []byte
	if oldData != nil {
		oldJSON, _ = json.Marshal(oldData)
		entry.OldData = oldJSON
	}
	if newData != nil {
		newJSON, _ = json.Marshal(newData)
		entry.NewData = newJSON
	}
	entry.ChangedFields = changedFields(oldJSON, newJSON)

	if err := a.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to write %s entry for %s/%s: %v", action, table, recordID, err)
	}
}

// changedFields diffs the top-level keys of two JSON objects; a key is
// changed when its serialized value differs or it is missing on one side.
func changedFields(oldJSON, newJSON []byte) domain.StringList {
	if len(oldJSON) == 0 || len(newJSON) == 0 {
		return nil
	}

	var oldMap, newMap map[string]json.RawMessage
	if err := json.Unmarshal(oldJSON, &oldMap); err != nil {
		return nil
	}
	if err := json.Unmarshal(newJSON, &newMap); err != nil {
		return nil
	}

	var fields []string
	for key, newVal := range newMap {
		oldVal, ok := oldMap[key]
		if !ok || string(oldVal) != string(newVal) {
			fields = append(fields, key)
		}
	}
	for key := range oldMap {
		if _, ok := newMap[key]; !ok {
			fields = append(fields, key)
		}
	}
	sort.Strings(fields)
	return fields
}
