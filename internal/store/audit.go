package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nwinter/lifehub/internal/model"
)

// auditLimit caps how many entries a listing returns.
const auditLimit = 50

// AuditStore records and lists the shopping activity log. Entries are
// append-only; nothing updates or deletes them.
type AuditStore struct {
	db *sql.DB
}

func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Record(id, userID string, action model.AuditAction, itemName string, details *string) error {
	_, err := s.db.Exec(
		`INSERT INTO shopping_audit (id, user_id, action, item_name, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, action.String(), itemName, details, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListVisible returns the newest entries the requester may see: their own,
// plus entries by anyone in a sharing relationship with them in either
// direction.
func (s *AuditStore) ListVisible(requesterID string) ([]model.AuditEntry, error) {
	rows, err := s.db.Query(
		`SELECT sa.id, sa.user_id, sa.action, sa.item_name, sa.details, u.name, sa.created_at
		 FROM shopping_audit sa JOIN users u ON sa.user_id = u.id
		 WHERE sa.user_id = ?
		    OR sa.user_id IN (
		        SELECT owner_id FROM shopping_shares WHERE shared_with_id = ?
		        UNION
		        SELECT shared_with_id FROM shopping_shares WHERE owner_id = ?
		    )
		 ORDER BY sa.created_at DESC
		 LIMIT ?`,
		requesterID, requesterID, requesterID, auditLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []model.AuditEntry{}
	for rows.Next() {
		var e model.AuditEntry
		var action string
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &action, &e.ItemName, &details, &e.UserName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if e.Action, err = model.ParseAuditAction(action); err != nil {
			return nil, err
		}
		if details.Valid {
			e.Details = &details.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
