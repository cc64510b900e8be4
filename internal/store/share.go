package store

import (
	"database/sql"
	"fmt"

	"github.com/nwinter/lifehub/internal/model"
)

// ShareStore manages the directed share edges of the shopping list. An edge
// (owner, sharedWith) grants sharedWith read/write access to the owner's
// items; the reverse direction is a separate, independent edge.
type ShareStore struct {
	db *sql.DB
}

func NewShareStore(db *sql.DB) *ShareStore {
	return &ShareStore{db: db}
}

func (s *ShareStore) Create(id, ownerID, sharedWithID string) error {
	_, err := s.db.Exec(
		`INSERT INTO shopping_shares (id, owner_id, shared_with_id) VALUES (?, ?, ?)`,
		id, ownerID, sharedWithID,
	)
	if err != nil {
		return fmt.Errorf("insert share: %w", err)
	}
	return nil
}

func (s *ShareStore) Exists(ownerID, sharedWithID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM shopping_shares WHERE owner_id = ? AND shared_with_id = ?`,
		ownerID, sharedWithID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check share: %w", err)
	}
	return n > 0, nil
}

// Delete removes one directed edge. A reciprocal edge, if present, is left
// untouched.
func (s *ShareStore) Delete(ownerID, sharedWithID string) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM shopping_shares WHERE owner_id = ? AND shared_with_id = ?`,
		ownerID, sharedWithID,
	)
	if err != nil {
		return false, fmt.Errorf("delete share: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanShareUser(scanner interface{ Scan(...any) error }) (*model.ShareUser, error) {
	var u model.ShareUser
	err := scanner.Scan(&u.ID, &u.Email, &u.Name, &u.SharedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListSharedWith returns the users the owner has granted access to.
func (s *ShareStore) ListSharedWith(ownerID string) ([]model.ShareUser, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.email, u.name, ss.created_at
		 FROM shopping_shares ss JOIN users u ON ss.shared_with_id = u.id
		 WHERE ss.owner_id = ?
		 ORDER BY ss.created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shared with: %w", err)
	}
	defer rows.Close()
	return collectShareUsers(rows)
}

// ListSharedBy returns the owners who have granted the user access.
func (s *ShareStore) ListSharedBy(userID string) ([]model.ShareUser, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.email, u.name, ss.created_at
		 FROM shopping_shares ss JOIN users u ON ss.owner_id = u.id
		 WHERE ss.shared_with_id = ?
		 ORDER BY ss.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shared by: %w", err)
	}
	defer rows.Close()
	return collectShareUsers(rows)
}

func collectShareUsers(rows *sql.Rows) ([]model.ShareUser, error) {
	users := []model.ShareUser{}
	for rows.Next() {
		u, err := scanShareUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan share user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
