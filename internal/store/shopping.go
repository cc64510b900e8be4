package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nwinter/lifehub/internal/model"
)

type ShoppingStore struct {
	db *sql.DB
}

func NewShoppingStore(db *sql.DB) *ShoppingStore {
	return &ShoppingStore{db: db}
}

func scanShoppingItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var category string
	var completed int

	err := scanner.Scan(
		&item.ID, &item.OwnerID, &item.Name, &item.Quantity, &category,
		&completed, &item.CreatedAt, &item.UpdatedAt, &item.OwnerName,
	)
	if err != nil {
		return nil, err
	}

	item.Completed = completed != 0
	if item.Category, err = model.ParseShoppingCategory(category); err != nil {
		return nil, err
	}
	return &item, nil
}

const shoppingCols = `si.id, si.user_id, si.name, si.quantity, si.category, si.completed, si.created_at, si.updated_at, u.name`

// visibleWhere scopes a query to the requester's readable set: own items
// plus items of any owner who shares with the requester. The same predicate
// gates writes; sharing is all-or-nothing per owner.
const visibleWhere = `(si.user_id = ? OR si.user_id IN (
	SELECT owner_id FROM shopping_shares WHERE shared_with_id = ?
))`

// ListVisible returns the requester's readable items, incomplete before
// completed and newest-created first within each group. IsOwn and OwnerName
// are computed relative to the requester.
func (s *ShoppingStore) ListVisible(requesterID string) ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(
		`SELECT `+shoppingCols+` FROM shopping_items si
		 JOIN users u ON si.user_id = u.id
		 WHERE `+visibleWhere+`
		 ORDER BY si.completed ASC, si.created_at DESC`,
		requesterID, requesterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		item.IsOwn = item.OwnerID == requesterID
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetVisible fetches one item if the requester may see it.
func (s *ShoppingStore) GetVisible(id, requesterID string) (*model.ShoppingItem, error) {
	row := s.db.QueryRow(
		`SELECT `+shoppingCols+` FROM shopping_items si
		 JOIN users u ON si.user_id = u.id
		 WHERE si.id = ? AND `+visibleWhere,
		id, requesterID, requesterID,
	)
	item, err := scanShoppingItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shopping item: %w", err)
	}
	item.IsOwn = item.OwnerID == requesterID
	return item, nil
}

// ListOwn returns only the items the user owns (used by export).
func (s *ShoppingStore) ListOwn(userID string) ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(
		`SELECT `+shoppingCols+` FROM shopping_items si
		 JOIN users u ON si.user_id = u.id
		 WHERE si.user_id = ?
		 ORDER BY si.completed ASC, si.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list own shopping items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		item.IsOwn = true
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ShoppingStore) Create(item model.ShoppingItem) (*model.ShoppingItem, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO shopping_items (id, user_id, name, quantity, category, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.Name, item.Quantity, item.Category.String(),
		item.Completed, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert shopping item: %w", err)
	}
	return s.GetVisible(item.ID, item.OwnerID)
}

// Update rewrites an item the requester may write to (own or shared-in).
// Returns nil when the item is missing or out of the requester's reach.
func (s *ShoppingStore) Update(id, requesterID, name string, quantity int, category model.ShoppingCategory, completed bool) (*model.ShoppingItem, error) {
	result, err := s.db.Exec(
		`UPDATE shopping_items AS si
		 SET name = ?, quantity = ?, category = ?, completed = ?, updated_at = ?
		 WHERE si.id = ? AND `+visibleWhere,
		name, quantity, category.String(), completed, time.Now().UTC(),
		id, requesterID, requesterID,
	)
	if err != nil {
		return nil, fmt.Errorf("update shopping item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetVisible(id, requesterID)
}

func (s *ShoppingStore) Delete(id, requesterID string) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM shopping_items AS si WHERE si.id = ? AND `+visibleWhere,
		id, requesterID, requesterID,
	)
	if err != nil {
		return false, fmt.Errorf("delete shopping item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ClearCompleted removes every completed item in the requester's visible set
// and returns how many rows went away.
func (s *ShoppingStore) ClearCompleted(requesterID string) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM shopping_items AS si WHERE si.completed = 1 AND `+visibleWhere,
		requesterID, requesterID,
	)
	if err != nil {
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func (s *ShoppingStore) DeleteAllForUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM shopping_items WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete shopping items: %w", err)
	}
	return nil
}
