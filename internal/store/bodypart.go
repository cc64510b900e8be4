package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/nwinter/lifehub/internal/model"
)

// defaultBodyParts seeds a user's taxonomy on first access.
var defaultBodyParts = []struct {
	Name  string
	Color string
}{
	{"Chest/Tri", "#EF4444"},
	{"Back/Bi", "#6366F1"},
	{"Shoulders", "#F59E0B"},
	{"Legs/Core", "#EC4899"},
}

type BodyPartStore struct {
	db *sql.DB
}

func NewBodyPartStore(db *sql.DB) *BodyPartStore {
	return &BodyPartStore{db: db}
}

func scanBodyPart(scanner interface{ Scan(...any) error }) (*model.BodyPart, error) {
	var bp model.BodyPart
	err := scanner.Scan(&bp.ID, &bp.UserID, &bp.Name, &bp.Color, &bp.SortOrder, &bp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &bp, nil
}

const bodyPartCols = `id, user_id, name, color, sort_order, created_at`

func (s *BodyPartStore) ListByUser(userID string) ([]model.BodyPart, error) {
	rows, err := s.db.Query(
		`SELECT `+bodyPartCols+` FROM body_parts WHERE user_id = ? ORDER BY sort_order ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}
	defer rows.Close()

	var parts []model.BodyPart
	for rows.Next() {
		bp, err := scanBodyPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan body part: %w", err)
		}
		parts = append(parts, *bp)
	}
	return parts, rows.Err()
}

// EnsureDefaults seeds the four default body parts when the user has none,
// then returns the user's list.
func (s *BodyPartStore) EnsureDefaults(userID string) ([]model.BodyPart, error) {
	parts, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(parts) > 0 {
		return parts, nil
	}

	for i, def := range defaultBodyParts {
		_, err := s.db.Exec(
			`INSERT INTO body_parts (id, user_id, name, color, sort_order) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), userID, def.Name, def.Color, i,
		)
		if err != nil {
			return nil, fmt.Errorf("seed body part: %w", err)
		}
	}
	return s.ListByUser(userID)
}

func (s *BodyPartStore) GetByID(id, userID string) (*model.BodyPart, error) {
	row := s.db.QueryRow(`SELECT `+bodyPartCols+` FROM body_parts WHERE id = ? AND user_id = ?`, id, userID)
	bp, err := scanBodyPart(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get body part: %w", err)
	}
	return bp, nil
}

func (s *BodyPartStore) Create(bp model.BodyPart) (*model.BodyPart, error) {
	_, err := s.db.Exec(
		`INSERT INTO body_parts (id, user_id, name, color, sort_order) VALUES (?, ?, ?, ?, ?)`,
		bp.ID, bp.UserID, bp.Name, bp.Color, bp.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert body part: %w", err)
	}
	return s.GetByID(bp.ID, bp.UserID)
}

func (s *BodyPartStore) Update(bp model.BodyPart) (*model.BodyPart, error) {
	result, err := s.db.Exec(
		`UPDATE body_parts SET name = ?, color = ?, sort_order = ? WHERE id = ? AND user_id = ?`,
		bp.Name, bp.Color, bp.SortOrder, bp.ID, bp.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update body part: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetByID(bp.ID, bp.UserID)
}

func (s *BodyPartStore) Delete(id, userID string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM body_parts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete body part: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *BodyPartStore) DeleteAllForUser(userID string) error {
	if _, err := s.db.Exec(`DELETE FROM body_parts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete body parts for user: %w", err)
	}
	return nil
}
