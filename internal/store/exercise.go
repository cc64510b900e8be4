package store

import (
	"database/sql"
	"fmt"

	"github.com/nwinter/lifehub/internal/model"
)

type ExerciseStore struct {
	db *sql.DB
}

func NewExerciseStore(db *sql.DB) *ExerciseStore {
	return &ExerciseStore{db: db}
}

func scanExercise(scanner interface{ Scan(...any) error }) (*model.Exercise, error) {
	var e model.Exercise
	var pr sql.NullFloat64
	err := scanner.Scan(&e.ID, &e.UserID, &e.Name, &e.BodyPart, &e.Sets, &e.Reps, &pr, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if pr.Valid {
		e.PersonalRecord = &pr.Float64
	}
	return &e, nil
}

const exerciseCols = `id, user_id, name, body_part, sets, reps, personal_record, created_at`

func (s *ExerciseStore) ListByUser(userID string) ([]model.Exercise, error) {
	rows, err := s.db.Query(
		`SELECT `+exerciseCols+` FROM exercises WHERE user_id = ? ORDER BY body_part ASC, name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []model.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, *e)
	}
	return exercises, rows.Err()
}

func (s *ExerciseStore) GetByID(id, userID string) (*model.Exercise, error) {
	row := s.db.QueryRow(`SELECT `+exerciseCols+` FROM exercises WHERE id = ? AND user_id = ?`, id, userID)
	e, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

func (s *ExerciseStore) Create(e model.Exercise) (*model.Exercise, error) {
	_, err := s.db.Exec(
		`INSERT INTO exercises (id, user_id, name, body_part, sets, reps, personal_record)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Name, e.BodyPart, e.Sets, e.Reps, e.PersonalRecord,
	)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	return s.GetByID(e.ID, e.UserID)
}

func (s *ExerciseStore) Update(e model.Exercise) (*model.Exercise, error) {
	result, err := s.db.Exec(
		`UPDATE exercises SET name = ?, body_part = ?, sets = ?, reps = ?, personal_record = ?
		 WHERE id = ? AND user_id = ?`,
		e.Name, e.BodyPart, e.Sets, e.Reps, e.PersonalRecord, e.ID, e.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetByID(e.ID, e.UserID)
}

func (s *ExerciseStore) Delete(id, userID string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM exercises WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete exercise: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *ExerciseStore) DeleteAllForUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM exercises WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete exercises: %w", err)
	}
	return nil
}
