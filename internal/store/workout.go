package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nwinter/lifehub/internal/model"
)

type WorkoutStore struct {
	db *sql.DB
}

func NewWorkoutStore(db *sql.DB) *WorkoutStore {
	return &WorkoutStore{db: db}
}

func marshalExercises(exercises []model.WorkoutExercise) (string, error) {
	if exercises == nil {
		exercises = []model.WorkoutExercise{}
	}
	b, err := json.Marshal(exercises)
	if err != nil {
		return "", fmt.Errorf("encode exercises: %w", err)
	}
	return string(b), nil
}

func scanWorkout(scanner interface{ Scan(...any) error }) (*model.WorkoutSession, error) {
	var w model.WorkoutSession
	var exercises string
	err := scanner.Scan(&w.ID, &w.UserID, &w.Date, &exercises, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	w.Exercises = []model.WorkoutExercise{}
	if exercises != "" {
		if err := json.Unmarshal([]byte(exercises), &w.Exercises); err != nil {
			return nil, fmt.Errorf("decode exercises: %w", err)
		}
	}
	return &w, nil
}

const workoutCols = `id, user_id, date, exercises, created_at`

func (s *WorkoutStore) ListByUser(userID string) ([]model.WorkoutSession, error) {
	rows, err := s.db.Query(
		`SELECT `+workoutCols+` FROM workout_sessions WHERE user_id = ? ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var sessions []model.WorkoutSession
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		sessions = append(sessions, *w)
	}
	return sessions, rows.Err()
}

func (s *WorkoutStore) GetByID(id, userID string) (*model.WorkoutSession, error) {
	row := s.db.QueryRow(`SELECT `+workoutCols+` FROM workout_sessions WHERE id = ? AND user_id = ?`, id, userID)
	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// Upsert inserts a session or, when the id already exists and belongs to the
// same user, replaces its exercise list wholesale. A conflicting id owned by
// another user is left untouched and nil is returned. One session per day is
// the client's convention; the id is the conflict key.
func (s *WorkoutStore) Upsert(w model.WorkoutSession) (*model.WorkoutSession, error) {
	exercises, err := marshalExercises(w.Exercises)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`INSERT INTO workout_sessions (id, user_id, date, exercises) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET exercises = excluded.exercises
		 WHERE workout_sessions.user_id = excluded.user_id`,
		w.ID, w.UserID, w.Date, exercises,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert workout: %w", err)
	}
	return s.GetByID(w.ID, w.UserID)
}

func (s *WorkoutStore) Update(w model.WorkoutSession) (*model.WorkoutSession, error) {
	exercises, err := marshalExercises(w.Exercises)
	if err != nil {
		return nil, err
	}
	result, err := s.db.Exec(
		`UPDATE workout_sessions SET date = ?, exercises = ? WHERE id = ? AND user_id = ?`,
		w.Date, exercises, w.ID, w.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetByID(w.ID, w.UserID)
}

func (s *WorkoutStore) Delete(id, userID string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM workout_sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *WorkoutStore) DeleteAllForUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM workout_sessions WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete workouts: %w", err)
	}
	return nil
}
