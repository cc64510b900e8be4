package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nwinter/lifehub/internal/model"
)

type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

// dateSet round-trips the completed/excluded date arrays through their JSON
// text columns (sqlite has no array type).
func marshalDateSet(dates []string) string {
	if dates == nil {
		dates = []string{}
	}
	b, _ := json.Marshal(dates)
	return string(b)
}

func unmarshalDateSet(raw string) ([]string, error) {
	dates := []string{}
	if raw == "" {
		return dates, nil
	}
	if err := json.Unmarshal([]byte(raw), &dates); err != nil {
		return nil, fmt.Errorf("decode date set: %w", err)
	}
	return dates, nil
}

func scanTodo(scanner interface{ Scan(...any) error }) (*model.Todo, error) {
	var t model.Todo
	var description, timeOfDay sql.NullString
	var completed, isEvent int
	var priority, recurrence, completedDates, excludedDates string

	err := scanner.Scan(
		&t.ID, &t.UserID, &t.Title, &description, &completed, &t.Date, &timeOfDay,
		&priority, &recurrence, &completedDates, &excludedDates, &isEvent,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Completed = completed != 0
	t.IsEvent = isEvent != 0
	if description.Valid {
		t.Description = &description.String
	}
	if timeOfDay.Valid {
		t.Time = &timeOfDay.String
	}
	if t.Priority, err = model.ParsePriority(priority); err != nil {
		return nil, err
	}
	if t.Recurrence, err = model.ParseRecurrence(recurrence); err != nil {
		return nil, err
	}
	if t.CompletedDates, err = unmarshalDateSet(completedDates); err != nil {
		return nil, err
	}
	if t.ExcludedDates, err = unmarshalDateSet(excludedDates); err != nil {
		return nil, err
	}
	return &t, nil
}

const todoCols = `id, user_id, title, description, completed, date, time, priority, recurrence, completed_dates, excluded_dates, is_event, created_at, updated_at`

func (s *TodoStore) ListByUser(userID string) ([]model.Todo, error) {
	rows, err := s.db.Query(
		`SELECT `+todoCols+` FROM todos WHERE user_id = ? ORDER BY date ASC, time ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

func (s *TodoStore) GetByID(id, userID string) (*model.Todo, error) {
	row := s.db.QueryRow(`SELECT `+todoCols+` FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

func (s *TodoStore) Create(t model.Todo) (*model.Todo, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO todos (id, user_id, title, description, completed, date, time, priority, recurrence, completed_dates, excluded_dates, is_event, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, t.Completed, t.Date, t.Time,
		t.Priority.String(), t.Recurrence.String(),
		marshalDateSet(t.CompletedDates), marshalDateSet(t.ExcludedDates),
		t.IsEvent, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return s.GetByID(t.ID, t.UserID)
}

// Update rewrites the row wholesale, scoped to the owner. Returns nil when
// the todo does not exist or belongs to someone else.
func (s *TodoStore) Update(t model.Todo) (*model.Todo, error) {
	result, err := s.db.Exec(
		`UPDATE todos SET title = ?, description = ?, completed = ?, date = ?, time = ?, priority = ?, recurrence = ?, completed_dates = ?, excluded_dates = ?, is_event = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		t.Title, t.Description, t.Completed, t.Date, t.Time,
		t.Priority.String(), t.Recurrence.String(),
		marshalDateSet(t.CompletedDates), marshalDateSet(t.ExcludedDates),
		t.IsEvent, time.Now().UTC(), t.ID, t.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetByID(t.ID, t.UserID)
}

func (s *TodoStore) Delete(id, userID string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *TodoStore) DeleteAllForUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete todos: %w", err)
	}
	return nil
}
