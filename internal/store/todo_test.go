package store

import (
	"testing"

	"github.com/nwinter/lifehub/internal/model"
)

func setupTodoStore(t *testing.T) (*TodoStore, *UserStore) {
	t.Helper()
	db := setupTestDB(t)
	return NewTodoStore(db), NewUserStore(db)
}

func TestTodoCRUD(t *testing.T) {
	ts, us := setupTodoStore(t)
	user := createTestUser(t, us, "alice@example.com", "Alice")

	desc := "buy a card too"
	todo, err := ts.Create(model.Todo{
		ID:          "t1",
		UserID:      user.ID,
		Title:       "Birthday",
		Description: &desc,
		Date:        "2024-06-01",
		Priority:    model.PriorityHigh,
		Recurrence:  model.RecurrenceYearly,
		IsEvent:     true,
	})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if todo.Title != "Birthday" || todo.Priority != model.PriorityHigh {
		t.Errorf("todo = %+v", todo)
	}
	if todo.Recurrence != model.RecurrenceYearly || !todo.IsEvent {
		t.Errorf("recurrence/isEvent = %v/%v", todo.Recurrence, todo.IsEvent)
	}
	if todo.Description == nil || *todo.Description != desc {
		t.Errorf("description = %v", todo.Description)
	}
	if len(todo.CompletedDates) != 0 || len(todo.ExcludedDates) != 0 {
		t.Errorf("date sets should start empty, got %v / %v", todo.CompletedDates, todo.ExcludedDates)
	}

	todo.CompletedDates = []string{"2024-06-01"}
	todo.ExcludedDates = []string{"2025-06-01"}
	todo.Title = "Birthday!"
	updated, err := ts.Update(*todo)
	if err != nil {
		t.Fatalf("update todo: %v", err)
	}
	if updated == nil {
		t.Fatal("update returned nil for an existing todo")
	}
	if updated.Title != "Birthday!" {
		t.Errorf("title = %q", updated.Title)
	}
	if len(updated.CompletedDates) != 1 || updated.CompletedDates[0] != "2024-06-01" {
		t.Errorf("completedDates = %v", updated.CompletedDates)
	}
	if len(updated.ExcludedDates) != 1 || updated.ExcludedDates[0] != "2025-06-01" {
		t.Errorf("excludedDates = %v", updated.ExcludedDates)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Errorf("updated_at %v should not precede created_at %v", updated.UpdatedAt, updated.CreatedAt)
	}

	todos, err := ts.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}

	deleted, err := ts.Delete("t1", user.ID)
	if err != nil {
		t.Fatalf("delete todo: %v", err)
	}
	if !deleted {
		t.Error("delete should report an affected row")
	}
	got, err := ts.GetByID("t1", user.ID)
	if err != nil {
		t.Fatalf("get deleted todo: %v", err)
	}
	if got != nil {
		t.Errorf("deleted todo still present: %+v", got)
	}
}

func TestTodoOwnerScoping(t *testing.T) {
	ts, us := setupTodoStore(t)
	alice := createTestUser(t, us, "alice@example.com", "Alice")
	bob := createTestUser(t, us, "bob@example.com", "Bob")

	if _, err := ts.Create(model.Todo{ID: "t1", UserID: alice.ID, Title: "Private", Date: "2024-01-01"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	got, err := ts.GetByID("t1", bob.ID)
	if err != nil {
		t.Fatalf("get as other user: %v", err)
	}
	if got != nil {
		t.Error("todo must not be readable by another user")
	}

	updated, err := ts.Update(model.Todo{ID: "t1", UserID: bob.ID, Title: "Hijacked", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("update as other user: %v", err)
	}
	if updated != nil {
		t.Error("todo must not be writable by another user")
	}

	deleted, err := ts.Delete("t1", bob.ID)
	if err != nil {
		t.Fatalf("delete as other user: %v", err)
	}
	if deleted {
		t.Error("todo must not be deletable by another user")
	}

	todos, err := ts.ListByUser(bob.ID)
	if err != nil {
		t.Fatalf("list as other user: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("other user's listing should be empty, got %d", len(todos))
	}
}

func TestTodoDeleteAllForUser(t *testing.T) {
	ts, us := setupTodoStore(t)
	alice := createTestUser(t, us, "alice@example.com", "Alice")
	bob := createTestUser(t, us, "bob@example.com", "Bob")

	for _, id := range []string{"a1", "a2"} {
		if _, err := ts.Create(model.Todo{ID: id, UserID: alice.ID, Title: id, Date: "2024-01-01"}); err != nil {
			t.Fatalf("create todo: %v", err)
		}
	}
	if _, err := ts.Create(model.Todo{ID: "b1", UserID: bob.ID, Title: "b1", Date: "2024-01-01"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	if err := ts.DeleteAllForUser(alice.ID); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	aliceTodos, _ := ts.ListByUser(alice.ID)
	bobTodos, _ := ts.ListByUser(bob.ID)
	if len(aliceTodos) != 0 {
		t.Errorf("alice should have 0 todos, got %d", len(aliceTodos))
	}
	if len(bobTodos) != 1 {
		t.Errorf("bob should keep his todo, got %d", len(bobTodos))
	}
}
