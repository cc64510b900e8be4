package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/store"
)

func newShoppingHandler(db *sql.DB) (*ShoppingHandler, *store.AuditStore) {
	as := store.NewAuditStore(db)
	return NewShoppingHandler(store.NewShoppingStore(db), as), as
}

func auditActions(t *testing.T, as *store.AuditStore, userID string) []model.AuditAction {
	t.Helper()
	entries, err := as.ListVisible(userID)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	actions := make([]model.AuditAction, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	return actions
}

func TestShoppingCreateRecordsAudit(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com", "Alice")
	h, as := newShoppingHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/shopping", alice.ID, map[string]any{
		"name": "Milk", "quantity": 2, "category": "costco",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	item := decodeBody[model.ShoppingItem](t, rec)
	if item.Quantity != 2 || item.Category != model.CategoryCostco {
		t.Errorf("item = %+v", item)
	}

	entries, err := as.ListVisible(alice.ID)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != model.AuditAdded || entries[0].ItemName != "Milk" {
		t.Errorf("audit = %+v", entries)
	}
}

func TestShoppingCreateDefaults(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com", "Alice")
	h, _ := newShoppingHandler(db)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/shopping", alice.ID, map[string]any{"name": "Eggs"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	item := decodeBody[model.ShoppingItem](t, rec)
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
	if item.Category != model.CategoryFreshco {
		t.Errorf("category = %v, want freshco", item.Category)
	}
}

func TestShoppingUpdateAuditsCompletionChange(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com", "Alice")
	h, as := newShoppingHandler(db)

	items := store.NewShoppingStore(db)
	item, err := items.Create(model.ShoppingItem{
		ID: uuid.NewString(), OwnerID: alice.ID, Name: "Bread",
		Quantity: 1, Category: model.CategoryFreshco,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	// Rename without touching completed: no audit entry.
	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest("PUT", "/shopping", alice.ID, map[string]any{
		"id": item.ID, "name": "Sourdough", "completed": false,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := auditActions(t, as, alice.ID); len(got) != 0 {
		t.Errorf("rename should not audit, got %v", got)
	}

	// Complete it.
	rec = httptest.NewRecorder()
	h.Update(rec, authedRequest("PUT", "/shopping", alice.ID, map[string]any{
		"id": item.ID, "name": "Sourdough", "completed": true,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// Uncomplete it.
	time.Sleep(2 * time.Millisecond)
	rec = httptest.NewRecorder()
	h.Update(rec, authedRequest("PUT", "/shopping", alice.ID, map[string]any{
		"id": item.ID, "name": "Sourdough", "completed": false,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	got := auditActions(t, as, alice.ID)
	if len(got) != 2 || got[0] != model.AuditUncompleted || got[1] != model.AuditCompleted {
		t.Errorf("audit actions = %v, want [uncompleted completed]", got)
	}
}

func TestShoppingDeleteRecordsAudit(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com", "Alice")
	h, as := newShoppingHandler(db)

	items := store.NewShoppingStore(db)
	item, _ := items.Create(model.ShoppingItem{
		ID: uuid.NewString(), OwnerID: alice.ID, Name: "Butter",
		Quantity: 1, Category: model.CategoryFreshco,
	})

	rec := httptest.NewRecorder()
	h.Delete(rec, authedRequest("DELETE", "/shopping?id="+item.ID, alice.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	entries, _ := as.ListVisible(alice.ID)
	if len(entries) != 1 || entries[0].Action != model.AuditDeleted || entries[0].ItemName != "Butter" {
		t.Errorf("audit = %+v", entries)
	}
}

func TestShoppingClearCompleted(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com", "Alice")
	h, as := newShoppingHandler(db)

	items := store.NewShoppingStore(db)
	for _, it := range []struct {
		name      string
		completed bool
	}{
		{"done-1", true},
		{"done-2", true},
		{"pending", false},
	} {
		if _, err := items.Create(model.ShoppingItem{
			ID: uuid.NewString(), OwnerID: alice.ID, Name: it.name,
			Quantity: 1, Category: model.CategoryFreshco, Completed: it.completed,
		}); err != nil {
			t.Fatalf("create %s: %v", it.name, err)
		}
	}

	rec := httptest.NewRecorder()
	h.Delete(rec, authedRequest("DELETE", "/shopping?clearCompleted=true", alice.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeBody[map[string]int64](t, rec)
	if resp["cleared"] != 2 {
		t.Errorf("cleared = %d, want 2", resp["cleared"])
	}

	remaining, _ := items.ListVisible(alice.ID)
	if len(remaining) != 1 || remaining[0].Name != "pending" {
		t.Errorf("remaining = %+v", remaining)
	}

	entries, _ := as.ListVisible(alice.ID)
	if len(entries) != 1 || entries[0].Action != model.AuditCleared {
		t.Fatalf("audit = %+v", entries)
	}
	if entries[0].Details == nil || *entries[0].Details != "2 items" {
		t.Errorf("details = %v, want \"2 items\"", entries[0].Details)
	}
}

func TestShoppingSharedWriteAccess(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com", "Alice")
	bob := createTestUser(t, db, "bob@example.com", "Bob")
	h, _ := newShoppingHandler(db)

	items := store.NewShoppingStore(db)
	item, _ := items.Create(model.ShoppingItem{
		ID: uuid.NewString(), OwnerID: alice.ID, Name: "Cheese",
		Quantity: 1, Category: model.CategoryFreshco,
	})

	// Before the share, Bob cannot touch Alice's item.
	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest("PUT", "/shopping", bob.ID, map[string]any{
		"id": item.ID, "name": "Cheddar", "completed": false,
	}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status before share = %d, want %d", rec.Code, http.StatusNotFound)
	}

	if err := store.NewShareStore(db).Create(uuid.NewString(), alice.ID, bob.ID); err != nil {
		t.Fatalf("create share: %v", err)
	}

	rec = httptest.NewRecorder()
	h.Update(rec, authedRequest("PUT", "/shopping", bob.ID, map[string]any{
		"id": item.ID, "name": "Cheddar", "completed": true,
	}))
	if rec.Code != http.StatusOK {
		t.Errorf("status after share = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}
