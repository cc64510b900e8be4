package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/nwinter/lifehub/internal/database"
	"github.com/nwinter/lifehub/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, us *UserStore, email, name string) *model.User {
	t.Helper()
	u, err := us.Create(uuid.NewString(), email, name, "x")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}
