package store

import "testing"

func TestUserCreateAndGet(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	u, err := us.Create("u1", "alice@example.com", "Alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "alice@example.com" || u.Name != "Alice" {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash != "hash" {
		t.Errorf("password hash = %q, want %q", u.PasswordHash, "hash")
	}

	got, err := us.GetByID("u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("got = %+v", got)
	}

	missing, err := us.GetByID("nope")
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing user, got %+v", missing)
	}
}

func TestUserGetByEmailCaseInsensitive(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	if _, err := us.Create("u1", "alice@example.com", "Alice", "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := us.GetByEmail("ALICE@Example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("case-insensitive lookup failed, got %+v", got)
	}
}

func TestUserDuplicateEmailRejected(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	if _, err := us.Create("u1", "alice@example.com", "Alice", "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := us.Create("u2", "Alice@Example.com", "Imposter", "hash"); err == nil {
		t.Error("duplicate email (differing only by case) should violate the unique index")
	}
}
