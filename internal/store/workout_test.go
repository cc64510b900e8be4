package store

import (
	"testing"

	"github.com/nwinter/lifehub/internal/model"
)

func TestBodyPartEnsureDefaults(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	parts := NewBodyPartStore(db)
	alice := createTestUser(t, users, "alice@example.com", "Alice")

	seeded, err := parts.EnsureDefaults(alice.ID)
	if err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}
	if len(seeded) != 4 {
		t.Fatalf("expected 4 seeded body parts, got %d", len(seeded))
	}
	wantNames := []string{"Chest/Tri", "Back/Bi", "Shoulders", "Legs/Core"}
	for i, want := range wantNames {
		if seeded[i].Name != want {
			t.Errorf("seeded[%d].Name = %q, want %q", i, seeded[i].Name, want)
		}
		if seeded[i].SortOrder != i {
			t.Errorf("seeded[%d].SortOrder = %d, want %d", i, seeded[i].SortOrder, i)
		}
	}

	// A second call must not duplicate the seeds.
	again, err := parts.EnsureDefaults(alice.ID)
	if err != nil {
		t.Fatalf("ensure defaults again: %v", err)
	}
	if len(again) != 4 {
		t.Errorf("seeding should be one-time, got %d parts", len(again))
	}

	// Seeds are per-user.
	bob := createTestUser(t, users, "bob@example.com", "Bob")
	bobParts, err := parts.ListByUser(bob.ID)
	if err != nil {
		t.Fatalf("list for bob: %v", err)
	}
	if len(bobParts) != 0 {
		t.Errorf("bob should have no body parts before first access, got %d", len(bobParts))
	}
}

func TestBodyPartCRUD(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	parts := NewBodyPartStore(db)
	alice := createTestUser(t, users, "alice@example.com", "Alice")

	bp, err := parts.Create(model.BodyPart{ID: "bp1", UserID: alice.ID, Name: "Arms", Color: "#00FF00", SortOrder: 9})
	if err != nil {
		t.Fatalf("create body part: %v", err)
	}
	if bp.Name != "Arms" || bp.Color != "#00FF00" || bp.SortOrder != 9 {
		t.Errorf("body part = %+v", bp)
	}

	updated, err := parts.Update(model.BodyPart{ID: "bp1", UserID: alice.ID, Name: "Arms & Grip", Color: "#00AA00", SortOrder: 2})
	if err != nil {
		t.Fatalf("update body part: %v", err)
	}
	if updated == nil || updated.Name != "Arms & Grip" || updated.SortOrder != 2 {
		t.Errorf("updated = %+v", updated)
	}

	deleted, err := parts.Delete("bp1", alice.ID)
	if err != nil {
		t.Fatalf("delete body part: %v", err)
	}
	if !deleted {
		t.Error("delete should report an affected row")
	}
}

func TestExerciseCRUD(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	exercises := NewExerciseStore(db)
	alice := createTestUser(t, users, "alice@example.com", "Alice")

	pr := 80.5
	e, err := exercises.Create(model.Exercise{
		ID: "e1", UserID: alice.ID, Name: "Bench Press", BodyPart: "bp1",
		Sets: 3, Reps: 8, PersonalRecord: &pr,
	})
	if err != nil {
		t.Fatalf("create exercise: %v", err)
	}
	if e.Sets != 3 || e.Reps != 8 {
		t.Errorf("sets/reps = %d/%d", e.Sets, e.Reps)
	}
	if e.PersonalRecord == nil || *e.PersonalRecord != 80.5 {
		t.Errorf("personalRecord = %v", e.PersonalRecord)
	}

	// Nil PR round-trips as NULL.
	e2, err := exercises.Create(model.Exercise{ID: "e2", UserID: alice.ID, Name: "Plank", BodyPart: "bp2"})
	if err != nil {
		t.Fatalf("create exercise: %v", err)
	}
	if e2.PersonalRecord != nil {
		t.Errorf("personalRecord = %v, want nil", e2.PersonalRecord)
	}

	newPR := 85.0
	updated, err := exercises.Update(model.Exercise{
		ID: "e1", UserID: alice.ID, Name: "Bench Press", BodyPart: "bp1",
		Sets: 4, Reps: 6, PersonalRecord: &newPR,
	})
	if err != nil {
		t.Fatalf("update exercise: %v", err)
	}
	if updated == nil || updated.Sets != 4 || *updated.PersonalRecord != 85.0 {
		t.Errorf("updated = %+v", updated)
	}

	list, err := exercises.ListByUser(alice.ID)
	if err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(list))
	}
	// Ordered by body part then name.
	if list[0].ID != "e1" || list[1].ID != "e2" {
		t.Errorf("order = %s, %s", list[0].ID, list[1].ID)
	}
}

func TestWorkoutUpsert(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	workouts := NewWorkoutStore(db)
	alice := createTestUser(t, users, "alice@example.com", "Alice")

	session := model.WorkoutSession{
		ID: "w1", UserID: alice.ID, Date: "2024-05-01",
		Exercises: []model.WorkoutExercise{
			{ExerciseID: "e1", Sets: []model.WorkoutSet{{Reps: 8, Weight: 60}, {Reps: 6, Weight: 70}}},
		},
	}
	created, err := workouts.Upsert(session)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(created.Exercises) != 1 || len(created.Exercises[0].Sets) != 2 {
		t.Fatalf("created = %+v", created)
	}
	if created.Exercises[0].Sets[1].Weight != 70 {
		t.Errorf("set weight = %v, want 70", created.Exercises[0].Sets[1].Weight)
	}

	// Upserting the same id replaces the exercise list wholesale.
	session.Exercises = []model.WorkoutExercise{
		{ExerciseID: "e2", Sets: []model.WorkoutSet{{Reps: 12, Weight: 40}}},
	}
	replaced, err := workouts.Upsert(session)
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if len(replaced.Exercises) != 1 || replaced.Exercises[0].ExerciseID != "e2" {
		t.Errorf("replaced = %+v", replaced)
	}

	list, err := workouts.ListByUser(alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("upsert must not create a second row, got %d", len(list))
	}
}

func TestWorkoutUpsertOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	workouts := NewWorkoutStore(db)
	alice := createTestUser(t, users, "alice@example.com", "Alice")
	bob := createTestUser(t, users, "bob@example.com", "Bob")

	if _, err := workouts.Upsert(model.WorkoutSession{
		ID: "w1", UserID: alice.ID, Date: "2024-05-01",
		Exercises: []model.WorkoutExercise{
			{ExerciseID: "e1", Sets: []model.WorkoutSet{{Reps: 8, Weight: 60}}},
		},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A conflicting id owned by someone else must not be overwritten.
	got, err := workouts.Upsert(model.WorkoutSession{
		ID: "w1", UserID: bob.ID, Date: "2024-05-02",
		Exercises: []model.WorkoutExercise{},
	})
	if err != nil {
		t.Fatalf("upsert foreign id: %v", err)
	}
	if got != nil {
		t.Errorf("foreign-id upsert should return nil, got %+v", got)
	}

	kept, err := workouts.GetByID("w1", alice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept == nil || len(kept.Exercises) != 1 || kept.Exercises[0].ExerciseID != "e1" {
		t.Errorf("alice's session changed: %+v", kept)
	}

	bobRows, err := workouts.ListByUser(bob.ID)
	if err != nil {
		t.Fatalf("list for bob: %v", err)
	}
	if len(bobRows) != 0 {
		t.Errorf("bob should own no sessions, got %+v", bobRows)
	}
}

func TestWorkoutListNewestDateFirst(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	workouts := NewWorkoutStore(db)
	alice := createTestUser(t, users, "alice@example.com", "Alice")

	for _, s := range []model.WorkoutSession{
		{ID: "w1", UserID: alice.ID, Date: "2024-05-01"},
		{ID: "w2", UserID: alice.ID, Date: "2024-05-03"},
		{ID: "w3", UserID: alice.ID, Date: "2024-05-02"},
	} {
		if _, err := workouts.Upsert(s); err != nil {
			t.Fatalf("upsert %s: %v", s.ID, err)
		}
	}

	list, err := workouts.ListByUser(alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"w2", "w3", "w1"}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, id)
		}
	}
}
