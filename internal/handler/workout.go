package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/nwinter/lifehub/internal/auth"
	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/recurrence"
	"github.com/nwinter/lifehub/internal/store"
)

type WorkoutHandler struct {
	workoutStore *store.WorkoutStore
}

func NewWorkoutHandler(ws *store.WorkoutStore) *WorkoutHandler {
	return &WorkoutHandler{workoutStore: ws}
}

type workoutRequest struct {
	ID        string                  `json:"id"`
	Date      string                  `json:"date"`
	Exercises []model.WorkoutExercise `json:"exercises"`
}

func (req *workoutRequest) validate() string {
	if req.Date == "" {
		return "date is required"
	}
	if _, err := recurrence.ParseDate(req.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	return ""
}

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	sessions, err := h.workoutStore.ListByUser(userID)
	if err != nil {
		log.Printf("failed to list workouts: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if sessions == nil {
		sessions = []model.WorkoutSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// Create upserts a session by id: posting an existing id replaces that
// session's exercises wholesale.
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	session, err := h.workoutStore.Upsert(model.WorkoutSession{
		ID:        req.ID,
		UserID:    userID,
		Date:      req.Date,
		Exercises: req.Exercises,
	})
	if err != nil {
		log.Printf("failed to upsert workout: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if session == nil {
		// The id conflicted with a session the caller does not own.
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	session, err := h.workoutStore.Update(model.WorkoutSession{
		ID:        req.ID,
		UserID:    userID,
		Date:      req.Date,
		Exercises: req.Exercises,
	})
	if err != nil {
		log.Printf("failed to update workout: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	deleted, err := h.workoutStore.Delete(id, userID)
	if err != nil {
		log.Printf("failed to delete workout: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
