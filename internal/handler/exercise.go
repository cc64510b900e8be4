package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nwinter/lifehub/internal/auth"
	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/store"
)

type ExerciseHandler struct {
	exerciseStore *store.ExerciseStore
}

func NewExerciseHandler(es *store.ExerciseStore) *ExerciseHandler {
	return &ExerciseHandler{exerciseStore: es}
}

type exerciseRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	BodyPart       string   `json:"bodyPart"`
	Sets           int      `json:"sets"`
	Reps           int      `json:"reps"`
	PersonalRecord *float64 `json:"personalRecord"`
}

func (req *exerciseRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.BodyPart == "" {
		return "bodyPart is required"
	}
	return ""
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	exercises, err := h.exerciseStore.ListByUser(userID)
	if err != nil {
		log.Printf("failed to list exercises: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if exercises == nil {
		exercises = []model.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req exerciseRequest
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

	exercise, err := h.exerciseStore.Create(model.Exercise{
		ID:             req.ID,
		UserID:         userID,
		Name:           req.Name,
		BodyPart:       req.BodyPart,
		Sets:           req.Sets,
		Reps:           req.Reps,
		PersonalRecord: req.PersonalRecord,
	})
	if err != nil {
		log.Printf("failed to create exercise: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, exercise)
}

func (h *ExerciseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req exerciseRequest
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

	exercise, err := h.exerciseStore.Update(model.Exercise{
		ID:             req.ID,
		UserID:         userID,
		Name:           req.Name,
		BodyPart:       req.BodyPart,
		Sets:           req.Sets,
		Reps:           req.Reps,
		PersonalRecord: req.PersonalRecord,
	})
	if err != nil {
		log.Printf("failed to update exercise: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if exercise == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}

	writeJSON(w, http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	deleted, err := h.exerciseStore.Delete(id, userID)
	if err != nil {
		log.Printf("failed to delete exercise: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
