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

type BodyPartHandler struct {
	bodyPartStore *store.BodyPartStore
}

func NewBodyPartHandler(bs *store.BodyPartStore) *BodyPartHandler {
	return &BodyPartHandler{bodyPartStore: bs}
}

type bodyPartRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sortOrder"`
}

// List returns the user's body parts, seeding the default set on first use.
func (h *BodyPartHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	parts, err := h.bodyPartStore.EnsureDefaults(userID)
	if err != nil {
		log.Printf("failed to list body parts: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if parts == nil {
		parts = []model.BodyPart{}
	}
	writeJSON(w, http.StatusOK, parts)
}

func (h *BodyPartHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req bodyPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	part, err := h.bodyPartStore.Create(model.BodyPart{
		ID:        req.ID,
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		log.Printf("failed to create body part: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, part)
}

func (h *BodyPartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req bodyPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	part, err := h.bodyPartStore.Update(model.BodyPart{
		ID:        req.ID,
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		log.Printf("failed to update body part: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if part == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "body part not found"})
		return
	}

	writeJSON(w, http.StatusOK, part)
}

func (h *BodyPartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	deleted, err := h.bodyPartStore.Delete(id, userID)
	if err != nil {
		log.Printf("failed to delete body part: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "body part not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
