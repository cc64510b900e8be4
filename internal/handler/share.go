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

type ShareHandler struct {
	shareStore *store.ShareStore
	userStore  *store.UserStore
}

func NewShareHandler(ss *store.ShareStore, us *store.UserStore) *ShareHandler {
	return &ShareHandler{shareStore: ss, userStore: us}
}

// Status returns both directions of the requester's sharing graph.
func (h *ShareHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	sharedWith, err := h.shareStore.ListSharedWith(userID)
	if err != nil {
		log.Printf("failed to list shares: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	sharedBy, err := h.shareStore.ListSharedBy(userID)
	if err != nil {
		log.Printf("failed to list shares: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if sharedWith == nil {
		sharedWith = []model.ShareUser{}
	}
	if sharedBy == nil {
		sharedBy = []model.ShareUser{}
	}

	writeJSON(w, http.StatusOK, model.ShareStatus{SharedWith: sharedWith, SharedBy: sharedBy})
}

type shareRequest struct {
	Email string `json:"email"`
}

// Create grants another user, looked up by email, read/write access to the
// requester's shopping list.
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	target, err := h.userStore.GetByEmail(req.Email)
	if err != nil {
		log.Printf("failed to look up user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if target == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if target.ID == userID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot share with yourself"})
		return
	}

	exists, err := h.shareStore.Exists(userID, target.ID)
	if err != nil {
		log.Printf("failed to check share: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "already shared with this user"})
		return
	}

	if err := h.shareStore.Create(uuid.NewString(), userID, target.ID); err != nil {
		log.Printf("failed to create share: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"sharedWith": map[string]string{"id": target.ID, "email": target.Email, "name": target.Name},
	})
}

// Delete revokes the requester's grant to the user named by ?userId=. Only
// the requester's own outgoing edge is affected.
func (h *ShareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	targetID := r.URL.Query().Get("userId")
	if targetID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	deleted, err := h.shareStore.Delete(userID, targetID)
	if err != nil {
		log.Printf("failed to delete share: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "share not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
