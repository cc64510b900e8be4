package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nwinter/lifehub/internal/auth"
	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/store"
)

type ShoppingHandler struct {
	itemStore  *store.ShoppingStore
	auditStore *store.AuditStore
}

func NewShoppingHandler(is *store.ShoppingStore, as *store.AuditStore) *ShoppingHandler {
	return &ShoppingHandler{itemStore: is, auditStore: as}
}

type shoppingRequest struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Quantity  *int                    `json:"quantity"`
	Category  *model.ShoppingCategory `json:"category"`
	Completed bool                    `json:"completed"`
}

// recordAudit appends a trail entry. Audit failures are logged but never
// fail the mutation they describe.
func (h *ShoppingHandler) recordAudit(userID string, action model.AuditAction, itemName string, details *string) {
	if err := h.auditStore.Record(uuid.NewString(), userID, action, itemName, details); err != nil {
		log.Printf("failed to record shopping audit: %v", err)
	}
}

// List returns the requester's visible set: own items plus items of every
// owner who shares with them.
func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	items, err := h.itemStore.ListVisible(userID)
	if err != nil {
		log.Printf("failed to list shopping items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req shoppingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	item := model.ShoppingItem{
		ID:        req.ID,
		OwnerID:   userID,
		Name:      req.Name,
		Quantity:  1,
		Category:  model.CategoryFreshco,
		Completed: req.Completed,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if req.Quantity != nil && *req.Quantity > 0 {
		item.Quantity = *req.Quantity
	}
	if req.Category != nil {
		item.Category = *req.Category
	}

	created, err := h.itemStore.Create(item)
	if err != nil {
		log.Printf("failed to create shopping item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.recordAudit(userID, model.AuditAdded, created.Name, nil)

	writeJSON(w, http.StatusCreated, created)
}

func (h *ShoppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req shoppingRequest
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

	// Prior state decides whether the completed flag actually changed.
	before, err := h.itemStore.GetVisible(req.ID, userID)
	if err != nil {
		log.Printf("failed to get shopping item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if before == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	quantity := before.Quantity
	if req.Quantity != nil && *req.Quantity > 0 {
		quantity = *req.Quantity
	}
	category := before.Category
	if req.Category != nil {
		category = *req.Category
	}

	updated, err := h.itemStore.Update(req.ID, userID, req.Name, quantity, category, req.Completed)
	if err != nil {
		log.Printf("failed to update shopping item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	if before.Completed != updated.Completed {
		action := model.AuditCompleted
		if !updated.Completed {
			action = model.AuditUncompleted
		}
		h.recordAudit(userID, action, updated.Name, nil)
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes one item by ?id=, or with ?clearCompleted=true bulk-removes
// every completed item in the requester's visible set.
func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	if r.URL.Query().Get("clearCompleted") == "true" {
		count, err := h.itemStore.ClearCompleted(userID)
		if err != nil {
			log.Printf("failed to clear completed items: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}

		details := fmt.Sprintf("%d items", count)
		h.recordAudit(userID, model.AuditCleared, "completed items", &details)

		writeJSON(w, http.StatusOK, map[string]int64{"cleared": count})
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	item, err := h.itemStore.GetVisible(id, userID)
	if err != nil {
		log.Printf("failed to get shopping item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	if _, err := h.itemStore.Delete(id, userID); err != nil {
		log.Printf("failed to delete shopping item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.recordAudit(userID, model.AuditDeleted, item.Name, nil)

	w.WriteHeader(http.StatusNoContent)
}
