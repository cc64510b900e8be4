package handler

import (
	"log"
	"net/http"

	"github.com/nwinter/lifehub/internal/auth"
	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/store"
)

type AuditHandler struct {
	auditStore *store.AuditStore
}

func NewAuditHandler(as *store.AuditStore) *AuditHandler {
	return &AuditHandler{auditStore: as}
}

// List returns the newest 50 audit entries across the requester's sharing
// graph, both users who share with them and users they share with.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	entries, err := h.auditStore.ListVisible(userID)
	if err != nil {
		log.Printf("failed to list audit entries: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
