package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nwinter/lifehub/internal/auth"
	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/store"
)

// snapshotVersion is the wire version of the export format. Import rejects
// anything else.
const snapshotVersion = "1.0.0"

type snapshotData struct {
	Todos     []model.Todo           `json:"todos"`
	Shopping  []model.ShoppingItem   `json:"shopping"`
	Exercises []model.Exercise       `json:"exercises"`
	Workouts  []model.WorkoutSession `json:"workouts"`
	BodyParts []model.BodyPart       `json:"bodyParts"`
}

type snapshot struct {
	Version   string       `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	Data      snapshotData `json:"data"`
}

// TransferHandler serves whole-account JSON export and import. Shopping is
// limited to the caller's own items; shared-in items belong to their owner's
// export, not the caller's.
type TransferHandler struct {
	todoStore     *store.TodoStore
	shoppingStore *store.ShoppingStore
	exerciseStore *store.ExerciseStore
	bodyPartStore *store.BodyPartStore
	workoutStore  *store.WorkoutStore
	logger        *slog.Logger
}

func NewTransferHandler(
	ts *store.TodoStore,
	ss *store.ShoppingStore,
	es *store.ExerciseStore,
	bs *store.BodyPartStore,
	ws *store.WorkoutStore,
	logger *slog.Logger,
) *TransferHandler {
	return &TransferHandler{
		todoStore:     ts,
		shoppingStore: ss,
		exerciseStore: es,
		bodyPartStore: bs,
		workoutStore:  ws,
		logger:        logger,
	}
}

func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	todos, err := h.todoStore.ListByUser(userID)
	if err != nil {
		h.fail(w, "export todos", err)
		return
	}
	shopping, err := h.shoppingStore.ListOwn(userID)
	if err != nil {
		h.fail(w, "export shopping", err)
		return
	}
	exercises, err := h.exerciseStore.ListByUser(userID)
	if err != nil {
		h.fail(w, "export exercises", err)
		return
	}
	bodyParts, err := h.bodyPartStore.ListByUser(userID)
	if err != nil {
		h.fail(w, "export body parts", err)
		return
	}
	workouts, err := h.workoutStore.ListByUser(userID)
	if err != nil {
		h.fail(w, "export workouts", err)
		return
	}

	snap := snapshot{
		Version:   snapshotVersion,
		Timestamp: time.Now().UTC(),
		Data: snapshotData{
			Todos:     emptyIfNil(todos),
			Shopping:  emptyIfNil(shopping),
			Exercises: emptyIfNil(exercises),
			Workouts:  emptyIfNil(workouts),
			BodyParts: emptyIfNil(bodyParts),
		},
	}

	writeJSON(w, http.StatusOK, snap)
}

// Import replaces the caller's rows wholesale with the snapshot's contents.
// Rows in the snapshot keep their ids when present.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var snap snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if snap.Version != snapshotVersion {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported snapshot version"})
		return
	}

	if err := h.todoStore.DeleteAllForUser(userID); err != nil {
		h.fail(w, "import clear todos", err)
		return
	}
	if err := h.shoppingStore.DeleteAllForUser(userID); err != nil {
		h.fail(w, "import clear shopping", err)
		return
	}
	if err := h.exerciseStore.DeleteAllForUser(userID); err != nil {
		h.fail(w, "import clear exercises", err)
		return
	}
	if err := h.bodyPartStore.DeleteAllForUser(userID); err != nil {
		h.fail(w, "import clear body parts", err)
		return
	}
	if err := h.workoutStore.DeleteAllForUser(userID); err != nil {
		h.fail(w, "import clear workouts", err)
		return
	}

	for _, t := range snap.Data.Todos {
		t.UserID = userID
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if _, err := h.todoStore.Create(t); err != nil {
			h.fail(w, "import todo", err)
			return
		}
	}
	for _, item := range snap.Data.Shopping {
		item.OwnerID = userID
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if _, err := h.shoppingStore.Create(item); err != nil {
			h.fail(w, "import shopping item", err)
			return
		}
	}
	for _, e := range snap.Data.Exercises {
		e.UserID = userID
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if _, err := h.exerciseStore.Create(e); err != nil {
			h.fail(w, "import exercise", err)
			return
		}
	}
	for _, bp := range snap.Data.BodyParts {
		bp.UserID = userID
		if bp.ID == "" {
			bp.ID = uuid.NewString()
		}
		if _, err := h.bodyPartStore.Create(bp); err != nil {
			h.fail(w, "import body part", err)
			return
		}
	}
	for _, ws := range snap.Data.Workouts {
		ws.UserID = userID
		if ws.ID == "" {
			ws.ID = uuid.NewString()
		}
		created, err := h.workoutStore.Upsert(ws)
		if err != nil {
			h.fail(w, "import workout", err)
			return
		}
		if created == nil {
			// The snapshot id belongs to another account; re-key the row.
			ws.ID = uuid.NewString()
			if _, err := h.workoutStore.Upsert(ws); err != nil {
				h.fail(w, "import workout", err)
				return
			}
		}
	}

	h.logger.Info("snapshot imported", "user", userID,
		"todos", len(snap.Data.Todos),
		"shopping", len(snap.Data.Shopping),
		"exercises", len(snap.Data.Exercises),
		"workouts", len(snap.Data.Workouts))

	writeJSON(w, http.StatusOK, map[string]bool{"imported": true})
}

func (h *TransferHandler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error("transfer failed", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
