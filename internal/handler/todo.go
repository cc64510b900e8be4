package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nwinter/lifehub/internal/auth"
	"github.com/nwinter/lifehub/internal/model"
	"github.com/nwinter/lifehub/internal/recurrence"
	"github.com/nwinter/lifehub/internal/store"
)

type TodoHandler struct {
	todoStore *store.TodoStore
}

func NewTodoHandler(ts *store.TodoStore) *TodoHandler {
	return &TodoHandler{todoStore: ts}
}

type todoRequest struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    *string           `json:"description"`
	Completed      bool              `json:"completed"`
	Date           string            `json:"date"`
	Time           *string           `json:"time"`
	Priority       *model.Priority   `json:"priority"`
	Recurrence     *model.Recurrence `json:"recurrence"`
	CompletedDates []string          `json:"completedDates"`
	ExcludedDates  []string          `json:"excludedDates"`
	IsEvent        bool              `json:"isEvent"`
}

func (req *todoRequest) toModel(userID string) model.Todo {
	t := model.Todo{
		ID:             req.ID,
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Completed:      req.Completed,
		Date:           req.Date,
		Time:           req.Time,
		Priority:       model.PriorityMedium,
		Recurrence:     model.RecurrenceNone,
		CompletedDates: req.CompletedDates,
		ExcludedDates:  req.ExcludedDates,
		IsEvent:        req.IsEvent,
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Recurrence != nil {
		t.Recurrence = *req.Recurrence
	}
	if t.IsEvent {
		// Events are never completable; completion state on the payload
		// is discarded rather than rejected.
		t.Completed = false
		t.CompletedDates = nil
	}
	return t
}

func (req *todoRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if req.Date == "" {
		return "date is required"
	}
	if _, err := recurrence.ParseDate(req.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	return ""
}

// List returns the user's todos. With ?date=YYYY-MM-DD it instead resolves
// recurrence rules and returns the occurrences visible on that day.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	todos, err := h.todoStore.ListByUser(userID)
	if err != nil {
		log.Printf("failed to list todos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := recurrence.ParseDate(dateStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			return
		}
		occurrences := recurrence.ResolveDay(todos, date)
		if occurrences == nil {
			occurrences = []recurrence.Occurrence{}
		}
		writeJSON(w, http.StatusOK, occurrences)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req todoRequest
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

	todo, err := h.todoStore.Create(req.toModel(userID))
	if err != nil {
		log.Printf("failed to create todo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req todoRequest
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

	todo, err := h.todoStore.Update(req.toModel(userID))
	if err != nil {
		log.Printf("failed to update todo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if todo == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Delete removes the todo row identified by ?id=. With ?date= as well, only
// that single occurrence is excluded and the todo itself is kept.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := recurrence.ParseDate(dateStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			return
		}

		todo, err := h.todoStore.GetByID(id, userID)
		if err != nil {
			log.Printf("failed to get todo: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		if todo == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
			return
		}

		if _, err := h.todoStore.Update(recurrence.ExcludeOccurrence(*todo, date)); err != nil {
			log.Printf("failed to exclude occurrence: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	deleted, err := h.todoStore.Delete(id, userID)
	if err != nil {
		log.Printf("failed to delete todo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
