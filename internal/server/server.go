package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/nwinter/lifehub/internal/database"
	"github.com/nwinter/lifehub/internal/handler"
	"github.com/nwinter/lifehub/internal/middleware"
	"github.com/nwinter/lifehub/internal/store"
)

type Server struct {
	db          *sql.DB
	secret      []byte
	authH       *handler.AuthHandler
	todoH       *handler.TodoHandler
	shoppingH   *handler.ShoppingHandler
	shareH      *handler.ShareHandler
	auditH      *handler.AuditHandler
	exerciseH   *handler.ExerciseHandler
	bodyPartH   *handler.BodyPartHandler
	workoutH    *handler.WorkoutHandler
	transferH   *handler.TransferHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, secret []byte, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	todoStore := store.NewTodoStore(db)
	shoppingStore := store.NewShoppingStore(db)
	shareStore := store.NewShareStore(db)
	auditStore := store.NewAuditStore(db)
	exerciseStore := store.NewExerciseStore(db)
	bodyPartStore := store.NewBodyPartStore(db)
	workoutStore := store.NewWorkoutStore(db)

	return &Server{
		db:        db,
		secret:    secret,
		authH:     handler.NewAuthHandler(userStore, secret, logger.With("component", "auth")),
		todoH:     handler.NewTodoHandler(todoStore),
		shoppingH: handler.NewShoppingHandler(shoppingStore, auditStore),
		shareH:    handler.NewShareHandler(shareStore, userStore),
		auditH:    handler.NewAuditHandler(auditStore),
		exerciseH: handler.NewExerciseHandler(exerciseStore),
		bodyPartH: handler.NewBodyPartHandler(bodyPartStore),
		workoutH:  handler.NewWorkoutHandler(workoutStore),
		transferH: handler.NewTransferHandler(
			todoStore, shoppingStore, exerciseStore, bodyPartStore, workoutStore,
			logger.With("component", "transfer"),
		),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required). The path-only patterns catch the
	// remaining verbs, which would otherwise fall into the protected
	// catch-all and answer 401 instead of 405.
	outerMux.HandleFunc("POST /signup", s.rateLimitedHandler(s.authH.Signup))
	outerMux.HandleFunc("POST /init", s.initHandler)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("/signup", s.methodNotAllowedHandler)
	outerMux.HandleFunc("/init", s.methodNotAllowedHandler)
	outerMux.HandleFunc("/health", s.methodNotAllowedHandler)

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.secret)
	outerMux.Handle("/", authMiddleware(protectedMux))

	logged := middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})(logged)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /me", s.authH.Me)

	mux.HandleFunc("GET /todos", s.todoH.List)
	mux.HandleFunc("POST /todos", s.todoH.Create)
	mux.HandleFunc("PUT /todos", s.todoH.Update)
	mux.HandleFunc("DELETE /todos", s.todoH.Delete)

	mux.HandleFunc("GET /shopping", s.shoppingH.List)
	mux.HandleFunc("POST /shopping", s.shoppingH.Create)
	mux.HandleFunc("PUT /shopping", s.shoppingH.Update)
	mux.HandleFunc("DELETE /shopping", s.shoppingH.Delete)

	mux.HandleFunc("GET /shopping-share", s.shareH.Status)
	mux.HandleFunc("POST /shopping-share", s.shareH.Create)
	mux.HandleFunc("DELETE /shopping-share", s.shareH.Delete)

	mux.HandleFunc("GET /shopping-audit", s.auditH.List)

	mux.HandleFunc("GET /exercises", s.exerciseH.List)
	mux.HandleFunc("POST /exercises", s.exerciseH.Create)
	mux.HandleFunc("PUT /exercises", s.exerciseH.Update)
	mux.HandleFunc("DELETE /exercises", s.exerciseH.Delete)

	mux.HandleFunc("GET /bodyparts", s.bodyPartH.List)
	mux.HandleFunc("POST /bodyparts", s.bodyPartH.Create)
	mux.HandleFunc("PUT /bodyparts", s.bodyPartH.Update)
	mux.HandleFunc("DELETE /bodyparts", s.bodyPartH.Delete)

	mux.HandleFunc("GET /workouts", s.workoutH.List)
	mux.HandleFunc("POST /workouts", s.workoutH.Create)
	mux.HandleFunc("PUT /workouts", s.workoutH.Update)
	mux.HandleFunc("DELETE /workouts", s.workoutH.Delete)

	mux.HandleFunc("GET /export", s.transferH.Export)
	mux.HandleFunc("POST /import", s.transferH.Import)
}

func (s *Server) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	json.NewEncoder(w).Encode(map[string]string{"error": "method not allowed"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// initHandler re-runs migrations. Migrations are versioned, so repeated calls
// are no-ops; the route exists as an operational bootstrap.
func (s *Server) initHandler(w http.ResponseWriter, r *http.Request) {
	if err := database.Migrate(s.db); err != nil {
		s.logger.Error("init failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "failed to initialize database"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "database initialized successfully"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
