// Package server exposes the planner over HTTP: the ingestion endpoints
// (/ai, /chat) and mechanical CRUD for the eight collections. All reads pass
// through the date normalizer so clients receive display strings alongside
// the raw fields.
package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"avplanner/internal/ingest"
	"avplanner/internal/store"
)

// Server wires the store and the ingestion pipeline to the HTTP surface.
type Server struct {
	collections *store.Collections
	pipeline    *ingest.Pipeline
	logger      *zap.Logger
	corsOrigin  string
}

// New creates a server. A nil logger disables request logging.
func New(collections *store.Collections, pipeline *ingest.Pipeline, logger *zap.Logger, corsOrigin string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	return &Server{
		collections: collections,
		pipeline:    pipeline,
		logger:      logger,
		corsOrigin:  corsOrigin,
	}
}

// Handler builds the route table. Positional-index routes for tasks and goals
// are kept for old clients; the /id/ variants address by stable identifier
// and are immune to index shift.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /ai", s.handleIngest)
	mux.HandleFunc("POST /chat", s.handleIngest)

	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("POST /tasks", s.handleCreateTask)
	mux.HandleFunc("PUT /tasks/{index}", s.handleReplaceTask)
	mux.HandleFunc("DELETE /tasks/{index}", s.handleDeleteTaskAt)
	mux.HandleFunc("PATCH /tasks/{index}/toggle", s.handleToggleTaskAt)
	mux.HandleFunc("DELETE /tasks/id/{id}", s.handleDeleteTaskByID)
	mux.HandleFunc("PATCH /tasks/id/{id}/toggle", s.handleToggleTaskByID)

	mux.HandleFunc("GET /goals", s.handleListGoals)
	mux.HandleFunc("POST /goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /goals/{index}", s.handleReplaceGoal)
	mux.HandleFunc("DELETE /goals/{index}", s.handleDeleteGoalAt)
	mux.HandleFunc("PATCH /goals/{index}/toggle", s.handleToggleGoalAt)
	mux.HandleFunc("DELETE /goals/id/{id}", s.handleDeleteGoalByID)
	mux.HandleFunc("PATCH /goals/id/{id}/toggle", s.handleToggleGoalByID)

	mux.HandleFunc("GET /lessons", s.handleListLessons)
	mux.HandleFunc("POST /lessons", s.handleCreateLesson)
	mux.HandleFunc("PUT /lessons/{id}", s.handleReplaceLesson)
	mux.HandleFunc("DELETE /lessons/{id}", s.handleDeleteLesson)
	mux.HandleFunc("PATCH /lessons/{id}/toggle", s.handleToggleLesson)

	mux.HandleFunc("GET /notes", s.handleListNotes)
	mux.HandleFunc("POST /notes", s.handleCreateNote)
	mux.HandleFunc("PUT /notes/{id}", s.handleReplaceNote)
	mux.HandleFunc("DELETE /notes/{id}", s.handleDeleteNote)
	mux.HandleFunc("PATCH /notes/{id}/pin", s.handlePinNote)
	mux.HandleFunc("GET /tags", s.handleListTags)

	mux.HandleFunc("GET /schedule", s.handleListSchedule)
	mux.HandleFunc("POST /schedule", s.handleCreateScheduleItem)

	mux.HandleFunc("GET /logs", s.handleListLogs)
	mux.HandleFunc("POST /logs", s.handleCreateLog)
	mux.HandleFunc("GET /focus", s.handleGetFocus)
	mux.HandleFunc("POST /focus", s.handleSaveFocus)
	mux.HandleFunc("GET /time", s.handleGetTime)
	mux.HandleFunc("POST /time", s.handleSaveTime)
	mux.HandleFunc("GET /reflections", s.handleListReflections)
	mux.HandleFunc("POST /reflections", s.handleCreateReflection)

	return s.withCORS(s.withRequestLog(mux))
}

// withCORS answers preflight requests and stamps the configured origin on
// every response. The original deployment served a static frontend from a
// different host, so CORS applies to all routes.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
