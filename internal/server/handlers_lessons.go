package server

import (
	"fmt"
	"net/http"

	"avplanner/internal/planner"
	"avplanner/internal/store"
)

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := store.Load[planner.Lesson](s.collections, planner.CollectionLessons)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decorateLessons(lessons))
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	var lesson planner.Lesson
	if err := decodeBody(r, &lesson); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid lesson body: %w", err))
		return
	}
	lesson = planner.CoerceLesson(lesson)
	planner.DefaultDate(&lesson.Date)

	if err := store.Append(s.collections, planner.CollectionLessons, lesson); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lesson)
}

// handleReplaceLesson updates a lesson in place. Replacement keeps the path
// identifier; coercion would mint a fresh one and orphan the client's handle.
func (s *Server) handleReplaceLesson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var lesson planner.Lesson
	if err := decodeBody(r, &lesson); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid lesson body: %w", err))
		return
	}
	lesson = planner.CoerceLesson(lesson)
	lesson.ID = id
	planner.DefaultDate(&lesson.Date)

	if err := store.ReplaceByID(s.collections, planner.CollectionLessons, id, lesson); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (s *Server) handleDeleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := store.RemoveByID[planner.Lesson](s.collections, planner.CollectionLessons, r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "lesson deleted"})
}

func (s *Server) handleToggleLesson(w http.ResponseWriter, r *http.Request) {
	if err := store.UpdateByID(s.collections, planner.CollectionLessons, r.PathValue("id"), func(l *planner.Lesson) {
		l.Completed = !l.Completed
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "lesson toggled"})
}
