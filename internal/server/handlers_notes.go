package server

import (
	"fmt"
	"net/http"
	"sort"

	"avplanner/internal/planner"
	"avplanner/internal/store"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := store.Load[planner.Note](s.collections, planner.CollectionNotes)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decorateNotes(notes))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var note planner.Note
	if err := decodeBody(r, &note); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid note body: %w", err))
		return
	}
	note = planner.CoerceNote(note)
	planner.DefaultDate(&note.Date)

	if err := store.Append(s.collections, planner.CollectionNotes, note); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleReplaceNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var note planner.Note
	if err := decodeBody(r, &note); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid note body: %w", err))
		return
	}
	note.ID = id
	note = planner.CoerceNote(note)
	planner.DefaultDate(&note.Date)

	if err := store.ReplaceByID(s.collections, planner.CollectionNotes, id, note); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := store.RemoveByID[planner.Note](s.collections, planner.CollectionNotes, r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

func (s *Server) handlePinNote(w http.ResponseWriter, r *http.Request) {
	if err := store.UpdateByID(s.collections, planner.CollectionNotes, r.PathValue("id"), func(n *planner.Note) {
		n.Pinned = !n.Pinned
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "note pin toggled"})
}

// handleListTags returns the distinct tag set across all notes, sorted.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	notes, err := store.Load[planner.Note](s.collections, planner.CollectionNotes)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	seen := make(map[string]struct{})
	tags := []string{}
	for _, note := range notes {
		for _, tag := range note.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	writeJSON(w, http.StatusOK, tags)
}
