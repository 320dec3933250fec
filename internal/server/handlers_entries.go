package server

import (
	"fmt"
	"net/http"

	"avplanner/internal/planner"
	"avplanner/internal/store"
)

// Schedule is append-only; logs, focus sessions, and reflections are flat
// date-stamped entries with list and create only.

func (s *Server) handleListSchedule(w http.ResponseWriter, r *http.Request) {
	items, err := store.Load[planner.ScheduleItem](s.collections, planner.CollectionSchedule)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decorateSchedule(items))
}

func (s *Server) handleCreateScheduleItem(w http.ResponseWriter, r *http.Request) {
	var item planner.ScheduleItem
	if err := decodeBody(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid schedule body: %w", err))
		return
	}
	item = planner.CoerceScheduleItem(item)
	planner.DefaultDate(&item.Date)

	if err := store.Append(s.collections, planner.CollectionSchedule, item); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := store.Load[planner.LogEntry](s.collections, planner.CollectionLogs)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decorateLogs(entries))
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var entry planner.LogEntry
	if err := decodeBody(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid log body: %w", err))
		return
	}
	entry = planner.CoerceLogEntry(entry)

	if err := store.Append(s.collections, planner.CollectionLogs, entry); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleGetFocus returns the focus text for the queried date as {focus},
// 404 when none is saved. Without a date query it lists every entry.
func (s *Server) handleGetFocus(w http.ResponseWriter, r *http.Request) {
	entries, err := store.Load[planner.FocusEntry](s.collections, planner.CollectionFocus)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusOK, decorateFocus(entries))
		return
	}
	for _, entry := range entries {
		if entry.Date == date {
			writeJSON(w, http.StatusOK, map[string]string{"focus": entry.Focus})
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Errorf("no focus for %s: %w", date, store.ErrNotFound))
}

// handleSaveFocus upserts the focus for a date: one focus per calendar date,
// re-saving replaces it.
func (s *Server) handleSaveFocus(w http.ResponseWriter, r *http.Request) {
	var entry planner.FocusEntry
	if err := decodeBody(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid focus body: %w", err))
		return
	}
	if entry.Focus == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("focus text required"))
		return
	}
	entry = planner.CoerceFocusEntry(entry)

	if err := store.UpsertBy(s.collections, planner.CollectionFocus,
		func(existing planner.FocusEntry) bool { return existing.Date == entry.Date },
		entry,
	); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleGetTime returns the minutes tracker as a date-keyed map.
func (s *Server) handleGetTime(w http.ResponseWriter, r *http.Request) {
	entries, err := store.Load[planner.TimeEntry](s.collections, planner.CollectionTime)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	byDate := make(map[string]int, len(entries))
	for _, entry := range entries {
		byDate[entry.Date] = entry.Minutes
	}
	writeJSON(w, http.StatusOK, byDate)
}

// handleSaveTime upserts the focused-minutes count for a date.
func (s *Server) handleSaveTime(w http.ResponseWriter, r *http.Request) {
	var entry planner.TimeEntry
	if err := decodeBody(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid time body: %w", err))
		return
	}
	entry = planner.CoerceTimeEntry(entry)

	if err := store.UpsertBy(s.collections, planner.CollectionTime,
		func(existing planner.TimeEntry) bool { return existing.Date == entry.Date },
		entry,
	); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListReflections(w http.ResponseWriter, r *http.Request) {
	entries, err := store.Load[planner.Reflection](s.collections, planner.CollectionReflections)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decorateReflections(entries))
}

func (s *Server) handleCreateReflection(w http.ResponseWriter, r *http.Request) {
	var entry planner.Reflection
	if err := decodeBody(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid reflection body: %w", err))
		return
	}
	entry = planner.CoerceReflection(entry)

	if err := store.Append(s.collections, planner.CollectionReflections, entry); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
