package server

import (
	"fmt"
	"net/http"

	"avplanner/internal/planner"
	"avplanner/internal/store"
)

// Tasks and goals share their addressing model: legacy positional routes plus
// stable-id routes. The handlers mirror each other deliberately.

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := store.Load[planner.Task](s.collections, planner.CollectionTasks)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decorateTasks(tasks))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var task planner.Task
	if err := decodeBody(r, &task); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid task body: %w", err))
		return
	}
	task = planner.CoerceTask(task)
	planner.DefaultDate(&task.Date)

	if err := store.Append(s.collections, planner.CollectionTasks, task); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleReplaceTask(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid index: %w", err))
		return
	}
	var task planner.Task
	if err := decodeBody(r, &task); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid task body: %w", err))
		return
	}
	bodyHasID := task.ID != ""
	task = planner.CoerceTask(task)
	planner.DefaultDate(&task.Date)

	// An index-addressed edit keeps the slot's stable identifier unless the
	// client sent one explicitly; coercion alone must not rotate it.
	if err := store.UpdateAt(s.collections, planner.CollectionTasks, index, func(slot *planner.Task) {
		if !bodyHasID {
			task.ID = slot.ID
		}
		*slot = task
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTaskAt(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid index: %w", err))
		return
	}
	if err := store.RemoveAt[planner.Task](s.collections, planner.CollectionTasks, index); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (s *Server) handleToggleTaskAt(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid index: %w", err))
		return
	}
	if err := store.UpdateAt(s.collections, planner.CollectionTasks, index, func(t *planner.Task) {
		t.Completed = !t.Completed
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "task toggled"})
}

func (s *Server) handleDeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	if err := store.RemoveByID[planner.Task](s.collections, planner.CollectionTasks, r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (s *Server) handleToggleTaskByID(w http.ResponseWriter, r *http.Request) {
	if err := store.UpdateByID(s.collections, planner.CollectionTasks, r.PathValue("id"), func(t *planner.Task) {
		t.Completed = !t.Completed
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "task toggled"})
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := store.Load[planner.Goal](s.collections, planner.CollectionGoals)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decorateGoals(goals))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var goal planner.Goal
	if err := decodeBody(r, &goal); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid goal body: %w", err))
		return
	}
	goal = planner.CoerceGoal(goal)
	planner.DefaultDate(&goal.Date)

	if err := store.Append(s.collections, planner.CollectionGoals, goal); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleReplaceGoal(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid index: %w", err))
		return
	}
	var goal planner.Goal
	if err := decodeBody(r, &goal); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid goal body: %w", err))
		return
	}
	bodyHasID := goal.ID != ""
	goal = planner.CoerceGoal(goal)
	planner.DefaultDate(&goal.Date)

	if err := store.UpdateAt(s.collections, planner.CollectionGoals, index, func(slot *planner.Goal) {
		if !bodyHasID {
			goal.ID = slot.ID
		}
		*slot = goal
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoalAt(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid index: %w", err))
		return
	}
	if err := store.RemoveAt[planner.Goal](s.collections, planner.CollectionGoals, index); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}

func (s *Server) handleToggleGoalAt(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid index: %w", err))
		return
	}
	if err := store.UpdateAt(s.collections, planner.CollectionGoals, index, func(g *planner.Goal) {
		g.Completed = !g.Completed
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "goal toggled"})
}

func (s *Server) handleDeleteGoalByID(w http.ResponseWriter, r *http.Request) {
	if err := store.RemoveByID[planner.Goal](s.collections, planner.CollectionGoals, r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}

func (s *Server) handleToggleGoalByID(w http.ResponseWriter, r *http.Request) {
	if err := store.UpdateByID(s.collections, planner.CollectionGoals, r.PathValue("id"), func(g *planner.Goal) {
		g.Completed = !g.Completed
	}); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "goal toggled"})
}
