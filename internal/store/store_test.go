package store

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avplanner/internal/planner"
)

func newTestCollections(t *testing.T) *Collections {
	t.Helper()
	c := NewCollections(NewMemoryStore())
	t.Cleanup(func() { c.Close() })
	return c
}

func TestAppendAndLoad(t *testing.T) {
	c := newTestCollections(t)

	require.NoError(t, Append(c, planner.CollectionTasks,
		planner.Task{ID: "a", Title: "first"},
		planner.Task{ID: "b", Title: "second"},
	))
	require.NoError(t, Append(c, planner.CollectionTasks, planner.Task{ID: "c", Title: "third"}))

	tasks, err := Load[planner.Task](c, planner.CollectionTasks)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestLoadEmptyCollection(t *testing.T) {
	c := newTestCollections(t)

	tasks, err := Load[planner.Task](c, planner.CollectionTasks)
	require.NoError(t, err)
	require.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestRemoveAt(t *testing.T) {
	c := newTestCollections(t)
	require.NoError(t, Append(c, planner.CollectionTasks,
		planner.Task{ID: "a"}, planner.Task{ID: "b"}, planner.Task{ID: "c"},
	))

	t.Run("removes exactly that slot and shifts later indices", func(t *testing.T) {
		require.NoError(t, RemoveAt[planner.Task](c, planner.CollectionTasks, 1))

		tasks, err := Load[planner.Task](c, planner.CollectionTasks)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "a", tasks[0].ID)
		assert.Equal(t, "c", tasks[1].ID)
	})

	t.Run("out of range is not found, no side effects", func(t *testing.T) {
		assert.ErrorIs(t, RemoveAt[planner.Task](c, planner.CollectionTasks, 7), ErrNotFound)
		assert.ErrorIs(t, RemoveAt[planner.Task](c, planner.CollectionTasks, -1), ErrNotFound)

		tasks, err := Load[planner.Task](c, planner.CollectionTasks)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})
}

func TestRemoveByID(t *testing.T) {
	c := newTestCollections(t)
	require.NoError(t, Append(c, planner.CollectionLessons,
		planner.Lesson{ID: "l1", Title: "one"},
		planner.Lesson{ID: "l2", Title: "two"},
		planner.Lesson{ID: "l3", Title: "three"},
	))

	require.NoError(t, RemoveByID[planner.Lesson](c, planner.CollectionLessons, "l2"))

	lessons, err := Load[planner.Lesson](c, planner.CollectionLessons)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "l1", lessons[0].ID)
	assert.Equal(t, "l3", lessons[1].ID)

	assert.ErrorIs(t, RemoveByID[planner.Lesson](c, planner.CollectionLessons, "l2"), ErrNotFound)
}

func TestUpdateByID(t *testing.T) {
	c := newTestCollections(t)
	require.NoError(t, Append(c, planner.CollectionLessons,
		planner.Lesson{ID: "l1", Completed: false},
	))

	require.NoError(t, UpdateByID(c, planner.CollectionLessons, "l1", func(l *planner.Lesson) {
		l.Completed = !l.Completed
	}))

	lessons, err := Load[planner.Lesson](c, planner.CollectionLessons)
	require.NoError(t, err)
	assert.True(t, lessons[0].Completed)
}

func TestUpdateAt(t *testing.T) {
	c := newTestCollections(t)
	require.NoError(t, Append(c, planner.CollectionTasks, planner.Task{ID: "a"}))

	require.NoError(t, UpdateAt(c, planner.CollectionTasks, 0, func(task *planner.Task) {
		task.Completed = true
	}))
	assert.ErrorIs(t, UpdateAt(c, planner.CollectionTasks, 3, func(*planner.Task) {}), ErrNotFound)

	tasks, err := Load[planner.Task](c, planner.CollectionTasks)
	require.NoError(t, err)
	assert.True(t, tasks[0].Completed)
}

func TestUpsertBy(t *testing.T) {
	c := newTestCollections(t)
	byDate := func(date string) func(planner.TimeEntry) bool {
		return func(e planner.TimeEntry) bool { return e.Date == date }
	}

	require.NoError(t, UpsertBy(c, planner.CollectionTime, byDate("2025-07-04"),
		planner.TimeEntry{ID: "a", Date: "2025-07-04", Minutes: 45}))
	require.NoError(t, UpsertBy(c, planner.CollectionTime, byDate("2025-07-05"),
		planner.TimeEntry{ID: "b", Date: "2025-07-05", Minutes: 10}))
	// Matching entry is replaced, not duplicated.
	require.NoError(t, UpsertBy(c, planner.CollectionTime, byDate("2025-07-04"),
		planner.TimeEntry{ID: "c", Date: "2025-07-04", Minutes: 90}))

	entries, err := Load[planner.TimeEntry](c, planner.CollectionTime)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 90, entries[0].Minutes)
	assert.Equal(t, "2025-07-05", entries[1].Date)
}

// Two concurrent appends to the same collection must both be retained: the
// collection lock serializes the read-modify-write cycles.
func TestConcurrentAppendsBothRetained(t *testing.T) {
	c := newTestCollections(t)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, Append(c, planner.CollectionGoals, planner.Goal{ID: string(rune('a' + n))}))
		}(i)
	}
	wg.Wait()

	goals, err := Load[planner.Goal](c, planner.CollectionGoals)
	require.NoError(t, err)
	assert.Len(t, goals, writers)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	c := NewCollections(fs)
	defer c.Close()

	want := []planner.Note{
		{ID: "n1", Title: "pinned", Pinned: true, Tags: []string{"go", "planner"}},
		{ID: "n2", Title: "plain", Tags: []string{}},
	}
	require.NoError(t, Append(c, planner.CollectionNotes, want...))

	// A fresh store over the same directory sees the same records.
	fs2, err := NewFileStore(dir)
	require.NoError(t, err)
	c2 := NewCollections(fs2)
	defer c2.Close()

	got, err := Load[planner.Note](c2, planner.CollectionNotes)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notes round trip mismatch (-want +got):\n%s", diff)
	}

	assert.FileExists(t, filepath.Join(dir, "notes.json"))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.db")
	db, err := NewSQLiteStore(path)
	require.NoError(t, err)
	c := NewCollections(db)
	defer c.Close()

	want := []planner.Task{{ID: "t1", Title: "persisted", Subtasks: []string{}}}
	require.NoError(t, Append(c, planner.CollectionTasks, want...))

	got, err := Load[planner.Task](c, planner.CollectionTasks)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tasks round trip mismatch (-want +got):\n%s", diff)
	}
}
