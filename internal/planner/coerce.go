package planner

import (
	"strings"

	"github.com/google/uuid"

	"avplanner/internal/clock"
)

// Coercion is total and deterministic: missing fields become type-appropriate
// defaults, unrecognized fields were already discarded by JSON decoding, and
// feeding a coerced record back through produces the same value for every
// managed field. Pretty fields are always cleared so display strings never
// reach the store.

// CoerceTask fills defaults on a task. Text falls back to Title.
func CoerceTask(t Task) Task {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Title = strings.TrimSpace(t.Title)
	if t.Text == "" {
		t.Text = t.Title
	}
	if t.Subtasks == nil {
		t.Subtasks = []string{}
	}
	t.PrettyDate, t.PrettyTime = "", ""
	return t
}

// CoerceGoal fills defaults on a goal.
func CoerceGoal(g Goal) Goal {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Title = strings.TrimSpace(g.Title)
	g.PrettyDate, g.PrettyTime = "", ""
	return g
}

// CoerceLesson fills defaults on a lesson. The identifier is regenerated
// unconditionally; a lesson id is only ever minted here.
func CoerceLesson(l Lesson) Lesson {
	l.ID = uuid.NewString()
	l.Title = strings.TrimSpace(l.Title)
	l.PrettyDate = ""
	return l
}

// CoerceNote fills defaults on a note.
func CoerceNote(n Note) Note {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.Title = strings.TrimSpace(n.Title)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.CreatedAt == "" {
		n.CreatedAt = clock.Now().Format("2006-01-02T15:04:05")
	}
	n.PrettyDate = ""
	return n
}

// CoerceScheduleItem fills defaults on a schedule item.
func CoerceScheduleItem(s ScheduleItem) ScheduleItem {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Title = strings.TrimSpace(s.Title)
	s.PrettyDate, s.PrettyTime = "", ""
	return s
}

// CoerceLogEntry fills defaults on a log entry.
func CoerceLogEntry(e LogEntry) LogEntry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt == "" {
		e.CreatedAt = clock.Now().Format("2006-01-02T15:04:05")
	}
	DefaultDate(&e.Date)
	e.PrettyDate = ""
	return e
}

// CoerceFocusEntry fills defaults on a daily focus entry.
func CoerceFocusEntry(f FocusEntry) FocusEntry {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt == "" {
		f.CreatedAt = clock.Now().Format("2006-01-02T15:04:05")
	}
	f.Focus = strings.TrimSpace(f.Focus)
	DefaultDate(&f.Date)
	f.PrettyDate = ""
	return f
}

// CoerceTimeEntry fills defaults on a time tracker entry. Negative minute
// counts are clamped to zero.
func CoerceTimeEntry(e TimeEntry) TimeEntry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Minutes < 0 {
		e.Minutes = 0
	}
	DefaultDate(&e.Date)
	return e
}

// CoerceReflection fills defaults on a reflection.
func CoerceReflection(r Reflection) Reflection {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = clock.Now().Format("2006-01-02T15:04:05")
	}
	DefaultDate(&r.WeekOf)
	r.PrettyDate = ""
	return r
}

// DefaultDate stamps today's date (reference timezone) onto an absent or
// empty date field. Dates supplied by the caller are preserved verbatim. The
// default is applied at ingestion time, not render time, so the recorded day
// never shifts under the reader.
func DefaultDate(date *string) {
	if strings.TrimSpace(*date) == "" {
		*date = clock.Today()
	}
}
