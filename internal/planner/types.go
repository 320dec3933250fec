// Package planner defines the record types for the seven planner collections
// and the coercion rules that turn a partial, untrusted payload (from a
// client or from the generative backend) into a fully defaulted record.
package planner

// Collection names as stored by the document store.
const (
	CollectionTasks       = "tasks"
	CollectionGoals       = "goals"
	CollectionLessons     = "lessons"
	CollectionNotes       = "notes"
	CollectionSchedule    = "schedule"
	CollectionLogs        = "logs"
	CollectionFocus       = "focus"
	CollectionTime        = "time"
	CollectionReflections = "reflections"
)

// Task is a single to-do item. Text mirrors Title for the two display
// conventions old frontends used interchangeably. PrettyDate and PrettyTime
// are attached on read paths only and are never persisted with a value.
type Task struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Notes      string   `json:"notes"`
	Date       string   `json:"date"`
	Time       string   `json:"time,omitempty"`
	Completed  bool     `json:"completed"`
	Subtasks   []string `json:"subtasks"`
	PrettyDate string   `json:"prettyDate,omitempty"`
	PrettyTime string   `json:"prettyTime,omitempty"`
}

// Goal is a target with an optional deadline.
type Goal struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Completed  bool   `json:"completed"`
	PrettyDate string `json:"prettyDate,omitempty"`
	PrettyTime string `json:"prettyTime,omitempty"`
}

// Lesson is a study item. Lessons have always carried a generated stable
// identifier; coercion regenerates it unconditionally.
type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`
	Completed   bool   `json:"completed"`
	PrettyDate  string `json:"prettyDate,omitempty"`
}

// Note is a free-form note with set-like tags and an optional notebook.
type Note struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Date       string   `json:"date"`
	CreatedAt  string   `json:"created_at"`
	Pinned     bool     `json:"pinned"`
	Tags       []string `json:"tags"`
	Notebook   string   `json:"notebook,omitempty"`
	PrettyDate string   `json:"prettyDate,omitempty"`
}

// ScheduleItem is an append-only calendar entry.
type ScheduleItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Notes      string `json:"notes"`
	PrettyDate string `json:"prettyDate,omitempty"`
	PrettyTime string `json:"prettyTime,omitempty"`
}

// LogEntry is a dated journal entry with a short title.
type LogEntry struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	PrettyDate string `json:"prettyDate,omitempty"`
}

// FocusEntry is the daily focus: one free-text focus per calendar date.
// Saving a focus for a date that already has one replaces it.
type FocusEntry struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Focus      string `json:"focus"`
	CreatedAt  string `json:"created_at"`
	PrettyDate string `json:"prettyDate,omitempty"`
}

// TimeEntry is the focused-minutes tracker: one minute count per calendar
// date, replaced on re-save.
type TimeEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// Reflection is a weekly review entry.
type Reflection struct {
	ID         string `json:"id"`
	WeekOf     string `json:"week_of"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	PrettyDate string `json:"prettyDate,omitempty"`
}

// RecordID implementations let the store address records by stable id.

func (t Task) RecordID() string         { return t.ID }
func (g Goal) RecordID() string         { return g.ID }
func (l Lesson) RecordID() string       { return l.ID }
func (n Note) RecordID() string         { return n.ID }
func (s ScheduleItem) RecordID() string { return s.ID }
func (e LogEntry) RecordID() string     { return e.ID }
func (f FocusEntry) RecordID() string   { return f.ID }
func (e TimeEntry) RecordID() string    { return e.ID }
func (r Reflection) RecordID() string   { return r.ID }
