package server

import (
	"avplanner/internal/clock"
	"avplanner/internal/planner"
)

// Pretty fields are attached here, on loaded copies, just before
// serialization. The stored documents never carry them.

func decorateTasks(tasks []planner.Task) []planner.Task {
	for i := range tasks {
		tasks[i].PrettyDate = clock.PrettyDate(tasks[i].Date)
		tasks[i].PrettyTime = clock.PrettyTime(tasks[i].Time)
	}
	return tasks
}

func decorateGoals(goals []planner.Goal) []planner.Goal {
	for i := range goals {
		goals[i].PrettyDate = clock.PrettyDate(goals[i].Date)
		goals[i].PrettyTime = clock.PrettyTime(goals[i].Time)
	}
	return goals
}

func decorateLessons(lessons []planner.Lesson) []planner.Lesson {
	for i := range lessons {
		lessons[i].PrettyDate = clock.PrettyDate(lessons[i].Date)
	}
	return lessons
}

func decorateNotes(notes []planner.Note) []planner.Note {
	for i := range notes {
		notes[i].PrettyDate = clock.PrettyDate(notes[i].Date)
	}
	return notes
}

func decorateSchedule(items []planner.ScheduleItem) []planner.ScheduleItem {
	for i := range items {
		items[i].PrettyDate = clock.PrettyDate(items[i].Date)
		items[i].PrettyTime = clock.PrettyTime(items[i].Time)
	}
	return items
}

func decorateLogs(entries []planner.LogEntry) []planner.LogEntry {
	for i := range entries {
		entries[i].PrettyDate = clock.PrettyDate(entries[i].Date)
	}
	return entries
}

func decorateFocus(entries []planner.FocusEntry) []planner.FocusEntry {
	for i := range entries {
		entries[i].PrettyDate = clock.PrettyDate(entries[i].Date)
	}
	return entries
}

func decorateReflections(entries []planner.Reflection) []planner.Reflection {
	for i := range entries {
		entries[i].PrettyDate = clock.PrettyDate(entries[i].WeekOf)
	}
	return entries
}
