// Package ingest implements the prompt ingestion pipeline: one generative
// backend round trip turns a free-form prompt (and optional image) into typed
// planner records plus a human-readable acknowledgment.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"avplanner/internal/logging"
	"avplanner/internal/perception"
	"avplanner/internal/planner"
	"avplanner/internal/store"
)

var (
	// ErrEmptyPrompt rejects a request carrying neither prompt text nor image.
	ErrEmptyPrompt = errors.New("prompt or image required")

	// ErrBadModelOutput marks a backend response that is not the expected JSON
	// schema. Garbled output is never repaired; the whole call fails and no
	// records are written.
	ErrBadModelOutput = errors.New("model output is not valid JSON")
)

// nothingToAddMessage is returned when the model produced no records and no
// conversational reply.
const nothingToAddMessage = "Nothing to add — tell me about a task, goal, lesson, or schedule item."

// systemPrompt declares the exact output contract for the backend. The
// response mime type is pinned to JSON by the client, but the schema itself
// lives here.
const systemPrompt = `You are a planning assistant for a personal productivity app.
Turn the user's message (and any attached image, e.g. a screenshot of a syllabus or schedule) into planner records.

Respond with a single valid JSON object and nothing else. No markdown, no prose outside the JSON. Schema:

{
  "tasks":    [{"title": "", "notes": "", "date": "YYYY-MM-DD", "time": "HH:MM"}],
  "goals":    [{"title": "", "notes": "", "date": "YYYY-MM-DD"}],
  "lessons":  [{"title": "", "description": "", "category": "", "date": "YYYY-MM-DD", "priority": ""}],
  "schedule": [{"title": "", "notes": "", "date": "YYYY-MM-DD", "time": "HH:MM"}],
  "response": ""
}

All lists are optional; omit a list or leave it empty when the message has nothing for it.
Omit date and time fields you are not sure about; never invent them.
Use "response" for a short conversational reply when the message is a question or contains nothing actionable.`

// Result is what one ingestion call produced: the acknowledgment plus the
// newly created records only, never the full collections.
type Result struct {
	Acknowledgment string                 `json:"response"`
	Tasks          []planner.Task         `json:"tasks"`
	Goals          []planner.Goal         `json:"goals"`
	Lessons        []planner.Lesson       `json:"lessons"`
	Schedule       []planner.ScheduleItem `json:"schedule"`
}

// Created reports how many records the call produced across all categories.
func (r *Result) Created() int {
	return len(r.Tasks) + len(r.Goals) + len(r.Lessons) + len(r.Schedule)
}

// payload is the decoded model output.
type payload struct {
	Tasks    []planner.Task         `json:"tasks"`
	Goals    []planner.Goal         `json:"goals"`
	Lessons  []planner.Lesson       `json:"lessons"`
	Schedule []planner.ScheduleItem `json:"schedule"`
	Response string                 `json:"response"`
}

// Pipeline orchestrates prompt → backend → coercion → store. Stateless
// between calls; each invocation is a single linear pass with one suspension
// point (the backend round trip) and no retry at this layer.
type Pipeline struct {
	llm         perception.LLMClient
	collections *store.Collections
}

// New creates an ingestion pipeline over the given backend and store.
func New(llm perception.LLMClient, collections *store.Collections) *Pipeline {
	return &Pipeline{llm: llm, collections: collections}
}

// Ingest runs one ingestion call. Writes are per category and best-effort in
// order tasks, goals, lessons, schedule: a failure writing one category does
// not roll back categories already written, and the error reports how far the
// call got.
func (p *Pipeline) Ingest(ctx context.Context, prompt string, image *perception.ImagePart) (*Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" && image == nil {
		return nil, ErrEmptyPrompt
	}
	if prompt == "" {
		prompt = "Extract planner records from the attached image."
	}

	raw, err := p.llm.CompleteWithImage(ctx, systemPrompt, prompt, image)
	if err != nil {
		return nil, fmt.Errorf("backend call failed: %w", err)
	}

	decoded, err := decodePayload(raw)
	if err != nil {
		logging.IngestError("undecodable model output (%d bytes): %v", len(raw), err)
		return nil, err
	}

	res := &Result{
		Tasks:    make([]planner.Task, 0, len(decoded.Tasks)),
		Goals:    make([]planner.Goal, 0, len(decoded.Goals)),
		Lessons:  make([]planner.Lesson, 0, len(decoded.Lessons)),
		Schedule: make([]planner.ScheduleItem, 0, len(decoded.Schedule)),
	}

	for _, t := range decoded.Tasks {
		t = planner.CoerceTask(t)
		planner.DefaultDate(&t.Date)
		res.Tasks = append(res.Tasks, t)
	}
	for _, g := range decoded.Goals {
		g = planner.CoerceGoal(g)
		planner.DefaultDate(&g.Date)
		res.Goals = append(res.Goals, g)
	}
	for _, l := range decoded.Lessons {
		l = planner.CoerceLesson(l)
		planner.DefaultDate(&l.Date)
		res.Lessons = append(res.Lessons, l)
	}
	for _, s := range decoded.Schedule {
		s = planner.CoerceScheduleItem(s)
		planner.DefaultDate(&s.Date)
		res.Schedule = append(res.Schedule, s)
	}

	if len(res.Tasks) > 0 {
		if err := store.Append(p.collections, planner.CollectionTasks, res.Tasks...); err != nil {
			return nil, fmt.Errorf("persist tasks: %w", err)
		}
	}
	if len(res.Goals) > 0 {
		if err := store.Append(p.collections, planner.CollectionGoals, res.Goals...); err != nil {
			return nil, fmt.Errorf("persist goals (tasks already written): %w", err)
		}
	}
	if len(res.Lessons) > 0 {
		if err := store.Append(p.collections, planner.CollectionLessons, res.Lessons...); err != nil {
			return nil, fmt.Errorf("persist lessons (tasks, goals already written): %w", err)
		}
	}
	if len(res.Schedule) > 0 {
		if err := store.Append(p.collections, planner.CollectionSchedule, res.Schedule...); err != nil {
			return nil, fmt.Errorf("persist schedule (tasks, goals, lessons already written): %w", err)
		}
	}

	res.Acknowledgment = acknowledgment(res, decoded.Response)
	logging.Ingest("ingested prompt_len=%d created=%d", len(prompt), res.Created())
	return res, nil
}

// decodePayload parses the backend's raw text as the structured schema. The
// only tolerance is a prose or code-fence wrapper around one JSON object;
// the object itself must decode cleanly or the call fails.
func decodePayload(raw string) (*payload, error) {
	raw = strings.TrimSpace(raw)

	var out payload
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return &out, nil
	}

	for _, candidate := range findJSONCandidates(raw) {
		if err := json.Unmarshal([]byte(candidate), &out); err == nil {
			return &out, nil
		}
	}
	return nil, ErrBadModelOutput
}

// acknowledgment enumerates the created records with correct singular/plural
// wording, falling back to the model's conversational reply and then to a
// fixed message when nothing was produced.
func acknowledgment(res *Result, reply string) string {
	var parts []string
	add := func(n int, singular string) {
		if n == 0 {
			return
		}
		word := singular
		if n != 1 {
			word += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, word))
	}
	add(len(res.Tasks), "task")
	add(len(res.Goals), "goal")
	add(len(res.Lessons), "lesson")
	add(len(res.Schedule), "schedule item")

	if len(parts) > 0 {
		return "Added " + strings.Join(parts, ", ") + "."
	}
	if reply = strings.TrimSpace(reply); reply != "" {
		return reply
	}
	return nothingToAddMessage
}
