// Package clock normalizes the loosely formatted date and time strings stored
// on planner records into instants in the single reference timezone, and
// renders the display strings that every read path attaches.
//
// Records written by old clients carry anything from a bare "2025-07-04" to a
// full RFC 3339 timestamp in the date field, and an optional "HH:MM" in the
// time field. Parsing is best-effort: input that cannot be parsed is passed
// through to the caller unchanged rather than surfaced as an error.
package clock

import (
	"strings"
	"time"

	"avplanner/internal/logging"
)

// ReferenceTimezone resolves "today" and anchors all rendered dates and
// times, regardless of where the request came from.
const ReferenceTimezone = "America/Los_Angeles"

const (
	// DateFormat is the canonical stored date layout.
	DateFormat = "2006-01-02"
	// ClockFormat is the canonical stored time-of-day layout.
	ClockFormat = "15:04"

	prettyDateFormat = "January 2, 2006"
	prettyTimeFormat = "3:04 pm"
)

// naiveDatetimeLayouts are tried, in order, for date fields that carry a
// time-of-day indicator but no offset. Like bare dates, they are read in the
// reference zone: the record means the wall-clock day it literally states.
var naiveDatetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var refLoc *time.Location

// nowFunc is swapped out by tests to pin "today".
var nowFunc = time.Now

func init() {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		// The IANA name is a compile-time constant; if the zone database is
		// unavailable we degrade to UTC rather than refuse to start.
		loc = time.UTC
	}
	refLoc = loc
}

// Location returns the reference timezone.
func Location() *time.Location {
	return refLoc
}

// Now returns the current instant in the reference timezone.
func Now() time.Time {
	return nowFunc().In(refLoc)
}

// Today returns the current calendar date (YYYY-MM-DD) in the reference
// timezone. Ingestion stamps this onto records with no date so the recorded
// day is stable no matter where the record is later viewed from.
func Today() string {
	return Now().Format(DateFormat)
}

// Result is the outcome of parsing a raw date or time field. Callers can
// always use Pretty: it carries the original input when parsing failed, so a
// fallback is never mistaken for a successful parse.
type Result struct {
	Instant time.Time
	Raw     string
	OK      bool
}

// Pretty returns the display string for the result: the rendered instant when
// parsing succeeded, the raw input otherwise.
func (r Result) Pretty(layout string) string {
	if !r.OK {
		return r.Raw
	}
	return r.Instant.Format(layout)
}

// ParseDate parses a record's date field. A value with a time-of-day
// indicator is parsed as a full timestamp; a bare calendar date is bound to
// midnight in the reference timezone. Inputs that carry an offset are
// normalized to the reference timezone; offset-less inputs are read in it
// directly, so the rendered day is always the day the record states.
func ParseDate(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{Raw: raw}
	}

	if strings.ContainsAny(trimmed, "T:") {
		if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return Result{Instant: t.In(refLoc), Raw: raw, OK: true}
		}
		for _, layout := range naiveDatetimeLayouts {
			if t, err := time.ParseInLocation(layout, trimmed, refLoc); err == nil {
				return Result{Instant: t, Raw: raw, OK: true}
			}
		}
		logging.ClockDebug("unparseable datetime %q", raw)
		return Result{Raw: raw}
	}

	t, err := time.ParseInLocation(DateFormat, trimmed, refLoc)
	if err != nil {
		logging.ClockDebug("unparseable date %q", raw)
		return Result{Raw: raw}
	}
	return Result{Instant: t, Raw: raw, OK: true}
}

// ParseClock parses a record's HH:MM time field under TimeOnlyPolicy: the
// time-of-day is bound to today's calendar date in the reference timezone,
// not to the record's own date field. Long-standing observable behavior;
// do not change it without product sign-off.
func ParseClock(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{Raw: raw}
	}

	t, err := time.Parse(ClockFormat, trimmed)
	if err != nil {
		logging.ClockDebug("unparseable time %q", raw)
		return Result{Raw: raw}
	}

	now := Now()
	bound := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, refLoc)
	return Result{Instant: bound, Raw: raw, OK: true}
}

// PrettyDate renders a raw date field as a long-form date ("July 4, 2025").
// Unparseable input passes through unchanged.
func PrettyDate(raw string) string {
	return ParseDate(raw).Pretty(prettyDateFormat)
}

// PrettyTime renders a raw HH:MM field as a 12-hour clock with lowercase
// meridiem ("3:45 pm"). Unparseable input passes through unchanged.
func PrettyTime(raw string) string {
	return ParseClock(raw).Pretty(prettyTimeFormat)
}
