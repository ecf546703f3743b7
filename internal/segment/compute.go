package segment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-segments/internal/api"
)

// Compute builds the seven segments of the calendar day containing ref (in
// ref's location) and reports which one contains ref and which follows it.
//
// The markers must be in chronological order; a malformed marker is an error.
func Compute(timings api.Timings, ref time.Time) (Result, error) {
	loc := ref.Location()
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
	dayEnd := time.Date(ref.Year(), ref.Month(), ref.Day()+1, 0, 0, 0, 0, loc)

	raw := []struct {
		name  string
		value string
	}{
		{"Fajr", timings.Fajr},
		{"Sunrise", timings.Sunrise},
		{"Dhuhr", timings.Dhuhr},
		{"Asr", timings.Asr},
		{"Maghrib", timings.Maghrib},
		{"Isha", timings.Isha},
	}

	bounds := make([]time.Time, 0, len(raw)+2)
	bounds = append(bounds, dayStart)
	for _, r := range raw {
		t, err := parseTimeStr(r.value, dayStart)
		if err != nil {
			return Result{}, fmt.Errorf("failed to parse time for %s (%q): %w", r.name, r.value, err)
		}
		bounds = append(bounds, t)
	}
	bounds = append(bounds, dayEnd)

	segments := make([]Segment, len(Names))
	for i, name := range Names {
		segments[i] = Segment{Name: name, Start: bounds[i], End: bounds[i+1]}
	}

	cur, next := locate(segments, ref)
	return Result{
		Current:  segments[cur],
		Next:     segments[next],
		Segments: segments,
	}, nil
}

// locate returns the indices of the current and next segment for t. The
// first segment in order that contains t wins, so on a shared boundary the
// earlier segment is current.
func locate(segments []Segment, t time.Time) (cur, next int) {
	n := len(segments)
	for i, s := range segments {
		if s.Contains(t) {
			return i, (i + 1) % n
		}
	}

	// Only reachable with out-of-order markers, which leave gaps.
	cur = -1
	for i, s := range segments {
		if s.Start.After(t) {
			cur = i
			break
		}
	}
	if cur == -1 {
		cur = 0
		if n > 1 {
			cur = 1
		}
	}
	return cur, (cur + 1) % n
}

// parseTimeStr parses a time string like "15:02" or "15:02 (BST)" into a
// time.Time on day's date and location. Seconds are ignored.
func parseTimeStr(raw string, day time.Time) (time.Time, error) {
	// Strip timezone suffix like " (BST)" that the API sometimes appends.
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", raw)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}
