// Package segment splits a calendar day into the seven named intervals
// bounded by the day's prayer-time markers.
package segment

import (
	"fmt"
	"time"
)

// Name identifies one of the seven segments of a day.
type Name string

const (
	Layl    Name = "Layl"
	Fajr    Name = "Fajr"
	Subuh   Name = "Subuh"
	Dhuhr   Name = "Dhuhr"
	Asr     Name = "Asr"
	Maghrib Name = "Maghrib"
	Isha    Name = "Isha"
)

// Names lists the segments in the order they occur in a day.
var Names = []Name{Layl, Fajr, Subuh, Dhuhr, Asr, Maghrib, Isha}

// ShortNames maps segment names to single-character abbreviations.
var ShortNames = map[Name]string{
	Layl:    "L",
	Fajr:    "F",
	Subuh:   "S",
	Dhuhr:   "D",
	Asr:     "A",
	Maghrib: "M",
	Isha:    "I",
}

// Segment is a named interval of one calendar day.
type Segment struct {
	Name  Name
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (s Segment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Minutes returns the segment length in minutes, unrounded.
func (s Segment) Minutes() float64 {
	return s.Duration().Minutes()
}

// Progress returns how far t is through the segment as a percentage in
// [0, 100].
func (s Segment) Progress(t time.Time) float64 {
	if t.Before(s.Start) {
		return 0
	}
	if t.After(s.End) {
		return 100
	}

	total := s.End.Sub(s.Start)
	if total <= 0 {
		return 100
	}
	p := 100 * float64(t.Sub(s.Start)) / float64(total)
	return min(100, max(0, p))
}

// Contains reports whether Start <= t <= End. Both ends are inclusive, so an
// instant on a shared boundary belongs to both neighbouring segments.
func (s Segment) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

// Remaining returns the time left until the segment ends.
func (s Segment) Remaining(t time.Time) time.Duration {
	return s.End.Sub(t)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s[%s-%s]", s.Name, s.Start.Format("15:04"), s.End.Format("15:04"))
}

// Result is the outcome of Compute.
type Result struct {
	Current  Segment
	Next     Segment
	Segments []Segment
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
