package segment

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for display modes.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextTime           = "next-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string  // Next segment name, e.g. "Asr"
	ShortName string  // Abbreviated name, e.g. "A"
	Current   string  // Current segment name
	Time      string  // When the next segment starts, e.g. "15:02" or "3:02 PM"
	Remaining string  // Time remaining, e.g. "2h 15m"
	Hours     int     // Whole hours remaining
	Minutes   int     // Remaining minutes after hours
	Progress  float64 // Percent of the current segment elapsed
}

// Format renders the next segment for display according to mode.
// timeFormat should be "15:04" for 24h or "3:04 PM" for 12h.
//
// The next segment begins where the current one ends, so the countdown runs
// to Current.End; this also covers the Isha -> Layl wrap at midnight.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Example: "{{.Name}} in {{.Remaining}}" -> "Asr in 2h 15m"
func Format(r Result, now time.Time, mode string, timeFormat string) string {
	d := r.Current.Remaining(now)
	remaining := FormatRemaining(d)
	timeStr := r.Current.End.Format(timeFormat)
	name := string(r.Next.Name)
	short := ShortNames[r.Next.Name]

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      name,
			ShortName: short,
			Current:   string(r.Current.Name),
			Time:      timeStr,
			Remaining: remaining,
			Hours:     int(d.Hours()),
			Minutes:   int(d.Minutes()) % 60,
			Progress:  r.Current.Progress(now),
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextTime:
		return timeStr
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", name, timeStr)
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", name, timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", name, timeStr)
	}
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
