package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-segments/internal/display"
	"github.com/smokyabdulrahman/prayer-segments/internal/segment"
)

func (a *app) runToday(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := a.open(ctx); err != nil {
		return err
	}

	tgt, err := a.resolveTarget(ctx)
	if err != nil {
		return err
	}

	now := a.now().In(a.loc)
	result, err := a.timings.Segments(ctx, tgt.Query, now)
	if err != nil {
		return err
	}

	goTimeFmt := a.cfg.GoTimeFormat()
	out := cmd.OutOrStdout()

	if a.flags.JSON {
		return printTodayJSON(out, result, now, tgt, goTimeFmt)
	}

	printTodayRich(out, result, now, tgt, goTimeFmt)
	return nil
}

// printTodayRich renders the colored terminal output for today's segments.
func printTodayRich(w io.Writer, r segment.Result, now time.Time, tgt target, goTimeFmt string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Segments"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", tgt.describe())
	fmt.Fprintf(w, "  %s\n", display.Gray(now.Format("Monday 02 Jan 2006")+" · "+now.Location().String()))
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Segment", "Start", "End", "Length", "Progress"})
	for i, s := range r.Segments {
		progress := ""
		if s.Name == r.Current.Name {
			tbl.SetHighlightRow(i)
			progress = fmt.Sprintf("%s %3.0f%%", display.ProgressBar(s.Progress(now), 12), s.Progress(now))
		}
		tbl.AddRow([]string{
			string(s.Name),
			s.Start.Format(goTimeFmt),
			formatEnd(s, goTimeFmt),
			segment.FormatRemaining(s.Duration()),
			progress,
		})
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)

	remaining := segment.FormatRemaining(r.Current.Remaining(now))
	fmt.Fprintf(w, "  %s %s at %s  %s\n",
		display.Dim("Next:"),
		display.Accent(string(r.Next.Name)),
		r.Current.End.Format(goTimeFmt),
		display.Accent("in "+remaining))
	fmt.Fprintln(w)
}

// formatEnd shows the closing midnight as 24:00 so Isha reads as ending
// today rather than at 00:00.
func formatEnd(s segment.Segment, goTimeFmt string) string {
	if s.End.Day() != s.Start.Day() && goTimeFmt == "15:04" {
		return "24:00"
	}
	return s.End.Format(goTimeFmt)
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     string            `json:"date"`
	Timezone string            `json:"timezone"`
	Current  todayJSONSegment  `json:"current"`
	Next     todayJSONNext     `json:"next"`
	Segments []todayJSONSeg    `json:"segments"`
}

type todayJSONLocation struct {
	Source    string   `json:"source"`
	Key       string   `json:"key"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type todayJSONSegment struct {
	Name      string  `json:"name"`
	Progress  float64 `json:"progress"`
	Remaining string  `json:"remaining"`
}

type todayJSONNext struct {
	Name  string `json:"name"`
	Start string `json:"start"`
}

type todayJSONSeg struct {
	Name    string  `json:"name"`
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Minutes float64 `json:"minutes"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, r segment.Result, now time.Time, tgt target, goTimeFmt string) error {
	out := todayJSON{
		Location: todayJSONLocation{
			Source: tgt.Source,
			Key:    tgt.Query.Key(),
		},
		Date:     now.Format("2006-01-02"),
		Timezone: now.Location().String(),
		Current: todayJSONSegment{
			Name:      string(r.Current.Name),
			Progress:  r.Current.Progress(now),
			Remaining: segment.FormatRemaining(r.Current.Remaining(now)),
		},
		Next: todayJSONNext{
			Name:  string(r.Next.Name),
			Start: r.Current.End.Format(goTimeFmt),
		},
	}

	if tgt.Query.IsCity() {
		out.Location.City = tgt.Query.City
		out.Location.Country = tgt.Query.Country
	} else {
		lat, lon := tgt.Query.Coordinates.Latitude, tgt.Query.Coordinates.Longitude
		out.Location.Latitude = &lat
		out.Location.Longitude = &lon
	}

	for _, s := range r.Segments {
		out.Segments = append(out.Segments, todayJSONSeg{
			Name:    string(s.Name),
			Start:   s.Start.Format(time.RFC3339),
			End:     s.End.Format(time.RFC3339),
			Minutes: s.Minutes(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
