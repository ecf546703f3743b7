package display

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	tbl := NewTable([]string{"Name", "Value"})
	if tbl == nil {
		t.Fatal("NewTable returned nil")
	}
	if tbl.highlightRow != -1 {
		t.Errorf("highlightRow = %d, want -1", tbl.highlightRow)
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	tbl := NewTable([]string{})
	if got := tbl.Render(); got != "" {
		t.Errorf("Render() with empty headers = %q, want empty", got)
	}
}

func TestTable_BasicRender(t *testing.T) {
	SetEnabled(false) // disable colors for predictable output

	tbl := NewTable([]string{"Segment", "Start", "End"})
	tbl.AddRow([]string{"Layl", "00:00", "05:00"})
	tbl.AddRow([]string{"Fajr", "05:00", "06:30"})

	got := tbl.Render()

	for _, want := range []string{"Segment", "Start", "End", "─", "Layl", "Fajr", "06:30"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
}

func TestTable_ColumnAlignment(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"A", "LongHeader"})
	tbl.AddRow([]string{"short", "x"})
	tbl.AddRow([]string{"y", "longer value"})

	got := tbl.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	// Header, separator, 2 data rows.
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	// Second column starts at the same offset on every row.
	col := strings.Index(lines[0], "LongHeader")
	if idx := strings.Index(lines[3], "longer value"); idx != col {
		t.Errorf("column offset %d, want %d", idx, col)
	}
}

func TestTable_WideRunesAlign(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Bar", "Pct"})
	tbl.AddRow([]string{ProgressBar(50, 4), "50%"})
	tbl.AddRow([]string{"-", "0%"})

	lines := strings.Split(tbl.Render(), "\n")
	if strings.Index(lines[2], "50%") != len("  ")+len("██░░")+len("  ") {
		t.Errorf("progress bar cell misaligned: %q", lines[2])
	}
}

func TestTable_HighlightRow(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	tbl := NewTable([]string{"Segment", "Start"})
	tbl.AddRow([]string{"Layl", "00:00"})
	tbl.AddRow([]string{"Fajr", "05:00"})
	tbl.SetHighlightRow(0)

	lines := strings.Split(tbl.Render(), "\n")
	// Line 0 is header, line 1 is separator, line 2 is first data row (highlighted).
	if len(lines) < 4 {
		t.Fatalf("expected at least 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "\033[") {
		t.Error("highlighted row should contain ANSI escape codes")
	}
	if strings.Contains(lines[3], "\033[") {
		t.Error("other rows should be plain")
	}
}

func TestFormatRow(t *testing.T) {
	got := formatRow([]string{"abc", "de"}, []int{5, 4})
	want := "abc    de  "
	if got != want {
		t.Errorf("formatRow = %q, want %q", got, want)
	}
}

func TestFormatRow_MissingCells(t *testing.T) {
	// Fewer cells than widths should produce empty-padded columns.
	got := formatRow([]string{"a"}, []int{3, 5})
	want := "a         "
	if got != want {
		t.Errorf("formatRow = %q, want %q", got, want)
	}
}
