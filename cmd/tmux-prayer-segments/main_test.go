package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionFlag(t *testing.T) {
	old := version
	version = "v1.2.3-test"
	defer func() { version = old }()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--version"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	got := strings.TrimSpace(stdout.String())
	want := "tmux-prayer-segments v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

func TestNextArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "next --format name-and-time"},
		{"location flags", []string{"--city", "Cairo", "--country", "EG"}, "next --city Cairo --country EG --format name-and-time"},
		{"explicit format", []string{"--format", "full"}, "next --format full"},
		{"explicit format with equals", []string{"--format=time-remaining"}, "next --format=time-remaining"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(nextArgs(tt.args), " ")
			if got != tt.want {
				t.Errorf("nextArgs(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestHasFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"--city", "x", "--version"}, true},
		{[]string{"--versions"}, false},
		{[]string{"--", "--version"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := hasFlag(tt.args, "version"); got != tt.want {
			t.Errorf("hasFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestUnknownFlagFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-such-flag"}, &stdout, &stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "error:") {
		t.Errorf("stderr = %q, want error message", stderr.String())
	}
}
