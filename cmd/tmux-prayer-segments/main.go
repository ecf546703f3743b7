// Command tmux-prayer-segments prints a single status-bar line for the
// next prayer-time segment. It accepts the same flags as
// "prayer-segments next" and defaults to the name-and-time format.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smokyabdulrahman/prayer-segments/internal/cli"
	"github.com/smokyabdulrahman/prayer-segments/internal/segment"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if hasFlag(args, "version") {
		fmt.Fprintf(stdout, "tmux-prayer-segments %s\n", version)
		return 0
	}

	rootCmd := cli.NewRootCmd(version)
	rootCmd.SetArgs(nextArgs(args))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// nextArgs turns the wrapper's arguments into a "next" invocation.
func nextArgs(args []string) []string {
	out := append([]string{"next"}, args...)
	if !hasFlag(args, "format") {
		out = append(out, "--format", segment.FormatNameAndTime)
	}
	return out
}

// hasFlag reports whether --name or --name=value appears before any "--".
func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "--"+name || strings.HasPrefix(a, "--"+name+"=") {
			return true
		}
	}
	return false
}
