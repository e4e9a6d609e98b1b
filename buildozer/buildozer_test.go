package buildozer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newArgsCommand writes an executable that records the
// arguments it was called with into args.txt in its
// working directory.
func newArgsCommand(t *testing.T) Command {
	t.Helper()

	stub := filepath.Join(t.TempDir(), "buildozer")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho \"$@\" > args.txt\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	return Command(stub)
}

func TestCommandBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		opts     *BuildOpts
		expected string
	}{
		{"defaults", nil, "android debug"},
		{"release", &BuildOpts{Profile: "release"}, "android release"},
		{"verbose", &BuildOpts{Verbose: true}, "--verbose android debug"},
		{"target", &BuildOpts{Target: "ios", Profile: "release"}, "ios release"},
	}

	for _, test := range tests {
		dir := t.TempDir()

		if err := newArgsCommand(t).Build(context.Background(), dir, test.opts); err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}

		args, err := os.ReadFile(filepath.Join(dir, "args.txt"))
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}

		if got := strings.TrimSpace(string(args)); got != test.expected {
			t.Errorf("%s: args = %q, expected %q", test.name, got, test.expected)
		}
	}
}
