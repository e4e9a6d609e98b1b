package buildozer

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

// SpecName is the file name the tool reads its
// configuration from in the project directory.
const SpecName = "buildozer.spec"

// Build finds `buildozer` on the PATH and runs Build against it.
// See Command.Build.
func Build(ctx context.Context, dir string, opts *BuildOpts) error {
	return Command("buildozer").Build(ctx, dir, opts)
}

// Command represents the path to a `buildozer` executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// BuildOpts represent flags that can be passed to `buildozer android`.
type BuildOpts struct {
	// Profile is debug or release. Empty means debug.
	Profile string
	// Target is the platform to package for.
	// Empty means android.
	Target  string
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// Build executes `buildozer android {debug|release}` in dir,
// which packages the application described by the buildozer.spec
// found there into an installable .apk.
func (c Command) Build(ctx context.Context, dir string, opts *BuildOpts) error {
	args := []string{}

	var (
		target  = "android"
		profile = "debug"
	)

	if opts != nil {
		if opts.Verbose {
			args = append(args, "--verbose")
		}

		if opts.Target != "" {
			target = opts.Target
		}

		if opts.Profile != "" {
			profile = opts.Profile
		}
	}

	args = append(args, target, profile)

	//nolint:gosec
	cmd := exec.CommandContext(ctx, c.String(), args...)
	cmd.Dir = dir

	if opts != nil {
		cmd.Stdout = opts.Stdout
		cmd.Stderr = opts.Stderr
	}

	return cmd.Run()
}

// AppClean executes `buildozer appclean` in dir, removing
// the tool's build state.
func (c Command) AppClean(ctx context.Context, dir string) error {
	//nolint:gosec
	cmd := exec.CommandContext(ctx, c.String(), "appclean")
	cmd.Dir = dir

	return cmd.Run()
}

// Version probes the executable, returning its reported
// version. A non-nil error means the tool is unusable or absent.
func (c Command) Version(ctx context.Context) (string, error) {
	var (
		buf = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, c.String(), "--version")
	)

	cmd.Stdout = buf
	cmd.Stderr = buf

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
