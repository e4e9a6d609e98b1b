package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hfget/hfget"
	"github.com/hfget/hfget/buildozer"
)

// SystemDeps are the OS packages the packaging tool needs
// to assemble an .apk.
var SystemDeps = []string{
	"git", "zip", "unzip", "openjdk-17-jdk", "python3-pip",
	"autoconf", "libtool", "pkg-config", "zlib1g-dev",
	"libncurses5-dev", "cmake", "libffi-dev", "libssl-dev",
}

// Pipeline packages the application described by Spec into an
// installable .apk: it makes sure the packaging tool and its OS
// dependencies are present, removes stale build state, writes the
// spec, delegates to the tool and locates the produced artifact.
type Pipeline struct {
	// Dir is the project directory holding the application
	// sources and receiving the buildozer.spec.
	Dir  string
	Spec *buildozer.Spec

	Buildozer buildozer.Command
	// Pip installs the packaging tool when it is absent.
	Pip string
	// Profile is debug or release.
	Profile string

	SkipSystemDeps bool
	// Verify decodes the built .apk and checks it against Spec.
	Verify bool
	// APKTool overrides the apktool executable Verify
	// decodes with.
	APKTool string

	// Output receives the packaging tool's output.
	Output io.Writer
}

// Result reports where the pipeline left the artifact.
type Result struct {
	Artifact     string
	Package      string
	Fingerprints string
}

// Run executes the pipeline steps in order. The first failing
// step aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	log := hfget.LoggerFrom(ctx)

	if p.Spec == nil {
		p.Spec = buildozer.DefaultSpec()
	}

	if p.Buildozer == "" {
		p.Buildozer = "buildozer"
	}

	if p.Pip == "" {
		p.Pip = "pip3"
	}

	if err := buildozer.ValidateSpec(p.Spec); err != nil {
		return nil, err
	}

	log.Info("ensuring packaging tool is installed")
	if err := p.ensureBuildozer(ctx); err != nil {
		return nil, fmt.Errorf("install %s: %w", p.Buildozer, err)
	}

	if p.SkipSystemDeps {
		log.V(1).Info("skipping system dependencies")
	} else {
		log.Info("ensuring system dependencies are installed")
		if err := p.ensureSystemDeps(ctx); err != nil {
			return nil, fmt.Errorf("install system dependencies: %w", err)
		}
	}

	log.Info("removing stale build directories")
	if err := p.Clean(ctx); err != nil {
		return nil, err
	}

	log.Info("writing " + buildozer.SpecName)
	if err := p.WriteSpec(ctx); err != nil {
		return nil, err
	}

	log.Info("packaging", "profile", p.profile())
	if err := p.Buildozer.Build(ctx, p.Dir, &buildozer.BuildOpts{
		Profile: p.profile(),
		Stdout:  p.Output,
		Stderr:  p.Output,
	}); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	artifact, err := LocateArtifact(p.binDir())
	if err != nil {
		return nil, err
	}

	log.Info("built " + artifact)

	result := &Result{Artifact: artifact, Package: p.Spec.PackageID()}

	if p.Verify {
		log.Info("verifying " + artifact)
		if err := p.verify(ctx, result); err != nil {
			return nil, fmt.Errorf("verify %s: %w", artifact, err)
		}
	}

	return result, nil
}

func (p *Pipeline) profile() string {
	if p.Profile == "" {
		return "debug"
	}

	return p.Profile
}

func (p *Pipeline) ensureBuildozer(ctx context.Context) error {
	if _, err := p.Buildozer.Version(ctx); err == nil {
		return nil
	}

	//nolint:gosec
	cmd := exec.CommandContext(ctx, p.Pip, "install", "--user", "--upgrade", "buildozer", "Cython")
	cmd.Stdout = p.Output
	cmd.Stderr = p.Output

	if err := cmd.Run(); err != nil {
		return err
	}

	_, err := p.Buildozer.Version(ctx)
	return err
}

func (p *Pipeline) ensureSystemDeps(ctx context.Context) error {
	aptGet, err := exec.LookPath("apt-get")
	if err != nil {
		// Not a Debian-ish host, assume the deps are
		// provided some other way.
		hfget.LoggerFrom(ctx).V(1).Info("apt-get not found, skipping system dependencies")
		return nil
	}

	//nolint:gosec
	cmd := exec.CommandContext(ctx, aptGet, append([]string{"install", "-y"}, SystemDeps...)...)
	cmd.Stdout = p.Output
	cmd.Stderr = p.Output

	return cmd.Run()
}

// Clean removes the tool's build directory and the output
// directory so the build starts from scratch.
func (p *Pipeline) Clean(_ context.Context) error {
	if err := os.RemoveAll(p.buildDir()); err != nil {
		return err
	}

	return os.RemoveAll(p.binDir())
}

// WriteSpec encodes the spec to buildozer.spec in the
// project directory.
func (p *Pipeline) WriteSpec(_ context.Context) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(p.Dir, buildozer.SpecName))
	if err != nil {
		return err
	}

	if err = p.Spec.Encode(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func (p *Pipeline) buildDir() string {
	return p.resolve(p.Spec.BuildDir, ".buildozer")
}

func (p *Pipeline) binDir() string {
	return p.resolve(p.Spec.BinDir, "bin")
}

func (p *Pipeline) resolve(dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}

	if filepath.IsAbs(dir) {
		return dir
	}

	return filepath.Join(p.Dir, dir)
}
