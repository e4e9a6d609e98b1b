package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hfget/hfget/buildozer"
)

func TestLocateArtifact(t *testing.T) {
	dir := t.TempDir()

	if _, err := LocateArtifact(dir); err == nil {
		t.Error("expected error for empty directory")
	}

	older := filepath.Join(dir, "hfdownloader-0.9-debug.apk")
	if err := os.WriteFile(older, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	newer := filepath.Join(dir, "hfdownloader-1.0-debug.apk")
	if err := os.WriteFile(newer, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Not an .apk, must not match.
	if err := os.WriteFile(filepath.Join(dir, "hfdownloader-1.0.aab"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	artifact, err := LocateArtifact(dir)
	if err != nil {
		t.Fatal(err)
	}

	if artifact != newer {
		t.Errorf("LocateArtifact = %s, expected %s", artifact, newer)
	}
}

func TestPipelineWriteSpec(t *testing.T) {
	var (
		dir = t.TempDir()
		p   = &Pipeline{Dir: dir, Spec: buildozer.DefaultSpec()}
	)

	if err := p.WriteSpec(context.Background()); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(filepath.Join(dir, buildozer.SpecName))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	spec, err := buildozer.DecodeSpec(file)
	if err != nil {
		t.Fatal(err)
	}

	if spec.PackageID() != "org.hfget.hfdownloader" {
		t.Errorf("PackageID() = %s", spec.PackageID())
	}
}

func TestPipelineClean(t *testing.T) {
	var (
		dir = t.TempDir()
		p   = &Pipeline{Dir: dir, Spec: buildozer.DefaultSpec()}
	)

	for _, sub := range []string{".buildozer/android/platform", "bin"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "bin", "stale.apk"), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := p.Clean(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, sub := range []string{".buildozer", "bin"} {
		if _, err := os.Stat(filepath.Join(dir, sub)); !os.IsNotExist(err) {
			t.Errorf("%s still exists", sub)
		}
	}
}

func TestPipelineRun(t *testing.T) {
	dir := t.TempDir()

	// Stands in for the packaging tool: answers the version
	// probe and drops an artifact into bin/.
	stub := filepath.Join(t.TempDir(), "buildozer")
	if err := os.WriteFile(stub, []byte(`#!/bin/sh
if [ "$1" = "--version" ]; then
	echo "Buildozer 1.5.0"
	exit 0
fi
if [ ! -f buildozer.spec ]; then
	echo "no buildozer.spec" >&2
	exit 1
fi
mkdir -p bin
echo fake > bin/hfdownloader-1.0-debug.apk
`), 0o755); err != nil {
		t.Fatal(err)
	}

	p := &Pipeline{
		Dir:            dir,
		Buildozer:      buildozer.Command(stub),
		SkipSystemDeps: true,
	}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	expected := filepath.Join(dir, "bin", "hfdownloader-1.0-debug.apk")
	if result.Artifact != expected {
		t.Errorf("Artifact = %s, expected %s", result.Artifact, expected)
	}

	if result.Package != "org.hfget.hfdownloader" {
		t.Errorf("Package = %s", result.Package)
	}

	// The spec the tool consumed must be the one Run wrote.
	file, err := os.Open(filepath.Join(dir, buildozer.SpecName))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	if _, err := buildozer.DecodeSpec(file); err != nil {
		t.Error(err)
	}
}

func TestPipelineRunVerify(t *testing.T) {
	spec := buildozer.DefaultSpec()
	spec.Permissions = []string{"INTERNET", "WAKE_LOCK"}

	p := &Pipeline{
		Dir:            t.TempDir(),
		Spec:           spec,
		Buildozer:      stubBuildozer(t),
		APKTool:        stubAPKTool(t, writeDecodedAPK(t, true)),
		SkipSystemDeps: true,
		Verify:         true,
	}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if result.Package != "org.hfget.hfdownloader" {
		t.Errorf("Package = %s", result.Package)
	}
}

func TestPipelineRunVerifyMissingMetadata(t *testing.T) {
	spec := buildozer.DefaultSpec()
	spec.Permissions = []string{"INTERNET", "WAKE_LOCK"}

	p := &Pipeline{
		Dir:            t.TempDir(),
		Spec:           spec,
		Buildozer:      stubBuildozer(t),
		APKTool:        stubAPKTool(t, writeDecodedAPK(t, false)),
		SkipSystemDeps: true,
		Verify:         true,
	}

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected a failed metadata read to fail verification")
	}

	if !strings.Contains(err.Error(), "apktool.yml") {
		t.Errorf("unexpected error: %v", err)
	}
}

// stubBuildozer writes an executable standing in for the
// packaging tool.
func stubBuildozer(t *testing.T) buildozer.Command {
	t.Helper()

	stub := filepath.Join(t.TempDir(), "buildozer")
	if err := os.WriteFile(stub, []byte(`#!/bin/sh
if [ "$1" = "--version" ]; then
	echo "Buildozer 1.5.0"
	exit 0
fi
mkdir -p bin
echo fake > bin/hfdownloader-1.0-debug.apk
`), 0o755); err != nil {
		t.Fatal(err)
	}

	return buildozer.Command(stub)
}

// stubAPKTool writes an executable that "decodes" any .apk
// into a copy of the given directory.
func stubAPKTool(t *testing.T, decoded string) string {
	t.Helper()

	stub := filepath.Join(t.TempDir(), "apktool")
	script := fmt.Sprintf(`#!/bin/sh
out=""
prev=""
for arg in "$@"; do
	if [ "$prev" = "--output" ]; then
		out="$arg"
	fi
	prev="$arg"
done
mkdir -p "$out"
cp -R %s/. "$out"
`, decoded)

	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	return stub
}

// writeDecodedAPK lays out what apktool would leave behind for
// the default application, optionally without the apktool.yml.
func writeDecodedAPK(t *testing.T, withMetadata bool) string {
	t.Helper()

	dir := t.TempDir()

	manifest := `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="org.hfget.hfdownloader">
    <uses-sdk android:minSdkVersion="21" android:targetSdkVersion="33"/>
    <uses-permission android:name="android.permission.INTERNET"/>
    <uses-permission android:name="android.permission.WAKE_LOCK"/>
    <application>
        <activity android:name="org.kivy.android.PythonActivity">
            <intent-filter>
                <action android:name="android.intent.action.MAIN"/>
            </intent-filter>
        </activity>
    </application>
</manifest>
`
	if err := os.WriteFile(filepath.Join(dir, "AndroidManifest.xml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	if withMetadata {
		metadata := `version: 2.9.3
apkFileName: hfdownloader-1.0-debug.apk
sdkInfo:
  minSdkVersion: 21
  targetSdkVersion: 33
`
		if err := os.WriteFile(filepath.Join(dir, "apktool.yml"), []byte(metadata), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestPipelineRunRejectsInvalidSpec(t *testing.T) {
	spec := buildozer.DefaultSpec()
	spec.MinAPI = spec.API + 1

	p := &Pipeline{Dir: t.TempDir(), Spec: spec}

	_, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("unexpected error: %v", err)
	}
}
