package android

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hfget/hfget/apktool"
	"gopkg.in/yaml.v3"
)

// APKDecoder inspects the .apk at Name by decoding it with
// apktool into a scratch directory.
type APKDecoder struct {
	Name string

	apktool  string
	keytool  string
	dir      string
	decoded  bool
	manifest *Manifest
	metadata *apktool.Metadata
}

type APKDecoderOpt func(*APKDecoder)

func WithAPKTool(b string) APKDecoderOpt {
	return func(a *APKDecoder) {
		a.apktool = b
	}
}

func WithKeytool(b string) APKDecoderOpt {
	return func(a *APKDecoder) {
		a.keytool = b
	}
}

func WithDir(dir string) APKDecoderOpt {
	return func(a *APKDecoder) {
		a.dir = dir
	}
}

func NewAPKDecoder(name string, opts ...APKDecoderOpt) *APKDecoder {
	ad := &APKDecoder{Name: name, keytool: "keytool", apktool: "apktool"}

	for _, opt := range opts {
		opt(ad)
	}

	return ad
}

func (a *APKDecoder) decode(ctx context.Context) error {
	if a.decoded {
		return nil
	} else if a.dir == "" {
		var err error
		a.dir, err = os.MkdirTemp("", "hfget-apk-*")
		if err != nil {
			return err
		}
	}

	opts := &apktool.DecodeOpts{
		Force:     true,
		NoSources: true,
		OutputDir: a.dir,
	}

	if err := apktool.Command(a.apktool).Decode(ctx, a.Name, opts); err != nil {
		return err
	}

	a.decoded = true

	return nil
}

func (a *APKDecoder) Manifest(ctx context.Context) (*Manifest, error) {
	if err := a.decode(ctx); err != nil {
		return nil, err
	}

	if a.manifest != nil {
		return a.manifest, nil
	}

	file, err := os.Open(filepath.Join(a.dir, AndroidManifestName))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	manifest := &Manifest{}
	if err = xml.NewDecoder(file).Decode(manifest); err != nil {
		return nil, err
	}

	a.manifest = manifest
	return a.manifest, nil
}

func (a *APKDecoder) Metadata(ctx context.Context) (*apktool.Metadata, error) {
	if err := a.decode(ctx); err != nil {
		return nil, err
	}

	if a.metadata != nil {
		return a.metadata, nil
	}

	f, err := os.Open(filepath.Join(a.dir, apktool.MetadataName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	metadata := &apktool.Metadata{}
	if err = yaml.NewDecoder(f).Decode(metadata); err != nil {
		return nil, err
	}

	a.metadata = metadata
	return a.metadata, nil
}

// SHA256CertFingerprints reads the fingerprint of the certificate
// the .apk is signed with off of `keytool -printcert`.
func (a *APKDecoder) SHA256CertFingerprints(ctx context.Context) (string, error) {
	var (
		buf = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, a.keytool, "-printcert", "-jarfile", a.Name)
	)

	cmd.Stdout = buf

	if err := cmd.Run(); err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "SHA256: ") {
			if fields := strings.Fields(line); len(fields) >= 2 {
				return fields[1], nil
			}
		}
	}

	return "", fmt.Errorf("sha256 cert fingerprints not found")
}

// Close removes the scratch directory. The .apk itself
// is left alone.
func (a *APKDecoder) Close() error {
	if a.decoded {
		if err := os.RemoveAll(a.dir); err != nil {
			return err
		}
	}

	a.decoded = false
	a.metadata = nil
	a.manifest = nil

	return nil
}
