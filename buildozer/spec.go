package buildozer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/hfget/hfget/android"
)

// SupportedArchs are the CPU architectures the tool
// can target.
var SupportedArchs = []string{"armeabi-v7a", "arm64-v8a", "x86", "x86_64"}

// Orientations are the screen orientations the tool accepts.
var Orientations = []string{"portrait", "landscape", "portrait-reverse", "landscape-reverse", "all"}

// Spec models the buildozer.spec the tool consumes: the [app]
// section describing the application to package and the
// [buildozer] section steering the tool itself.
type Spec struct {
	Title             string
	PackageName       string
	PackageDomain     string
	SourceDir         string
	SourceIncludeExts []string
	Version           string
	Requirements      []string
	Orientation       string
	Fullscreen        bool
	Permissions       []string
	API               int
	MinAPI            int
	Archs             []string
	EntryPoint        string
	AcceptSDKLicense  bool

	LogLevel   int
	WarnOnRoot bool
	BuildDir   string
	BinDir     string
}

// PackageID is the application identifier the package
// gets built under, e.g. org.hfget.hfdownloader.
func (s *Spec) PackageID() string {
	return s.PackageDomain + "." + s.PackageName
}

// DefaultSpec returns the spec the downloader app ships with.
func DefaultSpec() *Spec {
	return &Spec{
		Title:             "HF Downloader",
		PackageName:       "hfdownloader",
		PackageDomain:     "org.hfget",
		SourceDir:         ".",
		SourceIncludeExts: []string{"py", "png", "jpg", "kv", "atlas"},
		Version:           "1.0",
		Requirements:      []string{"python3", "kivy", "requests", "certifi", "charset-normalizer", "idna", "urllib3"},
		Orientation:       "portrait",
		Permissions: []string{
			"INTERNET",
			"WRITE_EXTERNAL_STORAGE",
			"READ_EXTERNAL_STORAGE",
			"WAKE_LOCK",
			"READ_MEDIA_IMAGES",
			"READ_MEDIA_VIDEO",
			"READ_MEDIA_AUDIO",
		},
		API:              33,
		MinAPI:           21,
		Archs:            []string{"arm64-v8a", "armeabi-v7a"},
		EntryPoint:       "org.kivy.android.PythonActivity",
		AcceptSDKLicense: true,
		LogLevel:         2,
		WarnOnRoot:       true,
		BuildDir:         "./.buildozer",
		BinDir:           "./bin",
	}
}

// DecodeSpec reads the tool's INI dialect: [section] headers,
// `key = value` pairs, # comments and comma-separated lists.
// Keys the tool knows but this model does not are ignored.
func DecodeSpec(r io.Reader) (*Spec, error) {
	var (
		spec    = &Spec{}
		section string
		scanner = bufio.NewScanner(r)
		line    int
	)

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			section = strings.TrimSpace(text[1 : len(text)-1])
			continue
		}

		key, value, found := strings.Cut(text, "=")
		if !found {
			return nil, fmt.Errorf("line %d: expected key = value, got %q", line, text)
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := spec.set(section, key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return spec, nil
}

func (s *Spec) set(section, key, value string) error {
	var err error

	switch section + "/" + key {
	case "app/title":
		s.Title = value
	case "app/package.name":
		s.PackageName = value
	case "app/package.domain":
		s.PackageDomain = value
	case "app/source.dir":
		s.SourceDir = value
	case "app/source.include_exts":
		s.SourceIncludeExts = splitList(value)
	case "app/version":
		s.Version = value
	case "app/requirements":
		s.Requirements = splitList(value)
	case "app/orientation":
		s.Orientation = value
	case "app/fullscreen":
		s.Fullscreen, err = parseBool(value)
	case "app/android.permissions":
		s.Permissions = splitList(value)
	case "app/android.api":
		s.API, err = strconv.Atoi(value)
	case "app/android.minapi":
		s.MinAPI, err = strconv.Atoi(value)
	case "app/android.archs":
		s.Archs = splitList(value)
	case "app/android.entrypoint":
		s.EntryPoint = value
	case "app/android.accept_sdk_license":
		s.AcceptSDKLicense, err = parseBool(value)
	case "buildozer/log_level":
		s.LogLevel, err = strconv.Atoi(value)
	case "buildozer/warn_on_root":
		s.WarnOnRoot, err = parseBool(value)
	case "buildozer/build_dir":
		s.BuildDir = value
	case "buildozer/bin_dir":
		s.BinDir = value
	}

	if err != nil {
		return fmt.Errorf("key %s: %w", key, err)
	}

	return nil
}

// Encode writes the spec in the layout the tool expects.
func (s *Spec) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "[app]")
	fmt.Fprintf(bw, "title = %s\n", s.Title)
	fmt.Fprintf(bw, "package.name = %s\n", s.PackageName)
	fmt.Fprintf(bw, "package.domain = %s\n", s.PackageDomain)
	if s.SourceDir != "" {
		fmt.Fprintf(bw, "source.dir = %s\n", s.SourceDir)
	}
	if len(s.SourceIncludeExts) > 0 {
		fmt.Fprintf(bw, "source.include_exts = %s\n", strings.Join(s.SourceIncludeExts, ","))
	}
	fmt.Fprintf(bw, "version = %s\n", s.Version)
	if len(s.Requirements) > 0 {
		fmt.Fprintf(bw, "requirements = %s\n", strings.Join(s.Requirements, ","))
	}
	if s.Orientation != "" {
		fmt.Fprintf(bw, "orientation = %s\n", s.Orientation)
	}
	fmt.Fprintf(bw, "fullscreen = %s\n", formatBool(s.Fullscreen))
	if len(s.Permissions) > 0 {
		fmt.Fprintf(bw, "android.permissions = %s\n", strings.Join(s.Permissions, ","))
	}
	if s.API > 0 {
		fmt.Fprintf(bw, "android.api = %d\n", s.API)
	}
	if s.MinAPI > 0 {
		fmt.Fprintf(bw, "android.minapi = %d\n", s.MinAPI)
	}
	if len(s.Archs) > 0 {
		fmt.Fprintf(bw, "android.archs = %s\n", strings.Join(s.Archs, ","))
	}
	if s.EntryPoint != "" {
		fmt.Fprintf(bw, "android.entrypoint = %s\n", s.EntryPoint)
	}
	fmt.Fprintf(bw, "android.accept_sdk_license = %s\n", formatBool(s.AcceptSDKLicense))

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "[buildozer]")
	fmt.Fprintf(bw, "log_level = %d\n", s.LogLevel)
	fmt.Fprintf(bw, "warn_on_root = %s\n", formatBool(s.WarnOnRoot))
	if s.BuildDir != "" {
		fmt.Fprintf(bw, "build_dir = %s\n", s.BuildDir)
	}
	if s.BinDir != "" {
		fmt.Fprintf(bw, "bin_dir = %s\n", s.BinDir)
	}

	return bw.Flush()
}

// ValidateSpec checks the spec against what the tool and the
// platform accept, reporting every violation at once.
func ValidateSpec(s *Spec) error {
	errs := []error{}

	if s.Title == "" {
		errs = append(errs, errors.New("missing title"))
	}

	if !packageName.MatchString(s.PackageName) {
		errs = append(errs, fmt.Errorf("invalid package name %q", s.PackageName))
	}

	if !packageDomain.MatchString(s.PackageDomain) {
		errs = append(errs, fmt.Errorf("invalid package domain %q", s.PackageDomain))
	}

	if s.Version == "" {
		errs = append(errs, errors.New("missing version"))
	}

	if s.API <= 0 {
		errs = append(errs, errors.New("missing android.api"))
	}

	if s.MinAPI > s.API {
		errs = append(errs, fmt.Errorf("android.minapi %d exceeds android.api %d", s.MinAPI, s.API))
	}

	if len(s.Archs) == 0 {
		errs = append(errs, errors.New("missing android.archs"))
	}

	for _, arch := range s.Archs {
		if !slices.Contains(SupportedArchs, arch) {
			errs = append(errs, fmt.Errorf("unsupported arch %q", arch))
		}
	}

	for _, permission := range s.Permissions {
		if !android.IsPermission(permission) {
			errs = append(errs, fmt.Errorf("unrecognized permission %q", permission))
		}
	}

	if s.Orientation != "" && !slices.Contains(Orientations, s.Orientation) {
		errs = append(errs, fmt.Errorf("invalid orientation %q", s.Orientation))
	}

	return errors.Join(errs...)
}

func splitList(value string) []string {
	elems := []string{}

	for _, elem := range strings.Split(value, ",") {
		if elem = strings.TrimSpace(elem); elem != "" {
			elems = append(elems, elem)
		}
	}

	return elems
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}

	return false, fmt.Errorf("invalid boolean %q", value)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
