package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocateArtifact returns the newest .apk under dir. The glob is
// expanded before checking, never compared as a literal path, and
// an empty result is an explicit error.
func LocateArtifact(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.apk"))
	if err != nil {
		return "", err
	}

	var (
		newest     string
		newestTime int64 = -1
	)
	for _, match := range matches {
		fi, err := os.Stat(match)
		if err != nil {
			continue
		}

		if mod := fi.ModTime().UnixNano(); mod > newestTime {
			newest = match
			newestTime = mod
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no .apk found under %s", dir)
	}

	return newest, nil
}
