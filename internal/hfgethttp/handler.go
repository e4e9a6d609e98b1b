package hfgethttp

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hfget/hfget/internal/hfgeterr"
	"github.com/hfget/hfget/internal/hfgetregexp"
)

const (
	ContentTypeAPK  = "application/vnd.android.package-archive"
	ContentTypeJSON = "application/json"
)

// File is one entry of the directory listing.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// NewHandler serves the files beneath dir so that a built .apk
// can be fetched onto a device on the same network.
func NewHandler(dir string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "ok")
	})

	r.Get("/api/v1/files", func(w http.ResponseWriter, r *http.Request) {
		pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))

		files, err := listFiles(dir)
		if err != nil {
			_ = respondErrorJSON(w, err, pretty)
			return
		}

		_ = respondJSON(w, files, pretty)
	})

	r.Get("/files/*", func(w http.ResponseWriter, r *http.Request) {
		var (
			name      = chi.URLParam(r, "*")
			pretty, _ = strconv.ParseBool(r.URL.Query().Get("pretty"))
		)

		full, err := resolve(dir, name)
		if err != nil {
			_ = respondErrorJSON(w, err, pretty)
			return
		}

		if hfgetregexp.IsAPK(name) {
			w.Header().Set("Content-Type", ContentTypeAPK)
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(name)))
		}

		http.ServeFile(w, r, full)
	})

	return r
}

func listFiles(dir string) ([]File, error) {
	files := []File{}

	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, File{Name: filepath.ToSlash(rel), Size: fi.Size()})

		return nil
	}); err != nil {
		return nil, err
	}

	return files, nil
}

// resolve rejects paths that escape dir.
func resolve(dir, name string) (string, error) {
	full := filepath.Join(dir, filepath.FromSlash(name))

	rel, err := filepath.Rel(dir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", hfgeterr.HTTPStatusCodeError(fmt.Errorf("invalid file %s", name), http.StatusBadRequest)
	}

	if _, err := os.Stat(full); err != nil {
		return "", hfgeterr.HTTPStatusCodeError(fmt.Errorf("not found"), http.StatusNotFound)
	}

	return full, nil
}
