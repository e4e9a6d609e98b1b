package hfget

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
)

// Client calls the hub API that backs batch downloads.
type Client struct {
	HTTPClient *http.Client
	Base       *url.URL
}

// FileInfo describes one entry of a repository tree listing.
type FileInfo struct {
	Path string `json:"path"`
	Size int64  `json:"size,omitempty"`
	OID  string `json:"oid,omitempty"`
	Type string `json:"type,omitempty"`
}

func (c *Client) init() error {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Base == nil {
		var err error
		c.Base, err = url.Parse("https://huggingface.co/")
		return err
	}
	return nil
}

// ListFiles lists the files of the repository subtree, recursively,
// sorted by path. Entries that are not plain files are omitted.
func (c *Client) ListFiles(ctx context.Context, repo *Repo) ([]FileInfo, error) {
	if err := c.init(); err != nil {
		return nil, err
	}

	if err := ValidateRepo(repo); err != nil {
		return nil, err
	}

	revision := repo.Revision
	if revision == "" {
		revision = DefaultRevision
	}

	elems := []string{"/api/models", repo.Owner, repo.Name, "tree", revision}
	if repo.Subpath != "" {
		elems = append(elems, repo.Subpath)
	}

	u := c.Base.JoinPath(elems...)
	u.RawQuery = url.Values{"recursive": []string{"true"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body := map[string]string{}
		if err = json.NewDecoder(res.Body).Decode(&body); err == nil {
			if body["error"] != "" {
				return nil, fmt.Errorf("http status code %d: %s", res.StatusCode, body["error"])
			}
		}

		return nil, fmt.Errorf("http status code %d", res.StatusCode)
	}

	entries := []FileInfo{}
	if err = json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, err
	}

	files := []FileInfo{}
	for _, entry := range entries {
		if entry.Type == "file" {
			files = append(files, entry)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// ResolveURL returns the URL that the file of the repository
// at the given revision can be downloaded from.
func (c *Client) ResolveURL(repo *Repo, file string) string {
	if err := c.init(); err != nil {
		return ""
	}

	revision := repo.Revision
	if revision == "" {
		revision = DefaultRevision
	}

	return c.Base.JoinPath(repo.Owner, repo.Name, "resolve", revision, file).String()
}
