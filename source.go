package hfget

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/hfget/hfget/internal/hfgetregexp"
)

// Source is a parsed download reference. Either URL and Filename
// are set for a single-file download, or Repo is set for a
// download of a whole repository subtree.
type Source struct {
	URL      string
	Filename string
	Repo     *Repo
}

func (s *Source) IsTree() bool {
	return s.Repo != nil
}

// ParseSource classifies a raw URL as either a single file or a
// repository subtree. Hub URLs are recognized on huggingface.co
// and hf-mirror.com in both their resolve and blob forms, with
// blob URLs rewritten to their downloadable resolve counterpart.
// Any other http(s) URL degrades to a direct file download named
// after the last element of its path.
func ParseSource(raw string) (*Source, error) {
	// Fragments and query strings never contribute to
	// the referenced file.
	raw, _, _ = strings.Cut(raw, "?")
	raw, _, _ = strings.Cut(raw, "#")

	if match := hfgetregexp.TreeURL.FindStringSubmatch(raw); match != nil {
		return &Source{
			Repo: &Repo{
				Owner:    match[2],
				Name:     match[3],
				Revision: match[4],
				Subpath:  match[5],
			},
		}, nil
	}

	if match := hfgetregexp.FileURL.FindStringSubmatch(raw); match != nil {
		var (
			host     = match[1]
			repo     = &Repo{Owner: match[2], Name: match[3], Revision: match[4]}
			filepath = match[5]
		)

		filename, err := url.PathUnescape(path.Base(filepath))
		if err != nil {
			filename = path.Base(filepath)
		}

		return &Source{
			URL:      fmt.Sprintf("https://%s/%s/%s/resolve/%s/%s", host, repo.Owner, repo.Name, repo.Revision, filepath),
			Filename: filename,
		}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL %s", raw)
	}

	filename, err := url.PathUnescape(path.Base(u.Path))
	if err != nil || filename == "." || filename == "/" || filename == "" {
		filename = "downloaded_file"
	}

	return &Source{URL: raw, Filename: filename}, nil
}
