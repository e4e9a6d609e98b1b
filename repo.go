package hfget

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/hfget/hfget/internal/hfgeterr"
	"github.com/hfget/hfget/internal/hfgetregexp"
)

// DefaultRevision is the revision downloads refer
// to when the URL does not name one.
const DefaultRevision = "main"

// Repo references a hub model repository, or a
// subtree of one when Subpath is nonempty.
type Repo struct {
	Owner    string `json:"owner,omitempty"`
	Name     string `json:"name,omitempty"`
	Revision string `json:"revision,omitempty"`
	Subpath  string `json:"subpath,omitempty"`
}

func (r *Repo) String() string {
	s := path.Join(r.Owner, r.Name)

	if r.Revision != "" && r.Revision != DefaultRevision {
		s += "@" + r.Revision
	}

	return s
}

func ValidateRepo(repo *Repo) error {
	errs := []error{}

	if !hfgetregexp.IsRepoOwner(repo.Owner) {
		errs = append(errs, fmt.Errorf("invalid repo owner %s", repo.Owner))
	}

	if !hfgetregexp.IsRepoName(repo.Name) {
		errs = append(errs, fmt.Errorf("invalid repo name %s", repo.Name))
	}

	if repo.Revision != "" && !hfgetregexp.IsRevision(repo.Revision) {
		errs = append(errs, fmt.Errorf("invalid repo revision %s", repo.Revision))
	}

	return hfgeterr.HTTPStatusCodeError(errors.Join(errs...), http.StatusBadRequest)
}
