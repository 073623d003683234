// Package vcs reads snapshot files out of git history.
package vcs

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a file does not exist at a revision.
var ErrNotFound = errors.New("file not found at revision")

// Repository provides read access to committed file contents.
type Repository interface {
	// RepoPath returns the root path of the working tree.
	RepoPath() string
	// ReadFile returns the contents of path as of rev. path may be absolute
	// or relative to the working directory; rev is anything git accepts as
	// a revision (HEAD~2, a tag, a short hash).
	ReadFile(rev, path string) ([]byte, error)
	// Revisions lists the commits that touched path, newest first. A
	// limit of 0 means no limit.
	Revisions(path string, limit int) ([]Revision, error)
}

// Revision is a commit that changed a file.
type Revision struct {
	Hash    string    `json:"hash" toon:"hash"`
	When    time.Time `json:"when" toon:"when"`
	Author  string    `json:"author" toon:"author"`
	Message string    `json:"message" toon:"message"`
}

// ShortHash returns the first 7 characters of the hash.
func (r Revision) ShortHash() string {
	if len(r.Hash) > 7 {
		return r.Hash[:7]
	}
	return r.Hash
}

// Opener opens git repositories.
type Opener interface {
	// PlainOpenWithDetect opens a git repository, detecting .git in parent directories.
	PlainOpenWithDetect(path string) (Repository, error)
}
