package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitFile writes content to name under root and commits it, creating the
// repository on first use. It returns the file's path.
func CommitFile(t *testing.T, root, name, content, msg string) string {
	t.Helper()
	repo, err := git.PlainOpen(root)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(root, false)
	}
	if err != nil {
		t.Fatalf("open repository %s: %v", root, err)
	}

	path := WriteFile(t, root, name, content)
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := w.Add(name); err != nil {
		t.Fatalf("git add %s: %v", name, err)
	}
	_, err = w.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return path
}
