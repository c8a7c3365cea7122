// Package git inspects the git work tree of local flakes.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/runoshun/nh/internal/domain"
)

// ErrNotRepository is returned when a directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository (or any of the parent directories)")

// Ensure Client implements domain.FlakeInspector.
var _ domain.FlakeInspector = (*Client)(nil)

// Client reads repository state with go-git; no git binary is needed.
type Client struct{}

// NewClient creates a new git client.
func NewClient() *Client {
	return &Client{}
}

// UntrackedFiles lists untracked files of the work tree containing dir,
// relative to the work tree root and sorted. Ignored files are not reported.
func (c *Client) UntrackedFiles(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}

	var untracked []string
	for path, st := range status {
		if st.Worktree == gogit.Untracked {
			untracked = append(untracked, path)
		}
	}
	sort.Strings(untracked)
	return untracked, nil
}
