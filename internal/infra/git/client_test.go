package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupFlakeRepo creates a repository with flake.nix committed.
func setupFlakeRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "flake.nix"), "{ outputs = _: { }; }\n")
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("flake.nix")
	require.NoError(t, err)
	_, err = wt.Commit("init", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func TestClient_UntrackedFiles(t *testing.T) {
	dir := setupFlakeRepo(t)
	writeFile(t, filepath.Join(dir, "hosts", "new.nix"), "{ }\n")
	writeFile(t, filepath.Join(dir, "a.nix"), "{ }\n")

	files, err := NewClient().UntrackedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.nix", filepath.ToSlash(filepath.Join("hosts", "new.nix"))}, files)
}

func TestClient_UntrackedFiles_Clean(t *testing.T) {
	dir := setupFlakeRepo(t)

	files, err := NewClient().UntrackedFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestClient_UntrackedFiles_ModifiedIsNotUntracked(t *testing.T) {
	dir := setupFlakeRepo(t)
	writeFile(t, filepath.Join(dir, "flake.nix"), "{ outputs = _: { x = 1; }; }\n")

	files, err := NewClient().UntrackedFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestClient_UntrackedFiles_Subdirectory(t *testing.T) {
	dir := setupFlakeRepo(t)
	writeFile(t, filepath.Join(dir, "nixos", "untracked.nix"), "{ }\n")

	files, err := NewClient().UntrackedFiles(filepath.Join(dir, "nixos"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nixos/untracked.nix"}, files)
}

func TestClient_UntrackedFiles_NotRepository(t *testing.T) {
	_, err := NewClient().UntrackedFiles(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
}
