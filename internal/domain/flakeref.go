package domain

import "strings"

// FlakeRef is a flake reference such as "/etc/nixos#myhost" or "github:owner/repo".
type FlakeRef string

// Dir returns the directory part of the reference: the '#' fragment is
// removed from the last '/'-separated segment.
//
//	"a/b/c#output" -> "a/b/c"
//	"x#y"          -> "x"
func (r FlakeRef) Dir() (string, error) {
	if r == "" {
		return "", ErrEmptyFlakeRef
	}
	pieces := strings.Split(string(r), "/")
	last := len(pieces) - 1
	pieces[last], _, _ = strings.Cut(pieces[last], "#")
	dir := strings.Join(pieces, "/")
	if dir == "" {
		return "", ErrEmptyFlakeRef
	}
	return dir, nil
}

// Split returns the reference without its fragment, and the fragment.
func (r FlakeRef) Split() (path, fragment string) {
	path, fragment, _ = strings.Cut(string(r), "#")
	return path, fragment
}

// IsLocal reports whether the reference points at a local directory.
func (r FlakeRef) IsLocal() bool {
	path, _ := r.Split()
	if strings.HasPrefix(path, "path:") || strings.HasPrefix(path, "git+file:") {
		return true
	}
	return !strings.Contains(path, ":")
}

// LocalPath returns the filesystem path of a local reference, without scheme or fragment.
func (r FlakeRef) LocalPath() string {
	path, _ := r.Split()
	path = strings.TrimPrefix(path, "path:")
	path = strings.TrimPrefix(path, "git+file://")
	path = strings.TrimPrefix(path, "git+file:")
	path, _, _ = strings.Cut(path, "?")
	return path
}
