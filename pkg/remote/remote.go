// Package remote recognises remote template references and checks them out
// with a shallow git clone.
//
// Accepted forms:
//
//	https://host/org/repo.git
//	http://host/org/repo.git
//	git@host:org/repo.git
//	git://host/org/repo.git
//	github:org/repo
//
// Any of them may end in #sub/path to select a directory inside the
// repository as the template root.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
)

// GitHubPrefix is the shorthand marker for GitHub repositories
const GitHubPrefix = "github:"

var schemePrefixes = []string{"https://", "http://", "git@", "git://"}

// Reference is a parsed remote template location
type Reference struct {
	Raw     string
	RepoURL string
	// Subpath selects the template root inside the clone; empty means the repository root
	Subpath string
}

// IsRemote reports whether s names a remote repository rather than a local path
func IsRemote(s string) bool {
	if strings.HasPrefix(s, GitHubPrefix) {
		return true
	}
	for _, p := range schemePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Parse splits a remote reference into repository URL and subpath, expanding
// the github: shorthand.
func Parse(s string) (Reference, error) {
	if !IsRemote(s) {
		return Reference{}, errors.Newf(errors.ErrInvalidInput, "%q is not a remote reference", s)
	}

	ref := Reference{Raw: s}
	repo := s
	if i := strings.Index(s, "#"); i >= 0 {
		repo, ref.Subpath = s[:i], strings.Trim(s[i+1:], "/")
	}

	if rest, ok := strings.CutPrefix(repo, GitHubPrefix); ok {
		parts := strings.Split(strings.TrimSuffix(rest, ".git"), "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Reference{}, errors.Newf(errors.ErrInvalidInput, "invalid GitHub shorthand %q, expected github:owner/repo", s)
		}
		repo = fmt.Sprintf("https://github.com/%s/%s.git", parts[0], parts[1])
	}

	for _, p := range append(schemePrefixes, GitHubPrefix) {
		if repo == p {
			return Reference{}, errors.Newf(errors.ErrInvalidInput, "remote reference %q has no repository", s)
		}
	}
	ref.RepoURL = repo
	return ref, nil
}

// Cloner performs shallow clones into a process-scoped temp directory
type Cloner struct {
	// Git is the git executable, looked up on PATH when empty
	Git string
	// TempDir is the parent of clone directories, os.TempDir() when empty
	TempDir string
	// PID namespaces the clone directory, os.Getpid() when zero
	PID int
}

// NewCloner returns a cloner with default settings
func NewCloner() *Cloner {
	return &Cloner{}
}

// CloneDir returns the directory this process clones into
func (c *Cloner) CloneDir() string {
	parent := c.TempDir
	if parent == "" {
		parent = os.TempDir()
	}
	pid := c.PID
	if pid == 0 {
		pid = os.Getpid()
	}
	return filepath.Join(parent, fmt.Sprintf("scaffold-%d", pid))
}

// Checkout is a cloned repository. Close removes it.
type Checkout struct {
	// Dir is the clone directory
	Dir string
	// Root is the template root: Dir or the referenced subpath inside it
	Root string
}

// Close removes the clone directory
func (c *Checkout) Close() error {
	if c == nil || c.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove clone %s", c.Dir)
	}
	return nil
}

// Clone shallow-clones ref. Any stale clone directory from an earlier run of
// the same pid is removed first. On failure nothing is left behind.
func (c *Cloner) Clone(ctx context.Context, ref Reference) (*Checkout, error) {
	logger := logging.GetLogger("remote")

	git := c.Git
	if git == "" {
		git = "git"
	}
	gitPath, err := exec.LookPath(git)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRemote, "git executable not found, is git installed?")
	}

	dir := c.CloneDir()
	if err := os.RemoveAll(dir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to clean up stale clone %s", dir)
	}
	checkout := &Checkout{Dir: dir, Root: dir}

	logger.Info().Str("url", ref.RepoURL).Str("dir", dir).Msg("cloning template repository")
	logging.LogCommand(gitPath, []string{"clone", "--depth", "1", ref.RepoURL, dir})

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, gitPath, "clone", "--depth", "1", "--quiet", ref.RepoURL, dir)
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	if err := cmd.Run(); err != nil {
		_ = checkout.Close()
		return nil, errors.Wrapf(err, errors.ErrRemote, "git clone of %s failed: %s", ref.RepoURL, strings.TrimSpace(stderr.String())).
			WithDetail("url", ref.RepoURL).
			WithDetail("stderr", stderr.String())
	}

	if ref.Subpath != "" {
		root := filepath.Join(dir, filepath.FromSlash(ref.Subpath))
		if rel, err := filepath.Rel(dir, root); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			_ = checkout.Close()
			return nil, errors.Newf(errors.ErrInvalidInput, "subpath %q escapes the repository", ref.Subpath)
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			_ = checkout.Close()
			return nil, errors.Newf(errors.ErrNotFound, "path %q does not exist in %s", ref.Subpath, ref.RepoURL).
				WithDetail("subpath", ref.Subpath)
		}
		checkout.Root = root
	}

	return checkout, nil
}
