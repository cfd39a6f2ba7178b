// Package gitops records issued documents in the project's git history.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author is the identity billdoc commits as.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// run executes git in dir. The author doubles as committer so commits work
// on machines with no git identity configured.
func run(dir string, author *Author, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if author != nil {
		cmd.Env = append(os.Environ(),
			"GIT_COMMITTER_NAME="+author.Name,
			"GIT_COMMITTER_EMAIL="+author.Email,
		)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	_, err := run(dir, nil, "init", "--quiet")
	return err
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(dir, message string, author Author) (string, error) {
	if _, err := run(dir, nil, "add", "-A"); err != nil {
		return "", err
	}
	return commit(dir, message, author)
}

// CommitPaths stages only paths (relative to dir) and commits them.
func CommitPaths(dir, message string, author Author, paths ...string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("git commit: no paths given")
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := run(dir, nil, args...); err != nil {
		return "", err
	}
	return commit(dir, message, author)
}

func commit(dir, message string, author Author) (string, error) {
	if _, err := run(dir, &author, "commit", "--quiet", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}
	return run(dir, nil, "rev-parse", "--short", "HEAD")
}

// IsRepo reports whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
