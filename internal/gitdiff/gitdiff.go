// # internal/gitdiff/gitdiff.go
package gitdiff

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"codescope/internal/core/errors"
)

// ChangedFiles returns the files changed since ref, as absolute paths. Both
// working-tree changes (`git diff --name-only <ref>`) and staged changes
// (`git diff --name-only --cached`) are included, deduplicated, and filtered
// to files that still exist on disk.
func ChangedFiles(repoPath, ref string) ([]string, error) {
	root, err := RepoRoot(repoPath)
	if err != nil {
		return nil, err
	}

	diffOut, err := runGit(root, "diff", "--name-only", ref)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxRef, ref)
	}

	stagedOut, err := runGit(root, "diff", "--name-only", "--cached")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	for _, line := range append(splitOutput(diffOut), splitOutput(stagedOut)...) {
		abs := filepath.Join(root, line)
		if seen[abs] {
			continue
		}
		seen[abs] = true
		if _, err := os.Stat(abs); err == nil {
			files = append(files, abs)
		}
	}

	sort.Strings(files)
	return files, nil
}

// RepoRoot resolves the repository root for any path inside it.
func RepoRoot(path string) (string, error) {
	out, err := runGit(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.Newf(errors.CodeValidationError,
			"not a git repository: %s (changed-file analysis requires a git repository)", path)
	}
	return strings.TrimSpace(out), nil
}

// IsRepository reports whether path lies inside a git work tree.
func IsRepository(path string) bool {
	_, err := RepoRoot(path)
	return err == nil
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return "", errors.Newf(errors.CodeValidationError,
				"git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
		}
		return "", errors.Wrap(err, errors.CodeValidationError,
			"failed to execute git: is git installed and in PATH?")
	}

	return stdout.String(), nil
}

func splitOutput(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
