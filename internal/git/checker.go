package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Checker resolves Git repository locations for a working directory
type Checker struct{}

// NewChecker creates a new Git checker
func NewChecker() *Checker {
	return &Checker{}
}

// IsGitRepository checks if dir is within a Git repository
func (c *Checker) IsGitRepository(dir string) (bool, error) {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	err := cmd.Run()
	if err != nil {
		// Check if error is because git command not found
		if _, ok := err.(*exec.Error); ok {
			return false, fmt.Errorf("git not found in PATH\n--git-root requires Git to be installed.\nInstall Git: https://git-scm.com/downloads")
		}
		// Not in a Git repository
		return false, nil
	}
	return true, nil
}

// GetGitRoot returns the absolute path to the Git repository root enclosing dir
func (c *Checker) GetGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get Git root: %w", err)
	}

	return filepath.Clean(strings.TrimSpace(string(output))), nil
}

// ResolveRoot returns the repository root enclosing dir.
// Returns a user-friendly error if dir is not inside a Git repository.
func (c *Checker) ResolveRoot(dir string) (string, error) {
	isRepo, err := c.IsGitRepository(dir)
	if err != nil {
		return "", err
	}

	if !isRepo {
		return "", fmt.Errorf("not a Git repository: %s\n\n--git-root resolves the working root from the enclosing repository.\n\nRun from inside a Git repository or pass --root instead", dir)
	}

	return c.GetGitRoot(dir)
}
