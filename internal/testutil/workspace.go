package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Workspace is an isolated working root on the real filesystem
type Workspace struct {
	T    *testing.T
	Root string
}

// NewWorkspace creates an empty workspace in a temp directory (auto-cleaned up)
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{T: t, Root: t.TempDir()}
}

// Path returns the absolute path of a root-relative file
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}

// WriteFile writes content to a root-relative path, creating parent directories
func (w *Workspace) WriteFile(rel, content string) *Workspace {
	w.T.Helper()
	path := w.Path(rel)
	require.NoError(w.T, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(w.T, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", rel)
	return w
}

// ReadFile returns the content of a root-relative file
func (w *Workspace) ReadFile(rel string) string {
	w.T.Helper()
	data, err := os.ReadFile(w.Path(rel))
	require.NoError(w.T, err, "Failed to read %s", rel)
	return string(data)
}

// Exists reports whether a root-relative path exists
func (w *Workspace) Exists(rel string) bool {
	_, err := os.Stat(w.Path(rel))
	return err == nil
}

// Complete populates every alignment input: config, AGENTS.md, self and one
// peer's descriptors, and the build script
func (w *Workspace) Complete() *Workspace {
	w.T.Helper()
	w.WriteFile("gidas-alignment.config.json", `{
  "self": {"indexPath": "docs/index.md", "openapiPath": "docs/openapi.yaml", "agentsPath": "AGENTS.md"},
  "peers": [{"specId": "billing", "indexPath": "peers/billing/index.md", "openapiPath": "peers/billing/openapi.yaml"}]
}
`)
	w.WriteFile("AGENTS.md", "# Agents\n")
	w.WriteFile("docs/index.md", "# Index\n")
	w.WriteFile("docs/openapi.yaml", "openapi: 3.0.0\n")
	w.WriteFile("peers/billing/index.md", "# Billing\n")
	w.WriteFile("peers/billing/openapi.yaml", "openapi: 3.0.0\n")
	w.WriteFile(".gidas/alignment/build-alignment.ps1", "Write-Host 'aligning'\n")
	return w
}

// RequireGit skips the test when git is not installed
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// InitGit initializes a Git repository at the workspace root
func (w *Workspace) InitGit() *Workspace {
	w.T.Helper()
	cmd := exec.Command("git", "init")
	cmd.Dir = w.Root
	require.NoError(w.T, cmd.Run(), "Failed to initialize Git repository")

	require.NoError(w.T, exec.Command("git", "-C", w.Root, "config", "user.email", "test@crossalign.local").Run())
	require.NoError(w.T, exec.Command("git", "-C", w.Root, "config", "user.name", "Crossalign Test").Run())
	return w
}
