package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/crossalign/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGitRepository(t *testing.T) {
	testutil.RequireGit(t)

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantIsGit bool
	}{
		{
			name: "valid git repository",
			setupFunc: func(t *testing.T) string {
				return testutil.NewWorkspace(t).InitGit().Root
			},
			wantIsGit: true,
		},
		{
			name: "not a git repository",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantIsGit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setupFunc(t)

			isGit, err := NewChecker().IsGitRepository(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsGit, isGit)
		})
	}
}

func TestResolveRoot(t *testing.T) {
	testutil.RequireGit(t)

	t.Run("resolves toplevel from a subdirectory", func(t *testing.T) {
		ws := testutil.NewWorkspace(t).InitGit()
		subDir := filepath.Join(ws.Root, "docs", "specs")
		require.NoError(t, os.MkdirAll(subDir, 0755))

		root, err := NewChecker().ResolveRoot(subDir)
		require.NoError(t, err)

		want, err := filepath.EvalSymlinks(ws.Root)
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(root)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("rejects a directory outside any repository", func(t *testing.T) {
		dir := t.TempDir()

		_, err := NewChecker().ResolveRoot(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a Git repository")
	})
}

func TestIsGitRepository_GitMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := NewChecker().IsGitRepository(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git not found in PATH")
}
