package scaffold

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dyluth/crossalign/internal/config"
	"github.com/dyluth/crossalign/internal/printer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietPrinter(t *testing.T) {
	t.Helper()
	printer.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	t.Cleanup(func() { printer.SetOutput(nil, nil) })
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupFunc func(fs afero.Fs, root string)
	}{
		{
			name:      "fresh initialization",
			force:     false,
			setupFunc: func(fs afero.Fs, root string) {},
		},
		{
			name:  "force initialization replaces existing config",
			force: true,
			setupFunc: func(fs afero.Fs, root string) {
				afero.WriteFile(fs, filepath.Join(root, config.FileName), []byte("old content"), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quietPrinter(t)
			fs := afero.NewMemMapFs()
			root := "/repo"
			tt.setupFunc(fs, root)

			require.NoError(t, Initialize(fs, root, tt.force))

			isDir, err := afero.DirExists(fs, filepath.Join(root, config.DefaultOutputDir))
			require.NoError(t, err)
			assert.True(t, isDir)

			content, err := afero.ReadFile(fs, filepath.Join(root, config.FileName))
			require.NoError(t, err)
			assert.NotContains(t, string(content), "old content")

			cfg, err := config.Parse(content, ".json")
			require.NoError(t, err)
			require.Len(t, cfg.Peers, 1)
			assert.Equal(t, "PEER-SPEC-ID", cfg.Peers[0].DisplayID())
			assert.Equal(t, filepath.Join(root, config.DefaultOutputDir), cfg.OutputDir(root))
		})
	}
}

func TestHandleForce(t *testing.T) {
	quietPrinter(t)

	t.Run("removes existing config", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := filepath.Join("/repo", config.FileName)
		require.NoError(t, afero.WriteFile(fs, path, []byte("{}"), 0644))

		require.NoError(t, handleForce(fs, "/repo"))

		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("handles when config doesn't exist", func(t *testing.T) {
		require.NoError(t, handleForce(afero.NewMemMapFs(), "/repo"))
	})
}

func TestGetTemplateFiles(t *testing.T) {
	files, err := getTemplateFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, config.FileName, files[0].Path)
	assert.Equal(t, 0644, int(files[0].Permissions))
	assert.NotEmpty(t, files[0].Content)
}

func TestWriteFiles_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := writeFiles(fs, "/repo", []FileInfo{{Path: "x.json", Content: []byte("{}"), Permissions: 0644}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write x.json")
}

func TestValidateCreatedFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "valid JSON", content: `{"peers": []}`, wantErr: false},
		{name: "invalid JSON", content: `{"peers": [`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, filepath.Join("/repo", config.FileName), []byte(tt.content), 0644))

			err := validateCreatedFiles(fs, "/repo")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "is not valid")
				return
			}
			require.NoError(t, err)
		})
	}
}
