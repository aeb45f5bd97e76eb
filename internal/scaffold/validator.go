package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/dyluth/crossalign/internal/config"
	"github.com/spf13/afero"
)

// CheckExisting checks if an alignment config already exists under root
// Returns an error if it does, nil otherwise
func CheckExisting(fs afero.Fs, root string) error {
	if _, err := fs.Stat(filepath.Join(root, config.FileName)); err == nil {
		return fmt.Errorf("project already initialized\n\nFound existing: %s\n\nUse 'crossalign init --force' to reinitialize (this will overwrite the existing configuration)", config.FileName)
	}

	return nil
}
