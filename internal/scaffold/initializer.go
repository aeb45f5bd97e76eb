package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/crossalign/internal/alignment"
	"github.com/dyluth/crossalign/internal/config"
	"github.com/dyluth/crossalign/internal/printer"
	"github.com/spf13/afero"
)

//go:embed templates/*
var templatesFS embed.FS

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes a starter alignment config and output directory under root.
// If force is true, an existing config is removed first.
func Initialize(fs afero.Fs, root string, force bool) error {
	if force {
		if err := handleForce(fs, root); err != nil {
			return err
		}
	}

	files, err := getTemplateFiles()
	if err != nil {
		return err
	}

	if err := createDirectories(fs, root); err != nil {
		return err
	}

	if err := writeFiles(fs, root, files); err != nil {
		return err
	}

	return validateCreatedFiles(fs, root)
}

// handleForce removes the existing config if --force was specified
func handleForce(fs afero.Fs, root string) error {
	path := filepath.Join(root, config.FileName)
	if _, err := fs.Stat(path); err == nil {
		printer.Warning("Removing existing %s...\n", config.FileName)
		if err := fs.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", config.FileName, err)
		}
	}

	return nil
}

// getTemplateFiles reads all template files
func getTemplateFiles() ([]FileInfo, error) {
	configTmpl, err := templatesFS.ReadFile("templates/gidas-alignment.config.json.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", config.FileName, err)
	}

	return []FileInfo{
		{
			Path:        config.FileName,
			Content:     configTmpl,
			Permissions: 0644,
		},
	}, nil
}

// createDirectories creates the default output directory
func createDirectories(fs afero.Fs, root string) error {
	dir := filepath.Join(root, config.DefaultOutputDir)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

// writeFiles writes all template files relative to root
func writeFiles(fs afero.Fs, root string, files []FileInfo) error {
	for _, file := range files {
		if err := afero.WriteFile(fs, filepath.Join(root, file.Path), file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles checks the written config decodes
func validateCreatedFiles(fs afero.Fs, root string) error {
	content, err := afero.ReadFile(fs, filepath.Join(root, config.FileName))
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", config.FileName, err)
	}

	if _, err := config.Parse(content, filepath.Ext(config.FileName)); err != nil {
		return fmt.Errorf("created %s is not valid: %w", config.FileName, err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess() {
	printer.Println()
	printer.Success("Initialized alignment inputs\n")
	printer.Println("\nCreated:")
	printer.Printf("  ✓ %s\n", config.FileName)
	printer.Printf("  ✓ %s/\n", config.DefaultOutputDir)
	printer.Println("\nNext steps:")
	printer.Println("  1. Point self.indexPath, self.openapiPath and self.agentsPath at your descriptors")
	printer.Println("  2. Add one peers entry per peer snapshot")
	printer.Printf("  3. Add the build script at %s\n", alignment.BuildScriptPath)
	printer.Println("  4. Run 'crossalign check' to verify, then 'crossalign' to build")
}
