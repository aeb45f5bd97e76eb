package alignment

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ReportFileName is the report written inside the effective output directory
const ReportFileName = "alignment-report.md"

// DefaultRerunHint is the command named in the report's remediation line
const DefaultRerunHint = "crossalign"

// Report titles
const (
	TitlePreconditions = "Preconditions failed. Alignment halted."
	TitlePeerSnapshots = "Peer snapshot loading failed. Alignment halted."
	TitleBuildScript   = "Alignment build script missing. Alignment halted."
)

// FailureReport is the Markdown document written when alignment halts
type FailureReport struct {
	Title     string
	Items     []string
	RerunHint string
}

// Render produces the report body. Output depends only on the report fields.
func (r *FailureReport) Render() []byte {
	hint := r.RerunHint
	if hint == "" {
		hint = DefaultRerunHint
	}

	lines := []string{
		"# Alignment Report",
		"",
		r.Title,
		"",
		"## Missing inputs",
	}
	for _, item := range r.Items {
		lines = append(lines, "- "+item)
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Provide the missing inputs and rerun `%s`.", hint),
	)

	return []byte(strings.Join(lines, "\n") + "\n")
}

// Write creates outDir if needed and overwrites the report file inside it.
// Returns the path of the written report.
func (r *FailureReport) Write(fs afero.Fs, outDir string) (string, error) {
	if err := fs.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	path := filepath.Join(outDir, ReportFileName)
	if err := afero.WriteFile(fs, path, r.Render(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
