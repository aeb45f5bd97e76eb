package alignment

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureReport_Render(t *testing.T) {
	report := &FailureReport{
		Title: TitlePeerSnapshots,
		Items: []string{
			"Missing AGENTS.md in repository root",
			"Missing SELF index: (unset)",
		},
		RerunHint: "crossalign --root /repo",
	}

	expected := `# Alignment Report

Peer snapshot loading failed. Alignment halted.

## Missing inputs
- Missing AGENTS.md in repository root
- Missing SELF index: (unset)

Provide the missing inputs and rerun ` + "`crossalign --root /repo`" + `.
`
	assert.Equal(t, expected, string(report.Render()))
}

func TestFailureReport_RenderDefaultHint(t *testing.T) {
	report := &FailureReport{Title: TitleBuildScript, Items: []string{"x"}}
	assert.Contains(t, string(report.Render()), "rerun `crossalign`.\n")
}

func TestFailureReport_WriteCreatesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	outDir := "/repo/deeply/nested/out"
	report := &FailureReport{Title: TitlePreconditions, Items: []string{"one"}}

	path, err := report.Write(fs, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, ReportFileName), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, report.Render(), data)
}

func TestFailureReport_WriteFailsOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	report := &FailureReport{Title: TitlePreconditions, Items: []string{"one"}}

	_, err := report.Write(fs, "/repo/out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}
