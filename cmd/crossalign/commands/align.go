package commands

import (
	"path/filepath"
	"strings"

	"github.com/dyluth/crossalign/internal/alignment"
	"github.com/dyluth/crossalign/internal/git"
	"github.com/dyluth/crossalign/internal/printer"
	"github.com/dyluth/crossalign/internal/settings"
	"github.com/spf13/cobra"
)

func runAlign(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := newAligner(s).Run()
	if err != nil {
		return err
	}
	if result.Halted {
		return reportHalt(s, result)
	}
	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}

	return nil
}

// loadSettings resolves flags and environment, applying --no-color and --git-root
func loadSettings(cmd *cobra.Command) (*settings.Settings, error) {
	s, err := settings.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	if s.NoColor {
		printer.DisableColor()
	}

	if s.GitRoot {
		root, err := git.NewChecker().ResolveRoot(s.Root)
		if err != nil {
			return nil, err
		}
		s.Root = root
	}

	return s, nil
}

// newAligner builds an Aligner for the resolved settings
func newAligner(s *settings.Settings) *alignment.Aligner {
	aligner := alignment.New(s.Root)
	aligner.ConfigFile = s.Config
	aligner.Shell = alignment.WithInterpreter(aligner.Shell, s.Shell)
	aligner.Invoker = newInvoker()

	if s.Verbose {
		printer.Info("Working root: %s\n", s.Root)
		printer.Info("Config: %s\n", s.Config)
		aligner.OnCheck = func(label, path string, ok bool) {
			if ok {
				printer.Step("%s: %s\n", label, path)
			} else {
				printer.Warning("%s missing: %s\n", label, path)
			}
		}
		aligner.OnInvoke = func(name string, args []string) {
			printer.Step("Running %s %s\n", name, strings.Join(args, " "))
		}
	}

	return aligner
}

// reportHalt prints the halt summary and returns the halt exit status
func reportHalt(s *settings.Settings, result *alignment.Result) error {
	reportPath := result.ReportPath
	if rel, err := filepath.Rel(s.Root, reportPath); err == nil {
		reportPath = rel
	}

	err := printer.ErrorWithContext(
		result.Report.Title,
		"",
		map[string]string{"Report": reportPath},
		result.Report.Items,
		[]string{"Provide the missing inputs and rerun 'crossalign'"},
	)

	return &ExitError{Code: result.ExitCode, Err: err}
}
