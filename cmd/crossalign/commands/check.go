package commands

import (
	"github.com/dyluth/crossalign/internal/printer"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check alignment inputs without running the build script",
		Long: `Check runs every precondition crossalign runs before a build, writing the
same failure report when something is missing, but never starts the build
script. Exits 0 when the build could run.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := newAligner(s).Check()
	if err != nil {
		return err
	}
	if result.Halted {
		return reportHalt(s, result)
	}

	printer.Success("All alignment inputs present\n")
	return nil
}
