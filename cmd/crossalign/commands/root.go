package commands

import (
	"errors"
	"fmt"

	"github.com/dyluth/crossalign/internal/alignment"
	"github.com/dyluth/crossalign/internal/settings"
	"github.com/spf13/cobra"
)

// ExitUnrecovered is the exit status for malformed config, spawn failures and
// other errors that are not precondition failures
const ExitUnrecovered = 2

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newInvoker builds the invoker that runs the build script; tests replace it
var newInvoker = func() alignment.Invoker {
	return alignment.NewExecInvoker()
}

// ExitError carries a non-zero exit status whose details were already printed.
// Err holds the printed error, when there is one.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewRootCommand builds the crossalign command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crossalign",
		Short: "Validate cross-spec alignment inputs and run the alignment build",
		Long: `crossalign checks that every input of the cross-spec alignment build is in
place before running it:

  • gidas-alignment.config.json in the working root
  • AGENTS.md in the working root
  • this spec's index, OpenAPI and AGENTS descriptors
  • each peer's index and OpenAPI snapshots

Every missing input is listed in one report at
<outputDir>/alignment-report.md and crossalign exits with status 1.
When nothing is missing, .gidas/alignment/build-alignment.ps1 runs through
PowerShell and crossalign exits with the script's own status.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:    cobra.NoArgs,
		RunE:    runAlign,

		// Enable strict flag parsing - unknown flags will cause an error
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}

	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	settings.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit status.
// This is called by main.main().
func Execute() int {
	return run(NewRootCommand())
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// run executes cmd and maps its outcome to an exit status
func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Unrecovered: surface the raw diagnostic
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return ExitUnrecovered
}
