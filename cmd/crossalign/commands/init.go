package commands

import (
	"fmt"

	"github.com/dyluth/crossalign/internal/alignment"
	"github.com/dyluth/crossalign/internal/printer"
	"github.com/dyluth/crossalign/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var forceInit bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter alignment config",
		Long: `Initialize the working root with a starter alignment configuration.

Creates:
  • gidas-alignment.config.json - self and peer descriptor paths
  • .gidas/alignment/ - default report directory

Use --force to replace an existing gidas-alignment.config.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, forceInit)
		},
	}

	initCmd.Flags().BoolVar(&forceInit, "force", false, "Force reinitialization (replaces the existing gidas-alignment.config.json)")

	return initCmd
}

func runInit(cmd *cobra.Command, force bool) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()

	if !force {
		if err := scaffold.CheckExisting(fs, s.Root); err != nil {
			return &ExitError{
				Code: alignment.ExitHalted,
				Err:  printer.Error("Already initialized", err.Error(), nil),
			}
		}
	}

	if err := scaffold.Initialize(fs, s.Root, force); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess()

	return nil
}
