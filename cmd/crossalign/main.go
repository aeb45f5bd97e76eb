package main

import (
	"os"

	"github.com/dyluth/crossalign/cmd/crossalign/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Halt summaries are printed by the printer package; the exit status is
	// the build script's own status on the success path
	os.Exit(commands.Execute())
}
