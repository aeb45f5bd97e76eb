// Package settings resolves crossalign's own runtime settings from command
// line flags and CROSSALIGN_* environment variables.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dyluth/crossalign/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CROSSALIGN_ROOT
const EnvPrefix = "CROSSALIGN"

// Setting keys. Each matches a persistent flag name.
const (
	KeyRoot    = "root"
	KeyConfig  = "config"
	KeyGitRoot = "git-root"
	KeyShell   = "shell"
	KeyVerbose = "verbose"
	KeyNoColor = "no-color"
)

// Settings holds the resolved runtime settings
type Settings struct {
	// Root is the absolute working root
	Root string

	// Config is the alignment config path, relative to Root unless absolute
	Config string

	// GitRoot replaces Root with the enclosing Git toplevel
	GitRoot bool

	// Shell overrides the interpreter used for the build script
	Shell string

	Verbose bool
	NoColor bool
}

// Load resolves settings. Precedence (highest to lowest):
// 1. Flags set on the command line
// 2. Environment variables (CROSSALIGN_ROOT, CROSSALIGN_GIT_ROOT, ...)
// 3. Built-in defaults
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	s := &Settings{
		Root:    v.GetString(KeyRoot),
		Config:  v.GetString(KeyConfig),
		GitRoot: v.GetBool(KeyGitRoot),
		Shell:   v.GetString(KeyShell),
		Verbose: v.GetBool(KeyVerbose),
		NoColor: v.GetBool(KeyNoColor),
	}

	if s.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		s.Root = wd
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", s.Root, err)
	}
	s.Root = root

	if s.Config == "" {
		s.Config = config.FileName
	}

	return s, nil
}

// RegisterFlags adds the persistent flags Load reads
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(KeyRoot, "", "Working root containing the alignment inputs (default: current directory)")
	flags.String(KeyConfig, config.FileName, "Alignment config file, relative to the working root")
	flags.Bool(KeyGitRoot, false, "Use the enclosing Git repository root as the working root")
	flags.String(KeyShell, "", "Interpreter for the build script (default: powershell on Windows, pwsh elsewhere)")
	flags.BoolP(KeyVerbose, "v", false, "Print each precondition as it is checked")
	flags.Bool(KeyNoColor, false, "Disable colored output")
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRoot, "")
	v.SetDefault(KeyConfig, config.FileName)
	v.SetDefault(KeyGitRoot, false)
	v.SetDefault(KeyShell, "")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyNoColor, false)
}
