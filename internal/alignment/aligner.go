// Package alignment validates the inputs of a cross-spec alignment build,
// reports every missing input in one Markdown report, and otherwise runs the
// external build script, forwarding its exit status.
package alignment

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/dyluth/crossalign/internal/config"
	"github.com/spf13/afero"
)

// ExitHalted is the exit status for every precondition failure
const ExitHalted = 1

// Result describes how a run ended
type Result struct {
	// ExitCode is the status the process should exit with
	ExitCode int

	// Halted is true when a precondition failed and a report was written
	Halted bool

	Report     *FailureReport
	ReportPath string
}

// Aligner validates alignment inputs under Root and runs the build script.
// Zero-valued fields fall back to production defaults.
type Aligner struct {
	Root string

	// ConfigFile is the config path relative to Root (default config.FileName)
	ConfigFile string

	// RerunHint is the command named in the report's remediation line
	RerunHint string

	Fs      afero.Fs
	Shell   ShellStrategy
	GOOS    string
	Invoker Invoker

	// OnCheck is called once per path examined during validation
	OnCheck func(label, path string, ok bool)

	// OnInvoke is called just before the build script starts
	OnInvoke func(name string, args []string)
}

// New creates an Aligner for root with production defaults
func New(root string) *Aligner {
	return &Aligner{
		Root:       root,
		ConfigFile: config.FileName,
		RerunHint:  DefaultRerunHint,
		Fs:         afero.NewOsFs(),
		Shell:      PowerShell(filepath.Join(root, BuildScriptPath)),
		GOOS:       runtime.GOOS,
		Invoker:    NewExecInvoker(),
	}
}

// Check runs every precondition without invoking the build script.
// A nil error with Halted=false means the build may run.
// Errors are returned only for malformed config or filesystem failures.
func (a *Aligner) Check() (*Result, error) {
	configName := a.configFile()
	configPath := config.Resolve(a.Root, configName)

	if !pathExists(a.fs(), configPath) {
		return a.halt(filepath.Join(a.Root, config.DefaultOutputDir), TitlePreconditions, []string{
			fmt.Sprintf("Missing required alignment config: %s", configName),
		})
	}

	data, err := afero.ReadFile(a.fs(), configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := config.Parse(data, filepath.Ext(configPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configName, err)
	}

	outDir := cfg.OutputDir(a.Root)

	checker := &Checker{
		Fs:         a.fs(),
		Root:       a.Root,
		ConfigName: configName,
		OnCheck:    a.OnCheck,
	}
	if missing := checker.Missing(cfg); len(missing) > 0 {
		return a.halt(outDir, TitlePeerSnapshots, missing)
	}

	scriptPath := filepath.Join(a.Root, BuildScriptPath)
	scriptOK := pathExists(a.fs(), scriptPath)
	if a.OnCheck != nil {
		a.OnCheck("build script", BuildScriptPath, scriptOK)
	}
	if !scriptOK {
		return a.halt(outDir, TitleBuildScript, []string{
			fmt.Sprintf("Missing required script: %s", BuildScriptPath),
		})
	}

	return &Result{ExitCode: 0}, nil
}

// Run checks every precondition and, when all pass, runs the build script
// in Root with inherited standard streams. The script's own exit status
// becomes the result's ExitCode.
func (a *Aligner) Run() (*Result, error) {
	result, err := a.Check()
	if err != nil || result.Halted {
		return result, err
	}

	shell := a.Shell
	if shell == nil {
		shell = PowerShell(filepath.Join(a.Root, BuildScriptPath))
	}
	goos := a.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	invoker := a.Invoker
	if invoker == nil {
		invoker = NewExecInvoker()
	}

	name, args := shell(goos)
	if a.OnInvoke != nil {
		a.OnInvoke(name, args)
	}
	code, err := invoker.Invoke(a.Root, name, args...)
	if err != nil {
		return nil, err
	}

	return &Result{ExitCode: code}, nil
}

// halt writes a fresh failure report and returns the halted result
func (a *Aligner) halt(outDir, title string, items []string) (*Result, error) {
	report := &FailureReport{
		Title:     title,
		Items:     items,
		RerunHint: a.RerunHint,
	}

	path, err := report.Write(a.fs(), outDir)
	if err != nil {
		return nil, err
	}

	return &Result{
		ExitCode:   ExitHalted,
		Halted:     true,
		Report:     report,
		ReportPath: path,
	}, nil
}

func (a *Aligner) configFile() string {
	if a.ConfigFile == "" {
		return config.FileName
	}
	return a.ConfigFile
}

func (a *Aligner) fs() afero.Fs {
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}
	return a.Fs
}
