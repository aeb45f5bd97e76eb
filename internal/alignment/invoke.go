package alignment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// BuildScriptPath is the external build script, relative to the working root
const BuildScriptPath = ".gidas/alignment/build-alignment.ps1"

// ShellStrategy maps an OS family (runtime.GOOS values) to the interpreter
// and arguments used to run the build script.
type ShellStrategy func(goos string) (name string, args []string)

// PowerShell returns the default strategy for running script.
// Windows uses Windows PowerShell, every other platform uses pwsh.
func PowerShell(script string) ShellStrategy {
	return func(goos string) (string, []string) {
		name := "pwsh"
		if goos == "windows" {
			name = "powershell"
		}
		return name, []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-File", script}
	}
}

// WithInterpreter replaces the executable chosen by base, keeping its arguments
func WithInterpreter(base ShellStrategy, name string) ShellStrategy {
	if name == "" {
		return base
	}
	return func(goos string) (string, []string) {
		_, args := base(goos)
		return name, args
	}
}

// Invoker runs an external program to completion.
// The returned code is the program's exit status; err is set only when the
// program could not be run at all.
type Invoker interface {
	Invoke(dir string, name string, args ...string) (code int, err error)
}

// ExecInvoker implements Invoker using os/exec with inherited standard streams.
// There is no timeout: Invoke blocks until the child exits.
type ExecInvoker struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecInvoker creates an ExecInvoker wired to the process's own streams
func NewExecInvoker() *ExecInvoker {
	return &ExecInvoker{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Invoke runs name with args in dir and forwards its exit status.
// A child that ended without an exit status (e.g. killed by a signal) maps to ExitHalted.
func (e *ExecInvoker) Invoke(dir string, name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return ExitHalted, nil
	}

	return -1, fmt.Errorf("failed to start %s: %w", name, err)
}

// Verify ExecInvoker implements Invoker at compile time.
var _ Invoker = (*ExecInvoker)(nil)
