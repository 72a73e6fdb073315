// Package execrun runs external commands for the pipeline. The real and
// dry runners share one announcement path, so a dry run prints exactly the
// commands a real run would execute.
package execrun

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/forPelevin/vertcut/internal/ports"
)

type logFunc func(format string, args ...any)

func announce(logf logFunc, argv []string) {
	logf("Command:")
	logf("%s", shellquote.Join(argv...))
}

// Exec announces and executes commands.
type Exec struct {
	logf logFunc
}

func New(logf logFunc) *Exec {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Exec{logf: logf}
}

func (e *Exec) Run(ctx context.Context, argv []string) error {
	announce(e.logf, argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return wrapExit(argv[0], cmd.Run())
}

func (e *Exec) Capture(ctx context.Context, argv []string) (string, error) {
	announce(e.logf, argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	return out.String(), wrapExit(argv[0], err)
}

func wrapExit(name string, err error) error {
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		return &ports.ExitError{Code: xe.ExitCode(), Msg: name + ": " + xe.Error()}
	}
	return err
}

// Dry announces commands without executing anything.
type Dry struct {
	logf logFunc
}

func NewDry(logf logFunc) *Dry {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Dry{logf: logf}
}

func (d *Dry) Run(_ context.Context, argv []string) error {
	announce(d.logf, argv)
	return nil
}

func (d *Dry) Capture(_ context.Context, argv []string) (string, error) {
	announce(d.logf, argv)
	return "", nil
}
