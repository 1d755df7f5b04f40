package output

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultPrintCommand = "lp"

// DefaultPrintOptions are the spooler options used on POSIX systems
var DefaultPrintOptions = []string{
	"-o", "media=a4",
	"-o", "fit-to-page",
	"-o", "orientation-requested=4",
}

// PrinterOptions configures a Printer
type PrinterOptions struct {
	Command string
	Options []string // Only passed on POSIX systems
	Timeout time.Duration
}

// Printer sends files to the print spooler
type Printer struct {
	command string
	options []string
	timeout time.Duration
	goos    string
	logger  *zap.Logger
}

// NewPrinter creates a new Printer
func NewPrinter(opts PrinterOptions, logger *zap.Logger) *Printer {
	command := opts.Command
	if command == "" {
		command = defaultPrintCommand
	}

	return &Printer{
		command: command,
		options: opts.Options,
		timeout: opts.Timeout,
		goos:    runtime.GOOS,
		logger:  logger,
	}
}

// Args returns the spooler arguments used for path on this platform
func (p *Printer) Args(path string) []string {
	var args []string
	if isPOSIX(p.goos) {
		args = append(args, p.options...)
	}
	return append(args, path)
}

// Print sends path to the spooler
func (p *Printer) Print(ctx context.Context, path string) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := p.Args(path)
	cmd := exec.CommandContext(ctx, p.command, args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if ctx.Err() == nil && errors.As(err, &exitErr) {
			err = fmt.Errorf("%s exited with code %d", p.command, exitErr.ExitCode())
		}
		return &PrintError{
			File:   path,
			Output: strings.TrimSpace(string(out)),
			Err:    err,
		}
	}

	p.logger.Info("Document sent to printer",
		zap.String("file", path),
		zap.String("spooler", strings.TrimSpace(string(out))))

	return nil
}

func isPOSIX(goos string) bool {
	switch goos {
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly":
		return true
	default:
		return false
	}
}
