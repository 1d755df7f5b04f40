// Package output turns rendered document sources into PDFs and sends them
// to the printer through external commands.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCompiler = "pdflatex"
	defaultPasses   = 2
)

// CompilerOptions configures a Compiler
type CompilerOptions struct {
	Command string
	Args    []string // Placed before -output-directory and the source path
	Passes  int
	Timeout time.Duration // Per pass, 0 disables the limit
}

// Compiler runs a LaTeX compiler over document sources
type Compiler struct {
	command string
	args    []string
	passes  int
	timeout time.Duration
	logger  *zap.Logger
}

// NewCompiler creates a new Compiler
func NewCompiler(opts CompilerOptions, logger *zap.Logger) *Compiler {
	command := opts.Command
	if command == "" {
		command = defaultCompiler
	}
	passes := opts.Passes
	if passes < 1 {
		passes = defaultPasses
	}

	return &Compiler{
		command: command,
		args:    opts.Args,
		passes:  passes,
		timeout: opts.Timeout,
		logger:  logger,
	}
}

// Compile runs every pass against sourcePath, writing artifacts into outputDir,
// and returns the path of the produced PDF. Intermediate files are left in place.
func (c *Compiler) Compile(ctx context.Context, sourcePath, outputDir string) (string, error) {
	source, err := filepath.Abs(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source path: %w", err)
	}
	dir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	pdfPath := filepath.Join(dir, base+".pdf")

	args := make([]string, 0, len(c.args)+2)
	args = append(args, c.args...)
	args = append(args, "-output-directory="+dir, source)

	for pass := 1; pass <= c.passes; pass++ {
		start := time.Now()
		out, err := c.run(ctx, dir, args)
		if err != nil {
			return "", &CompilationError{
				Source: sourcePath,
				Pass:   pass,
				Output: string(out),
				Err:    err,
			}
		}

		c.logger.Debug("Compiler pass finished",
			zap.String("source", sourcePath),
			zap.Int("pass", pass),
			zap.Duration("duration", time.Since(start)))
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return "", &CompilationError{
			Source: sourcePath,
			Pass:   c.passes,
			Err:    fmt.Errorf("expected output %s: %w", pdfPath, err),
		}
	}

	return pdfPath, nil
}

func (c *Compiler) run(ctx context.Context, dir string, args []string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.command, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("%s interrupted: %w", c.command, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, fmt.Errorf("%s exited with code %d", c.command, exitErr.ExitCode())
		}
		return out, fmt.Errorf("failed to run %s: %w", c.command, err)
	}
	return out, nil
}
