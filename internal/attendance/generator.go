// Package attendance runs the monthly attendance sheet generation for a roster.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/username/attendance-sheets/internal/calendar"
	"github.com/username/attendance-sheets/internal/document"
	"github.com/username/attendance-sheets/internal/roster"
	"go.uber.org/zap"
)

// ErrFilesystem is returned when an output directory or file cannot be written
var ErrFilesystem = errors.New("filesystem error")

// Renderer produces a document source for one employee
type Renderer interface {
	Render(employee roster.Employee, meta document.Metadata) (string, error)
}

// Compiler turns a document source into a PDF
type Compiler interface {
	Compile(ctx context.Context, sourcePath, outputDir string) (string, error)
}

// Printer sends a file to the printer
type Printer interface {
	Print(ctx context.Context, path string) error
}

// Generator produces attendance sheets for every employee of the roster
type Generator struct {
	provider  calendar.HolidayProvider
	employees []roster.Employee
	renderer  Renderer
	compiler  Compiler
	printer   Printer
	outputDir string
	logger    *zap.Logger
}

// NewGenerator creates a new Generator. printer may be nil when printing is
// never requested.
func NewGenerator(
	provider calendar.HolidayProvider,
	employees []roster.Employee,
	renderer Renderer,
	compiler Compiler,
	printer Printer,
	outputDir string,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		provider:  provider,
		employees: employees,
		renderer:  renderer,
		compiler:  compiler,
		printer:   printer,
		outputDir: outputDir,
		logger:    logger,
	}
}

// ManifestPath returns where the run manifest is written
func (g *Generator) ManifestPath() string {
	return filepath.Join(g.outputDir, ManifestFile)
}

// Run generates sheets for the month containing date. Employees are processed
// in roster order and the first failure stops the run; files already produced
// are kept. The returned result is never nil.
func (g *Generator) Run(ctx context.Context, date time.Time, printAfter bool) (*RunResult, error) {
	result := &RunResult{
		Year:      date.Year(),
		Month:     date.Month(),
		Print:     printAfter,
		StartedAt: time.Now().Format(time.RFC3339),
		Employees: make([]EmployeeResult, 0, len(g.employees)),
	}

	g.logger.Info("Starting attendance sheet generation",
		zap.Int("year", result.Year),
		zap.String("month", result.Month.String()),
		zap.Int("employees", len(g.employees)),
		zap.Bool("print", printAfter))

	runErr := g.run(ctx, date, printAfter, result)
	result.FinishedAt = time.Now().Format(time.RFC3339)

	if err := SaveManifest(g.ManifestPath(), result); err != nil {
		if runErr == nil {
			return result, err
		}
		g.logger.Warn("Failed to write run manifest", zap.Error(err))
	}

	if runErr != nil {
		g.logger.Error("Attendance sheet generation failed",
			zap.Int("completed", len(result.Employees)-result.Count(StatusFailed)-result.Count(StatusSkipped)),
			zap.Error(runErr))
		return result, runErr
	}

	g.logger.Info("Attendance sheet generation completed",
		zap.Int("employees", len(result.Employees)),
		zap.Int("total_hours", result.TotalHours))

	return result, nil
}

func (g *Generator) run(ctx context.Context, date time.Time, printAfter bool, result *RunResult) error {
	// 1. Holidays of the target month
	holidays, err := g.provider.FetchHolidays(ctx)
	if err != nil {
		g.markSkipped(result, 0)
		return fmt.Errorf("failed to fetch holidays: %w", err)
	}
	byDay := calendar.FilterForMonth(holidays, date.Year(), date.Month())

	// 2. Shared month metadata, computed once
	meta := document.BuildMetadata(date, byDay)
	result.MonthName = meta.MonthName
	result.TotalHours = meta.TotalHours
	result.Holidays = describeHolidays(byDay, meta)

	g.logger.Info("Month metadata computed",
		zap.String("month", meta.MonthName),
		zap.Int("total_hours", meta.TotalHours),
		zap.Int("holidays", len(byDay)))

	// 3. Employees, sequentially
	for i, employee := range g.employees {
		if err := ctx.Err(); err != nil {
			g.markSkipped(result, i)
			return err
		}

		er, err := g.processEmployee(ctx, employee, meta, printAfter)
		result.Employees = append(result.Employees, er)
		if err != nil {
			g.markSkipped(result, i+1)
			return fmt.Errorf("employee %s: %w", employee.FullName(), err)
		}
	}

	return nil
}

// processEmployee renders, compiles and optionally prints one sheet
func (g *Generator) processEmployee(ctx context.Context, employee roster.Employee, meta document.Metadata, printAfter bool) (EmployeeResult, error) {
	name := employee.FullName()
	dir := filepath.Join(g.outputDir, name)

	er := EmployeeResult{
		Name:      name,
		Directory: dir,
		Hours:     meta.HoursFor(employee),
		HideHours: employee.HideHours,
		Status:    StatusFailed,
	}
	fail := func(err error) (EmployeeResult, error) {
		er.Error = err.Error()
		return er, err
	}

	g.logger.Info("Processing employee", zap.String("employee", name))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(fmt.Errorf("%w: failed to create directory: %w", ErrFilesystem, err))
	}

	content, err := g.renderer.Render(employee, meta)
	if err != nil {
		return fail(fmt.Errorf("failed to render document: %w", err))
	}

	source := filepath.Join(dir, name+".tex")
	if err := os.WriteFile(source, []byte(content), 0o644); err != nil {
		return fail(fmt.Errorf("%w: failed to write document source: %w", ErrFilesystem, err))
	}
	er.Source = source

	pdf, err := g.compiler.Compile(ctx, source, dir)
	if err != nil {
		return fail(fmt.Errorf("failed to compile document: %w", err))
	}
	er.PDF = pdf
	if info, err := os.Stat(pdf); err == nil {
		er.PDFSize = info.Size()
	}
	er.Status = StatusGenerated

	g.logger.Info("Attendance sheet generated",
		zap.String("employee", name),
		zap.String("pdf", pdf),
		zap.Float64("hours", er.Hours))

	if printAfter {
		if g.printer == nil {
			er.Status = StatusFailed
			return fail(errors.New("printing requested but no printer configured"))
		}
		if err := g.printer.Print(ctx, pdf); err != nil {
			er.Status = StatusFailed
			return fail(fmt.Errorf("failed to print document: %w", err))
		}
		er.Status = StatusPrinted
	}

	return er, nil
}

// markSkipped records employees from index from onwards as not processed
func (g *Generator) markSkipped(result *RunResult, from int) {
	for _, employee := range g.employees[from:] {
		name := employee.FullName()
		result.Employees = append(result.Employees, EmployeeResult{
			Name:      name,
			Directory: filepath.Join(g.outputDir, name),
			HideHours: employee.HideHours,
			Status:    StatusSkipped,
		})
	}
}

func describeHolidays(byDay map[int]calendar.Holiday, meta document.Metadata) []string {
	descriptions := make([]string, 0, len(byDay))
	for day := 1; day <= 31; day++ {
		h, ok := byDay[day]
		if !ok {
			continue
		}
		date := time.Date(meta.Year, meta.Month, day, 0, 0, 0, 0, time.UTC)
		descriptions = append(descriptions, date.Format("2006-01-02")+" "+h.Summary)
	}
	return descriptions
}
