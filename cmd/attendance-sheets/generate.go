package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/username/attendance-sheets/internal/attendance"
	"github.com/username/attendance-sheets/internal/calendar"
	"github.com/username/attendance-sheets/internal/config"
	"github.com/username/attendance-sheets/internal/document"
	"github.com/username/attendance-sheets/internal/output"
	"github.com/username/attendance-sheets/internal/report"
	"github.com/username/attendance-sheets/internal/roster"
	"github.com/username/attendance-sheets/pkg/dateutil"
	"go.uber.org/zap"
)

func generateCmd() *cobra.Command {
	var dateFlag string
	var printFlag bool
	var reportPath string
	var rosterPath string

	cmd := &cobra.Command{
		Use:           "attendance-sheets",
		Short:         "Monthly attendance sheet generator",
		Long:          "Generate monthly attendance sheets (listy obecności) for every employee of the roster, compile them to PDF and optionally print them",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := targetDate(dateFlag)
			if err != nil {
				return err
			}

			if rosterPath != "" {
				cfg.Roster = rosterPath
			}
			employees, err := roster.Load(cfg.Roster)
			if err != nil {
				return err
			}

			provider, err := buildProvider(cfg, date.Year())
			if err != nil {
				return err
			}

			generator := attendance.NewGenerator(
				provider,
				employees,
				document.NewRenderer(cfg.Template, cfg.DefaultTitle, logger),
				output.NewCompiler(output.CompilerOptions{
					Command: cfg.Output.Compiler,
					Args:    cfg.Output.CompilerArgs,
					Passes:  cfg.Output.Passes,
					Timeout: cfg.Output.GetCommandTimeout(),
				}, logger),
				output.NewPrinter(output.PrinterOptions{
					Command: cfg.Output.PrintCommand,
					Options: cfg.Output.PrintOptions,
					Timeout: cfg.Output.GetCommandTimeout(),
				}, logger),
				cfg.OutputDir,
				logger,
			)

			outPrintf("⏳ Generating attendance sheets for %s %d (%d employee(s))\n",
				dateutil.PolishMonth(date.Month()), date.Year(), len(employees))

			result, runErr := generator.Run(cmd.Context(), date, printFlag)
			printRunSummary(result, generator.ManifestPath())

			if reportPath != "" {
				if err := report.WriteRunReport(reportPath, result); err != nil {
					logger.Error("Failed to write report", zap.String("path", reportPath), zap.Error(err))
					if runErr == nil {
						return err
					}
				} else {
					outPrintf("📊 Report written to %s\n", reportPath)
				}
			}

			return runErr
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Any date in the target month (default: today)")
	cmd.Flags().BoolVarP(&printFlag, "print", "p", false, "Print every sheet after generating it")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write an XLSX run report to this file")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster file (overrides config)")

	return cmd
}

// targetDate parses the --date flag, defaulting to today in the holiday
// timezone, and returns the first day of that month
func targetDate(value string) (time.Time, error) {
	if value == "" {
		loc, err := cfg.Holidays.Location()
		if err != nil {
			return time.Time{}, err
		}
		return dateutil.StartOfMonth(dateutil.Today(loc)), nil
	}

	date, err := dateutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return dateutil.StartOfMonth(date), nil
}

// buildProvider wires the holiday feed and the optional fallback around it
func buildProvider(cfg *config.Config, year int) (calendar.HolidayProvider, error) {
	loc, err := cfg.Holidays.Location()
	if err != nil {
		return nil, err
	}

	feed := calendar.NewICSFeed(calendar.ICSFeedOptions{
		URL:        cfg.Holidays.URL,
		Location:   loc,
		Exclude:    cfg.Holidays.Exclude,
		Timeout:    cfg.Holidays.GetTimeout(),
		Attempts:   cfg.Holidays.RetryAttempts,
		RetryDelay: cfg.Holidays.GetRetryDelay(),
	}, logger)

	switch cfg.Holidays.Fallback {
	case config.FallbackBuiltin:
		logger.Info("Using holiday feed with builtin fallback")
		builtin := calendar.NewBuiltinCalendar(year-1, year+1, cfg.Holidays.Exclude, logger)
		return calendar.NewCompositeProvider(feed, builtin, logger), nil

	case config.FallbackFile:
		logger.Info("Using holiday feed with file fallback",
			zap.String("file", cfg.Holidays.FallbackFile))
		file := calendar.NewFileCalendar(cfg.Holidays.FallbackFile, loc, cfg.Holidays.Exclude, logger)
		return calendar.NewCompositeProvider(feed, file, logger), nil

	default:
		return feed, nil
	}
}

func printRunSummary(result *attendance.RunResult, manifestPath string) {
	if result == nil {
		return
	}

	outPrintf("\n📊 %s %d: %d working hours (full-time)\n", result.MonthName, result.Year, result.TotalHours)
	outPrintln("═══════════════════════════════════════════════════════")
	for _, e := range result.Employees {
		hours := fmt.Sprintf("%6.2fh", e.Hours)
		if e.HideHours || e.Status == attendance.StatusSkipped {
			hours = "      -"
		}
		size := ""
		if e.PDFSize > 0 {
			size = humanize.Bytes(uint64(e.PDFSize))
		}
		outPrintf("  %s %-30s %s  %-9s %s\n", statusIcon(e.Status), e.Name, hours, e.Status, size)
		if e.Error != "" {
			outPrintf("      %s\n", e.Error)
		}
	}

	done := result.Count(attendance.StatusGenerated) + result.Count(attendance.StatusPrinted)
	outPrintf("\n%d/%d sheet(s) generated, manifest: %s\n", done, len(result.Employees), filepath.Clean(manifestPath))
}

func statusIcon(status string) string {
	switch status {
	case attendance.StatusGenerated:
		return "✅"
	case attendance.StatusPrinted:
		return "🖨"
	case attendance.StatusFailed:
		return "❌"
	default:
		return "⏭"
	}
}
