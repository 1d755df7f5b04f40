package main

import (
	"github.com/spf13/cobra"
	"github.com/username/attendance-sheets/internal/calendar"
	"github.com/username/attendance-sheets/pkg/dateutil"
)

func holidaysCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Show holidays and working hours of a month",
		Long:  "Fetch the holiday feed and print the per-day classification and total working hours of the target month without rendering anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := targetDate(dateFlag)
			if err != nil {
				return err
			}

			provider, err := buildProvider(cfg, date.Year())
			if err != nil {
				return err
			}

			holidays, err := provider.FetchHolidays(cmd.Context())
			if err != nil {
				return err
			}

			byDay := calendar.FilterForMonth(holidays, date.Year(), date.Month())
			info := calendar.GetMonthInfo(date.Year(), date.Month(), byDay)
			printMonthInfo(info)

			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Any date in the target month (default: today)")

	return cmd
}

func printMonthInfo(info *calendar.MonthInfo) {
	outPrintf("\n📅 %s %d\n", dateutil.PolishMonth(info.Month), info.Year)
	outPrintln("═══════════════════════════════════════════════════════")
	outPrintln("  Date        | Day | Type     | Hours | Note")
	outPrintln("--------------+-----+----------+-------+-----------------")
	for _, day := range info.Days {
		outPrintf("  %s | %-3s | %-8s | %5d | %s\n",
			day.Date.Format("2006-01-02"),
			dateutil.PolishWeekdayMin(day.Date.Weekday()),
			day.Type,
			day.WorkingHours,
			day.Note)
	}

	outPrintln("═══════════════════════════════════════════════════════")
	outPrintf("  Working days: %d\n", info.WorkDays)
	outPrintf("  Weekend days: %d\n", info.Weekends)
	outPrintf("  Holidays:     %d\n", info.Holidays)
	outPrintf("  Total hours:  %d (%d × %d)\n", info.WorkingHours, info.WorkDays, calendar.WorkdayHours)
}
