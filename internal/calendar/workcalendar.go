package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/attendance-sheets/pkg/dateutil"
)

// ClassifyDay decides whether date is a working day and how its row is
// highlighted. holiday is nil when no holiday falls on date.
func ClassifyDay(date time.Time, holiday *Holiday) DayInfo {
	weekday := date.Weekday()

	info := DayInfo{
		Date:  date,
		Type:  DayTypeWorkday,
		Color: ColorDefault,
	}

	switch {
	case holiday != nil:
		info.Type = DayTypeHoliday
		info.Note = holiday.Summary
	case dateutil.IsWeekend(date):
		info.Type = DayTypeWeekend
	}

	switch {
	case weekday == time.Sunday || holiday != nil:
		info.Color = ColorRest
	case weekday == time.Saturday:
		info.Color = ColorSecondary
	}

	if info.Type == DayTypeWorkday {
		info.IsWorkday = true
		info.WorkingHours = WorkdayHours
	}

	return info
}

// GetMonthInfo classifies every day of the month
func GetMonthInfo(year int, month time.Month, holidaysByDay map[int]Holiday) *MonthInfo {
	daysInMonth := dateutil.DaysInMonth(year, month)

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		var holiday *Holiday
		if h, ok := holidaysByDay[day]; ok {
			holiday = &h
		}

		info := ClassifyDay(date, holiday)
		switch info.Type {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}
		monthInfo.WorkingHours += info.WorkingHours
		monthInfo.Days = append(monthInfo.Days, info)
	}

	return monthInfo
}

// ComputeTotalHours returns the expected full-time hours for the month
func ComputeTotalHours(year int, month time.Month, holidaysByDay map[int]Holiday) int {
	return GetMonthInfo(year, month, holidaysByDay).WorkingHours
}

// RenderDayRows renders one LaTeX table row per day of the month. The last
// four cells stay empty for arrival, departure and signatures.
func RenderDayRows(year int, month time.Month, holidaysByDay map[int]Holiday) string {
	monthInfo := GetMonthInfo(year, month, holidaysByDay)

	var b strings.Builder
	for _, day := range monthInfo.Days {
		fmt.Fprintf(&b, "\\rowcolor{%s} \\hline %d & %s & & & & \\\\\n",
			day.Color,
			day.Date.Day(),
			dateutil.PolishWeekdayMin(day.Date.Weekday()))
	}

	return b.String()
}
