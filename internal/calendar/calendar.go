package calendar

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork is returned when the holiday feed cannot be retrieved
	ErrNetwork = errors.New("holiday feed unreachable")
	// ErrParse is returned when the feed body is not a usable iCalendar document
	ErrParse = errors.New("holiday feed malformed")
)

// WorkdayHours is the number of hours expected on every working day
const WorkdayHours = 8

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// Color is the row highlight used for a day in the sheet
type Color string

const (
	ColorRest      Color = "Red"   // Sundays and holidays
	ColorSecondary Color = "Green" // Saturdays
	ColorDefault   Color = "White"
)

// Holiday is a single public holiday taken from a calendar source
type Holiday struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday string // Polish weekday abbreviation
	Summary string
}

// Date returns the holiday as a date in loc
func (h Holiday) Date(loc *time.Location) time.Time {
	return time.Date(h.Year, h.Month, h.Day, 0, 0, 0, 0, loc)
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	WorkingHours int
	IsWorkday    bool
	Color        Color
	Note         string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year         int
	Month        time.Month
	WorkingHours int // Total working hours in the month
	WorkDays     int
	Weekends     int
	Holidays     int
	Days         []DayInfo
}

// HolidayProvider is a source of public holidays
type HolidayProvider interface {
	// FetchHolidays returns every holiday the source knows about, already
	// converted to local dates and stripped of excluded observances
	FetchHolidays(ctx context.Context) ([]Holiday, error)
}
