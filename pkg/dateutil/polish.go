package dateutil

import "time"

// Nominative month names, as printed in a sheet header ("luty 2024").
var polishMonths = [...]string{
	"styczeń",
	"luty",
	"marzec",
	"kwiecień",
	"maj",
	"czerwiec",
	"lipiec",
	"sierpień",
	"wrzesień",
	"październik",
	"listopad",
	"grudzień",
}

// Indexed by time.Weekday (Sunday first).
var (
	polishWeekdaysMin   = [...]string{"Nd", "Pn", "Wt", "Śr", "Cz", "Pt", "So"}
	polishWeekdaysShort = [...]string{"ndz", "pon", "wt", "śr", "czw", "pt", "sob"}
)

// PolishMonth returns the lowercase nominative Polish name of the month
func PolishMonth(month time.Month) string {
	if month < time.January || month > time.December {
		return month.String()
	}
	return polishMonths[month-1]
}

// PolishWeekdayMin returns the two-letter Polish weekday label used in day rows
func PolishWeekdayMin(weekday time.Weekday) string {
	return polishWeekdaysMin[weekday%7]
}

// PolishWeekdayShort returns the three-letter Polish weekday abbreviation
func PolishWeekdayShort(weekday time.Weekday) string {
	return polishWeekdaysShort[weekday%7]
}
