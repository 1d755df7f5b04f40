package calendar

import (
	"context"
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/username/attendance-sheets/pkg/dateutil"
	"go.uber.org/zap"
)

// Polish statutory days off, named the way the public feed names them
var (
	plNewYear = &cal.Holiday{
		Name:  "Nowy Rok",
		Type:  cal.ObservancePublic,
		Month: time.January,
		Day:   1,
		Func:  cal.CalcDayOfMonth,
	}
	plEpiphany = &cal.Holiday{
		Name:      "Święto Trzech Króli",
		Type:      cal.ObservancePublic,
		Month:     time.January,
		Day:       6,
		StartYear: 2011,
		Func:      cal.CalcDayOfMonth,
	}
	plEaster = &cal.Holiday{
		Name:   "Wielkanoc",
		Type:   cal.ObservancePublic,
		Offset: 0,
		Func:   cal.CalcEasterOffset,
	}
	plEasterMonday = &cal.Holiday{
		Name:   "Poniedziałek Wielkanocny",
		Type:   cal.ObservancePublic,
		Offset: 1,
		Func:   cal.CalcEasterOffset,
	}
	plLabourDay = &cal.Holiday{
		Name:  "Święto Pracy",
		Type:  cal.ObservancePublic,
		Month: time.May,
		Day:   1,
		Func:  cal.CalcDayOfMonth,
	}
	plConstitutionDay = &cal.Holiday{
		Name:  "Święto Konstytucji 3 Maja",
		Type:  cal.ObservancePublic,
		Month: time.May,
		Day:   3,
		Func:  cal.CalcDayOfMonth,
	}
	plPentecost = &cal.Holiday{
		Name:   "Zielone Świątki",
		Type:   cal.ObservancePublic,
		Offset: 49,
		Func:   cal.CalcEasterOffset,
	}
	plCorpusChristi = &cal.Holiday{
		Name:   "Boże Ciało",
		Type:   cal.ObservancePublic,
		Offset: 60,
		Func:   cal.CalcEasterOffset,
	}
	plAssumption = &cal.Holiday{
		Name:  "Wniebowzięcie Najświętszej Maryi Panny",
		Type:  cal.ObservancePublic,
		Month: time.August,
		Day:   15,
		Func:  cal.CalcDayOfMonth,
	}
	plAllSaints = &cal.Holiday{
		Name:  "Wszystkich Świętych",
		Type:  cal.ObservancePublic,
		Month: time.November,
		Day:   1,
		Func:  cal.CalcDayOfMonth,
	}
	plIndependenceDay = &cal.Holiday{
		Name:  "Narodowe Święto Niepodległości",
		Type:  cal.ObservancePublic,
		Month: time.November,
		Day:   11,
		Func:  cal.CalcDayOfMonth,
	}
	plChristmasEve = &cal.Holiday{
		Name:      "Wigilia Bożego Narodzenia",
		Type:      cal.ObservancePublic,
		Month:     time.December,
		Day:       24,
		StartYear: 2025,
		Func:      cal.CalcDayOfMonth,
	}
	plChristmas = &cal.Holiday{
		Name:  "Boże Narodzenie (pierwszy dzień)",
		Type:  cal.ObservancePublic,
		Month: time.December,
		Day:   25,
		Func:  cal.CalcDayOfMonth,
	}
	plChristmasSecondDay = &cal.Holiday{
		Name:  "Boże Narodzenie (drugi dzień)",
		Type:  cal.ObservancePublic,
		Month: time.December,
		Day:   26,
		Func:  cal.CalcDayOfMonth,
	}

	polishHolidays = []*cal.Holiday{
		plNewYear,
		plEpiphany,
		plEaster,
		plEasterMonday,
		plLabourDay,
		plConstitutionDay,
		plPentecost,
		plCorpusChristi,
		plAssumption,
		plAllSaints,
		plIndependenceDay,
		plChristmasEve,
		plChristmas,
		plChristmasSecondDay,
	}
)

// BuiltinCalendar implements HolidayProvider with statutory Polish holidays
// computed locally, for use when the feed is unavailable
type BuiltinCalendar struct {
	fromYear   int
	toYear     int
	exclusions Exclusions
	logger     *zap.Logger
}

// NewBuiltinCalendar creates a provider covering fromYear..toYear inclusive
func NewBuiltinCalendar(fromYear, toYear int, exclude []string, logger *zap.Logger) *BuiltinCalendar {
	if toYear < fromYear {
		fromYear, toYear = toYear, fromYear
	}
	return &BuiltinCalendar{
		fromYear:   fromYear,
		toYear:     toYear,
		exclusions: NewExclusions(exclude),
		logger:     logger,
	}
}

// FetchHolidays computes holidays for the configured years, sorted by date
func (b *BuiltinCalendar) FetchHolidays(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	for year := b.fromYear; year <= b.toYear; year++ {
		for _, h := range polishHolidays {
			actual, _ := h.Calc(year)
			if actual.IsZero() {
				continue
			}
			holidays = append(holidays, Holiday{
				Year:    actual.Year(),
				Month:   actual.Month(),
				Day:     actual.Day(),
				Weekday: dateutil.PolishWeekdayShort(actual.Weekday()),
				Summary: h.Name,
			})
		}
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date(time.UTC).Before(holidays[j].Date(time.UTC))
	})

	kept := b.exclusions.Filter(holidays)

	b.logger.Info("Builtin holidays computed",
		zap.Int("from_year", b.fromYear),
		zap.Int("to_year", b.toYear),
		zap.Int("holidays", len(kept)))

	return kept, nil
}
