package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/username/attendance-sheets/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	icsDateFormat     = "20060102"
	icsDateTimeFormat = "20060102T150405"
)

var icsTextUnescaper = strings.NewReplacer(`\\`, `\`, `\,`, `,`, `\;`, `;`, `\n`, "\n", `\N`, "\n")

// parseICS turns an iCalendar document into holidays dated in loc.
// Events without a usable DTSTART are skipped.
func parseICS(data []byte, loc *time.Location, logger *zap.Logger) ([]Holiday, error) {
	if !bytes.Contains(data, []byte("BEGIN:VCALENDAR")) {
		return nil, fmt.Errorf("%w: no VCALENDAR component", ErrParse)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	events := cal.Events()
	holidays := make([]Holiday, 0, len(events))
	for _, event := range events {
		summary := ""
		if prop := event.GetProperty(ics.ComponentPropertySummary); prop != nil {
			summary = unescapeText(prop.Value)
		}

		prop := event.GetProperty(ics.ComponentPropertyDtStart)
		if prop == nil {
			logger.Warn("Calendar event without DTSTART, skipping",
				zap.String("summary", summary))
			continue
		}

		date, err := localDate(prop.Value, prop.ICalParameters, loc)
		if err != nil {
			logger.Warn("Failed to parse event start, skipping",
				zap.String("summary", summary),
				zap.String("dtstart", prop.Value),
				zap.Error(err))
			continue
		}

		holidays = append(holidays, Holiday{
			Year:    date.Year(),
			Month:   date.Month(),
			Day:     date.Day(),
			Weekday: dateutil.PolishWeekdayShort(date.Weekday()),
			Summary: summary,
		})
	}

	return holidays, nil
}

// localDate converts a DTSTART value to the wall-clock date in loc.
// UTC and TZID timestamps are converted; all-day and floating values are
// already local dates.
func localDate(value string, params map[string][]string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	isDate := len(value) == len(icsDateFormat)
	for _, v := range params["VALUE"] {
		if strings.EqualFold(v, "DATE") {
			isDate = true
		}
	}

	if isDate {
		t, err := time.ParseInLocation(icsDateFormat, value, loc)
		if err != nil {
			return time.Time{}, err
		}
		return t, nil
	}

	var t time.Time
	var err error
	switch {
	case strings.HasSuffix(value, "Z"):
		t, err = time.Parse(icsDateTimeFormat+"Z", value)
	case len(params["TZID"]) > 0:
		zone, zoneErr := time.LoadLocation(params["TZID"][0])
		if zoneErr != nil {
			zone = loc
		}
		t, err = time.ParseInLocation(icsDateTimeFormat, value, zone)
	default:
		t, err = time.ParseInLocation(icsDateTimeFormat, value, loc)
	}
	if err != nil {
		return time.Time{}, err
	}

	return dateutil.StartOfDay(t.In(loc)), nil
}

func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return icsTextUnescaper.Replace(s)
}
