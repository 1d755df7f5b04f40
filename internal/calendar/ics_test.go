package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"

	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func icsDocument(events ...string) []byte {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Test//Holidays//PL",
	}
	for i, e := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:event-"+string(rune('a'+i))+"@test",
		)
		lines = append(lines, strings.Split(e, "\n")...)
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR", "")
	return []byte(strings.Join(lines, "\r\n"))
}

func warsaw(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	return loc
}

func TestParseICS(t *testing.T) {
	loc := warsaw(t)

	tests := []struct {
		name      string
		event     string
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{
			name:      "all-day date",
			event:     "DTSTART;VALUE=DATE:20241225\nSUMMARY:Boże Narodzenie (pierwszy dzień)",
			wantYear:  2024,
			wantMonth: time.December,
			wantDay:   25,
		},
		{
			name:      "bare date without VALUE parameter",
			event:     "DTSTART:20240501\nSUMMARY:Święto Pracy",
			wantYear:  2024,
			wantMonth: time.May,
			wantDay:   1,
		},
		{
			name:      "UTC timestamp crossing midnight in Warsaw",
			event:     "DTSTART:20241231T230000Z\nSUMMARY:Nowy Rok",
			wantYear:  2025,
			wantMonth: time.January,
			wantDay:   1,
		},
		{
			name:      "TZID timestamp converted to Warsaw",
			event:     "DTSTART;TZID=America/New_York:20240630T200000\nSUMMARY:Shifted",
			wantYear:  2024,
			wantMonth: time.July,
			wantDay:   1,
		},
		{
			name:      "floating timestamp kept as local",
			event:     "DTSTART:20240815T000000\nSUMMARY:Wniebowzięcie Najświętszej Maryi Panny",
			wantYear:  2024,
			wantMonth: time.August,
			wantDay:   15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holidays, err := parseICS(icsDocument(tt.event), loc, zaptest.NewLogger(t))
			require.NoError(t, err)
			require.Len(t, holidays, 1)

			h := holidays[0]
			assert.Equal(t, tt.wantYear, h.Year)
			assert.Equal(t, tt.wantMonth, h.Month)
			assert.Equal(t, tt.wantDay, h.Day)
		})
	}
}

func TestParseICS_SetsWeekdayAndSummary(t *testing.T) {
	holidays, err := parseICS(icsDocument("DTSTART;VALUE=DATE:20241111\nSUMMARY:Narodowe Święto Niepodległości"),
		warsaw(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, holidays, 1)

	assert.Equal(t, "Narodowe Święto Niepodległości", holidays[0].Summary)
	assert.Equal(t, "pon", holidays[0].Weekday)
}

func TestParseICS_SkipsUnusableEvents(t *testing.T) {
	data := icsDocument(
		"SUMMARY:No start",
		"DTSTART:not-a-date\nSUMMARY:Broken start",
		"DTSTART;VALUE=DATE:20240101\nSUMMARY:Nowy Rok",
	)

	holidays, err := parseICS(data, warsaw(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Nowy Rok", holidays[0].Summary)
}

func TestParseICS_EmptyCalendar(t *testing.T) {
	holidays, err := parseICS(icsDocument(), warsaw(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestParseICS_NotACalendar(t *testing.T) {
	for _, body := range []string{"", "<html>Service unavailable</html>", "garbage"} {
		_, err := parseICS([]byte(body), warsaw(t), zaptest.NewLogger(t))
		if !errors.Is(err, ErrParse) {
			t.Errorf("parseICS(%q) error = %v, want ErrParse", body, err)
		}
	}
}

func TestUnescapeText(t *testing.T) {
	assert.Equal(t, "a, b; c", unescapeText(`a\, b\; c`))
	assert.Equal(t, `a\b`, unescapeText(`a\\b`))
	assert.Equal(t, "plain", unescapeText("plain"))
}
