package calendar

import (
	"strings"
	"testing"
	"time"
)

func holidayOn(year int, month time.Month, day int, summary string) Holiday {
	return Holiday{Year: year, Month: month, Day: day, Summary: summary}
}

func TestComputeTotalHours(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		holidays  []Holiday
		wantHours int
	}{
		{
			name:      "February 2024 leap year, no holidays",
			year:      2024,
			month:     time.February,
			wantHours: 168, // 29 days - 8 weekend days = 21
		},
		{
			name:  "November 2025 with holiday on Saturday and Tuesday",
			year:  2025,
			month: time.November,
			holidays: []Holiday{
				holidayOn(2025, time.November, 1, "Wszystkich Świętych"),
				holidayOn(2025, time.November, 11, "Narodowe Święto Niepodległości"),
			},
			wantHours: 152, // 20 weekdays - Nov 11
		},
		{
			name:  "December 2024 Christmas",
			year:  2024,
			month: time.December,
			holidays: []Holiday{
				holidayOn(2024, time.December, 25, "Boże Narodzenie (pierwszy dzień)"),
				holidayOn(2024, time.December, 26, "Boże Narodzenie (drugi dzień)"),
			},
			wantHours: 160, // 22 weekdays - 2
		},
		{
			name:  "holidays of another month are ignored",
			year:  2024,
			month: time.February,
			holidays: []Holiday{
				holidayOn(2024, time.March, 1, "Not in February"),
				holidayOn(2023, time.February, 1, "Last year"),
			},
			wantHours: 168,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byDay := FilterForMonth(tt.holidays, tt.year, tt.month)
			got := ComputeTotalHours(tt.year, tt.month, byDay)
			if got != tt.wantHours {
				t.Errorf("ComputeTotalHours() = %d, want %d", got, tt.wantHours)
			}
		})
	}
}

func TestComputeTotalHours_EqualsEightTimesWorkingDays(t *testing.T) {
	holidays := []Holiday{
		holidayOn(2024, time.May, 1, "Święto Pracy"),
		holidayOn(2024, time.May, 3, "Święto Konstytucji 3 Maja"),
		holidayOn(2024, time.May, 19, "Zielone Świątki"),
		holidayOn(2024, time.May, 30, "Boże Ciało"),
	}

	for month := time.January; month <= time.December; month++ {
		byDay := FilterForMonth(holidays, 2024, month)
		info := GetMonthInfo(2024, month, byDay)

		working := 0
		for _, day := range info.Days {
			weekday := day.Date.Weekday()
			_, isHoliday := byDay[day.Date.Day()]
			if weekday != time.Saturday && weekday != time.Sunday && !isHoliday {
				working++
			}
		}

		if got := ComputeTotalHours(2024, month, byDay); got != 8*working {
			t.Errorf("%v: ComputeTotalHours() = %d, want %d", month, got, 8*working)
		}
		if info.WorkDays != working {
			t.Errorf("%v: WorkDays = %d, want %d", month, info.WorkDays, working)
		}
		if info.WorkDays+info.Weekends+info.Holidays != len(info.Days) {
			t.Errorf("%v: day types do not add up to %d", month, len(info.Days))
		}
	}
}

func TestClassifyDay(t *testing.T) {
	holiday := &Holiday{Year: 2024, Month: time.May, Day: 1, Summary: "Święto Pracy"}

	tests := []struct {
		name        string
		date        time.Time
		holiday     *Holiday
		wantType    DayType
		wantColor   Color
		wantWorkday bool
		wantHours   int
	}{
		{"Monday", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), nil, DayTypeWorkday, ColorDefault, true, 8},
		{"Saturday", time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), nil, DayTypeWeekend, ColorSecondary, false, 0},
		{"Sunday", time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), nil, DayTypeWeekend, ColorRest, false, 0},
		{"holiday on Wednesday", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), holiday, DayTypeHoliday, ColorRest, false, 0},
		{"holiday on Saturday", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), holiday, DayTypeHoliday, ColorRest, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDay(tt.date, tt.holiday)

			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Color != tt.wantColor {
				t.Errorf("Color = %v, want %v", got.Color, tt.wantColor)
			}
			if got.IsWorkday != tt.wantWorkday {
				t.Errorf("IsWorkday = %v, want %v", got.IsWorkday, tt.wantWorkday)
			}
			if got.WorkingHours != tt.wantHours {
				t.Errorf("WorkingHours = %d, want %d", got.WorkingHours, tt.wantHours)
			}
		})
	}
}

func TestRenderDayRows(t *testing.T) {
	byDay := map[int]Holiday{
		1: holidayOn(2024, time.May, 1, "Święto Pracy"),
	}

	rows := RenderDayRows(2024, time.May, byDay)
	lines := strings.Split(strings.TrimSuffix(rows, "\n"), "\n")

	if len(lines) != 31 {
		t.Fatalf("rendered %d rows, want 31", len(lines))
	}

	want := map[int]string{
		1:  `\rowcolor{Red} \hline 1 & Śr & & & & \\`,   // holiday
		2:  `\rowcolor{White} \hline 2 & Cz & & & & \\`, // plain Thursday
		4:  `\rowcolor{Green} \hline 4 & So & & & & \\`,
		5:  `\rowcolor{Red} \hline 5 & Nd & & & & \\`,
		31: `\rowcolor{White} \hline 31 & Pt & & & & \\`,
	}
	for day, line := range want {
		if lines[day-1] != line {
			t.Errorf("row %d = %q, want %q", day, lines[day-1], line)
		}
	}
}

func TestRenderDayRows_Deterministic(t *testing.T) {
	first := RenderDayRows(2024, time.February, nil)
	second := RenderDayRows(2024, time.February, nil)
	if first != second {
		t.Error("RenderDayRows() is not deterministic")
	}
	if strings.Count(first, "\n") != 29 {
		t.Errorf("February 2024 rendered %d rows, want 29", strings.Count(first, "\n"))
	}
}

func TestFilterForMonth_LaterEntryWins(t *testing.T) {
	holidays := []Holiday{
		holidayOn(2024, time.December, 25, "first"),
		holidayOn(2024, time.December, 25, "second"),
		holidayOn(2024, time.December, 26, "other"),
		holidayOn(2024, time.November, 25, "wrong month"),
	}

	byDay := FilterForMonth(holidays, 2024, time.December)

	if len(byDay) != 2 {
		t.Fatalf("len = %d, want 2", len(byDay))
	}
	if byDay[25].Summary != "second" {
		t.Errorf("day 25 summary = %q, want %q", byDay[25].Summary, "second")
	}
}
