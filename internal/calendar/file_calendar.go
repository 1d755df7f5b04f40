package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements HolidayProvider using a local copy of the iCalendar feed
type FileCalendar struct {
	filePath   string
	location   *time.Location
	exclusions Exclusions
	logger     *zap.Logger
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, loc *time.Location, exclude []string, logger *zap.Logger) *FileCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &FileCalendar{
		filePath:   filePath,
		location:   loc,
		exclusions: NewExclusions(exclude),
		logger:     logger,
	}
}

// FetchHolidays reads and parses the calendar file
func (fc *FileCalendar) FetchHolidays(ctx context.Context) ([]Holiday, error) {
	data, err := os.ReadFile(fc.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar file: %w", err)
	}

	holidays, err := parseICS(data, fc.location, fc.logger)
	if err != nil {
		return nil, fmt.Errorf("calendar file %s: %w", fc.filePath, err)
	}

	kept := fc.exclusions.Filter(holidays)

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("holidays", len(kept)))

	return kept, nil
}
