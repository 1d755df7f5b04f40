package calendar

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CompositeProvider implements HolidayProvider with fallback strategy
// Primary: the remote feed
// Fallback: optional, a local file or the builtin rules
type CompositeProvider struct {
	primary  HolidayProvider
	fallback HolidayProvider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider. fallback may be nil.
func NewCompositeProvider(primary, fallback HolidayProvider, logger *zap.Logger) *CompositeProvider {
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// FetchHolidays tries the primary provider first
func (cp *CompositeProvider) FetchHolidays(ctx context.Context) ([]Holiday, error) {
	holidays, err := cp.primary.FetchHolidays(ctx)
	if err == nil {
		return holidays, nil
	}
	if cp.fallback == nil || ctx.Err() != nil {
		return nil, err
	}

	cp.logger.Warn("Primary holiday source failed, falling back",
		zap.Error(err))

	holidays, fallbackErr := cp.fallback.FetchHolidays(ctx)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}

	return holidays, nil
}
