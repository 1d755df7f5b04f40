package calendar

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// Exclusions is a set of holiday summaries that are observances rather than
// days off. Matching is exact after NFC normalization.
type Exclusions map[string]struct{}

// NewExclusions builds an exclusion set from summaries
func NewExclusions(summaries []string) Exclusions {
	ex := make(Exclusions, len(summaries))
	for _, s := range summaries {
		ex[norm.NFC.String(s)] = struct{}{}
	}
	return ex
}

// Excludes reports whether summary is in the set
func (ex Exclusions) Excludes(summary string) bool {
	if len(ex) == 0 {
		return false
	}
	_, ok := ex[norm.NFC.String(summary)]
	return ok
}

// Filter drops excluded holidays, keeping order
func (ex Exclusions) Filter(holidays []Holiday) []Holiday {
	kept := make([]Holiday, 0, len(holidays))
	for _, h := range holidays {
		if ex.Excludes(h.Summary) {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

// FilterForMonth keeps holidays of the given year and month, keyed by day of
// month. When two holidays share a day the later one wins.
func FilterForMonth(holidays []Holiday, year int, month time.Month) map[int]Holiday {
	byDay := make(map[int]Holiday)
	for _, h := range holidays {
		if h.Year == year && h.Month == month {
			byDay[h.Day] = h
		}
	}
	return byDay
}
