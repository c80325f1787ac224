package application

import "chatstats/internal/domain"

// YearRange is re-exported for adapters that only talk to the application layer
type YearRange = domain.YearRange

// NewYearRange builds a descending range from newest down to oldest
func NewYearRange(newest, oldest int) (YearRange, error) {
	return domain.NewYearRange(newest, oldest)
}

// DefaultYearRange returns the default supported years
func DefaultYearRange() YearRange {
	return domain.DefaultYearRange()
}
