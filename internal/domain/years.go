package domain

import "fmt"

const (
	// DefaultNewestYear and DefaultOldestYear bound the default supported range
	DefaultNewestYear = 2025
	DefaultOldestYear = 2020
)

// YearRange is the ordered set of years a run tracks, newest first
type YearRange struct {
	years []int
	set   map[int]struct{}
}

// NewYearRange builds a descending range from newest down to oldest, inclusive
func NewYearRange(newest, oldest int) (YearRange, error) {
	if newest < oldest {
		return YearRange{}, fmt.Errorf("newest year %d is before oldest year %d", newest, oldest)
	}
	years := make([]int, 0, newest-oldest+1)
	for y := newest; y >= oldest; y-- {
		years = append(years, y)
	}
	return YearRangeOf(years...), nil
}

// DefaultYearRange returns 2025 down to 2020
func DefaultYearRange() YearRange {
	r, _ := NewYearRange(DefaultNewestYear, DefaultOldestYear)
	return r
}

// YearRangeOf builds a range from an explicit list, keeping the given order.
// Duplicates are dropped.
func YearRangeOf(years ...int) YearRange {
	r := YearRange{set: make(map[int]struct{}, len(years))}
	for _, y := range years {
		if _, dup := r.set[y]; dup {
			continue
		}
		r.set[y] = struct{}{}
		r.years = append(r.years, y)
	}
	return r
}

// Years returns the years in range order
func (r YearRange) Years() []int {
	out := make([]int, len(r.years))
	copy(out, r.years)
	return out
}

// Contains reports whether year is tracked
func (r YearRange) Contains(year int) bool {
	_, ok := r.set[year]
	return ok
}

// Len returns the number of tracked years
func (r YearRange) Len() int {
	return len(r.years)
}

func (r YearRange) String() string {
	switch len(r.years) {
	case 0:
		return "(none)"
	case 1:
		return fmt.Sprintf("%d", r.years[0])
	default:
		return fmt.Sprintf("%d-%d", r.years[0], r.years[len(r.years)-1])
	}
}
