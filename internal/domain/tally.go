package domain

import "sort"

// Tally accumulates yearly totals and per-channel yearly totals for one run.
// It is not safe for concurrent use.
type Tally struct {
	years      YearRange
	totals     map[int]int
	perChannel map[int]map[ChannelID]int
	channels   []ChannelID
	registered map[ChannelID]struct{}
}

// NewTally creates a tally with a zero total for every year in range
func NewTally(years YearRange) *Tally {
	t := &Tally{
		years:      years,
		totals:     make(map[int]int, years.Len()),
		perChannel: make(map[int]map[ChannelID]int, years.Len()),
		registered: make(map[ChannelID]struct{}),
	}
	for _, y := range years.years {
		t.totals[y] = 0
		t.perChannel[y] = make(map[ChannelID]int)
	}
	return t
}

// Years returns the tracked range
func (t *Tally) Years() YearRange {
	return t.years
}

// Register records a channel with a zero count for every tracked year.
// Registering the same channel twice keeps its counts.
func (t *Tally) Register(id ChannelID) {
	if _, ok := t.registered[id]; ok {
		return
	}
	t.registered[id] = struct{}{}
	t.channels = append(t.channels, id)
	for _, y := range t.years.years {
		t.perChannel[y][id] = 0
	}
}

// Add counts one message for a channel in a year. Years outside the range
// are dropped and Add reports false.
func (t *Tally) Add(year int, id ChannelID) bool {
	if !t.years.Contains(year) {
		return false
	}
	t.Register(id)
	t.totals[year]++
	t.perChannel[year][id]++
	return true
}

// Merge adds every count of other into t. Both tallies must track the same years.
func (t *Tally) Merge(other *Tally) {
	for _, id := range other.channels {
		t.Register(id)
	}
	for y, counts := range other.perChannel {
		if !t.years.Contains(y) {
			continue
		}
		for id, n := range counts {
			t.totals[y] += n
			t.perChannel[y][id] += n
		}
	}
}

// Total returns the number of messages counted for a year
func (t *Tally) Total(year int) int {
	return t.totals[year]
}

// ChannelCount returns the number of messages a channel sent in a year
func (t *Tally) ChannelCount(year int, id ChannelID) int {
	return t.perChannel[year][id]
}

// Channels returns every registered channel in registration order
func (t *Tally) Channels() []ChannelID {
	out := make([]ChannelID, len(t.channels))
	copy(out, t.channels)
	return out
}

// ChannelTotal is a channel and its message count for some year
type ChannelTotal struct {
	ID    ChannelID
	Count int
}

// Ranked returns the registered channels for a year ordered by count descending.
// Equal counts are ordered by ascending channel ID. limit <= 0 means no limit.
func (t *Tally) Ranked(year int, limit int) []ChannelTotal {
	counts := t.perChannel[year]
	ranked := make([]ChannelTotal, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, ChannelTotal{ID: id, Count: n})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].ID < ranked[j].ID
		}
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
