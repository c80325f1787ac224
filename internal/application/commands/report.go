package commands

import (
	"fmt"
	"strings"

	"chatstats/internal/domain"
)

// TopChannelsPerYear is how many channels are listed for each year
const TopChannelsPerYear = 5

// ChannelRank is one entry of a year's most active channels
type ChannelRank struct {
	ID    domain.ChannelID
	Name  string
	Count int
}

// YearSummary holds the total and the busiest channels of one year
type YearSummary struct {
	Year        int
	Total       int
	TopChannels []ChannelRank
}

// Report is the final summary of an export, in year-range order
type Report struct {
	Years []YearSummary
}

// BuildReport ranks the tallied channels of every year. Channels with equal
// counts are listed by ascending channel ID.
func BuildReport(years domain.YearRange, tally *domain.Tally, index *domain.ChannelIndex) *Report {
	report := &Report{}
	for _, y := range years.Years() {
		summary := YearSummary{Year: y, Total: tally.Total(y)}
		for _, ct := range tally.Ranked(y, TopChannelsPerYear) {
			summary.TopChannels = append(summary.TopChannels, ChannelRank{
				ID:    ct.ID,
				Name:  index.Name(ct.ID),
				Count: ct.Count,
			})
		}
		report.Years = append(report.Years, summary)
	}
	return report
}

// Total returns the number of counted messages across all years
func (r *Report) Total() int {
	total := 0
	for _, y := range r.Years {
		total += y.Total
	}
	return total
}

// Lines renders the report as log lines
func (r *Report) Lines() []string {
	lines := []string{"", "Summary:", ""}

	for _, y := range r.Years {
		lines = append(lines, fmt.Sprintf("%d: %d messages", y.Year, y.Total))
	}

	lines = append(lines, "", "Most active channels by year:", "")

	for _, y := range r.Years {
		lines = append(lines, fmt.Sprintf("Top channels in %d:", y.Year))
		for _, ch := range y.TopChannels {
			lines = append(lines, "    "+ch.Name)
		}
		lines = append(lines, "")
	}

	return append(lines, "", "Finished.", "")
}

// String renders the report as text
func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}
