package commands

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"chatstats/internal/application"
	"chatstats/internal/domain"
	"chatstats/internal/ports"
)

// SummarizeResult contains everything computed for one export
type SummarizeResult struct {
	Report   *Report
	Tally    *domain.Tally
	Index    *domain.ChannelIndex
	Channels []domain.Channel
}

// SummarizeCommand walks an export, counts messages per year and per channel,
// and reports the busiest channels of every year
type SummarizeCommand struct {
	reader ports.ExportReader
	sink   ports.ProgressSink
	logger zerolog.Logger

	Years domain.YearRange
	Debug bool
}

// NewSummarizeCommand creates a new SummarizeCommand. A nil sink discards progress.
func NewSummarizeCommand(reader ports.ExportReader, years domain.YearRange, debug bool, sink ports.ProgressSink) *SummarizeCommand {
	if sink == nil {
		sink = ports.Discard
	}
	return &SummarizeCommand{
		reader: reader,
		sink:   sink,
		logger: zerolog.Nop(),
		Years:  years,
		Debug:  debug,
	}
}

// WithLogger sets the diagnostic logger
func (c *SummarizeCommand) WithLogger(logger zerolog.Logger) *SummarizeCommand {
	c.logger = logger
	return c
}

// Validate checks the export folder and year range
func (c *SummarizeCommand) Validate() error {
	if err := application.ValidateRequired("exportRoot", c.reader.Root()); err != nil {
		return &application.SummaryError{Kind: application.KindInvalidExport, Err: application.ErrNoExportRoot}
	}
	return application.ValidateYearRange("years", c.Years)
}

// Execute runs the summary. It stops at the first unreadable channel or
// timestamp; lines already sent to the sink are not retracted.
func (c *SummarizeCommand) Execute(ctx context.Context) (*SummarizeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	indexPath := filepath.Join(c.reader.Root(), "messages", "index.json")
	if !c.reader.HasIndex() {
		return nil, &application.SummaryError{
			Kind: application.KindInvalidExport,
			Path: indexPath,
			Err:  application.ErrExportNotFound,
		}
	}

	log := c.logger.With().Str("export", c.reader.Root()).Logger()
	log.Info().Stringer("years", c.Years).Bool("debug", c.Debug).Msg("summarizing export")

	c.emit("Processing messages...")
	c.emit("This may take a while.")
	c.emit("")

	index, err := c.reader.LoadChannelIndex()
	if err != nil {
		return nil, classify(err, indexPath, 0)
	}

	channels, err := c.reader.ListChannels()
	if err != nil {
		return nil, classify(err, filepath.Dir(indexPath), 0)
	}

	tally := domain.NewTally(c.Years)
	for _, ch := range channels {
		if err := ctx.Err(); err != nil {
			return nil, &application.SummaryError{Kind: application.KindCanceled, Err: err}
		}

		tally.Register(ch.ID)

		if c.Debug {
			c.emit(ch.ID.String() + ": " + index.Name(ch.ID))
		}

		counted, err := c.countChannel(tally, ch)
		if err != nil {
			log.Error().Err(err).Stringer("channel", ch.ID).Msg("channel failed")
			return nil, err
		}
		log.Debug().Stringer("channel", ch.ID).Int("counted", counted).Msg("channel done")
	}

	report := BuildReport(tally.Years(), tally, index)
	for _, line := range report.Lines() {
		c.emit(line)
	}

	log.Info().
		Int("channels", len(channels)).
		Int("indexed", index.Len()).
		Int("messages", report.Total()).
		Msg("export summarized")

	return &SummarizeResult{
		Report:   report,
		Tally:    tally,
		Index:    index,
		Channels: channels,
	}, nil
}

// countChannel adds a channel's in-range messages to the tally and returns how many counted.
// The channel is counted on its own and merged only once its whole log parsed.
func (c *SummarizeCommand) countChannel(tally *domain.Tally, ch domain.Channel) (int, error) {
	logPath := filepath.Join(ch.Path, "messages.json")

	messages, err := c.reader.LoadMessages(ch)
	if err != nil {
		return 0, classify(err, logPath, ch.ID)
	}

	own := domain.NewTally(tally.Years())
	counted := 0
	for _, msg := range messages {
		year, err := domain.ParseYear(msg.Timestamp)
		if err != nil {
			return 0, &application.SummaryError{
				Kind:    application.KindInvalidTimestamp,
				Path:    logPath,
				Channel: ch.ID,
				Err:     err,
			}
		}
		if own.Add(year, ch.ID) {
			counted++
		}
	}
	tally.Merge(own)
	return counted, nil
}

func (c *SummarizeCommand) emit(line string) {
	c.sink.Progress(line)
}

// classify wraps a loader error with the kind a presentation layer needs
func classify(err error, path string, channel domain.ChannelID) error {
	kind := application.KindIO
	switch {
	case errors.Is(err, domain.ErrIndexNotFound):
		kind = application.KindInvalidExport
	case errors.Is(err, domain.ErrMalformedData):
		kind = application.KindMalformedData
	case errors.Is(err, domain.ErrInvalidTimestamp):
		kind = application.KindInvalidTimestamp
	}
	return &application.SummaryError{Kind: kind, Path: path, Channel: channel, Err: err}
}
