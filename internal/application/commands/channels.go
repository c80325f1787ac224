package commands

import (
	"context"
	"path/filepath"

	"chatstats/internal/application"
	"chatstats/internal/domain"
	"chatstats/internal/ports"
)

// ChannelInfo describes a discovered channel
type ChannelInfo struct {
	ID      domain.ChannelID
	Name    string
	Indexed bool // false when the channel is missing from index.json
	Path    string
}

// ListChannelsCommand lists the channel folders of an export with their names
type ListChannelsCommand struct {
	reader ports.ExportReader
}

// NewListChannelsCommand creates a new ListChannelsCommand
func NewListChannelsCommand(reader ports.ExportReader) *ListChannelsCommand {
	return &ListChannelsCommand{reader: reader}
}

// Execute runs the list channels command. Channels are ordered by ID.
func (c *ListChannelsCommand) Execute(ctx context.Context) ([]ChannelInfo, error) {
	if err := application.ValidateRequired("exportRoot", c.reader.Root()); err != nil {
		return nil, &application.SummaryError{Kind: application.KindInvalidExport, Err: application.ErrNoExportRoot}
	}

	indexPath := filepath.Join(c.reader.Root(), "messages", "index.json")
	if !c.reader.HasIndex() {
		return nil, &application.SummaryError{
			Kind: application.KindInvalidExport,
			Path: indexPath,
			Err:  application.ErrExportNotFound,
		}
	}

	index, err := c.reader.LoadChannelIndex()
	if err != nil {
		return nil, classify(err, indexPath, 0)
	}

	channels, err := c.reader.ListChannels()
	if err != nil {
		return nil, classify(err, filepath.Dir(indexPath), 0)
	}
	domain.SortChannels(channels)

	infos := make([]ChannelInfo, 0, len(channels))
	for _, ch := range channels {
		name, ok := index.Lookup(ch.ID)
		if !ok {
			name = domain.UnknownChannelName
		}
		infos = append(infos, ChannelInfo{ID: ch.ID, Name: name, Indexed: ok, Path: ch.Path})
	}
	return infos, nil
}
