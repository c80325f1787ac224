package ports

import "chatstats/internal/domain"

// ExportReader defines read access to a chat data export
type ExportReader interface {
	// Root returns the export root directory
	Root() string

	// HasIndex reports whether messages/index.json exists as a regular file
	HasIndex() bool

	// LoadChannelIndex reads messages/index.json
	LoadChannelIndex() (*domain.ChannelIndex, error)

	// ListChannels returns the _<id> channel directories under messages/,
	// in the order the filesystem reports them
	ListChannels() ([]domain.Channel, error)

	// LoadMessages reads a channel's messages.json. A missing log yields no messages.
	LoadMessages(channel domain.Channel) ([]domain.Message, error)
}
