package domain

import (
	"regexp"
	"sort"
	"strconv"
)

// UnknownChannelName is shown for channels missing from the index
const UnknownChannelName = "(unknown)"

// ChannelID identifies a channel, e.g. 10 for the directory "_10"
type ChannelID int64

func (id ChannelID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

var channelDirRegex = regexp.MustCompile(`^_([0-9]+)$`)

// ParseChannelDir extracts the channel ID from a directory name of the form "_<digits>".
// It reports false for any other name, including "index.json".
func ParseChannelDir(name string) (ChannelID, bool) {
	matches := channelDirRegex.FindStringSubmatch(name)
	if matches == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ChannelID(n), true
}

// Channel is a channel directory discovered in an export
type Channel struct {
	ID   ChannelID
	Path string // Full path to the _<id> directory
}

// ChannelIndex maps channel IDs to display names. It is read-only once loaded.
type ChannelIndex struct {
	names map[string]string
}

// NewChannelIndex creates an index from the raw id -> name pairs of index.json
func NewChannelIndex(names map[string]string) *ChannelIndex {
	copied := make(map[string]string, len(names))
	for k, v := range names {
		copied[k] = v
	}
	return &ChannelIndex{names: copied}
}

// Name returns the display name of a channel, or UnknownChannelName
func (x *ChannelIndex) Name(id ChannelID) string {
	if x == nil {
		return UnknownChannelName
	}
	if name, ok := x.names[id.String()]; ok {
		return name
	}
	return UnknownChannelName
}

// Lookup returns the display name and whether the channel is indexed
func (x *ChannelIndex) Lookup(id ChannelID) (string, bool) {
	if x == nil {
		return "", false
	}
	name, ok := x.names[id.String()]
	return name, ok
}

// Len returns the number of indexed channels
func (x *ChannelIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.names)
}

// SortChannels orders channels by ascending ID
func SortChannels(channels []Channel) {
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].ID < channels[j].ID
	})
}
