package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"chatstats/internal/domain"
	"chatstats/internal/ports"
)

const (
	messagesDir  = "messages"
	indexFile    = "index.json"
	messagesFile = "messages.json"
)

// ExportReader implements ports.ExportReader for an unpacked Discord data package
type ExportReader struct {
	root string
}

// Ensure ExportReader implements ports.ExportReader
var _ ports.ExportReader = (*ExportReader)(nil)

// NewExportReader creates a reader rooted at the export folder
func NewExportReader(root string) *ExportReader {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	return &ExportReader{root: root}
}

// Root returns the export root directory
func (r *ExportReader) Root() string {
	return r.root
}

// IndexPath returns the path of messages/index.json
func (r *ExportReader) IndexPath() string {
	return filepath.Join(r.root, messagesDir, indexFile)
}

// HasIndex reports whether messages/index.json is a regular file
func (r *ExportReader) HasIndex() bool {
	info, err := os.Stat(r.IndexPath())
	return err == nil && info.Mode().IsRegular()
}

// LoadChannelIndex reads the channel id -> name mapping
func (r *ExportReader) LoadChannelIndex() (*domain.ChannelIndex, error) {
	path := r.IndexPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrIndexNotFound)
		}
		return nil, fmt.Errorf("failed to read channel index: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, &domain.MalformedDataError{Path: path, Reason: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &domain.MalformedDataError{Path: path, Reason: "expected an object of channel id to name"}
	}

	names := make(map[string]string)
	var badKey string
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			badKey = key.String()
			return false
		}
		names[key.String()] = value.String()
		return true
	})
	if badKey != "" {
		return nil, &domain.MalformedDataError{Path: path, Reason: fmt.Sprintf("name of channel %q is not a string", badKey)}
	}

	return domain.NewChannelIndex(names), nil
}

// ListChannels returns every _<id> directory under messages/
func (r *ExportReader) ListChannels() ([]domain.Channel, error) {
	dir := filepath.Join(r.root, messagesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages folder: %w", err)
	}

	var channels []domain.Channel
	for _, entry := range entries {
		if entry.Name() == indexFile {
			continue
		}

		id, ok := domain.ParseChannelDir(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !isDir(entry, path) {
			continue
		}

		channels = append(channels, domain.Channel{ID: id, Path: path})
	}

	return channels, nil
}

// isDir follows symlinks so that linked channel folders are still found
func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// LoadMessages reads a channel's messages.json. A channel without a log
// (or whose log is not a regular file) has no messages.
func (r *ExportReader) LoadMessages(channel domain.Channel) ([]domain.Message, error) {
	path := filepath.Join(channel.Path, messagesFile)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat message log: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read message log: %w", err)
	}

	return ParseMessages(path, data)
}

// ParseMessages decodes a messages.json array. Missing fields take the
// defaults ID 0, Timestamp domain.EpochTimestamp and empty Contents.
func ParseMessages(path string, data []byte) ([]domain.Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, &domain.MalformedDataError{Path: path, Reason: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, &domain.MalformedDataError{Path: path, Reason: "expected an array of messages"}
	}

	elements := doc.Array()
	messages := make([]domain.Message, 0, len(elements))
	for i, el := range elements {
		if !el.IsObject() {
			return nil, &domain.MalformedDataError{Path: path, Reason: fmt.Sprintf("message %d is not an object", i)}
		}

		msg := domain.Message{
			ID:        el.Get("ID").Int(),
			Timestamp: domain.EpochTimestamp,
			Contents:  el.Get("Contents").String(),
		}

		if ts := el.Get("Timestamp"); ts.Exists() {
			if ts.Type != gjson.String {
				return nil, &domain.MalformedDataError{Path: path, Reason: fmt.Sprintf("message %d has a non-string Timestamp", i)}
			}
			msg.Timestamp = ts.String()
		}

		messages = append(messages, msg)
	}

	return messages, nil
}
