package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"chatstats/internal/adapters/filesystem"
	"chatstats/internal/application"
	"chatstats/internal/domain"
	"chatstats/internal/ports"
)

// fakeReader is an in-memory ports.ExportReader
type fakeReader struct {
	root     string
	noIndex  bool
	names    map[string]string
	indexErr error
	channels []domain.Channel
	messages map[domain.ChannelID][]domain.Message
	loadErr  map[domain.ChannelID]error
	loaded   []domain.ChannelID
}

func (f *fakeReader) Root() string   { return f.root }
func (f *fakeReader) HasIndex() bool { return !f.noIndex }

func (f *fakeReader) LoadChannelIndex() (*domain.ChannelIndex, error) {
	if f.indexErr != nil {
		return nil, f.indexErr
	}
	return domain.NewChannelIndex(f.names), nil
}

func (f *fakeReader) ListChannels() ([]domain.Channel, error) {
	return f.channels, nil
}

func (f *fakeReader) LoadMessages(ch domain.Channel) ([]domain.Message, error) {
	f.loaded = append(f.loaded, ch.ID)
	if err := f.loadErr[ch.ID]; err != nil {
		return nil, err
	}
	return f.messages[ch.ID], nil
}

var _ ports.ExportReader = (*fakeReader)(nil)

func collect(lines *[]string) ports.ProgressSink {
	return ports.ProgressFunc(func(line string) {
		*lines = append(*lines, line)
	})
}

func msg(ts string) domain.Message {
	return domain.Message{Timestamp: ts}
}

func TestSummarizeCommand_Scenario(t *testing.T) {
	reader := &fakeReader{
		root:     "/export",
		names:    map[string]string{"10": "general"},
		channels: []domain.Channel{{ID: 10, Path: "/export/messages/_10"}},
		messages: map[domain.ChannelID][]domain.Message{
			10: {
				{ID: 1, Timestamp: "2024-03-01T10:00:00Z", Contents: "hi"},
				{ID: 2, Timestamp: "2023-01-01T00:00:00Z", Contents: "bye"},
			},
		},
	}

	var lines []string
	cmd := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, collect(&lines))
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if got := result.Tally.Total(2024); got != 1 {
		t.Errorf("expected 1 message in 2024, got %d", got)
	}
	if got := result.Tally.Total(2023); got != 1 {
		t.Errorf("expected 1 message in 2023, got %d", got)
	}

	for _, y := range result.Report.Years {
		if y.Year != 2024 && y.Year != 2023 {
			continue
		}
		if len(y.TopChannels) == 0 || y.TopChannels[0].Name != "general" {
			t.Errorf("expected general to top %d, got %+v", y.Year, y.TopChannels)
		}
	}

	text := strings.Join(lines, "\n")
	for _, want := range []string{
		"Processing messages...",
		"2024: 1 messages",
		"2023: 1 messages",
		"2025: 0 messages",
		"Top channels in 2024:\n    general\n",
		"Finished.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Contains(text, "10: general") {
		t.Error("did not expect channel listing without debug")
	}
}

func TestSummarizeCommand_DebugListing(t *testing.T) {
	reader := &fakeReader{
		root:  "/export",
		names: map[string]string{"10": "general"},
		channels: []domain.Channel{
			{ID: 10, Path: "/export/messages/_10"},
			{ID: 20, Path: "/export/messages/_20"},
		},
	}

	var lines []string
	cmd := NewSummarizeCommand(reader, domain.DefaultYearRange(), true, collect(&lines))
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"Processing messages...", "This may take a while.", "", "10: general", "20: (unknown)"}
	for i, w := range want {
		if i >= len(lines) || lines[i] != w {
			t.Fatalf("expected line %d to be %q, got %q", i, w, lines)
		}
	}
}

func TestSummarizeCommand_MissingIndexIsFatal(t *testing.T) {
	reader := &fakeReader{root: "/export", noIndex: true}

	var lines []string
	cmd := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, collect(&lines))
	result, err := cmd.Execute(context.Background())

	if result != nil {
		t.Error("expected no result")
	}
	if !application.IsFatalPrecondition(err) {
		t.Errorf("expected fatal precondition, got %v", err)
	}
	if !errors.Is(err, application.ErrExportNotFound) {
		t.Errorf("expected ErrExportNotFound, got %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no output before precondition check, got %q", lines)
	}
}

func TestSummarizeCommand_NoRoot(t *testing.T) {
	cmd := NewSummarizeCommand(&fakeReader{}, domain.DefaultYearRange(), false, nil)
	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, application.ErrNoExportRoot) {
		t.Errorf("expected ErrNoExportRoot, got %v", err)
	}
	if application.UserMessage(err) != "Please select a folder first." {
		t.Errorf("unexpected user message %q", application.UserMessage(err))
	}
}

func TestSummarizeCommand_EmptyYearRange(t *testing.T) {
	cmd := NewSummarizeCommand(&fakeReader{root: "/export"}, domain.YearRangeOf(), false, nil)
	_, err := cmd.Execute(context.Background())
	if application.KindOf(err) != application.KindInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestSummarizeCommand_AbortsOnBadTimestampKeepingPartialLog(t *testing.T) {
	reader := &fakeReader{
		root:  "/export",
		names: map[string]string{"1": "a", "2": "b", "3": "c"},
		channels: []domain.Channel{
			{ID: 1, Path: "/export/messages/_1"},
			{ID: 2, Path: "/export/messages/_2"},
			{ID: 3, Path: "/export/messages/_3"},
		},
		messages: map[domain.ChannelID][]domain.Message{
			1: {msg("2024-01-01T00:00:00")},
			2: {msg("2024-01-01T00:00:00"), msg("not a date")},
			3: {msg("2024-01-01T00:00:00")},
		},
	}

	var lines []string
	cmd := NewSummarizeCommand(reader, domain.DefaultYearRange(), true, collect(&lines))
	_, err := cmd.Execute(context.Background())

	if application.KindOf(err) != application.KindInvalidTimestamp {
		t.Fatalf("expected invalid timestamp error, got %v", err)
	}
	var se *application.SummaryError
	if !errors.As(err, &se) || se.Channel != 2 {
		t.Errorf("expected failure attributed to channel 2, got %+v", se)
	}
	if len(reader.loaded) != 2 {
		t.Errorf("expected processing to stop after channel 2, loaded %v", reader.loaded)
	}

	text := strings.Join(lines, "\n")
	if !strings.Contains(text, "1: a") || !strings.Contains(text, "2: b") {
		t.Errorf("expected partial log to be kept, got %q", lines)
	}
	if strings.Contains(text, "Summary:") {
		t.Error("did not expect a report after an aborted run")
	}
}

func TestSummarizeCommand_MalformedLog(t *testing.T) {
	reader := &fakeReader{
		root:     "/export",
		channels: []domain.Channel{{ID: 5, Path: "/export/messages/_5"}},
		loadErr: map[domain.ChannelID]error{
			5: &domain.MalformedDataError{Path: "/export/messages/_5/messages.json", Reason: "invalid JSON"},
		},
	}

	_, err := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, nil).Execute(context.Background())
	if application.KindOf(err) != application.KindMalformedData {
		t.Errorf("expected malformed data, got %v", err)
	}
	if !strings.HasPrefix(application.UserMessage(err), "An error occurred:") {
		t.Errorf("expected generic alert, got %q", application.UserMessage(err))
	}
}

func TestSummarizeCommand_MalformedIndex(t *testing.T) {
	reader := &fakeReader{
		root:     "/export",
		indexErr: &domain.MalformedDataError{Path: "index.json", Reason: "invalid JSON"},
	}

	_, err := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, nil).Execute(context.Background())
	if application.KindOf(err) != application.KindMalformedData {
		t.Errorf("expected malformed data, got %v", err)
	}
}

func TestSummarizeCommand_Canceled(t *testing.T) {
	reader := &fakeReader{
		root:     "/export",
		channels: []domain.Channel{{ID: 1}, {ID: 2}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, nil).Execute(ctx)
	if application.KindOf(err) != application.KindCanceled {
		t.Errorf("expected canceled, got %v", err)
	}
	if len(reader.loaded) != 0 {
		t.Errorf("expected no channel to be loaded, got %v", reader.loaded)
	}
}

func TestSummarizeCommand_EpochDefaultDroppedOutsideRange(t *testing.T) {
	reader := &fakeReader{
		root:     "/export",
		channels: []domain.Channel{{ID: 1}},
		messages: map[domain.ChannelID][]domain.Message{
			1: {msg(domain.EpochTimestamp), msg("2022-05-05T05:05:05Z")},
		},
	}

	result, err := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, nil).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Report.Total() != 1 {
		t.Errorf("expected only the 2022 message to count, got %d", result.Report.Total())
	}

	withEpoch, err := NewSummarizeCommand(reader, domain.YearRangeOf(2022, 1970), false, nil).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if withEpoch.Tally.Total(1970) != 1 {
		t.Errorf("expected epoch default to count for 1970, got %d", withEpoch.Tally.Total(1970))
	}
}

func TestSummarizeCommand_Conservation(t *testing.T) {
	reader := &fakeReader{
		root: "/export",
		channels: []domain.Channel{
			{ID: 1}, {ID: 2}, {ID: 3},
		},
		messages: map[domain.ChannelID][]domain.Message{
			1: {msg("2025-01-01"), msg("2024-02-02"), msg("2024-03-03"), msg("2010-01-01")},
			2: {msg("2024-12-31T23:59:59Z"), msg("2021-06-06T06:06:06.5+02:00")},
			3: {msg("2020-01-01T00:00:00Z"), msg("2020-01-02T00:00:00Z"), msg("2020-01-03T00:00:00Z")},
		},
	}

	result, err := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, nil).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for _, y := range domain.DefaultYearRange().Years() {
		sum := 0
		for _, id := range result.Tally.Channels() {
			sum += result.Tally.ChannelCount(y, id)
		}
		if sum != result.Tally.Total(y) {
			t.Errorf("year %d: channel sum %d != total %d", y, sum, result.Tally.Total(y))
		}
	}
	if result.Tally.Total(2023) != 0 || result.Tally.Total(2022) != 0 {
		t.Error("expected years without messages to stay at zero")
	}
}

func TestSummarizeCommand_CountChannelMergesOnlyWholeLogs(t *testing.T) {
	reader := &fakeReader{
		root: "/export",
		messages: map[domain.ChannelID][]domain.Message{
			1: {msg("2024-01-01"), msg("2023-01-01"), msg("1999-01-01")},
			2: {msg("2024-01-01"), msg("not a date")},
		},
	}
	cmd := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, nil)
	tally := domain.NewTally(domain.DefaultYearRange())

	counted, err := cmd.countChannel(tally, domain.Channel{ID: 1})
	if err != nil {
		t.Fatalf("countChannel failed: %v", err)
	}
	if counted != 2 {
		t.Errorf("expected 2 counted, got %d", counted)
	}
	if tally.ChannelCount(2024, 1) != 1 || tally.ChannelCount(2023, 1) != 1 {
		t.Errorf("expected channel 1 merged into the tally, got 2024=%d 2023=%d",
			tally.ChannelCount(2024, 1), tally.ChannelCount(2023, 1))
	}

	counted, err = cmd.countChannel(tally, domain.Channel{ID: 2})
	if application.KindOf(err) != application.KindInvalidTimestamp {
		t.Fatalf("expected invalid timestamp error, got %v", err)
	}
	if counted != 0 {
		t.Errorf("expected nothing counted for a failed log, got %d", counted)
	}
	if tally.Total(2024) != 1 {
		t.Errorf("expected failed channel to leave the 2024 total at 1, got %d", tally.Total(2024))
	}
	if len(tally.Channels()) != 1 {
		t.Errorf("expected only channel 1 in the tally, got %v", tally.Channels())
	}
}

func TestSummarizeCommand_LogsTotals(t *testing.T) {
	reader := &fakeReader{
		root:  "/export",
		names: map[string]string{"1": "a", "2": "b", "3": "never exported"},
		channels: []domain.Channel{
			{ID: 1}, {ID: 2},
		},
		messages: map[domain.ChannelID][]domain.Message{
			1: {msg("2024-01-01"), msg("2021-05-05")},
			2: {msg("2020-01-01"), msg("1990-01-01")},
		},
	}

	var buf bytes.Buffer
	cmd := NewSummarizeCommand(reader, domain.DefaultYearRange(), false, nil).
		WithLogger(zerolog.New(&buf))
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"message":"export summarized"`) {
		t.Fatalf("expected final summary log line, got %q", out)
	}
	for _, field := range []string{`"channels":2`, `"indexed":3`, `"messages":3`} {
		if !strings.Contains(out, field) {
			t.Errorf("expected %s in log output, got %q", field, out)
		}
	}
}

// writeExport lays out a real export on disk
func writeExport(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatalf("failed to create %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return root
}

func TestSummarizeCommand_FilesystemExport(t *testing.T) {
	root := writeExport(t, map[string]string{
		"messages/index.json":         `{"10":"general","30":"memes"}`,
		"messages/_10/messages.json":  `[{"ID":1,"Timestamp":"2024-03-01T10:00:00Z","Contents":"hi"},{"ID":2,"Timestamp":"2023-01-01T00:00:00Z","Contents":"bye"}]`,
		"messages/_20/":               "",
		"messages/_30/messages.json":  `[{"ID":3,"Timestamp":"2024-05-05T10:00:00Z"},{"ID":4,"Timestamp":"2024-05-06T10:00:00Z"}]`,
		"messages/foo/messages.json":  `[{"ID":9,"Timestamp":"2024-05-05T10:00:00Z"}]`,
		"messages/_abc/messages.json": `[{"ID":9,"Timestamp":"2024-05-05T10:00:00Z"}]`,
	})

	var lines []string
	cmd := NewSummarizeCommand(filesystem.NewExportReader(root), domain.DefaultYearRange(), true, collect(&lines))
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(result.Channels) != 3 {
		t.Errorf("expected 3 channels, got %d", len(result.Channels))
	}
	if result.Tally.Total(2024) != 3 {
		t.Errorf("expected 3 messages in 2024, got %d", result.Tally.Total(2024))
	}

	var y2024 YearSummary
	for _, y := range result.Report.Years {
		if y.Year == 2024 {
			y2024 = y
		}
	}
	names := make([]string, 0, len(y2024.TopChannels))
	for _, ch := range y2024.TopChannels {
		names = append(names, ch.Name)
	}
	// _20 has no log but is still ranked, last with zero messages
	want := []string{"memes", "general", "(unknown)"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected top channels %v, got %v", want, names)
	}

	text := strings.Join(lines, "\n")
	if strings.Contains(text, "foo") || strings.Contains(text, "abc") {
		t.Errorf("expected non-channel folders to be ignored, got:\n%s", text)
	}
	if !strings.Contains(text, "20: (unknown)") {
		t.Errorf("expected channel without log in debug listing, got:\n%s", text)
	}
}

func TestSummarizeCommand_FilesystemMissingIndex(t *testing.T) {
	root := writeExport(t, map[string]string{
		"messages/_10/messages.json": `[]`,
	})

	_, err := NewSummarizeCommand(filesystem.NewExportReader(root), domain.DefaultYearRange(), false, nil).
		Execute(context.Background())
	if !application.IsFatalPrecondition(err) {
		t.Errorf("expected fatal precondition, got %v", err)
	}
}
