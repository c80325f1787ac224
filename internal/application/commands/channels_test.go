package commands

import (
	"context"
	"testing"

	"chatstats/internal/application"
	"chatstats/internal/domain"
)

func TestListChannelsCommand(t *testing.T) {
	reader := &fakeReader{
		root:  "/export",
		names: map[string]string{"10": "general"},
		channels: []domain.Channel{
			{ID: 30, Path: "/export/messages/_30"},
			{ID: 10, Path: "/export/messages/_10"},
		},
	}

	infos, err := NewListChannelsCommand(reader).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(infos))
	}
	if infos[0].ID != 10 || infos[0].Name != "general" || !infos[0].Indexed {
		t.Errorf("unexpected first channel: %+v", infos[0])
	}
	if infos[1].ID != 30 || infos[1].Name != domain.UnknownChannelName || infos[1].Indexed {
		t.Errorf("unexpected second channel: %+v", infos[1])
	}
}

func TestListChannelsCommand_MissingIndex(t *testing.T) {
	reader := &fakeReader{root: "/export", noIndex: true}
	_, err := NewListChannelsCommand(reader).Execute(context.Background())
	if !application.IsFatalPrecondition(err) {
		t.Errorf("expected fatal precondition, got %v", err)
	}
}
