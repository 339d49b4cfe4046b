package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/journey-go/internal/journey"
	"github.com/comigor/journey-go/internal/view"
)

type echoGateway struct{}

func (echoGateway) Generate(_ context.Context, text string) (string, error) {
	return "Kayaknya lu menjiwai banget ya ceritanya: " + text, nil
}

func newManager(t *testing.T) *ToolManager {
	t.Helper()
	mgr := NewToolManager()
	RegisterJourneyTools(mgr, view.New(echoGateway{}, journey.NewMemoryStore()))
	return mgr
}

func run(t *testing.T, mgr *ToolManager, name string, args map[string]any) string {
	t.Helper()
	tool, err := mgr.GetTool(name)
	require.NoError(t, err)
	out, err := tool.Run(context.Background(), args)
	require.NoError(t, err, name)
	return out
}

func TestToolManager(t *testing.T) {
	mgr := newManager(t)
	names := []string{}
	for _, tool := range mgr.List() {
		names = append(names, tool.Name())
	}
	require.Equal(t, []string{
		"cancel_writing", "go_back", "list_entries", "start_writing",
		"submit_story", "view_state", "write_again", "write_draft",
	}, names)

	_, err := mgr.GetTool("home_assistant")
	require.Error(t, err)
}

func TestJourneyTools_Flow(t *testing.T) {
	mgr := newManager(t)

	var snap view.Snapshot
	require.NoError(t, json.Unmarshal([]byte(run(t, mgr, "start_writing", nil)), &snap))
	require.Equal(t, view.StateComposing, snap.State)

	reply := run(t, mgr, "submit_story", map[string]any{"text": "jalan berlubang"})
	require.Equal(t, "Kayaknya lu menjiwai banget ya ceritanya: jalan berlubang", reply)

	var entries []journey.Entry
	require.NoError(t, json.Unmarshal([]byte(run(t, mgr, "list_entries", nil)), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "jalan berlubang", entries[0].Text)

	run(t, mgr, "go_back", nil)
	require.Contains(t, run(t, mgr, "view_state", nil), `"state":"landing"`)
}

func TestJourneyTools_Errors(t *testing.T) {
	mgr := newManager(t)

	submit, err := mgr.GetTool("submit_story")
	require.NoError(t, err)
	_, err = submit.Run(context.Background(), nil)
	require.ErrorIs(t, err, view.ErrIllegalTransition)

	run(t, mgr, "start_writing", nil)
	_, err = submit.Run(context.Background(), map[string]any{"text": ""})
	require.ErrorIs(t, err, view.ErrBlankDraft)

	draft, err := mgr.GetTool("write_draft")
	require.NoError(t, err)
	_, err = draft.Run(context.Background(), map[string]any{"text": 42})
	require.Error(t, err)
}
