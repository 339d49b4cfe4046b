package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/comigor/journey-go/internal/view"
)

// eventTool fires a parameterless machine event and reports the new state.
type eventTool struct {
	name        string
	description string
	machine     *view.Machine
	event       func(context.Context) error
}

func (t *eventTool) Name() string        { return t.name }
func (t *eventTool) Description() string { return t.description }
func (t *eventTool) Params() []Param     { return nil }

func (t *eventTool) Run(ctx context.Context, _ map[string]any) (string, error) {
	if err := t.event(ctx); err != nil {
		return "", err
	}
	return snapshotJSON(t.machine.Snapshot())
}

// WriteDraftTool replaces the draft on the composing screen.
type WriteDraftTool struct {
	machine *view.Machine
}

func (t *WriteDraftTool) Name() string { return "write_draft" }

func (t *WriteDraftTool) Description() string {
	return "Replaces the story being written. Call 'start_writing' first."
}

func (t *WriteDraftTool) Params() []Param {
	return []Param{{Name: "text", Description: "The resident's story or complaint.", Required: true}}
}

func (t *WriteDraftTool) Run(ctx context.Context, args map[string]any) (string, error) {
	text, ok := args["text"].(string)
	if !ok {
		return "", fmt.Errorf("argument 'text' must be a string")
	}
	if err := t.machine.SetDraft(ctx, text); err != nil {
		return "", err
	}
	return snapshotJSON(t.machine.Snapshot())
}

// SubmitStoryTool submits the draft and waits for the reply.
type SubmitStoryTool struct {
	machine *view.Machine
}

func (t *SubmitStoryTool) Name() string { return "submit_story" }

func (t *SubmitStoryTool) Description() string {
	return "Sends the current draft to the listener and returns the reply. When 'text' is given it replaces the draft first."
}

func (t *SubmitStoryTool) Params() []Param {
	return []Param{{Name: "text", Description: "Optional story to write before submitting."}}
}

func (t *SubmitStoryTool) Run(ctx context.Context, args map[string]any) (string, error) {
	if text, ok := args["text"].(string); ok && text != "" {
		if err := t.machine.SetDraft(ctx, text); err != nil {
			return "", err
		}
	}
	entry, err := t.machine.SubmitAndWait(ctx)
	if err != nil {
		return "", err
	}
	return entry.AIResponse, nil
}

// ViewStateTool reports the current screen.
type ViewStateTool struct {
	machine *view.Machine
}

func (t *ViewStateTool) Name() string { return "view_state" }
func (t *ViewStateTool) Description() string {
	return "Shows the current screen, draft and last reply."
}
func (t *ViewStateTool) Params() []Param { return nil }

func (t *ViewStateTool) Run(_ context.Context, _ map[string]any) (string, error) {
	return snapshotJSON(t.machine.Snapshot())
}

// ListEntriesTool returns the journey, newest first.
type ListEntriesTool struct {
	machine *view.Machine
}

func (t *ListEntriesTool) Name() string { return "list_entries" }
func (t *ListEntriesTool) Description() string {
	return "Lists every story of this session, newest first."
}
func (t *ListEntriesTool) Params() []Param { return nil }

func (t *ListEntriesTool) Run(ctx context.Context, _ map[string]any) (string, error) {
	entries, err := t.machine.Entries(ctx)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RegisterJourneyTools registers every tool driving m.
func RegisterJourneyTools(mgr *ToolManager, m *view.Machine) {
	mgr.RegisterTool(&eventTool{name: "start_writing", description: "Opens the writing screen from the landing screen.", machine: m, event: m.StartWriting})
	mgr.RegisterTool(&eventTool{name: "cancel_writing", description: "Closes the writing screen and discards the draft.", machine: m, event: m.Cancel})
	mgr.RegisterTool(&eventTool{name: "write_again", description: "From a reply, starts a new empty story.", machine: m, event: m.WriteAgain})
	mgr.RegisterTool(&eventTool{name: "go_back", description: "From a reply, returns to the landing screen.", machine: m, event: m.Back})
	mgr.RegisterTool(&WriteDraftTool{machine: m})
	mgr.RegisterTool(&SubmitStoryTool{machine: m})
	mgr.RegisterTool(&ViewStateTool{machine: m})
	mgr.RegisterTool(&ListEntriesTool{machine: m})
}

func snapshotJSON(s view.Snapshot) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
