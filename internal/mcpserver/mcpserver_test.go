package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/comigor/journey-go/internal/journey"
	"github.com/comigor/journey-go/internal/view"
	"github.com/comigor/journey-go/pkg/tools"
)

type constGateway string

func (g constGateway) Generate(context.Context, string) (string, error) { return string(g), nil }

func manager() *tools.ToolManager {
	mgr := tools.NewToolManager()
	tools.RegisterJourneyTools(mgr, view.New(constGateway("Menurut gue lo udah bener."), journey.NewMemoryStore()))
	return mgr
}

func call(t *testing.T, mgr *tools.ToolManager, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool, err := mgr.GetTool(name)
	require.NoError(t, err)
	def, handler := Adapt(tool)
	require.Equal(t, name, def.Name)

	res, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestAdapt_Schema(t *testing.T) {
	tool, err := manager().GetTool("write_draft")
	require.NoError(t, err)
	def, _ := Adapt(tool)
	require.Contains(t, def.InputSchema.Properties, "text")
	require.Equal(t, []string{"text"}, def.InputSchema.Required)
}

func TestAdapt_SubmitStory(t *testing.T) {
	mgr := manager()
	call(t, mgr, "start_writing", nil)

	res := call(t, mgr, "submit_story", map[string]any{"text": "sampah numpuk di gang"})
	require.False(t, res.IsError)
	require.Equal(t, "Menurut gue lo udah bener.", text(t, res))
}

func TestAdapt_ErrorResult(t *testing.T) {
	res := call(t, manager(), "go_back", nil)
	require.True(t, res.IsError)
	require.Contains(t, text(t, res), "illegal transition")
}

func TestNew(t *testing.T) {
	require.NotNil(t, New(manager(), "test"))
}
