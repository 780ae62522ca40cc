package mcp

import (
	"context"
	"testing"

	"github.com/antgroup/ragqa/utils/json"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, s *Server) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "ragqa-test", Version: "0.0.1"}
	res, err := c.Initialize(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "ragqa", res.ServerInfo.Name)
	return c
}

func TestClientListsTools(t *testing.T) {
	s, err := New(&fakeAsker{result: okResult()}, &fakeEvaluator{})
	require.NoError(t, err)
	c := connect(t, s)

	tools, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolAsk, ToolEvaluate}, names)
}

func TestClientListsOnlyAskWithoutEvaluator(t *testing.T) {
	s, err := New(&fakeAsker{result: okResult()}, nil)
	require.NoError(t, err)
	c := connect(t, s)

	tools, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, ToolAsk, tools.Tools[0].Name)
}

func TestClientCallsAsk(t *testing.T) {
	asker := &fakeAsker{result: okResult()}
	evaluator := &fakeEvaluator{}
	s, err := New(asker, evaluator)
	require.NoError(t, err)
	c := connect(t, s)

	res, err := c.CallTool(context.Background(), call(ToolAsk, map[string]any{"question": "几点开门？"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var out AskOutput
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, "九点。", out.Answer)
	assert.Equal(t, []string{"九点开门。"}, out.Contexts)
	assert.Equal(t, "几点开门？", asker.asked)
	assert.Equal(t, 1, evaluator.calls)
}
