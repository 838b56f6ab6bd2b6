package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc"
)

var testClientImpl = &mcp.Implementation{Name: "gocalc-test-client", Version: "1.0.0"}

func connect(t *testing.T, defaults Defaults) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	serverT, clientT := mcp.NewInMemoryTransports()
	srv := NewServer("gocalc-test", defaults, nil)
	ss, err := srv.Connect(ctx, serverT)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(testClientImpl, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callText(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (map[string]any, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t, Defaults{})
	tools, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, spec := range gocalc.ToolSpecs() {
		assert.True(t, names[spec.Name], "missing tool %s", spec.Name)
	}
}

func TestCallEvaluate(t *testing.T) {
	cs := connect(t, Defaults{})
	out, isErr := callText(t, cs, "evaluate", map[string]any{"expression": "2(3+4)"})
	assert.False(t, isErr)
	assert.Equal(t, "14", out["string"])
}

func TestCallEvaluate_DefaultAngle(t *testing.T) {
	cs := connect(t, Defaults{Angle: gocalc.Degrees})
	out, _ := callText(t, cs, "evaluate", map[string]any{"expression": "cos(60)"})
	assert.Equal(t, "0.5", out["string"])

	out, _ = callText(t, cs, "evaluate", map[string]any{"expression": "cos(pi)", "angle": "rad"})
	assert.Equal(t, "-1", out["string"])
}

func TestCallSolveEquation(t *testing.T) {
	cs := connect(t, Defaults{})
	out, isErr := callText(t, cs, "solve_equation", map[string]any{"equation": "x^2+1=0"})
	assert.False(t, isErr)
	assert.Equal(t, "x = i, -i", out["string"])
}

func TestCallError(t *testing.T) {
	cs := connect(t, Defaults{})
	out, isErr := callText(t, cs, "evaluate", map[string]any{"expression": "2+"})
	assert.True(t, isErr)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "parse error")
}
