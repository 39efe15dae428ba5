package mcptool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gosignal/signal"
)

func newAnalyzer() *signal.Analyzer {
	logger, _ := test.NewNullLogger()
	return signal.New(signal.WithLogger(logger))
}

func TestHandleToolCall(t *testing.T) {
	a := newAnalyzer()
	ctx := context.Background()

	resp := HandleToolCall(ctx, a, ToolRequest{Tool: ToolCalculateMetrics, Params: map[string]interface{}{"func_str": "rect(t)"}})
	require.Empty(t, resp.Error)
	res, ok := resp.Result.(signal.Result)
	require.True(t, ok)
	assert.Equal(t, "decaying", res.Regime)
	assert.Equal(t, "1", res.Energy.String())

	resp = HandleToolCall(ctx, a, ToolRequest{Tool: ToolCalculateMetrics, Params: map[string]interface{}{"func_str": "nope(t)"}})
	assert.Equal(t, "Invalid function string: name 'nope' is not defined", resp.Error)

	resp = HandleToolCall(ctx, a, ToolRequest{Tool: ToolCalculateMetricsBatch, Params: map[string]interface{}{
		"functions": []interface{}{"sin(t)", "nope(t)"},
	}})
	require.Empty(t, resp.Error)
	batch := resp.Result.(BatchResult)
	require.Len(t, batch.Results, 2)
	assert.Equal(t, "periodic", batch.Results[0].Regime)
	assert.NotEmpty(t, batch.Results[1].Error)

	resp = HandleToolCall(ctx, a, ToolRequest{Tool: ToolVocabulary})
	assert.Equal(t, signal.Names(), resp.Result)
}

func TestHandleToolCall_BadParams(t *testing.T) {
	a := newAnalyzer()
	tests := []struct {
		name string
		req  ToolRequest
		want string
	}{
		{"missing", ToolRequest{Tool: ToolCalculateMetrics}, "missing param: func_str"},
		{"wrong type", ToolRequest{Tool: ToolCalculateMetrics, Params: map[string]interface{}{"func_str": 3.0}}, "param func_str must be a string"},
		{"not array", ToolRequest{Tool: ToolCalculateMetricsBatch, Params: map[string]interface{}{"functions": "sin(t)"}}, "param functions must be array"},
		{"bad item", ToolRequest{Tool: ToolCalculateMetricsBatch, Params: map[string]interface{}{"functions": []interface{}{"sin(t)", 1.0}}}, "param functions[1] must be string"},
		{"unknown", ToolRequest{Tool: "integrate"}, "unknown tool: integrate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandleToolCall(context.Background(), a, tt.req).Error)
		})
	}
}

func TestToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(ToolSpec()), &spec))
	var names []string
	for _, tool := range spec.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{ToolCalculateMetrics, ToolCalculateMetricsBatch, ToolVocabulary, ToolSpecName}, names)
	assert.Equal(t, []string{"func_str"}, spec.Tools[0].InputSchema.Required)
}

func callTool(t *testing.T, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	logger, _ := test.NewNullLogger()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := Handler(newAnalyzer(), logger)(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestHandler(t *testing.T) {
	res := callTool(t, ToolCalculateMetrics, map[string]interface{}{"func_str": "sin(t)"})
	assert.False(t, res.IsError)
	var got signal.Result
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, "periodic", got.Regime)
	assert.Equal(t, "0.5", got.Power.String())

	res = callTool(t, ToolCalculateMetrics, map[string]interface{}{"func_str": "t**t"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "Failed to detect periodicity")

	res = callTool(t, ToolCalculateMetricsBatch, map[string]interface{}{"functions": []interface{}{"exp(t)", "rect(t)"}})
	assert.False(t, res.IsError)
	var batch BatchResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &batch))
	require.Len(t, batch.Results, 2)
	assert.Equal(t, "non-decaying", batch.Results[0].Regime)
	assert.Equal(t, "decaying", batch.Results[1].Regime)
}

func TestNewServer(t *testing.T) {
	logger, _ := test.NewNullLogger()
	assert.NotNil(t, NewServer(newAnalyzer(), "test", logger))
}
