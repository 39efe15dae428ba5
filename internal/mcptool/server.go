package mcptool

import (
	"context"
	"encoding/json"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/njchilds90/gosignal/signal"
)

// NewServer registers the analyzer tools on a fresh MCP server.
func NewServer(a *signal.Analyzer, version string, log logrus.FieldLogger) *server.MCPServer {
	s := server.NewMCPServer("gosignal", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool(ToolCalculateMetrics,
		mcp.WithDescription("Classify a signal f(t) as periodic, decaying or neither and compute its period, energy, power and mean."),
		mcp.WithString("func_str", mcp.Required(), mcp.Description("Signal expression in t, e.g. sin(t) or exp(-t)*u(t)")),
	), Handler(a, log))

	s.AddTool(mcp.NewTool(ToolCalculateMetricsBatch,
		mcp.WithDescription("Analyze several signals at once. Results keep input order; failures are reported per item."),
		mcp.WithArray("functions", mcp.Required(), mcp.Description("Signal expressions in t"), mcp.WithStringItems()),
	), Handler(a, log))

	s.AddTool(mcp.NewTool(ToolVocabulary,
		mcp.WithDescription("List the variable and function names a signal expression may use."),
	), Handler(a, log))

	return s
}

// Handler adapts HandleToolCall to an MCP tool handler. Tool failures are
// returned as tool errors carrying the diagnostic, not as protocol errors.
func Handler(a *signal.Analyzer, log logrus.FieldLogger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp := HandleToolCall(ctx, a, ToolRequest{Tool: req.Params.Name, Params: req.GetArguments()})
		if resp.Error != "" {
			log.WithFields(logrus.Fields{"tool": req.Params.Name}).Warn(resp.Error)
			return mcp.NewToolResultError(resp.Error), nil
		}
		b, err := json.Marshal(resp.Result)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

// ServeStdio serves s over in/out until ctx is done or in is closed.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}
