// Package mcptool exposes the signal analyzer as agent tools, both as a
// JSON request/response dispatcher and as a stdio MCP server.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/njchilds90/gosignal/signal"
)

// Tool names.
const (
	ToolCalculateMetrics      = "calculate_metrics"
	ToolCalculateMetricsBatch = "calculate_metrics_batch"
	ToolVocabulary            = "vocabulary"
	ToolSpecName              = "mcp_spec"
)

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// BatchResult is the payload of calculate_metrics_batch.
type BatchResult struct {
	Results []signal.Result `json:"results"`
}

// HandleToolCall runs one tool against a. Analysis failures of
// calculate_metrics come back in Error; batch items carry their own errors.
func HandleToolCall(ctx context.Context, a *signal.Analyzer, req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch raw := v.(type) {
		case []string:
			return raw, nil
		case []interface{}:
			result := make([]string, len(raw))
			for i, r := range raw {
				s, ok := r.(string)
				if !ok {
					return nil, fmt.Errorf("param %s[%d] must be string", key, i)
				}
				result[i] = s
			}
			return result, nil
		}
		return nil, fmt.Errorf("param %s must be array", key)
	}

	switch req.Tool {
	case ToolCalculateMetrics:
		in, err := getString("func_str")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		res, err := a.Compute(ctx, in)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: res}

	case ToolCalculateMetricsBatch:
		ins, err := getStrings("functions")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: BatchResult{Results: a.AnalyzeBatch(ctx, ins)}}

	case ToolVocabulary:
		return ToolResponse{Result: signal.Names()}

	case ToolSpecName:
		return ToolResponse{Result: json.RawMessage(ToolSpec())}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool, for agent registration.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts(ToolCalculateMetrics, "Classify a signal f(t) and compute its period, energy, power and mean",
			[]string{"func_str"}, map[string]string{"func_str": "string"}),
		ts(ToolCalculateMetricsBatch, "Run calculate_metrics on several signals; results keep input order",
			[]string{"functions"}, map[string]string{"functions": "array"}),
		ts(ToolVocabulary, "List the names a signal expression may use", []string{}, map[string]string{}),
		ts(ToolSpecName, "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		p := map[string]interface{}{"type": typ}
		if typ == "array" {
			p["items"] = map[string]interface{}{"type": "string"}
		}
		properties[k] = p
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
