package llmHandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ToolHandler is the function signature for tool handlers.
// Input is the tool input as map[string]interface{} and it returns any result or an error.
type ToolHandler func(ctx context.Context, input map[string]interface{}) (interface{}, error)

// toolHandlers is the registry that maps tool name -> handler.
var (
	toolHandlersMu sync.RWMutex
	toolHandlers   = make(map[string]ToolHandler)
)

// RegisterTool registers a ToolHandler under the given name.
// If a handler already exists, it will be overwritten.
func RegisterTool(name string, h ToolHandler) {
	toolHandlersMu.Lock()
	defer toolHandlersMu.Unlock()
	toolHandlers[name] = h
}

// UnregisterTool removes a registered tool handler.
func UnregisterTool(name string) {
	toolHandlersMu.Lock()
	defer toolHandlersMu.Unlock()
	delete(toolHandlers, name)
}

func getToolHandler(name string) (ToolHandler, bool) {
	toolHandlersMu.RLock()
	defer toolHandlersMu.RUnlock()
	h, ok := toolHandlers[name]
	return h, ok
}

// ToolCall is a provider-neutral tool invocation parsed from a model response.
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// ToolResult pairs a call with its outcome.
type ToolResult struct {
	Call   ToolCall
	Output interface{}
	Error  error
}

// ExecuteTools dispatches every call through the registry. A missing handler
// becomes an error result rather than aborting the batch: the model needs a
// tool_result for every tool_use it issued.
func ExecuteTools(ctx context.Context, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, 0, len(calls))
	for _, call := range calls {
		handler, ok := getToolHandler(call.Name)
		if !ok {
			results = append(results, ToolResult{
				Call:  call,
				Error: fmt.Errorf("unknown tool: %s", call.Name),
			})
			continue
		}
		out, err := handler(ctx, call.Input)
		results = append(results, ToolResult{Call: call, Output: out, Error: err})
	}
	return results
}

// FormatAnthropicToolResult renders one result as an Anthropic tool_result
// content block. Results carrying "_imageContent" become image blocks instead
// of inlined JSON.
func FormatAnthropicToolResult(r ToolResult) map[string]interface{} {
	block := map[string]interface{}{
		"type":        "tool_result",
		"tool_use_id": r.Call.ID,
	}
	if r.Error != nil {
		block["content"] = r.Error.Error()
		block["is_error"] = true
		return block
	}

	if out, ok := r.Output.(map[string]interface{}); ok {
		if flag, _ := out["_imageContent"].(bool); flag {
			image, _ := out["image"].(string)
			format, _ := out["format"].(string)
			if format == "" {
				format = "png"
			}
			block["content"] = []map[string]interface{}{
				{
					"type": "image",
					"source": map[string]interface{}{
						"type":       "base64",
						"media_type": "image/" + format,
						"data":       image,
					},
				},
			}
			return block
		}
	}

	content, err := json.Marshal(r.Output)
	if err != nil {
		block["content"] = fmt.Sprintf("%v", r.Output)
		return block
	}
	block["content"] = string(content)
	return block
}
