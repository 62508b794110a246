package llmHandlers

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestExecuteTools_DispatchAndMissing(t *testing.T) {
	RegisterTool("echo", func(ctx context.Context, input map[string]interface{}) (interface{}, error) {
		return input["msg"], nil
	})
	RegisterTool("boom", func(ctx context.Context, input map[string]interface{}) (interface{}, error) {
		return nil, fmt.Errorf("handler failed")
	})
	defer UnregisterTool("echo")
	defer UnregisterTool("boom")

	results := ExecuteTools(context.Background(), []ToolCall{
		{ID: "1", Name: "echo", Input: map[string]interface{}{"msg": "hello"}},
		{ID: "2", Name: "boom", Input: nil},
		{ID: "3", Name: "missing", Input: nil},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Output != "hello" || results[0].Error != nil {
		t.Errorf("echo: got output %v, err %v", results[0].Output, results[0].Error)
	}
	if results[1].Error == nil {
		t.Errorf("boom: expected handler error")
	}
	if results[2].Error == nil || !strings.Contains(results[2].Error.Error(), "unknown tool") {
		t.Errorf("missing: expected unknown tool error, got %v", results[2].Error)
	}
}

func TestFormatAnthropicToolResult(t *testing.T) {
	t.Run("success marshals output", func(t *testing.T) {
		block := FormatAnthropicToolResult(ToolResult{
			Call:   ToolCall{ID: "call-1"},
			Output: map[string]interface{}{"count": 2},
		})
		if block["tool_use_id"] != "call-1" {
			t.Errorf("tool_use_id = %v", block["tool_use_id"])
		}
		content, _ := block["content"].(string)
		if !strings.Contains(content, `"count":2`) {
			t.Errorf("content = %q", content)
		}
		if _, flagged := block["is_error"]; flagged {
			t.Errorf("success result carried is_error")
		}
	})

	t.Run("error sets is_error", func(t *testing.T) {
		block := FormatAnthropicToolResult(ToolResult{
			Call:  ToolCall{ID: "call-2"},
			Error: fmt.Errorf("no shape matches"),
		})
		if block["is_error"] != true {
			t.Errorf("expected is_error true")
		}
		if block["content"] != "no shape matches" {
			t.Errorf("content = %v", block["content"])
		}
	})

	t.Run("image output becomes image block", func(t *testing.T) {
		block := FormatAnthropicToolResult(ToolResult{
			Call: ToolCall{ID: "call-3"},
			Output: map[string]interface{}{
				"_imageContent": true,
				"image":         "aGVsbG8=",
				"format":        "png",
			},
		})
		blocks, ok := block["content"].([]map[string]interface{})
		if !ok || len(blocks) != 1 {
			t.Fatalf("expected one content block, got %v", block["content"])
		}
		source, _ := blocks[0]["source"].(map[string]interface{})
		if source["media_type"] != "image/png" || source["data"] != "aGVsbG8=" {
			t.Errorf("source = %v", source)
		}
	})
}
