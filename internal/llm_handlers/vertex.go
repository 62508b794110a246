package llmHandlers

import (
	"context"
	"strings"
)

// VertexAnthropicClient implements Client over Claude on Vertex AI, running
// the registry-backed tool loop on every chat.
type VertexAnthropicClient struct {
	Tools []map[string]interface{} // tool schemas advertised to Claude
}

func NewVertexAnthropicClient(tools []map[string]interface{}) *VertexAnthropicClient {
	return &VertexAnthropicClient{Tools: tools}
}

// Chat returns a single string answer (convenience wrapper).
func (c *VertexAnthropicClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	resp, err := ChatWithTools(ctx, systemMessage, messages, c.Tools)
	if err != nil {
		return "", err
	}
	return strings.Join(resp.TextContent, "\n\n"), nil
}
