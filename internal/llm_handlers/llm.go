package llmHandlers

import (
	"context"

	"sketchdeck-backend/internal/models"
)

// Message represents one turn in the conversation. Content is a plain string
// for text or []map[string]interface{} for provider content blocks
// (tool results, images).
type Message struct {
	Role    models.Role
	Content interface{}
}

// Client is the provider-agnostic chat surface the agent talks to. Providers
// that support tool calling run their tool loop inside Chat and return the
// final text.
type Client interface {
	Chat(ctx context.Context, systemMessage string, messages []Message) (string, error)
}
