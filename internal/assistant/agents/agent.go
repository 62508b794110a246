package agents

import (
	"context"
	"fmt"
	"log"
	"os"

	"sketchdeck-backend/internal/assistant/helpers"
	"sketchdeck-backend/internal/assistant/prompts"
	"sketchdeck-backend/internal/assistant/tools"
	"sketchdeck-backend/internal/canvas/command"
	llmHandlers "sketchdeck-backend/internal/llm_handlers"
	"sketchdeck-backend/internal/models"
	"sketchdeck-backend/internal/repo"

	"github.com/google/uuid"
)

type Agent struct {
	llmClient llmHandlers.Client
	shapeRepo repo.ShapeRepoInterface
}

func NewAgent(provider string, shapeRepo repo.ShapeRepoInterface) *Agent {
	var cfg llmHandlers.Config

	switch provider {
	case "openai":
		cfg = llmHandlers.Config{
			Provider: llmHandlers.ProviderLangChainOpenAI,
			Model:    "gpt-4.1",
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			Tools:    tools.GetOpenAITools(),
		}

	case "groq":
		cfg = llmHandlers.Config{
			Provider: llmHandlers.ProviderLangChainGroq,
			Model:    os.Getenv("GROQ_MODEL_NAME"),
			BaseURL:  os.Getenv("GROQ_BASE_URL"),
			APIKey:   os.Getenv("GROQ_API_KEY"),
			Tools:    tools.GetGroqTools(),
		}

	case "vertex_anthropic":
		cfg = llmHandlers.Config{
			Provider: llmHandlers.ProviderVertexAnthropic,
			Tools:    tools.GetAnthropicTools(),
		}

	case "gemini":
		cfg = llmHandlers.Config{
			Provider: llmHandlers.ProviderGemini,
			Tools:    tools.GetGeminiTools(),
		}

	default:
		log.Fatalf("Unknown provider: %s. Valid options: openai, groq, vertex_anthropic, gemini", provider)
	}

	llmClient, err := llmHandlers.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client (%s): %v", provider, err)
	}

	return &Agent{
		llmClient: llmClient,
		shapeRepo: shapeRepo,
	}
}

// ProcessRequest rewrites relative references in the message, then runs it
// through the LLM with the board's tools available.
func (a *Agent) ProcessRequest(ctx context.Context, message string, chatHistory []llmHandlers.Message, boardId string, viewport command.Viewport) (string, error) {
	systemMessage := fmt.Sprintf(prompts.MASTER_PROMPT, boardId)

	rewritten := a.preprocess(ctx, message, boardId, viewport)

	// Attach the latest board render when one exists so vision-capable
	// providers see what the user sees.
	var userContent interface{} = rewritten
	if imageData, err := os.ReadFile("temp/images/" + boardId + ".png"); err == nil {
		userContent = helpers.FormatMessageWithImage(rewritten, imageData)
	}

	messages := []llmHandlers.Message{}
	if len(chatHistory) > 0 {
		messages = append(messages, chatHistory...)
	}
	messages = append(messages, llmHandlers.Message{
		Role:    models.RoleUser,
		Content: userContent,
	})

	response, err := a.llmClient.Chat(ctx, systemMessage, messages)
	if err != nil {
		return "", fmt.Errorf("LLM chat error: %w", err)
	}

	return response, nil
}

// preprocess turns "move the circle to the center" style commands into
// absolute ones before the model sees them. Falls back to the original text
// when the snapshot is unavailable.
func (a *Agent) preprocess(ctx context.Context, message, boardId string, viewport command.Viewport) string {
	shapes, err := snapshotFor(a.shapeRepo, boardId)
	if err != nil {
		log.Printf("preprocess: snapshot unavailable for board %s: %v", boardId, err)
		return message
	}

	cls := command.Classify(message)
	result := command.Preprocess(message, viewport, shapes)
	if result.Intent != "passthrough" {
		log.Printf("preprocess: %s command rewritten (%s): %q -> %q", cls.Complexity, result.Intent, message, result.Rewritten)
	}
	return result.Rewritten
}

func snapshotFor(shapeRepo repo.ShapeRepoInterface, boardId string) ([]models.Shape, error) {
	boardUUID, err := uuid.Parse(boardId)
	if err != nil {
		return nil, err
	}
	return shapeRepo.GetShapes(boardUUID)
}
