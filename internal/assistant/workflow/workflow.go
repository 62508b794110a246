package workflow

import (
	"context"
	"log"
	"os"
	"time"

	"sketchdeck-backend/internal/assistant/agents"
	"sketchdeck-backend/internal/canvas/command"
	"sketchdeck-backend/internal/libraries"
	"sketchdeck-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const chatHistorySize = 20

// Workflow drives one chat turn: preprocess, agent call, persistence, and the
// websocket lifecycle events around it.
type Workflow struct {
	chatRepo  repo.ChatRepoInterface
	shapeRepo repo.ShapeRepoInterface
	provider  string
}

func NewWorkflow(chatRepo repo.ChatRepoInterface, shapeRepo repo.ShapeRepoInterface) *Workflow {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "vertex_anthropic"
	}
	return &Workflow{
		chatRepo:  chatRepo,
		shapeRepo: shapeRepo,
		provider:  provider,
	}
}

// TriggerChatWorkflow handles POST /boards/:boardId/chat.
func (w *Workflow) TriggerChatWorkflow(c *fiber.Ctx) error {
	boardId := c.Params("boardId")

	var dto struct {
		Message  string           `json:"message"`
		Viewport command.Viewport `json:"viewport"`
	}

	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if dto.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message cannot be empty",
		})
	}

	boardUUID, err := uuid.Parse(boardId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board ID",
		})
	}

	aiResponse, humanId, aiId, err := w.runTurn(c.Context(), boardUUID, dto.Message, dto.Viewport)
	if err != nil {
		log.Printf("Error processing request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	return c.JSON(fiber.Map{
		"message":          aiResponse,
		"human_message_id": humanId.String(),
		"ai_message_id":    aiId.String(),
	})
}

// ProcessChatMessage implements libraries.ChatMessageProcessor for the
// websocket path.
func (w *Workflow) ProcessChatMessage(hub *libraries.Hub, client *libraries.Client, boardId string, message *libraries.ChatMessagePayload) {
	boardUUID, err := uuid.Parse(boardId)
	if err != nil {
		libraries.SendErrorMessage(hub, client, "Invalid board ID")
		return
	}

	libraries.SendEventType(hub, client, libraries.WebSocketMessageTypeChatStarting)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	aiResponse, humanId, aiId, err := w.runTurn(ctx, boardUUID, message.Message, command.Viewport{})
	if err != nil {
		log.Printf("chat workflow error for board %s: %v", boardId, err)
		libraries.SendErrorMessage(hub, client, "Failed to process message")
		libraries.SendEventType(hub, client, libraries.WebSocketMessageTypeChatCompleted)
		return
	}

	libraries.SendChatMessageResponse(hub, client, libraries.WebSocketMessageTypeChatResponse, &libraries.ChatMessageResponsePayload{
		BoardId:        boardId,
		Message:        aiResponse,
		HumanMessageId: humanId.String(),
		AiMessageId:    aiId.String(),
	})
	libraries.SendEventType(hub, client, libraries.WebSocketMessageTypeChatCompleted)
}

// runTurn runs the agent and persists both sides of the exchange.
func (w *Workflow) runTurn(ctx context.Context, boardUUID uuid.UUID, message string, viewport command.Viewport) (string, uuid.UUID, uuid.UUID, error) {
	chatHistory, err := w.chatRepo.GetChatHistory(boardUUID, chatHistorySize)
	if err != nil {
		log.Printf("chat history unavailable for board %s: %v", boardUUID, err)
		chatHistory = nil
	}

	agent := agents.NewAgent(w.provider, w.shapeRepo)
	aiResponse, err := agent.ProcessRequest(ctx, message, chatHistory, boardUUID.String(), viewport)
	if err != nil {
		return "", uuid.Nil, uuid.Nil, err
	}

	humanId, aiId, err := w.chatRepo.CreateHumanAndAiMessages(boardUUID, message, aiResponse)
	if err != nil {
		return "", uuid.Nil, uuid.Nil, err
	}

	return aiResponse, humanId, aiId, nil
}
