package v1

import (
	"sketchdeck-backend/internal/assistant/workflow"
	"sketchdeck-backend/internal/config"
	"sketchdeck-backend/internal/handlers"
	"sketchdeck-backend/internal/libraries"
	"sketchdeck-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

// ChatRoutes is the group of routes for the chat API.
func registerChat(app fiber.Router) {
	chatRepo := repo.NewChatRepository(config.DB)
	shapeRepo := repo.NewShapeRepository(config.DB)
	chatHandler := handlers.NewChatHandler(chatRepo)
	chatWorkflow := workflow.NewWorkflow(chatRepo, shapeRepo)

	app.Post("/chat/:boardId", chatWorkflow.TriggerChatWorkflow)
	app.Get("/chat/:boardId", chatHandler.GetChatsByBoardId)

	// Use the Hub-based WebSocket handler
	app.Get("/ws", libraries.WebSocketHandler(hub, chatWorkflow))
}
