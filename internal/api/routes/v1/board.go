package v1

import (
	"sketchdeck-backend/internal/config"
	"sketchdeck-backend/internal/handlers"
	"sketchdeck-backend/internal/libraries"
	"sketchdeck-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerBoard(r fiber.Router) {
	// Initialize handler
	boardRepo := repo.NewBoardRepository(config.DB)
	shapeRepo := repo.NewShapeRepository(config.DB)
	boardHandler := handlers.NewBoardHandler(boardRepo, shapeRepo, libraries.GetClients())

	// Register routes
	r.Get("/boards", boardHandler.GetAllBoards)
	r.Post("/boards", boardHandler.CreateBoard)
	r.Get("/boards/:boardId", boardHandler.GetBoardByID)
	r.Post("/boards/:boardId/save", boardHandler.SaveData)
	r.Delete("/boards/:boardId/clear", boardHandler.ClearBoard)
}
