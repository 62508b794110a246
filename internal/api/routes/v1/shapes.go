package v1

import (
	"sketchdeck-backend/internal/assistant/tools"
	"sketchdeck-backend/internal/canvas/history"
	"sketchdeck-backend/internal/config"
	"sketchdeck-backend/internal/handlers"
	"sketchdeck-backend/internal/libraries"
	"sketchdeck-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

var (
	hub     *libraries.Hub
	undoLog *history.Boards
)

func init() {
	// Shared across the shape and chat routes: one hub, one undo log.
	hub = libraries.NewHub()
	go hub.Run()
	undoLog = history.NewBoards(history.DefaultLimit)
}

func registerShapes(r fiber.Router) {
	shapeRepo := repo.NewShapeRepository(config.DB)
	shapeHandler := handlers.NewShapeHandler(shapeRepo, undoLog, hub)

	// The assistant's tools mutate through the same store, undo log and hub.
	tools.RegisterAllTools(tools.Deps{
		Shapes:  shapeRepo,
		History: undoLog,
		Hub:     hub,
	})

	r.Get("/boards/:boardId/shapes", shapeHandler.GetShapes)
	r.Post("/boards/:boardId/shapes", shapeHandler.CreateShape)
	r.Post("/boards/:boardId/shapes/arrange", shapeHandler.ArrangeShapes)
	r.Post("/boards/:boardId/shapes/identify", shapeHandler.IdentifyShapes)
	r.Post("/boards/:boardId/shapes/renormalize", shapeHandler.RenormalizeShapes)
	r.Patch("/boards/:boardId/shapes/:shapeId", shapeHandler.UpdateShape)
	r.Delete("/boards/:boardId/shapes/:shapeId", shapeHandler.DeleteShape)
	r.Post("/boards/:boardId/shapes/:shapeId/reorder", shapeHandler.ReorderShape)

	r.Post("/boards/:boardId/undo", shapeHandler.Undo)
	r.Post("/boards/:boardId/redo", shapeHandler.Redo)

	r.Post("/boards/:boardId/commands/preprocess", shapeHandler.PreprocessCommand)
}
