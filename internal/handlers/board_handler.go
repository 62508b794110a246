package handlers

import (
	"bytes"
	"encoding/json"
	"log"

	"sketchdeck-backend/internal/canvas/mutation"
	"sketchdeck-backend/internal/libraries"
	"sketchdeck-backend/internal/models"
	"sketchdeck-backend/internal/repo"

	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
)

// for simple crud operations a service layer is not required
type BoardHandler struct {
	repo      repo.BoardRepoInterface
	shapeRepo repo.ShapeRepoInterface
	gcp       *libraries.Clients
}

func NewBoardHandler(boardRepo repo.BoardRepoInterface, shapeRepo repo.ShapeRepoInterface, gcp *libraries.Clients) *BoardHandler {
	return &BoardHandler{
		repo:      boardRepo,
		shapeRepo: shapeRepo,
		gcp:       gcp,
	}
}

// function to create a board
func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var dto struct {
		Title  string `json:"title"`
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	userID, err := uuid.Parse(dto.UserID)
	if err != nil {
		log.Println(err, "Error parsing user id")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	boardUUID, err := h.repo.CreateBoard(&models.Board{
		Title:  dto.Title,
		UserID: userID,
	})
	if err != nil {
		log.Println(err, "Error creating board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create board",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uuid":    boardUUID.String(),
		"message": "Board created successfully",
	})
}

// function to get all boards
func (h *BoardHandler) GetAllBoards(c *fiber.Ctx) error {
	boards, err := h.repo.GetAllBoards()
	if err != nil {
		log.Println(err, "Error getting boards")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get boards",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"boards": boards,
	})
}

// SaveData bulk-saves the frontend's shape state and optionally a rendered
// snapshot of the board (used as the thumbnail and the assistant's vision
// input).
func (h *BoardHandler) SaveData(c *fiber.Ctx) error {
	boardIdStr := c.Params("boardId")
	boardId, err := uuid.Parse(boardIdStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board ID",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}

	boardDataValues := form.Value["boardData"]
	if len(boardDataValues) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No board data provided",
		})
	}

	var shapes []models.Shape
	if err := json.Unmarshal([]byte(boardDataValues[0]), &shapes); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board data JSON",
		})
	}

	if len(shapes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No shapes provided",
		})
	}

	// Each save is an upsert keyed on the shape id.
	for _, shape := range shapes {
		if err := h.shapeRepo.ApplyMutation(boardId, mutation.Create(shape)); err != nil {
			log.Println(err, "Error saving shape data")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save shape data",
			})
		}
	}

	// Snapshot image: upload to GCS for the thumbnail and keep a local copy
	// for the assistant's getBoardData tool.
	files := form.File["image"]
	if len(files) > 0 {
		file := files[0]

		if err := c.SaveFile(file, "temp/images/"+boardId.String()+".png"); err != nil {
			log.Println(err, "Error saving image file")
		}

		if h.gcp != nil {
			f, err := file.Open()
			if err == nil {
				var buf bytes.Buffer
				if _, err := buf.ReadFrom(f); err == nil {
					url, err := h.gcp.UploadBoardThumbnail(c.Context(), boardId.String(), &buf)
					if err != nil {
						log.Println(err, "Error uploading thumbnail")
					} else if err := h.repo.SetThumbnail(boardId, url); err != nil {
						log.Println(err, "Error storing thumbnail url")
					}
				}
				f.Close()
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Data saved successfully",
	})
}

// function to get board by ID
func (h *BoardHandler) GetBoardByID(c *fiber.Ctx) error {
	boardIdStr := c.Params("boardId")
	boardId, err := uuid.Parse(boardIdStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board ID",
		})
	}

	shapes, err := h.shapeRepo.GetShapes(boardId)
	if err != nil {
		log.Println(err, "Error getting board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get board",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"board": shapes,
	})
}

// function to clear board
func (h *BoardHandler) ClearBoard(c *fiber.Ctx) error {
	boardIdStr := c.Params("boardId")
	boardId, err := uuid.Parse(boardIdStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board ID",
		})
	}

	if err := h.shapeRepo.ClearBoard(boardId); err != nil {
		log.Println(err, "Error clearing board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear board",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Board cleared successfully",
	})
}
