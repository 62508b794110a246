package repo

import (
	"time"

	"sketchdeck-backend/internal/models"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

// BoardRepo represents the repository for the board model
type BoardRepo struct {
	db *gorm.DB
}

type BoardRepoInterface interface {
	CreateBoard(board *models.Board) (uuid.UUID, error)
	GetAllBoards() ([]models.Board, error)
	SetThumbnail(boardID uuid.UUID, url string) error
}

func NewBoardRepository(db *gorm.DB) BoardRepoInterface {
	return &BoardRepo{db: db}
}

// CreateBoard creates a new board in the database
func (r *BoardRepo) CreateBoard(board *models.Board) (uuid.UUID, error) {
	id := uuid.New()
	board.UUID = id
	board.CreatedAt = time.Now()
	board.UpdatedAt = time.Now()
	err := r.db.Create(board).Error
	return id, err
}

// GetAllBoards returns all boards in the database
func (r *BoardRepo) GetAllBoards() ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Find(&boards).Error
	return boards, err
}

// SetThumbnail stores the latest thumbnail URL for a board
func (r *BoardRepo) SetThumbnail(boardID uuid.UUID, url string) error {
	return r.db.Model(&models.Board{}).Where("uuid = ?", boardID).
		Updates(map[string]any{"thumbnail": url, "updated_at": time.Now()}).Error
}
