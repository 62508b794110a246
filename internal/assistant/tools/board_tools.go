package tools

import (
	"encoding/base64"
	"fmt"
	"os"
)

// GetBoardSnapshot returns the last rendered PNG of the board, base64-encoded.
// The frontend uploads a render on every save; see BoardHandler.SaveData.
func GetBoardSnapshot(boardId string) (map[string]interface{}, error) {
	imagePath := "temp/images/" + boardId + ".png"
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	imageBase64 := base64.StdEncoding.EncodeToString(imageData)
	return map[string]interface{}{
		"boardId": boardId,
		"image":   imageBase64,
		"format":  "png",
	}, nil
}
