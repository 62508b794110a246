package helpers

import (
	"encoding/base64"
)

// FormatMessageWithImage builds a mixed text+image content array in the
// Anthropic block format; provider clients convert it to their own shape.
func FormatMessageWithImage(text string, imageData []byte) interface{} {
	imageBase64 := base64.StdEncoding.EncodeToString(imageData)

	return []map[string]interface{}{
		{
			"type": "text",
			"text": text,
		},
		{
			"type": "image",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": "image/png",
				"data":       imageBase64,
			},
		},
	}
}
