package tools

// Tool schemas in Anthropic format. OpenAI-compatible providers get the same
// schemas wrapped through toOpenAITool.

func GetAnthropicTools() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"name":        "getBoardShapes",
			"description": "Returns every shape on the board ordered back to front, with id, type, position, size, fill and zIndex.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId": boardIdProp(),
				},
				"required": []string{"boardId"},
			},
		},
		{
			"name":        "getBoardData",
			"description": "Retrieves the current board as an image. Returns the base64 encoded PNG of the board.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId": boardIdProp(),
				},
				"required": []string{"boardId"},
			},
		},
		{
			"name":        "createShape",
			"description": "Creates one shape. Omitted dimensions get sensible defaults; an omitted position places the shape at the canvas center. Color accepts names, hex, rgb() and hsl().",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId": boardIdProp(),
					"type": map[string]interface{}{
						"type":        "string",
						"description": "rectangle, square, circle, triangle, or text",
					},
					"color":       map[string]interface{}{"type": "string"},
					"x":           map[string]interface{}{"type": "number"},
					"y":           map[string]interface{}{"type": "number"},
					"width":       map[string]interface{}{"type": "number"},
					"height":      map[string]interface{}{"type": "number"},
					"radius":      map[string]interface{}{"type": "number"},
					"text":        map[string]interface{}{"type": "string"},
					"fontSize":    map[string]interface{}{"type": "number"},
					"stroke":      map[string]interface{}{"type": "string"},
					"strokeWidth": map[string]interface{}{"type": "number"},
					"rotation":    map[string]interface{}{"type": "number"},
				},
				"required": []string{"boardId", "type", "color"},
			},
		},
		{
			"name":        "createShapes",
			"description": "Creates several shapes at once, arranged vertically, horizontally, or in a grid. Use this for 'a row of', 'a stack of', or 'a 3x3 grid of' requests.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId": boardIdProp(),
					"shapes": map[string]interface{}{
						"type":        "array",
						"description": "Shape specs, same fields as createShape minus boardId/x/y.",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"type":   map[string]interface{}{"type": "string"},
								"color":  map[string]interface{}{"type": "string"},
								"width":  map[string]interface{}{"type": "number"},
								"height": map[string]interface{}{"type": "number"},
								"radius": map[string]interface{}{"type": "number"},
								"text":   map[string]interface{}{"type": "string"},
							},
							"required": []string{"type", "color"},
						},
					},
					"direction": map[string]interface{}{
						"type":        "string",
						"description": "vertical, horizontal, or grid",
					},
					"originX": map[string]interface{}{"type": "number"},
					"originY": map[string]interface{}{"type": "number"},
					"spacing": map[string]interface{}{"type": "number"},
					"rows":    map[string]interface{}{"type": "number"},
					"cols":    map[string]interface{}{"type": "number"},
				},
				"required": []string{"boardId", "shapes", "direction"},
			},
		},
		{
			"name":        "identifyShapes",
			"description": "Resolves a natural-language descriptor like 'the blue circle' or 'all red shapes' to concrete shapes. Use mode 'all' when the user says all or every.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId":    boardIdProp(),
					"descriptor": map[string]interface{}{"type": "string"},
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "'one' (default) or 'all'",
					},
				},
				"required": []string{"boardId", "descriptor"},
			},
		},
		{
			"name":        "moveShape",
			"description": "Moves a shape to an absolute position. Identify the shape by id or descriptor.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId":    boardIdProp(),
					"shapeId":    map[string]interface{}{"type": "string"},
					"descriptor": map[string]interface{}{"type": "string"},
					"x":          map[string]interface{}{"type": "number"},
					"y":          map[string]interface{}{"type": "number"},
				},
				"required": []string{"boardId", "x", "y"},
			},
		},
		{
			"name":        "resizeShape",
			"description": "Resizes a shape. Provide radius for circles, width/height for everything else.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId":    boardIdProp(),
					"shapeId":    map[string]interface{}{"type": "string"},
					"descriptor": map[string]interface{}{"type": "string"},
					"width":      map[string]interface{}{"type": "number"},
					"height":     map[string]interface{}{"type": "number"},
					"radius":     map[string]interface{}{"type": "number"},
				},
				"required": []string{"boardId"},
			},
		},
		{
			"name":        "recolorShape",
			"description": "Changes a shape's fill color.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId":    boardIdProp(),
					"shapeId":    map[string]interface{}{"type": "string"},
					"descriptor": map[string]interface{}{"type": "string"},
					"color":      map[string]interface{}{"type": "string"},
				},
				"required": []string{"boardId", "color"},
			},
		},
		{
			"name":        "rotateShape",
			"description": "Rotates a shape to an absolute angle in degrees.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId":    boardIdProp(),
					"shapeId":    map[string]interface{}{"type": "string"},
					"descriptor": map[string]interface{}{"type": "string"},
					"rotation":   map[string]interface{}{"type": "number"},
				},
				"required": []string{"boardId", "rotation"},
			},
		},
		{
			"name":        "deleteShapes",
			"description": "Deletes every shape matching a descriptor. 'all red circles' deletes each of them.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId":    boardIdProp(),
					"descriptor": map[string]interface{}{"type": "string"},
				},
				"required": []string{"boardId", "descriptor"},
			},
		},
		{
			"name":        "reorderShape",
			"description": "Changes paint order. Operations: bring_to_front, send_to_back, bring_forward, send_backward, renormalize.",
			"input_schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"boardId":    boardIdProp(),
					"shapeId":    map[string]interface{}{"type": "string"},
					"descriptor": map[string]interface{}{"type": "string"},
					"operation":  map[string]interface{}{"type": "string"},
				},
				"required": []string{"boardId", "operation"},
			},
		},
	}
}

func boardIdProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "The uuid of the board (e.g., '123e4567-e89b-12d3-a456-426614174000')",
	}
}

// toOpenAITool wraps an Anthropic schema in the OpenAI function-calling shape.
func toOpenAITool(t map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type": "function",
		"function": map[string]interface{}{
			"name":        t["name"],
			"description": t["description"],
			"parameters":  t["input_schema"],
		},
	}
}

func GetOpenAITools() []map[string]interface{} {
	anthropic := GetAnthropicTools()
	out := make([]map[string]interface{}, 0, len(anthropic))
	for _, t := range anthropic {
		out = append(out, toOpenAITool(t))
	}
	return out
}

// GetGeminiTools returns tool definitions in Gemini function calling format
func GetGeminiTools() []map[string]interface{} {
	return GetOpenAITools()
}

// Groq tool format is the same as OpenAI's
func GetGroqTools() []map[string]interface{} {
	return GetOpenAITools()
}
