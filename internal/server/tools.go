package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "image_load",
			Description: "Load an image file and open it for color keeping. The working copy is scaled so its longer side matches the configured preview size; all pick coordinates refer to the working copy. Replaces any image opened before, discarding its picks.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (png, jpeg, gif or bmp)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file, or of the working copy of the open image when no path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path to an image file",
					},
				},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the original color at a pixel, as hex, RGB and HSL. Samples the open image's working copy unless a path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path to an image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"x", "y"},
			},
		},

		// Picks
		{
			Name:        "pick_add",
			Description: "Add a pick: pixels within the color allowance of the reference color and within range of the sample point keep their original color. The color defaults to the pixel under the sample point.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Sample point X coordinate in the working copy",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Sample point Y coordinate in the working copy",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Optional reference color as #RRGGBB",
					},
					"allowance": map[string]interface{}{
						"type":        "integer",
						"description": "Largest per-channel color difference to keep (0-255). Default 0",
						"minimum":     0,
						"maximum":     255,
					},
					"range": map[string]interface{}{
						"type":        "integer",
						"description": "Largest distance from the sample point to keep, where 10000 is the image diagonal. Default 2000",
						"minimum":     0,
						"maximum":     10000,
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "pick_activate",
			Description: "Make a pick the active pick so its thresholds can be edited.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Pick index (0-based, in the order picks were added)",
					},
				},
				"required": []string{"index"},
			},
		},
		{
			Name:        "pick_adjust",
			Description: "Shift the active pick's allowance and range by the given amounts. Results are clamped to their limits.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"allowance_delta": map[string]interface{}{
						"type":        "integer",
						"description": "Amount added to the allowance. Default 0",
					},
					"range_delta": map[string]interface{}{
						"type":        "integer",
						"description": "Amount added to the range. Default 0",
					},
				},
			},
		},
		{
			Name:        "pick_set_thresholds",
			Description: "Set the active pick's allowance and range. Omitted values stay as they are.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"allowance": map[string]interface{}{
						"type":        "integer",
						"description": "New allowance (0-255)",
					},
					"range": map[string]interface{}{
						"type":        "integer",
						"description": "New range (0-10000)",
					},
				},
			},
		},
		{
			Name:        "pick_remove",
			Description: "Remove a pick. Pixels no remaining pick keeps return to gray. Later picks shift down by one index and no pick stays active.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Pick index (0-based)",
					},
				},
				"required": []string{"index"},
			},
		},
		{
			Name:        "picks_clear",
			Description: "Remove every pick and return the whole image to gray.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "picks_list",
			Description: "List every pick with its thresholds, the number of pixels it keeps and whether it is active.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "picks_export",
			Description: "Export the picks as JSON, optionally writing them to a file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path of a .json file to write",
					},
				},
			},
		},
		{
			Name:        "picks_import",
			Description: "Replace the current picks with picks from picks_export, read from a file or given inline.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of a file written by picks_export",
					},
					"picks": map[string]interface{}{
						"type":        "array",
						"description": "Inline picks, used when no path is given",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":         map[string]interface{}{"type": "integer"},
								"y":         map[string]interface{}{"type": "integer"},
								"color":     map[string]interface{}{"type": "object"},
								"allowance": map[string]interface{}{"type": "integer"},
								"range":     map[string]interface{}{"type": "integer"},
							},
						},
					},
				},
			},
		},
		{
			Name:        "pick_measure_range",
			Description: "Measure how far a point is from a pick's sample point in range units, and whether it lies within the pick's range.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Pick index (0-based)",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Target X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Target Y coordinate",
					},
				},
				"required": []string{"index", "x", "y"},
			},
		},

		// Output
		{
			Name:        "display_get",
			Description: "Get the converted image as base64-encoded PNG, optionally with pick markers drawn on top.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw a range circle, threshold crosshair and index label for each pick. Default false",
						"default":     false,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
			},
		},
		{
			Name:        "display_save",
			Description: "Save the converted image. The format follows the file extension: .png, .jpg/.jpeg or .bmp.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute output path",
					},
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Include pick markers. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_bulk_keep",
			Description: "Convert an image file in one pass at full resolution: pixels within the allowance of any reference color keep their color, everything else turns gray. Spatial range is not used. Mode 'add' and 'revert' start from a previous result given as display_path and only revisit its gray or colored pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"references": map[string]interface{}{
						"type":        "array",
						"description": "Reference colors to keep",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"color": map[string]interface{}{
									"type":        "string",
									"description": "Color as #RRGGBB",
								},
								"allowance": map[string]interface{}{
									"type":        "integer",
									"description": "Largest per-channel difference (0-255)",
								},
							},
							"required": []string{"color"},
						},
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"full", "add", "revert"},
						"description": "Which pixels to revisit. Default full",
						"default":     "full",
					},
					"display_path": map[string]interface{}{
						"type":        "string",
						"description": "Previous result to continue from; required for add and revert",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to save the result; when omitted the result is returned as base64 PNG",
					},
				},
				"required": []string{"path", "references"},
			},
		},
	}
}
