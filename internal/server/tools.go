package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func rangesProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"analyzer", "crop-mask", "live-view"},
		"description": "Named HSV range table to classify with. Defaults to the server's configured table.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "leaf_crop",
			Description: "Extract a detector bounding box from an image as a standalone crop, returned as base64 PNG. Use scale to zoom into small lesions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Classification
		{
			Name:        "leaf_classify",
			Description: "Classify every pixel of a leaf image into healthy/mild/severe via HSV ranges and return pixel counts, percentages, total affectation, and the severity bucket.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"ranges": rangesProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "leaf_overlay",
			Description: "Render a classification overlay: matched pixels tinted with their category color (green/yellow/brown), returned as base64 PNG together with the percentages.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"ranges": rangesProperty(),
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Blend weight for the category colors, in (0, 1]. Default 0.6",
						"default":     0.6,
					},
				},
				"required": []string{"path"},
			},
		},

		// Severity Statistics
		{
			Name:        "severity_rollup",
			Description: "Average classified crop percentages per (image_id, label) group. Label is the detector class of the crop, not a health category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"samples": map[string]interface{}{
						"type":        "array",
						"description": "Classified samples to group and average",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"image_id":          map[string]interface{}{"type": "integer"},
								"label":             map[string]interface{}{"type": "string"},
								"healthy":           map[string]interface{}{"type": "number"},
								"mild":              map[string]interface{}{"type": "number"},
								"severe":            map[string]interface{}{"type": "number"},
								"total_affectation": map[string]interface{}{"type": "number"},
							},
							"required": []string{"image_id", "label"},
						},
					},
				},
				"required": []string{"samples"},
			},
		},
		{
			Name:        "severity_distribution",
			Description: "Partition total-affectation percentages into severity bands (near-healthy <10, mild 10-30, moderate 30-70, severe >=70) and report counts and shares.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"totals": map[string]interface{}{
						"type":        "array",
						"description": "Total-affectation percentages, one per classified crop",
						"items":       map[string]interface{}{"type": "number"},
					},
					"boundaries": map[string]interface{}{
						"type":        "object",
						"description": "Optional custom band lower bounds. Default 10/30/70",
						"properties": map[string]interface{}{
							"mild_min":     map[string]interface{}{"type": "number"},
							"moderate_min": map[string]interface{}{"type": "number"},
							"severe_min":   map[string]interface{}{"type": "number"},
						},
					},
				},
				"required": []string{"totals"},
			},
		},

		// Filter Bank
		{
			Name:        "filter_apply",
			Description: "Apply a preprocessing or inspection filter (gaussian, mean, median, laplacian, sobel, prewitt) and return the filtered image as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gaussian", "mean", "median", "laplacian", "sobel", "prewitt"},
						"description": "Filter to apply",
					},
					"kernel_size": map[string]interface{}{
						"type":        "integer",
						"description": "Smoothing kernel size, >= 3; even sizes round up to the next odd. Default 5",
						"default":     5,
					},
					"sigma": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian standard deviation, > 0. Default 1.0",
						"default":     1.0,
					},
					"direction": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"x", "y", "both"},
						"description": "Gradient direction for sobel/prewitt. Default both",
						"default":     "both",
					},
					"connectivity": map[string]interface{}{
						"type":        "integer",
						"enum":        []int{4, 8},
						"description": "Laplacian kernel connectivity. Default 4",
						"default":     4,
					},
				},
				"required": []string{"path", "filter"},
			},
		},
		{
			Name:        "image_histogram",
			Description: "Compute a 256-bin intensity histogram per channel for visualization.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Range Tuning
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors of an image or region with their 8-bit HSV values, for tuning the classification range tables.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return. Default 10",
						"default":     10,
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region to analyze instead of the whole image",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
				"required": []string{"path"},
			},
		},
	}
}
