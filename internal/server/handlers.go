package server

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/greenscope/leaf-tools-mcp/internal/classify"
	"github.com/greenscope/leaf-tools-mcp/internal/filters"
	"github.com/greenscope/leaf-tools-mcp/internal/imaging"
	"github.com/greenscope/leaf-tools-mcp/internal/severity"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "leaf_classify", "filter_apply").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug().Str("tool", params.Name).Err(err).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "leaf_crop":
		return s.handleLeafCrop(args)

	// Classification
	case "leaf_classify":
		return s.handleLeafClassify(args)
	case "leaf_overlay":
		return s.handleLeafOverlay(args)

	// Severity Statistics
	case "severity_rollup":
		return s.handleSeverityRollup(args)
	case "severity_distribution":
		return s.handleSeverityDistribution(args)

	// Filter Bank
	case "filter_apply":
		return s.handleFilterApply(args)
	case "image_histogram":
		return s.handleImageHistogram(args)

	// Range Tuning
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// rangeTable resolves the optional "ranges" argument, falling back to the
// server's configured table.
func (s *Server) rangeTable(name string) (classify.RangeTable, error) {
	if name == "" {
		return s.ranges, nil
	}
	return classify.RangesByName(name)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type leafCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleLeafCrop(args json.RawMessage) (interface{}, error) {
	var a leafCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, imaging.Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}, a.Scale)
}

// === Classification Handlers ===

type leafClassifyArgs struct {
	Path   string `json:"path"`
	Ranges string `json:"ranges"`
}

// ClassifyResponse is the leaf_classify tool result: raw counts, derived
// percentages, and the severity bucket of the total affectation.
type ClassifyResponse struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	PixelCounts severity.Counts    `json:"pixel_counts"`
	Percentages severity.Breakdown `json:"percentages"`
	Bucket      string             `json:"bucket"`
}

func (s *Server) classifyPath(path, rangesName string) (*classify.Result, classify.RangeTable, error) {
	table, err := s.rangeTable(rangesName)
	if err != nil {
		return nil, nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := classify.Classify(img, table)
	if err != nil {
		return nil, nil, err
	}
	return res, table, nil
}

func (s *Server) handleLeafClassify(args json.RawMessage) (interface{}, error) {
	var a leafClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res, _, err := s.classifyPath(a.Path, a.Ranges)
	if err != nil {
		return nil, err
	}

	counts := severity.Counts{
		Healthy: res.Counts[classify.Healthy],
		Mild:    res.Counts[classify.Mild],
		Severe:  res.Counts[classify.Severe],
	}
	breakdown := severity.Summarize(counts)

	return &ClassifyResponse{
		Width:       res.Width,
		Height:      res.Height,
		PixelCounts: counts,
		Percentages: breakdown,
		Bucket:      severity.DefaultBoundaries().BucketOf(breakdown.TotalAffectation).String(),
	}, nil
}

type leafOverlayArgs struct {
	Path   string  `json:"path"`
	Ranges string  `json:"ranges"`
	Alpha  float64 `json:"alpha"`
}

// OverlayResponse is the leaf_overlay tool result.
type OverlayResponse struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	ImageBase64 string             `json:"image_base64"`
	MimeType    string             `json:"mime_type"`
	Percentages severity.Breakdown `json:"percentages"`
}

func (s *Server) handleLeafOverlay(args json.RawMessage) (interface{}, error) {
	var a leafOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Alpha == 0 {
		a.Alpha = classify.DefaultOverlayAlpha
	}

	res, _, err := s.classifyPath(a.Path, a.Ranges)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	overlay, err := classify.Overlay(img, res, a.Alpha)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(overlay)
	if err != nil {
		return nil, err
	}

	breakdown := severity.Summarize(severity.Counts{
		Healthy: res.Counts[classify.Healthy],
		Mild:    res.Counts[classify.Mild],
		Severe:  res.Counts[classify.Severe],
	})

	return &OverlayResponse{
		Width:       res.Width,
		Height:      res.Height,
		ImageBase64: encoded,
		MimeType:    "image/png",
		Percentages: breakdown,
	}, nil
}

// === Severity Statistics Handlers ===

type severityRollupArgs struct {
	Samples []severity.Sample `json:"samples"`
}

// RollupResponse is the severity_rollup tool result, groups sorted by
// (image_id, label) for stable output.
type RollupResponse struct {
	Groups []severity.GroupSummary `json:"groups"`
}

func (s *Server) handleSeverityRollup(args json.RawMessage) (interface{}, error) {
	var a severityRollupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	groups, err := severity.Rollup(a.Samples)
	if err != nil {
		return nil, err
	}

	out := make([]severity.GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ImageID != out[j].ImageID {
			return out[i].ImageID < out[j].ImageID
		}
		return out[i].Label < out[j].Label
	})

	return &RollupResponse{Groups: out}, nil
}

type severityDistributionArgs struct {
	Totals     []float64            `json:"totals"`
	Boundaries *severity.Boundaries `json:"boundaries"`
}

func (s *Server) handleSeverityDistribution(args json.RawMessage) (interface{}, error) {
	var a severityDistributionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	b := severity.DefaultBoundaries()
	if a.Boundaries != nil {
		b = *a.Boundaries
	}

	return severity.Distribution(a.Totals, b)
}

// === Filter Bank Handlers ===

type filterApplyArgs struct {
	Path   string `json:"path"`
	Filter string `json:"filter"`
	filters.Options
}

// FilterResponse is the filter_apply tool result.
type FilterResponse struct {
	Filter      string `json:"filter"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleFilterApply(args json.RawMessage) (interface{}, error) {
	var a filterApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	f, err := filters.Parse(a.Filter, a.Options)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	filtered, err := f.Apply(img)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(filtered)
	if err != nil {
		return nil, err
	}

	return &FilterResponse{
		Filter:      a.Filter,
		Width:       filtered.Bounds().Dx(),
		Height:      filtered.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return filters.Histogram(img), nil
}

// === Range Tuning Handlers ===

type dominantColorsArgs struct {
	Path   string          `json:"path"`
	Count  int             `json:"count"`
	Region *imaging.Region `json:"region"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = 10
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, a.Count, a.Region)
}
