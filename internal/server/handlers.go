package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/ironsheep/makepure-mcp/internal/colorkeep"
	"github.com/ironsheep/makepure-mcp/internal/imaging"
	"github.com/ironsheep/makepure-mcp/internal/pixel"
)

// errNoImage is returned by tools that need an open image.
var errNoImage = errors.New("no image loaded: call image_load first")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "pick_add").
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
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.LogDebug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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
	// Image
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_bulk_keep":
		return s.handleImageBulkKeep(args)

	// Picks
	case "pick_add":
		return s.handlePickAdd(args)
	case "pick_activate":
		return s.handlePickActivate(args)
	case "pick_adjust":
		return s.handlePickAdjust(args)
	case "pick_set_thresholds":
		return s.handlePickSetThresholds(args)
	case "pick_remove":
		return s.handlePickRemove(args)
	case "picks_clear":
		return s.handlePicksClear(args)
	case "picks_list":
		return s.handlePicksList(args)
	case "picks_export":
		return s.handlePicksExport(args)
	case "picks_import":
		return s.handlePicksImport(args)
	case "pick_measure_range":
		return s.handlePickMeasureRange(args)

	// Output
	case "display_get":
		return s.handleDisplayGet(args)
	case "display_save":
		return s.handleDisplaySave(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// session returns the open session or errNoImage.
func (s *Server) session() (*colorkeep.Session, error) {
	if s.doc == nil {
		return nil, errNoImage
	}
	return s.doc.session, nil
}

// === Image Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

type loadResult struct {
	imaging.ImageInfo

	// WorkingWidth and WorkingHeight are the size of the copy picks refer to.
	WorkingWidth  int     `json:"working_width"`
	WorkingHeight int     `json:"working_height"`
	Scale         float64 `json:"scale"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	// Pick up edits made to the file since it was last read.
	s.cache.Evict(a.Path)
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	preview, err := imaging.Preview(img, s.cfg.PreviewMax)
	if err != nil {
		return nil, err
	}
	base, err := pixel.FromImage(preview.Image)
	if err != nil {
		return nil, err
	}
	sess, err := colorkeep.NewSession(base)
	if err != nil {
		return nil, err
	}

	s.doc = &document{path: a.Path, session: sess, scale: preview.Scale}
	if s.cfg.LogDebug {
		log.Printf("opened %s: %dx%d working %dx%d", a.Path, info.Width, info.Height, sess.Width(), sess.Height())
	}

	return &loadResult{
		ImageInfo:     *info,
		WorkingWidth:  sess.Width(),
		WorkingHeight: sess.Height(),
		Scale:         preview.Scale,
	}, nil
}

type dimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path != "" {
		info, err := imaging.LoadImageInfo(s.cache, a.Path)
		if err != nil {
			return nil, err
		}
		return &dimensionsResult{Width: info.Width, Height: info.Height}, nil
	}

	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	return &dimensionsResult{Width: sess.Width(), Height: sess.Height()}, nil
}

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var img image.Image
	if a.Path != "" {
		loaded, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		img = loaded
	} else {
		sess, err := s.session()
		if err != nil {
			return nil, err
		}
		img = sess.Base()
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type bulkReferenceArgs struct {
	Color     string `json:"color"`
	Allowance int    `json:"allowance"`
}

type bulkKeepArgs struct {
	Path        string              `json:"path"`
	References  []bulkReferenceArgs `json:"references"`
	Mode        string              `json:"mode"`
	DisplayPath string              `json:"display_path"`
	OutputPath  string              `json:"output_path"`
}

type bulkKeepResult struct {
	Width         int                   `json:"width"`
	Height        int                   `json:"height"`
	Mode          string                `json:"mode"`
	ColoredPixels int                   `json:"colored_pixels"`
	Saved         *imaging.SaveResult   `json:"saved,omitempty"`
	Image         *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageBulkKeep(args json.RawMessage) (interface{}, error) {
	var a bulkKeepArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mode, err := colorkeep.ParseBulkMode(a.Mode)
	if err != nil {
		return nil, err
	}

	refs := make([]colorkeep.Reference, len(a.References))
	for i, r := range a.References {
		c, err := imaging.ParseHexColor(r.Color)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %w", i, err)
		}
		refs[i] = colorkeep.Reference{Color: c, Allowance: r.Allowance}
	}

	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	base, err := pixel.FromImage(src)
	if err != nil {
		return nil, err
	}

	var display *pixel.Buffer
	switch {
	case a.DisplayPath != "":
		prev, err := s.cache.Load(a.DisplayPath)
		if err != nil {
			return nil, err
		}
		if display, err = pixel.FromImage(prev); err != nil {
			return nil, err
		}
	case mode != colorkeep.BulkFull:
		return nil, fmt.Errorf("mode %s needs display_path", mode)
	default:
		display = base.Clone()
	}

	if err := colorkeep.BulkClassify(base, display, refs, mode); err != nil {
		return nil, err
	}

	out := display.Image()
	result := &bulkKeepResult{
		Width:         display.Width(),
		Height:        display.Height(),
		Mode:          mode.String(),
		ColoredPixels: countColored(out),
	}
	if a.OutputPath != "" {
		if result.Saved, err = imaging.SaveImage(a.OutputPath, out); err != nil {
			return nil, err
		}
		// A later add or revert pass may read the saved file back.
		s.cache.Evict(a.OutputPath)
		return result, nil
	}
	if result.Image, err = imaging.EncodePNG(out, 1.0); err != nil {
		return nil, err
	}
	return result, nil
}

// countColored counts pixels whose channels are not all equal.
func countColored(img *image.NRGBA) int {
	n := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] != img.Pix[i+1] || img.Pix[i+1] != img.Pix[i+2] {
			n++
		}
	}
	return n
}

// === Pick Handlers ===

type pickStatus struct {
	Index         int                `json:"index"`
	Hex           string             `json:"hex"`
	Active        bool               `json:"active"`
	ClaimedPixels uint               `json:"claimed_pixels"`
	Pick          colorkeep.PickView `json:"pick"`
}

type picksResult struct {
	ActiveIndex int          `json:"active_index"`
	Picks       []pickStatus `json:"picks"`
}

// listPicks reports every pick of sess.
func listPicks(sess *colorkeep.Session) (*picksResult, error) {
	active := sess.ActiveIndex()
	result := &picksResult{ActiveIndex: active, Picks: make([]pickStatus, 0, sess.PickCount())}
	for i, v := range sess.Picks() {
		claims, err := sess.Claims(i)
		if err != nil {
			return nil, err
		}
		result.Picks = append(result.Picks, pickStatus{
			Index:         i,
			Hex:           imaging.HexString(v.Color),
			Active:        i == active,
			ClaimedPixels: claims.Count(),
			Pick:          v,
		})
	}
	return result, nil
}

type pickAddArgs struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Color     string `json:"color"`
	Allowance *int   `json:"allowance"`
	Range     *int   `json:"range"`
}

func (s *Server) handlePickAdd(args json.RawMessage) (interface{}, error) {
	var a pickAddArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	pt := image.Pt(a.X, a.Y)
	var c colorkeep.RGB
	if a.Color != "" {
		if c, err = imaging.ParseHexColor(a.Color); err != nil {
			return nil, err
		}
	} else if c, err = sess.BaseColor(pt); err != nil {
		return nil, err
	}

	if a.Allowance == nil && a.Range == nil {
		err = sess.AddPick(c, pt)
	} else {
		allowance, rng := 0, colorkeep.DefaultRange
		if a.Allowance != nil {
			allowance = *a.Allowance
		}
		if a.Range != nil {
			rng = *a.Range
		}
		err = sess.AddPickWithThresholds(c, pt, allowance, rng)
	}
	if err != nil {
		return nil, err
	}
	return listPicks(sess)
}

type pickIndexArgs struct {
	Index int `json:"index"`
}

func (s *Server) handlePickActivate(args json.RawMessage) (interface{}, error) {
	var a pickIndexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	if err := sess.SetActive(a.Index); err != nil {
		return nil, err
	}
	return listPicks(sess)
}

type pickAdjustArgs struct {
	AllowanceDelta int `json:"allowance_delta"`
	RangeDelta     int `json:"range_delta"`
}

func (s *Server) handlePickAdjust(args json.RawMessage) (interface{}, error) {
	var a pickAdjustArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	if err := sess.AdjustActive(a.AllowanceDelta, a.RangeDelta); err != nil {
		return nil, err
	}
	return listPicks(sess)
}

type pickThresholdsArgs struct {
	Allowance *int `json:"allowance"`
	Range     *int `json:"range"`
}

func (s *Server) handlePickSetThresholds(args json.RawMessage) (interface{}, error) {
	var a pickThresholdsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	current, err := sess.Pick(sess.ActiveIndex())
	if err != nil {
		return nil, colorkeep.ErrNoActivePick
	}

	allowance, rng := current.Allowance, current.Range
	if a.Allowance != nil {
		allowance = *a.Allowance
	}
	if a.Range != nil {
		rng = *a.Range
	}
	if err := sess.SetActiveThresholds(allowance, rng); err != nil {
		return nil, err
	}
	return listPicks(sess)
}

func (s *Server) handlePickRemove(args json.RawMessage) (interface{}, error) {
	var a pickIndexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	if err := sess.RemovePick(a.Index); err != nil {
		return nil, err
	}
	return listPicks(sess)
}

func (s *Server) handlePicksClear(_ json.RawMessage) (interface{}, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	if err := sess.ClearPicks(); err != nil {
		return nil, err
	}
	return listPicks(sess)
}

func (s *Server) handlePicksList(_ json.RawMessage) (interface{}, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	return listPicks(sess)
}

// pickFile is the exported form of a pick list.
type pickFile struct {
	Source string `json:"source,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Scale is source size divided by working size.
	Scale float64              `json:"scale"`
	Picks []colorkeep.PickView `json:"picks"`
}

type picksExportResult struct {
	pickFile
	Path string `json:"path,omitempty"`
}

func (s *Server) handlePicksExport(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	pf := pickFile{
		Source: s.doc.path,
		Width:  sess.Width(),
		Height: sess.Height(),
		Scale:  s.doc.scale,
		Picks:  sess.Picks(),
	}
	if a.Path != "" {
		data, err := json.MarshalIndent(pf, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode picks: %w", err)
		}
		if err := os.WriteFile(a.Path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write picks: %w", err)
		}
	}
	return &picksExportResult{pickFile: pf, Path: a.Path}, nil
}

type picksImportArgs struct {
	Path  string               `json:"path"`
	Picks []colorkeep.PickView `json:"picks"`
}

func (s *Server) handlePicksImport(args json.RawMessage) (interface{}, error) {
	var a picksImportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	views := a.Picks
	if a.Path != "" {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read picks: %w", err)
		}
		var pf pickFile
		if err := json.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to decode picks: %w", err)
		}
		if pf.Width != sess.Width() || pf.Height != sess.Height() {
			return nil, fmt.Errorf("picks were made on a %dx%d image, open image is %dx%d",
				pf.Width, pf.Height, sess.Width(), sess.Height())
		}
		views = pf.Picks
	}

	if err := sess.Restore(views); err != nil {
		return nil, err
	}
	return listPicks(sess)
}

type measureRangeArgs struct {
	Index int `json:"index"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

type measureRangeResult struct {
	*imaging.RangeMeasurement
	PickRange   int  `json:"pick_range"`
	WithinRange bool `json:"within_range"`
}

func (s *Server) handlePickMeasureRange(args json.RawMessage) (interface{}, error) {
	var a measureRangeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	pick, err := sess.Pick(a.Index)
	if err != nil {
		return nil, err
	}

	m, err := imaging.MeasureRange(sess.Width(), sess.Height(), pick.Point(), image.Pt(a.X, a.Y))
	if err != nil {
		return nil, err
	}
	return &measureRangeResult{
		RangeMeasurement: m,
		PickRange:        pick.Range,
		WithinRange:      m.RangeUnits <= pick.Range,
	}, nil
}

// === Output Handlers ===

type displayGetArgs struct {
	Overlay bool    `json:"overlay"`
	Scale   float64 `json:"scale"`
}

// displayImage snapshots the display, with markers when overlay is set.
func displayImage(sess *colorkeep.Session, overlay bool) *image.NRGBA {
	img := sess.Display()
	if overlay {
		img = imaging.Overlay(img, sess.Picks(), sess.ActiveIndex())
	}
	return img
}

func (s *Server) handleDisplayGet(args json.RawMessage) (interface{}, error) {
	var a displayGetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(displayImage(sess, a.Overlay), a.Scale)
}

type displaySaveArgs struct {
	Path    string `json:"path"`
	Overlay bool   `json:"overlay"`
}

func (s *Server) handleDisplaySave(args json.RawMessage) (interface{}, error) {
	var a displaySaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	result, err := imaging.SaveImage(a.Path, displayImage(sess, a.Overlay))
	if err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return result, nil
}
