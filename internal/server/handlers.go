package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/output"
	"github.com/mj1618/webimage/internal/platform"
	"github.com/mj1618/webimage/internal/verify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// toText serializes a tool result to YAML for the MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleNavigate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := stringParam(request.GetArguments(), "url", "")
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionLocked(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := sess.Goto(ctx, url); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.images = make(map[string]*image.Image)

	loc, err := sess.Location(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(map[string]string{"location": loc})), nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selector := stringParam(request.GetArguments(), "selector", "")
	if selector == "" {
		return mcp.NewToolResultError("selector is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.imageLocked(ctx, selector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := Inspect(ctx, img, selector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleLoaded(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selector := stringParam(request.GetArguments(), "selector", "")
	if selector == "" {
		return mcp.NewToolResultError("selector is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.imageLocked(ctx, selector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	loaded, err := img.Loaded(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(output.LoadedResult{Selector: selector, Loaded: loaded})), nil
}

func (s *Server) handleHighlight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	selector := stringParam(params, "selector", "")
	if selector == "" {
		return mcp.NewToolResultError("selector is required"), nil
	}
	mode, err := image.ParseMode(stringParam(params, "mode", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.imageLocked(ctx, selector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result := HighlightResult(selector, img.Highlight(ctx, mode))
	if !result.OK {
		return mcp.NewToolResultError(toText(result)), nil
	}
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	selector := stringParam(params, "selector", "")
	path := stringParam(params, "path", "")
	if selector == "" || path == "" {
		return mcp.NewToolResultError("selector and path are required"), nil
	}
	opts := image.SaveOptions{Overwrite: boolParam(params, "overwrite", s.cfg.Save.Overwrite)}
	check := boolParam(params, "verify", false)

	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.imageLocked(ctx, selector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// The dialog comes and goes, so any cached window tree is stale.
	defer s.cache.InvalidateAll()

	result, err := Save(ctx, img, selector, path, opts, check, s.cfg.Save.VerifyTimeout)
	if err != nil {
		s.logger.Warn("Save failed.", zap.String("selector", selector), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := platform.ListOptions{
		Title: stringParam(params, "title", ""),
		PID:   intParam(params, "pid", 0),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	provider, err := s.provider()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if provider.Reader == nil {
		return mcp.NewToolResultError("reader not available on this platform"), nil
	}
	windows, err := provider.Reader.ListWindows(opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return mcp.NewToolResultText(toText(output.WindowsResult{Windows: windows})), nil
}

func (s *Server) handleReadControls(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := platform.ReadOptions{
		Window:   stringParam(params, "title", ""),
		WindowID: intParam(params, "window-id", 0),
		Depth:    intParam(params, "depth", 0),
	}
	if opts.Window == "" && opts.WindowID == 0 {
		return mcp.NewToolResultError("title or window-id is required"), nil
	}
	text := stringParam(params, "text", "")
	roles := stringParam(params, "roles", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	provider, err := s.provider()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if provider.Reader == nil {
		return mcp.NewToolResultError("reader not available on this platform"), nil
	}
	elements, err := s.cache.ReadElements(provider.Reader, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	elements = model.FilterByText(elements, text)
	if roles != "" {
		elements = model.FilterByRoles(elements, strings.Split(roles, ","))
	}
	if elements == nil {
		elements = []model.Element{}
	}
	return mcp.NewToolResultText(toText(output.ControlsResult{
		Window:   opts.Window,
		TS:       time.Now().Unix(),
		Count:    model.CountElements(elements),
		Elements: elements,
	})), nil
}

// Inspect reads every property of img in one result.
func Inspect(ctx context.Context, img *image.Image, selector string) (output.InspectResult, error) {
	props, err := img.Properties(ctx)
	if err != nil {
		return output.InspectResult{}, err
	}
	text, err := img.String(ctx)
	if err != nil {
		return output.InspectResult{}, err
	}
	return output.InspectResult{
		Selector:   selector,
		Properties: props,
		Loaded:     image.IsLoaded(props.FileCreatedDate, props.FileSize),
		Text:       text,
	}, nil
}

// HighlightResult converts an attempt to its output form.
func HighlightResult(selector string, a image.Attempt) output.HighlightResult {
	r := output.HighlightResult{Selector: selector, Mode: a.Mode.String(), OK: a.OK}
	if a.Err != nil {
		r.Error = a.Err.Error()
	}
	return r
}

// Save runs img.Save and, when check is set, waits for the file and decodes it.
// The result reports the destination as resolved by the save.
func Save(ctx context.Context, img *image.Image, selector, path string, opts image.SaveOptions, check bool, verifyTimeout time.Duration) (output.SaveResult, error) {
	dest, err := img.SaveFile(ctx, path, opts)
	if err != nil {
		return output.SaveResult{}, err
	}
	result := output.SaveResult{Selector: selector, Path: dest, OK: true}
	if check {
		v, err := verify.File(ctx, dest, verify.Options{Timeout: verifyTimeout})
		if err != nil {
			return result, err
		}
		result.Verified = &v
	}
	return result, nil
}
