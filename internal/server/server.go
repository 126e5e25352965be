// Package server exposes image operations as MCP tools.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/webimage/internal/browser"
	"github.com/mj1618/webimage/internal/config"
	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/platform"
	"go.uber.org/zap"
)

// OpenFunc opens the browser session the server drives.
type OpenFunc func(ctx context.Context) (browser.Session, error)

// Options configures a Server.
type Options struct {
	Name     string
	Version  string
	Config   *config.Config
	Open     OpenFunc
	Provider func() (*platform.Provider, error)
	// Launcher overrides the dialog filler launcher; nil spawns the running binary.
	Launcher image.Launcher
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Server wraps the MCP server with one lazily opened browser session.
// Tool calls are serialized; the session is driven by one goroutine at a time.
type Server struct {
	cfg      *config.Config
	open     OpenFunc
	provider func() (*platform.Provider, error)
	launcher image.Launcher
	cache    *ControlsCache
	logger   *zap.Logger

	mu      sync.Mutex
	session browser.Session
	images  map[string]*image.Image

	mcp *mcpserver.MCPServer
}

// New creates a Server and registers its tools.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := opts.Provider
	if provider == nil {
		provider = platform.NewProvider
	}
	name := opts.Name
	if name == "" {
		name = "webimage"
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		cfg:      cfg,
		open:     opts.Open,
		provider: provider,
		launcher: opts.Launcher,
		cache:    NewControlsCache(opts.CacheTTL),
		logger:   logger.Named("server"),
		images:   make(map[string]*image.Image),
	}
	s.mcp = mcpserver.NewMCPServer(name, version)
	s.registerTools()
	return s
}

// Serve runs the MCP server on the given transport until it stops.
func (s *Server) Serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.logger.Info("Serving MCP over HTTP.", zap.Int("port", port))
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

// Close closes the browser session if one was opened.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = make(map[string]*image.Image)
	if s.session == nil {
		return nil
	}
	err := s.session.Close()
	s.session = nil
	return err
}

// sessionLocked returns the open session, opening it on first use.
// The caller must hold s.mu.
func (s *Server) sessionLocked(ctx context.Context) (browser.Session, error) {
	if s.session != nil {
		return s.session, nil
	}
	if s.open == nil {
		return nil, fmt.Errorf("no browser configured")
	}
	sess, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser: %w", err)
	}
	s.session = sess
	return sess, nil
}

// imageLocked returns the Image for selector. Images are kept per selector
// so a highlight set by one call can be cleared by a later one.
// The caller must hold s.mu.
func (s *Server) imageLocked(ctx context.Context, selector string) (*image.Image, error) {
	if img, ok := s.images[selector]; ok {
		return img, nil
	}
	sess, err := s.sessionLocked(ctx)
	if err != nil {
		return nil, err
	}
	img := image.New(sess, sess.Element(selector), image.Options{
		Launcher:          s.launcher,
		Dialog:            s.cfg.Dialog,
		NavigationTimeout: s.cfg.Browser.NavigationTimeout,
		Logger:            s.logger,
	})
	s.images[selector] = img
	return img, nil
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("navigate",
			mcp.WithDescription("Navigate the browser tab to a URL. Forgets highlight state of previously used images."),
			mcp.WithString("url", mcp.Description("URL to load"), mcp.Required()),
		),
		s.handleNavigate,
	)

	s.mcp.AddTool(
		mcp.NewTool("inspect_image",
			mcp.WithDescription("Read the properties of an image element: src, alt, file size, file date, dimensions, and whether it finished loading"),
			mcp.WithString("selector", mcp.Description("CSS selector of the image"), mcp.Required()),
		),
		s.handleInspect,
	)

	s.mcp.AddTool(
		mcp.NewTool("image_loaded",
			mcp.WithDescription("Report whether an image element finished loading"),
			mcp.WithString("selector", mcp.Description("CSS selector of the image"), mcp.Required()),
		),
		s.handleLoaded,
	)

	s.mcp.AddTool(
		mcp.NewTool("highlight_image",
			mcp.WithDescription("Emphasize an image with a border (set), or restore the border it had before (clear)"),
			mcp.WithString("selector", mcp.Description("CSS selector of the image"), mcp.Required()),
			mcp.WithString("mode", mcp.Description("set or clear"), mcp.Required()),
		),
		s.handleHighlight,
	)

	s.mcp.AddTool(
		mcp.NewTool("save_image",
			mcp.WithDescription("Save an image to a local file through the browser's Save Picture dialog. The tab returns to its prior location afterwards."),
			mcp.WithString("selector", mcp.Description("CSS selector of the image"), mcp.Required()),
			mcp.WithString("path", mcp.Description("Destination file path; ~ is expanded"), mcp.Required()),
			mcp.WithBoolean("overwrite", mcp.Description("Replace an existing file")),
			mcp.WithBoolean("verify", mcp.Description("Decode the saved file and report its format and size")),
		),
		s.handleSave,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List native top-level windows"),
			mcp.WithString("title", mcp.Description("Filter by title substring")),
			mcp.WithNumber("pid", mcp.Description("Filter by PID")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("read_controls",
			mcp.WithDescription("Read the native control tree of a window"),
			mcp.WithString("title", mcp.Description("Window title substring")),
			mcp.WithNumber("window-id", mcp.Description("Target by window ID")),
			mcp.WithNumber("depth", mcp.Description("Max depth (0 = unlimited)")),
			mcp.WithString("text", mcp.Description("Keep controls whose title or value contains this text")),
			mcp.WithString("roles", mcp.Description("Comma-separated roles to keep (btn, input, ... or interactive)")),
		),
		s.handleReadControls,
	)
}
