package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/iconforge/iconforge/internal/catalog"
	"github.com/iconforge/iconforge/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"style_parse": {
		def:     styleParseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleParse },
	},
	"style_serialize": {
		def:     styleSerializeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSerialize },
	},
	"style_roundtrip": {
		def:     styleRoundTripToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRoundTrip },
	},
	"style_check": {
		def:     styleCheckToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheck },
	},
	"icons_extract": {
		def:     iconsExtractToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExtract },
	},
	"catalog_lookup": {
		def:     catalogLookupToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLookup },
	},
	"catalog_hover": {
		def:     catalogHoverToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHover },
	},
	"catalog_scan": {
		def:     catalogScanToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScan },
	},
}

// AllToolNames returns all valid tool names, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the iconforge tools registered.
// Tools listed in cfg.DisabledTools are excluded; unknown names are logged.
// cat may be nil when no data file could be loaded; catalog tools then report that.
func NewServer(cfg *config.Config, cat *catalog.Catalog, version string, log *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"iconforge",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(cfg, cat, log)

	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}
	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cfg *config.Config, cat *catalog.Catalog, version string, log *zap.Logger) error {
	s := NewServer(cfg, cat, version, log)
	log.Debug("serving MCP over stdio", zap.Strings("tools", AllToolNames()))
	return server.ServeStdio(s)
}
