package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/iconforge/iconforge/internal/catalog"
	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/errors"
	"github.com/iconforge/iconforge/internal/icons"
	"github.com/iconforge/iconforge/internal/ops"
	"github.com/iconforge/iconforge/internal/render"
	"github.com/iconforge/iconforge/internal/stylesheet"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg *config.Config
	cat *catalog.Catalog
	log *zap.Logger
}

// NewHandlers creates a new Handlers instance. cat may be nil.
func NewHandlers(cfg *config.Config, cat *catalog.Catalog, log *zap.Logger) *Handlers {
	return &Handlers{cfg: cfg, cat: cat, log: log.Named("mcp")}
}

// Request types for each tool

// StyleRequest carries stylesheet text.
type StyleRequest struct {
	CSS string `json:"css"`
}

// SerializeRequest carries a document as JSON text.
type SerializeRequest struct {
	Document string `json:"document"`
}

// ExtractRequest carries font-export documents.
// Each document is decoded on its own so one bad entry does not sink the batch.
type ExtractRequest struct {
	Documents []json.RawMessage `json:"documents"`
}

// NameRequest addresses a catalog entry.
type NameRequest struct {
	Name string `json:"name"`
}

// ScanRequest carries text to scan for catalog names.
type ScanRequest struct {
	Text string `json:"text"`
}

// Response types

// SnippetsResponse is returned by parse and roundtrip.
type SnippetsResponse struct {
	Count    int                  `json:"count"`
	Snippets []stylesheet.Snippet `json:"snippets"`
}

// SerializeResponse is returned by serialize.
type SerializeResponse struct {
	Count int    `json:"count"`
	CSS   string `json:"css"`
}

// ExtractResponse is returned by icons_extract.
type ExtractResponse struct {
	Count   int               `json:"count"`
	Icons   []icons.Record    `json:"icons"`
	Skipped []SkippedDocument `json:"skipped"`
}

// SkippedDocument records why a document contributed no icons.
type SkippedDocument struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// HoverResponse is returned by catalog_hover.
type HoverResponse struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// ScanResponse is returned by catalog_scan.
type ScanResponse struct {
	References []catalog.Reference  `json:"references"`
	Colors     []catalog.ColorGroup `json:"colors"`
}

// HandleParse handles the style_parse tool call.
func (h *Handlers) HandleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StyleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	snippets := stylesheet.Parse(input.CSS)
	h.log.Debug("parsed stylesheet", zap.Int("snippets", len(snippets)))
	return successResult(SnippetsResponse{Count: len(snippets), Snippets: snippets})
}

// HandleSerialize handles the style_serialize tool call.
func (h *Handlers) HandleSerialize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SerializeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if strings.TrimSpace(input.Document) == "" {
		return errorResult(errors.NewInvalidRequest("document is required")), nil
	}

	doc, err := ops.DecodeDocument("document", []byte(input.Document))
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(SerializeResponse{Count: doc.Len(), CSS: stylesheet.Serialize(doc)})
}

// HandleRoundTrip handles the style_roundtrip tool call.
func (h *Handlers) HandleRoundTrip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StyleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	snippets := stylesheet.RoundTrip(input.CSS)
	return successResult(SnippetsResponse{Count: len(snippets), Snippets: snippets})
}

// HandleCheck handles the style_check tool call.
func (h *Handlers) HandleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StyleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	report := stylesheet.Check(input.CSS)
	return successResult(struct {
		OK bool `json:"ok"`
		stylesheet.CheckReport
	}{report.OK(), report})
}

// HandleExtract handles the icons_extract tool call.
func (h *Handlers) HandleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExtractRequest](req)
	if err != nil {
		return errorResult(errors.NewMalformedDocument("documents", err)), nil
	}

	x := icons.NewExtractor(h.cfg.IconPrefix, h.cfg.DefaultViewBox)
	out := ExtractResponse{
		Icons:   make([]icons.Record, 0),
		Skipped: make([]SkippedDocument, 0),
	}
	for i, raw := range input.Documents {
		result := x.ExtractBytes(fmt.Sprintf("documents[%d]", i), raw)
		if result.Skipped() {
			h.log.Warn("skipping document", zap.Int("index", i), zap.Error(result.Err))
			out.Skipped = append(out.Skipped, SkippedDocument{Index: i, Reason: result.Err.Error()})
			continue
		}
		out.Icons = append(out.Icons, result.Records...)
	}
	out.Count = len(out.Icons)
	return successResult(out)
}

// HandleLookup handles the catalog_lookup tool call.
func (h *Handlers) HandleLookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NameRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if h.cat == nil {
		return errorResult(errors.NewFileNotFound(h.cfg.DataFile)), nil
	}

	result, err := ops.Lookup(h.cat, input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHover handles the catalog_hover tool call.
func (h *Handlers) HandleHover(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NameRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if h.cat == nil {
		return errorResult(errors.NewFileNotFound(h.cfg.DataFile)), nil
	}

	result, err := ops.Lookup(h.cat, input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(HoverResponse{
		Name:     result.Name,
		Kind:     result.Kind,
		Markdown: result.Hover,
		HTML:     string(render.Markdown(result.Hover)),
	})
}

// HandleScan handles the catalog_scan tool call.
func (h *Handlers) HandleScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScanRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if h.cat == nil {
		return errorResult(errors.NewFileNotFound(h.cfg.DataFile)), nil
	}

	return successResult(ScanResponse{
		References: h.cat.Scan(input.Text),
		Colors:     h.cat.ColorGroups(input.Text),
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var fErr *errors.ForgeError
	if stderrors.As(err, &fErr) {
		msg := fErr.Message
		// Keep context added by wrapping, e.g. "documents[2]: ..."
		if prefix := strings.TrimSuffix(err.Error(), fErr.Error()); prefix != err.Error() {
			msg = prefix + msg
		}
		errorObj := map[string]any{
			"code":    fErr.Code,
			"message": msg,
			"status":  fErr.Status,
		}
		if fErr.Code != errors.ErrInternal && fErr.Details != nil {
			errorObj["details"] = fErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
