package mcp

import "github.com/mark3labs/mcp-go/mcp"

var styleParseToolDef = mcp.NewTool("style_parse",
	mcp.WithDescription("Parse stylesheet text into named snippets. Each .class rule becomes one snippet; "+
		"a rule whose animation names a @keyframes block from the same text carries that block with it. "+
		"Only single-level blocks are recognized and unmatched text is skipped."),
	mcp.WithString("css",
		mcp.Required(),
		mcp.Description("Stylesheet text"),
	),
)

var styleSerializeToolDef = mcp.NewTool("style_serialize",
	mcp.WithDescription("Serialize a document back into stylesheet text. The document is JSON text: either a list of "+
		"{name, snippet, color, content} entries or an object mapping names to a rule string or {class, keyframes}. "+
		"Fragments are joined with a blank line; the output is not validated."),
	mcp.WithString("document",
		mcp.Required(),
		mcp.Description("Document as JSON text"),
	),
)

var styleRoundTripToolDef = mcp.NewTool("style_roundtrip",
	mcp.WithDescription("Parse stylesheet text, serialize the snippets and parse the result again. "+
		"Returns the normalized snippet list."),
	mcp.WithString("css",
		mcp.Required(),
		mcp.Description("Stylesheet text"),
	),
)

var styleCheckToolDef = mcp.NewTool("style_check",
	mcp.WithDescription("Run stylesheet text through a full CSS grammar parser and report rule count, "+
		"keyframe names, declaration count and syntax issues."),
	mcp.WithString("css",
		mcp.Required(),
		mcp.Description("Stylesheet text"),
	),
)

var iconsExtractToolDef = mcp.NewTool("icons_extract",
	mcp.WithDescription("Flatten icon-font export documents into icon records named prefix + first tag. "+
		"Glyphs without tags or paths are skipped. The viewBox comes from each document's height."),
	mcp.WithArray("documents",
		mcp.Required(),
		mcp.Description("Export documents, each {height?, icons: [{tags, paths}]}"),
		mcp.Items(map[string]any{"type": "object"}),
	),
)

var catalogLookupToolDef = mcp.NewTool("catalog_lookup",
	mcp.WithDescription("Find an icon or style entry in the loaded data file by exact name."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Entry name, e.g. is-red or if-home"),
	),
)

var catalogHoverToolDef = mcp.NewTool("catalog_hover",
	mcp.WithDescription("Render the hover preview for a data file entry as markdown and HTML."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Entry name"),
	),
)

var catalogScanToolDef = mcp.NewTool("catalog_scan",
	mcp.WithDescription("Find every is-/if- name in a text that exists in the data file, "+
		"with byte offsets, and group the colored ones by color."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Document text to scan"),
	),
)
