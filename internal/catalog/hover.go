package catalog

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
)

// previewSize is the rendered width and height of an icon preview, in pixels.
const previewSize = 64

// SVG renders an icon entry as a standalone SVG document.
// The viewBox falls back to 1024 when unset. Path data is attribute-escaped.
func SVG(e Entry) string {
	viewBox := e.ViewBox
	if viewBox <= 0 {
		viewBox = 1024
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" fill="currentColor">`,
		previewSize, previewSize, viewBox, viewBox)
	for _, p := range e.Paths {
		fmt.Fprintf(&sb, `<path d="%s"></path>`, html.EscapeString(p))
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// SVGDataURI returns the icon as a base64 data URI suitable for an image link.
func SVGDataURI(e Entry) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(SVG(e)))
}

// Hover returns the markdown shown when hovering a name in the editor.
// Icons need both paths and a viewBox to get a preview; snippets are shown as a css code block.
// Entries with neither produce an empty string.
func Hover(e Entry) string {
	switch {
	case e.IsIcon() && e.ViewBox > 0:
		return fmt.Sprintf("![%s](%s)\n\n**%s**", e.Name, SVGDataURI(e), e.Name)
	case e.Snippet != "":
		return fmt.Sprintf("**%s**\n\n```css\n%s\n```\n", e.Name, e.Snippet)
	}
	return ""
}
