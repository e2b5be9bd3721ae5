package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown renders hover text. Unsafe is required for the SVG data-URI image links.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// sanitizer strips whatever raw HTML a data file smuggles into hover text.
// Base64 image data URIs stay so icon previews survive.
var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	return p
}

// Markdown converts markdown text to sanitized HTML using goldmark.
func Markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// HighlightStyle is the chroma style used for css snippets.
const HighlightStyle = "github"

// formatter emits CSS classes rather than inline styles; the matching
// stylesheet comes from HighlightCSS.
var formatter = chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(2))

func highlightStyle() *chroma.Style {
	if style := styles.Get(HighlightStyle); style != nil {
		return style
	}
	return styles.Fallback
}

// Highlight renders css source as highlighted HTML.
// Falls back to an escaped <pre> block if the highlighter fails.
func Highlight(source string) template.HTML {
	lexer := lexers.Get("css")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return escapedPre(source)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, highlightStyle(), iterator); err != nil {
		return escapedPre(source)
	}
	return template.HTML(buf.String())
}

// HighlightCSS returns the stylesheet for the classes Highlight emits.
func HighlightCSS() ([]byte, error) {
	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, highlightStyle()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escapedPre(source string) template.HTML {
	var sb strings.Builder
	sb.WriteString("<pre>")
	sb.WriteString(template.HTMLEscapeString(source))
	sb.WriteString("</pre>")
	return template.HTML(sb.String())
}
