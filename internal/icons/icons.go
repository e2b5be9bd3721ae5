package icons

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultPrefix is prepended to the first tag of every glyph.
	DefaultPrefix = "if-"

	// DefaultViewBox is the coordinate-space size used when a document has no height.
	DefaultViewBox = 1024
)

// Record is one icon in the combined icon list.
type Record struct {
	Name    string   `json:"name"`
	Paths   []string `json:"paths"`
	ViewBox int      `json:"viewBox"`
}

// ExportDocument is a font-export file as written by the icon-authoring tool.
// Only the fields the extractor reads are declared.
type ExportDocument struct {
	Height *float64     `json:"height,omitempty"`
	Icons  []ExportIcon `json:"icons"`
}

// ExportIcon is a single glyph entry of an ExportDocument.
type ExportIcon struct {
	Tags  []string `json:"tags,omitempty"`
	Paths []string `json:"paths,omitempty"`
}

// Decode parses a font-export document.
func Decode(data []byte) (ExportDocument, error) {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ExportDocument{}, fmt.Errorf("decode font export: %w", err)
	}
	return doc, nil
}
