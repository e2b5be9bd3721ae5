package ops

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/errors"
	"github.com/iconforge/iconforge/internal/stylesheet"
)

// InputKind classifies an input file by its extension.
type InputKind int

const (
	KindUnknown    InputKind = iota
	KindStylesheet           // .css
	KindDocument             // .json
)

func (k InputKind) String() string {
	switch k {
	case KindStylesheet:
		return "stylesheet"
	case KindDocument:
		return "document"
	}
	return "unknown"
}

// resolveConfig returns cfg, or the defaults when cfg is nil.
func resolveConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// outputPath returns override when set, else name inside the configured output directory.
func outputPath(cfg *config.Config, override, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(cfg.OutputDir, name)
}

// EncodeJSON renders v the way every output file is written: two-space
// indentation and no HTML escaping, so css text survives untouched.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to encode output: %w", err))
	}
	return buf.Bytes(), nil
}

// DecodeDocument decodes a serializer input document. source names the input in errors.
func DecodeDocument(source string, data []byte) (stylesheet.Document, error) {
	var doc stylesheet.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return stylesheet.Document{}, errors.NewMalformedDocument(source, err)
	}
	return doc, nil
}
