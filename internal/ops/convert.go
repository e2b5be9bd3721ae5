package ops

import (
	"go.uber.org/zap"

	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/errors"
	"github.com/iconforge/iconforge/internal/stylesheet"
)

// ConvertInput contains parameters for the Convert operation.
type ConvertInput struct {
	Path   string // required, .css or .json
	Output string // optional override for the primary output file
	Auto   bool   // .json only: also parse the produced stylesheet back into snippets
}

// ConvertOutput contains the result of the Convert operation.
type ConvertOutput struct {
	Input     string `json:"input"`
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	Count     int    `json:"count"`
	AutoPath  string `json:"auto_path,omitempty"`
	AutoCount int    `json:"auto_count,omitempty"`
}

// Convert dispatches on the input extension: a stylesheet is parsed into a
// snippet list, a document is serialized into a stylesheet.
func Convert(cfg *config.Config, log *zap.Logger, input ConvertInput) (*ConvertOutput, error) {
	cfg = resolveConfig(cfg)
	log = log.Named("convert")

	kind, err := ValidateInput(input.Path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindStylesheet:
		return toSnippets(cfg, log, input)
	case KindDocument:
		return toStylesheet(cfg, log, input)
	}
	return nil, errors.NewUnsupportedFormat(input.Path)
}

func toSnippets(cfg *config.Config, log *zap.Logger, input ConvertInput) (*ConvertOutput, error) {
	data, err := readInput(input.Path)
	if err != nil {
		return nil, err
	}

	snippets := stylesheet.Parse(string(data))
	outPath := outputPath(cfg, input.Output, cfg.SnippetsOutput)
	if err := writeJSON(outPath, snippets); err != nil {
		return nil, err
	}
	log.Info("snippets saved", zap.String("path", outPath), zap.Int("count", len(snippets)))

	return &ConvertOutput{
		Input: input.Path,
		Kind:  KindStylesheet.String(),
		Path:  outPath,
		Count: len(snippets),
	}, nil
}

func toStylesheet(cfg *config.Config, log *zap.Logger, input ConvertInput) (*ConvertOutput, error) {
	data, err := readInput(input.Path)
	if err != nil {
		return nil, err
	}
	doc, err := DecodeDocument(input.Path, data)
	if err != nil {
		return nil, err
	}

	text := stylesheet.Serialize(doc)
	outPath := outputPath(cfg, input.Output, cfg.StylesheetOutput)
	autoPath := outputPath(cfg, "", cfg.SnippetsOutput)
	if input.Auto && samePath(autoPath, outPath) {
		return nil, errors.NewInvalidRequest("auto output would overwrite the stylesheet output")
	}
	if err := writeFileAtomic(outPath, []byte(text)); err != nil {
		return nil, err
	}
	log.Info("stylesheet saved", zap.String("path", outPath), zap.Int("count", doc.Len()))

	out := &ConvertOutput{
		Input: input.Path,
		Kind:  KindDocument.String(),
		Path:  outPath,
		Count: doc.Len(),
	}
	if !input.Auto {
		return out, nil
	}

	log.Debug("running auto conversion back to snippets")
	snippets := stylesheet.Parse(text)
	if err := writeJSON(autoPath, snippets); err != nil {
		return nil, err
	}
	log.Info("snippets updated", zap.String("path", autoPath), zap.Int("count", len(snippets)))

	out.AutoPath = autoPath
	out.AutoCount = len(snippets)
	return out, nil
}
