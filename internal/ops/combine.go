package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/errors"
	"github.com/iconforge/iconforge/internal/icons"
)

// CombineInput contains parameters for the Combine operation.
type CombineInput struct {
	Dir    string // optional, default: current directory
	Output string // optional, default: <output_dir>/<icons_output>
}

// CombineOutput contains the result of the Combine operation.
type CombineOutput struct {
	Path    string        `json:"path"`
	Count   int           `json:"count"`
	Files   int           `json:"files"`
	Skipped []SkippedFile `json:"skipped"`

	// Warnings holds one error per skipped file, combined with multierr.
	Warnings error `json:"-"`
}

// SkippedFile records why an input file contributed no icons.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Combine flattens every font-export file in a directory into one icon list.
// Files are read non-recursively in natural name order. A file that cannot be
// read or decoded is skipped with a warning; the run itself only fails when the
// directory is missing or the output cannot be written.
func Combine(cfg *config.Config, log *zap.Logger, input CombineInput) (*CombineOutput, error) {
	cfg = resolveConfig(cfg)
	log = log.Named("combine")

	dir := input.Dir
	if dir == "" {
		dir = "."
	}
	outPath := outputPath(cfg, input.Output, cfg.IconsOutput)

	names, err := discoverExports(dir)
	if err != nil {
		return nil, err
	}
	log.Info("scanning for export files", zap.String("dir", dir), zap.Int("files", len(names)))

	extractor := icons.NewExtractor(cfg.IconPrefix, cfg.DefaultViewBox)
	records := make([]icons.Record, 0)
	out := &CombineOutput{
		Path:    outPath,
		Skipped: make([]SkippedFile, 0),
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		if samePath(path, outPath) {
			log.Debug("skipping previous output", zap.String("file", name))
			continue
		}
		out.Files++
		log.Info("processing", zap.String("file", name))

		result := extractFile(extractor, name, path)
		if result.Skipped() {
			log.Warn("skipping file", zap.String("file", name), zap.Error(result.Err))
			out.Warnings = multierr.Append(out.Warnings, fmt.Errorf("%s: %w", name, result.Err))
			out.Skipped = append(out.Skipped, SkippedFile{File: name, Reason: result.Err.Error()})
			continue
		}
		log.Debug("extracted", zap.String("file", name), zap.Int("icons", len(result.Records)))
		records = append(records, result.Records...)
	}

	if err := writeJSON(outPath, records); err != nil {
		return nil, err
	}
	out.Count = len(records)

	log.Info("combined icons", zap.Int("count", out.Count), zap.String("path", outPath))
	return out, nil
}

// discoverExports lists the .json files directly inside dir, in natural order.
func discoverExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("input directory not found: %s", dir))
		}
		return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot read input directory %s: %v", dir, err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || KindOf(e.Name()) != KindDocument {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

func extractFile(x *icons.Extractor, name, path string) icons.FileResult {
	data, err := readInput(path)
	if err != nil {
		return icons.FileResult{Source: name, Err: err}
	}
	return x.ExtractBytes(name, data)
}
