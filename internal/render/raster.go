package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// MaxIconSize bounds the edge length of a rasterized icon, in pixels.
const MaxIconSize = 512

// currentColor has no meaning outside a page; rasterized icons are painted black.
var currentColorFill = []byte(`fill="currentColor"`)

// IconPNG rasterizes an SVG icon into a square PNG with a transparent background.
// size is clamped to [1, MaxIconSize].
func IconPNG(svg string, size int) ([]byte, error) {
	size = min(max(size, 1), MaxIconSize)

	data := bytes.ReplaceAll([]byte(svg), currentColorFill, []byte(`fill="#000000"`))
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
