package raster

import (
	"fmt"
	"image"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RenderSVG rasterizes the SVG at src into a size×size PNG at dst, keeping
// the aspect ratio and centering the drawing.
func RenderSVG(src string, size int, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	svg, err := oksvg.ReadIconStream(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", src, err)
	}

	w, h := svg.ViewBox.W, svg.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}
	scale := float64(size) / max(w, h)
	outW, outH := w*scale, h*scale
	svg.SetTarget((float64(size)-outW)/2, (float64(size)-outH)/2, outW, outH)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	svg.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	return WritePNG(dst, img)
}
