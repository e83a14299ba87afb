// Package raster holds the interchangeable strategies that turn the icon
// source into a PNG of a requested size, and the packers that bundle a PNG
// into the Windows icon container.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/Mavwarf/appicon/internal/convert"
	"github.com/Mavwarf/appicon/internal/icon"
	"github.com/Mavwarf/appicon/internal/ico"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Rasterizer renders the icon source as a size×size PNG at dst.
type Rasterizer interface {
	Name() string
	Render(size int, dst string) error
}

// Packer converts the PNG at src into an icon-container file at dst.
type Packer interface {
	Name() string
	Pack(src, dst string) error
}

// CheckSource reports a missing or unusable source file.
func CheckSource(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s not found", path)
		}
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory, not an SVG file", path)
	}
	return nil
}

// External renders an SVG with external command-line tools, trying each in
// order. If every tool fails and Builtin is set, the SVG is rendered
// in-process as a last resort.
type External struct {
	Source  string
	Tools   []convert.Tool
	Builtin bool
	Log     *slog.Logger
}

func (e *External) Name() string { return "svg" }

func (e *External) Render(size int, dst string) error {
	used, err := convert.Chain(e.Tools, e.Source, dst, size)
	if err == nil {
		e.logger().Debug("rendered", "tool", used, "size", size, "dst", dst)
		return nil
	}
	if !e.Builtin {
		return err
	}
	e.logger().Warn("external converters failed, using built-in SVG renderer", "dst", dst, "err", err)
	if berr := RenderSVG(e.Source, size, dst); berr != nil {
		return errors.Join(err, fmt.Errorf("built-in renderer: %w", berr))
	}
	return nil
}

func (e *External) logger() *slog.Logger {
	if e.Log == nil {
		return slog.Default()
	}
	return e.Log
}

// Procedural draws the coffee-cart icon with no external input.
type Procedural struct{}

func (Procedural) Name() string { return "draw" }

func (Procedural) Render(size int, dst string) error {
	return WritePNG(dst, icon.Draw(size))
}

// WritePNG encodes img and writes it atomically to dst.
func WritePNG(dst string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding %s: %w", dst, err)
	}
	return paths.AtomicWrite(dst, buf.Bytes())
}

// MagickPacker packs with ImageMagick's icon:auto-resize.
type MagickPacker struct {
	Sizes []int
}

func (MagickPacker) Name() string { return "magick" }

func (p MagickPacker) Pack(src, dst string) error {
	return convert.PackICO(src, dst, p.Sizes)
}

// BuiltinPacker packs in-process, resampling the source PNG per size.
type BuiltinPacker struct {
	Sizes []int
}

func (BuiltinPacker) Name() string { return "builtin" }

func (p BuiltinPacker) Pack(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", src, err)
	}
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img, p.Sizes); err != nil {
		return err
	}
	return paths.AtomicWrite(dst, buf.Bytes())
}

// FallbackPacker tries each packer in order.
type FallbackPacker []Packer

func (f FallbackPacker) Name() string {
	if len(f) == 0 {
		return "none"
	}
	return f[0].Name()
}

func (f FallbackPacker) Pack(src, dst string) error {
	if len(f) == 0 {
		return fmt.Errorf("no icon packer configured")
	}
	var errs []error
	for _, p := range f {
		err := p.Pack(src, dst)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}
	return errors.Join(errs...)
}
