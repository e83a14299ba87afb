// Package ico writes multi-resolution Windows icon containers.
package ico

import (
	"fmt"
	"image"
	"io"
	"sort"

	goico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/draw"
)

// MaxSize is the largest edge an ICO directory entry can describe.
const MaxSize = 256

// DefaultSizes are the resolutions bundled into app_icon.ico.
var DefaultSizes = []int{256, 128, 64, 48, 32, 24, 16}

// Encode writes src to w as an ICO holding one image per size, largest
// first. Each image is resampled from src.
func Encode(w io.Writer, src image.Image, sizes []int) error {
	sizes, err := normalize(sizes)
	if err != nil {
		return err
	}
	imgs := make([]image.Image, len(sizes))
	for i, s := range sizes {
		imgs[i] = Resize(src, s)
	}
	if err := goico.EncodeAll(w, imgs); err != nil {
		return fmt.Errorf("encoding ico: %w", err)
	}
	return nil
}

// Largest returns the biggest size in sizes, or 0 for an empty list.
func Largest(sizes []int) int {
	n := 0
	for _, s := range sizes {
		n = max(n, s)
	}
	return n
}

// Resize scales src to size×size with Catmull-Rom resampling.
func Resize(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Over, nil)
	return dst
}

// Dimensions decodes an ICO and returns the size of its primary image.
func Dimensions(r io.Reader) (width, height int, err error) {
	img, err := goico.Decode(r)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding ico: %w", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// normalize sorts sizes descending, drops duplicates and rejects values an
// ICO directory cannot express.
func normalize(sizes []int) ([]int, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no icon sizes given")
	}
	out := append([]int(nil), sizes...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	n := 0
	for i, s := range out {
		if s < 1 || s > MaxSize {
			return nil, fmt.Errorf("icon size %d out of range 1-%d", s, MaxSize)
		}
		if i > 0 && s == out[n-1] {
			continue
		}
		out[n] = s
		n++
	}
	return out[:n], nil
}
