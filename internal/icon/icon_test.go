package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func at(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestDrawDimensions(t *testing.T) {
	for _, size := range []int{16, 20, 29, 48, 83, 167, 256, 1024} {
		b := Draw(size).Bounds()
		if b.Dx() != size || b.Dy() != size {
			t.Errorf("Draw(%d) bounds = %v", size, b)
		}
	}
}

func TestDrawDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := png.Encode(&a, Draw(192)); err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(&b, Draw(192)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two renders at the same size differ")
	}
}

func TestDrawTransparentCorners(t *testing.T) {
	img := Draw(256)
	for _, p := range []image.Point{{0, 0}, {255, 0}, {0, 255}, {255, 255}} {
		if c := at(img, p.X, p.Y); c.A != 0 {
			t.Errorf("corner %v = %v, want transparent", p, c)
		}
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		v, size, want int
	}{
		{20, 1024, 20},
		{20, 512, 10},
		{20, 256, 5},
		{20, 48, 0},
		{400, 192, 75},
		{650, 1024, 650},
	}
	for _, tt := range tests {
		if got := Scale(tt.v, tt.size); got != tt.want {
			t.Errorf("Scale(%d, %d) = %d, want %d", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestBackgroundMarginScales(t *testing.T) {
	for _, size := range []int{128, 256, 512, 1024} {
		img := Draw(size)
		m := Scale(20, size)
		mid := size / 2
		if c := at(img, m-2, mid); c.A != 0 {
			t.Errorf("size %d: pixel left of margin %d = %v, want transparent", size, m, c)
		}
		if c := at(img, m+1, mid); c != Brown {
			t.Errorf("size %d: pixel right of margin %d = %v, want %v", size, m, c, Brown)
		}
		if c := at(img, size-m+1, mid); c.A != 0 {
			t.Errorf("size %d: pixel right of disk = %v, want transparent", size, c)
		}
	}
}

func TestCupLayers(t *testing.T) {
	for _, size := range []int{512, 1024} {
		img := Draw(size)
		cx, cy := Scale(400, size), Scale(480, size)
		if c := at(img, cx, cy); c != Chocolate {
			t.Errorf("size %d: cup center = %v, want %v", size, c, Chocolate)
		}
		if c := at(img, cx, cy-Scale(35, size)); c != White {
			t.Errorf("size %d: cup rim = %v, want %v", size, c, White)
		}
	}
}

func TestWheels(t *testing.T) {
	for _, size := range []int{512, 1024} {
		img := Draw(size)
		wy := Scale(650, size)
		for _, wx := range []int{Scale(280, size), Scale(520, size)} {
			if c := at(img, wx, wy); c != Brown {
				t.Errorf("size %d: hub at %d,%d = %v, want %v", size, wx, wy, c, Brown)
			}
			if c := at(img, wx, wy-Scale(32, size)); c != DarkBrown {
				t.Errorf("size %d: tire at %d = %v, want %v", size, wx, c, DarkBrown)
			}
		}
	}
}

func TestCanopyAndPanel(t *testing.T) {
	img := Draw(1024)
	if c := at(img, 200, 315); c != LightRed {
		t.Errorf("canopy = %v, want %v", c, LightRed)
	}
	if c := at(img, 400, 360); c != DarkBrown {
		t.Errorf("pole = %v, want %v", c, DarkBrown)
	}
	if c := at(img, 250, 560); c != SandyBrown {
		t.Errorf("inner panel = %v, want %v", c, SandyBrown)
	}
	if c := at(img, 205, 500); c != Chocolate {
		t.Errorf("cart frame = %v, want %v", c, Chocolate)
	}
}

func TestDrawTinySizes(t *testing.T) {
	for _, size := range []int{1, 2, 3} {
		if b := Draw(size).Bounds(); b.Dx() != size {
			t.Errorf("Draw(%d) width = %d", size, b.Dx())
		}
	}
}
