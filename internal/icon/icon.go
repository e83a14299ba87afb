// Package icon draws the coffee-cart app icon procedurally.
//
// All coordinates below belong to a 1024×1024 reference design and are
// scaled linearly (truncating) to the requested size.
package icon

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ReferenceSize is the edge length the design coordinates are expressed in.
const ReferenceSize = 1024

var (
	Brown      = color.NRGBA{139, 69, 19, 255}
	Chocolate  = color.NRGBA{210, 105, 30, 255}
	SandyBrown = color.NRGBA{244, 164, 96, 255}
	DarkBrown  = color.NRGBA{101, 67, 33, 255}
	White      = color.NRGBA{255, 255, 255, 255}
	LightRed   = color.NRGBA{255, 107, 107, 255}
)

// Scale maps a reference-design coordinate to a canvas of the given size.
func Scale(v, size int) int {
	return v * size / ReferenceSize
}

// Draw renders the icon at size×size on a transparent background.
// The output is deterministic for a given size.
func Draw(size int) image.Image {
	dc := gg.NewContext(size, size)
	s := func(v int) int { return Scale(v, size) }

	// Background disk.
	m := s(20)
	ellipse(dc, m, m, size-m, size-m, Brown)

	// Cart body with inner panel.
	cartX, cartY, cartW, cartH := s(200), s(400), s(400), s(200)
	rect(dc, cartX, cartY, cartX+cartW, cartY+cartH, Chocolate)
	in := s(20)
	rect(dc, cartX+in, cartY+in, cartX+cartW-in, cartY+cartH-in, SandyBrown)

	// Wheels and hubs.
	wheelY, wheelR, hubR := s(650), s(40), s(25)
	for _, wx := range []int{s(280), s(520)} {
		ellipse(dc, wx-wheelR, wheelY-wheelR, wx+wheelR, wheelY+wheelR, DarkBrown)
	}
	for _, wx := range []int{s(280), s(520)} {
		ellipse(dc, wx-hubR, wheelY-hubR, wx+hubR, wheelY+hubR, Brown)
	}

	// Handle and grip.
	hx, hy := s(180), s(450)
	rect(dc, hx, hy, hx+s(20), hy+s(100), DarkBrown)
	gx, gy := s(160), s(440)
	rect(dc, gx, gy, gx+s(60), gy+s(20), DarkBrown)

	// Cup, coffee, surface: concentric ellipses around the cup center.
	cupX, cupY := s(400), s(480)
	oval(dc, cupX, cupY, s(120)/2, s(80)/2, White)
	oval(dc, cupX, cupY, s(100)/2, s(60)/2, Brown)
	oval(dc, cupX, cupY, s(90)/2, s(50)/2, Chocolate)

	// Canopy and pole.
	canopyY := s(300)
	rect(dc, s(150), canopyY, s(650), canopyY+s(30), LightRed)
	poleX := s(400)
	rect(dc, poleX-s(10), canopyY, poleX+s(10), cartY, DarkBrown)

	return dc.Image()
}

// ellipse fills the ellipse inscribed in the inclusive pixel box x0,y0..x1,y1.
func ellipse(dc *gg.Context, x0, y0, x1, y1 int, c color.Color) {
	if x1 < x0 || y1 < y0 {
		return
	}
	cx := float64(x0+x1+1) / 2
	cy := float64(y0+y1+1) / 2
	dc.DrawEllipse(cx, cy, float64(x1-x0+1)/2, float64(y1-y0+1)/2)
	dc.SetColor(c)
	dc.Fill()
}

func oval(dc *gg.Context, cx, cy, rx, ry int, c color.Color) {
	ellipse(dc, cx-rx, cy-ry, cx+rx, cy+ry, c)
}

// rect fills the inclusive pixel box x0,y0..x1,y1.
func rect(dc *gg.Context, x0, y0, x1, y1 int, c color.Color) {
	if x1 < x0 || y1 < y0 {
		return
	}
	dc.DrawRectangle(float64(x0), float64(y0), float64(x1-x0+1), float64(y1-y0+1))
	dc.SetColor(c)
	dc.Fill()
}
