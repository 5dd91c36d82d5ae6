package display

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DefaultFace is the 7x13 fixed-width face used for all screen text.
var DefaultFace font.Face = basicfont.Face7x13

// Canvas is a Surface backed by a 1-bit frame buffer.
type Canvas struct {
	panel Panel
	frame *image1bit.VerticalLSB
}

// NewCanvas creates a blank canvas sized to panel.
func NewCanvas(panel Panel) *Canvas {
	return &Canvas{
		panel: panel,
		frame: image1bit.NewVerticalLSB(panel.Bounds()),
	}
}

// Bounds returns the frame rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.frame.Bounds()
}

// Frame returns the frame buffer. It is overwritten by subsequent draws.
func (c *Canvas) Frame() *image1bit.VerticalLSB {
	return c.frame
}

// Clear turns every pixel off.
func (c *Canvas) Clear() {
	for i := range c.frame.Pix {
		c.frame.Pix[i] = 0
	}
}

// DrawText draws s using style.Face (DefaultFace if nil).
func (c *Canvas) DrawText(s string, at image.Point, style Style, baseline Baseline) {
	face := style.Face
	if face == nil {
		face = DefaultFace
	}
	ink := image1bit.On
	if style.Inverse {
		ink = image1bit.Off
	}

	m := face.Metrics()
	y := fixed.I(at.Y)
	switch baseline {
	case BaselineTop:
		y += m.Ascent
	case BaselineMiddle:
		y += (m.Ascent - m.Descent) / 2
	case BaselineBottom:
		y -= m.Descent
	}

	d := font.Drawer{
		Dst:  c.frame,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(at.X), Y: y},
	}
	d.DrawString(s)
}

// DrawLine draws a line with Bresenham's algorithm.
func (c *Canvas) DrawLine(from, to image.Point) {
	x0, y0, x1, y1 := from.X, from.Y, to.X, to.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect outlines or fills r. r.Max is exclusive, as for image.Rectangle.
func (c *Canvas) DrawRect(r image.Rectangle, fill bool) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	if fill {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c.set(x, y)
			}
		}
		return
	}
	x1, y1 := r.Max.X-1, r.Max.Y-1
	c.DrawLine(r.Min, image.Pt(x1, r.Min.Y))
	c.DrawLine(image.Pt(r.Min.X, y1), image.Pt(x1, y1))
	c.DrawLine(r.Min, image.Pt(r.Min.X, y1))
	c.DrawLine(image.Pt(x1, r.Min.Y), image.Pt(x1, y1))
}

// Flush pushes the whole frame to the panel.
func (c *Canvas) Flush() error {
	return c.panel.Draw(c.frame.Bounds(), c.frame, image.Point{})
}

func (c *Canvas) set(x, y int) {
	if image.Pt(x, y).In(c.frame.Rect) {
		c.frame.SetBit(x, y, image1bit.On)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
