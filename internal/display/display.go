// Package display provides the monochrome drawing surface used by the screens.
// Canvas draws into an in-memory 1-bit frame and pushes it to a Panel on Flush.
package display

import (
	"image"

	"golang.org/x/image/font"
)

// Baseline selects which part of the text the y coordinate refers to.
type Baseline uint8

const (
	BaselineTop Baseline = iota
	BaselineMiddle
	BaselineAlphabetic
	BaselineBottom
)

// Style controls how text is drawn. The zero value draws lit text with the
// default face.
type Style struct {
	Face    font.Face
	Inverse bool
}

// Surface is the drawing contract the screens depend on.
type Surface interface {
	// Clear blanks the frame.
	Clear()
	// DrawText draws s with its left edge at at.X, aligned to at.Y by baseline.
	DrawText(s string, at image.Point, style Style, baseline Baseline)
	// DrawLine draws a one pixel wide line, both ends inclusive.
	DrawLine(from, to image.Point)
	// DrawRect outlines r, or fills it when fill is set.
	DrawRect(r image.Rectangle, fill bool)
	// Flush sends the frame to the device.
	Flush() error
	// Bounds returns the drawable area.
	Bounds() image.Rectangle
}

// Panel is a device that accepts whole frames. *ssd1306.Dev satisfies it.
type Panel interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Headless is a Panel with nothing attached. Frames drawn to it are dropped.
type Headless struct {
	Rect image.Rectangle
}

func (h Headless) Bounds() image.Rectangle { return h.Rect }

func (h Headless) Draw(image.Rectangle, image.Image, image.Point) error { return nil }
