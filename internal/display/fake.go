package display

import (
	"fmt"
	"image"
	"image/draw"
)

// FakePanel records the frames drawn to it.
type FakePanel struct {
	Rect image.Rectangle

	// Frames contains a copy of every frame drawn, in order.
	Frames []*image.Gray

	// DrawError, if set, will be returned by Draw.
	DrawError error
}

// NewFakePanel creates a FakePanel of the given size.
func NewFakePanel(w, h int) *FakePanel {
	return &FakePanel{Rect: image.Rect(0, 0, w, h)}
}

// Bounds returns the panel rectangle.
func (p *FakePanel) Bounds() image.Rectangle {
	return p.Rect
}

// Draw copies src into a new recorded frame.
func (p *FakePanel) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if p.DrawError != nil {
		return p.DrawError
	}
	frame := image.NewGray(p.Rect)
	draw.Draw(frame, r, src, sp, draw.Src)
	p.Frames = append(p.Frames, frame)
	return nil
}

// Op is a single recorded FakeSurface call.
type Op struct {
	Kind string // "clear", "text", "line", "rect", "flush"
	Text string
	At   image.Point
	To   image.Point
	Rect image.Rectangle
	Fill bool
}

func (o Op) String() string {
	switch o.Kind {
	case "text":
		return fmt.Sprintf("text(%q@%v)", o.Text, o.At)
	case "line":
		return fmt.Sprintf("line(%v-%v)", o.At, o.To)
	case "rect":
		return fmt.Sprintf("rect(%v fill=%v)", o.Rect, o.Fill)
	default:
		return o.Kind
	}
}

// FakeSurface records drawing calls for test assertions.
type FakeSurface struct {
	Ops []Op

	// Flushes counts successful Flush calls.
	Flushes int

	// FlushError, if set, will be returned by Flush.
	FlushError error
}

// NewFakeSurface creates an empty FakeSurface.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{}
}

func (s *FakeSurface) Clear() { s.Ops = append(s.Ops, Op{Kind: "clear"}) }

func (s *FakeSurface) DrawText(text string, at image.Point, _ Style, _ Baseline) {
	s.Ops = append(s.Ops, Op{Kind: "text", Text: text, At: at})
}

func (s *FakeSurface) DrawLine(from, to image.Point) {
	s.Ops = append(s.Ops, Op{Kind: "line", At: from, To: to})
}

func (s *FakeSurface) DrawRect(r image.Rectangle, fill bool) {
	s.Ops = append(s.Ops, Op{Kind: "rect", Rect: r, Fill: fill})
}

func (s *FakeSurface) Flush() error {
	if s.FlushError != nil {
		return s.FlushError
	}
	s.Ops = append(s.Ops, Op{Kind: "flush"})
	s.Flushes++
	return nil
}

func (s *FakeSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, 128, 64)
}

// Texts returns every string drawn since the last Reset.
func (s *FakeSurface) Texts() []string {
	var out []string
	for _, op := range s.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset clears recorded calls.
func (s *FakeSurface) Reset() {
	s.Ops = nil
	s.Flushes = 0
	s.FlushError = nil
}
