package ui

import (
	"fmt"

	"github.com/sweeney/pippo/internal/display"
	"github.com/sweeney/pippo/internal/logic"
)

// Renderer dispatches a View to the draw routine of its screen. A screen is
// redrawn (clear, draw, flush) only when what it shows has changed.
type Renderer struct {
	surface display.Surface
	last    View
	drawn   bool
	redraws int
}

// NewRenderer creates a renderer for s.
func NewRenderer(s display.Surface) *Renderer {
	return &Renderer{surface: s}
}

// Render draws v if it differs from the last drawn view and reports whether
// it drew. While the menu is open and the button is held the redraw is
// deferred until release.
func (r *Renderer) Render(v View) (bool, error) {
	if v.UI == nil {
		v.UI = logic.Home{}
	}
	if _, ok := v.UI.(logic.Menu); ok && v.Held {
		return false, nil
	}

	k := key(v)
	if r.drawn && k == r.last {
		return false, nil
	}

	r.surface.Clear()
	switch s := v.UI.(type) {
	case logic.Home:
		drawHome(r.surface, v)
	case logic.Menu:
		drawMenu(r.surface, s.Selected)
	case logic.Settings:
		drawSettings(r.surface)
	case logic.Status:
		drawStatus(r.surface, v)
	case logic.Exit:
		drawExit(r.surface)
	}
	if err := r.surface.Flush(); err != nil {
		r.drawn = false
		return false, fmt.Errorf("flush %s screen: %w", v.UI.Kind(), err)
	}

	r.last = k
	r.drawn = true
	r.redraws++
	return true, nil
}

// Boot draws the boot screen. The next Render always redraws.
func (r *Renderer) Boot() error {
	r.surface.Clear()
	drawBoot(r.surface)
	r.drawn = false
	if err := r.surface.Flush(); err != nil {
		return fmt.Errorf("flush boot screen: %w", err)
	}
	return nil
}

// Invalidate forces the next Render to redraw.
func (r *Renderer) Invalidate() {
	r.drawn = false
}

// Redraws returns how many frames Render has flushed.
func (r *Renderer) Redraws() int {
	return r.redraws
}
