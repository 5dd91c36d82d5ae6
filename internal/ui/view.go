// Package ui draws the device screens onto a display.Surface.
package ui

import (
	"github.com/sweeney/pippo/internal/logic"
	"github.com/sweeney/pippo/internal/weather"
)

// ClockLayout formats the date and time shown on the face and status screens.
const ClockLayout = "02/01 15:04"

// View is everything the screens draw from. It is comparable so the renderer
// can skip ticks where nothing visible changed.
type View struct {
	UI logic.UI
	// Held is the debounced button level; the menu defers redraws while held.
	Held       bool
	Face       logic.FaceState
	Clock      string
	Online     bool
	HasWeather bool
	Weather    weather.Report
}

// key keeps only the fields the screen for v.UI draws.
func key(v View) View {
	k := View{UI: v.UI}
	switch v.UI.(type) {
	case logic.Home:
		k.Face = v.Face
		k.Clock = v.Clock
		k.Online = v.Online
	case logic.Status:
		k.Clock = v.Clock
		k.HasWeather = v.HasWeather
		k.Weather = v.Weather
	}
	return k
}
