package ui

import (
	"image"
	"strconv"

	"github.com/sweeney/pippo/internal/display"
	"github.com/sweeney/pippo/internal/logic"
)

// Layout for a 128x64 panel with the 7x13 face.
const (
	screenWidth = 128
	charWidth   = 7
	maxChars    = screenWidth / charWidth
)

var (
	plain = display.Style{}

	leftEye  = image.Rect(34, 20, 50, 40)
	rightEye = image.Rect(78, 20, 94, 40)
)

func text(s display.Surface, str string, x, y int) {
	s.DrawText(str, image.Pt(x, y), plain, display.BaselineTop)
}

func line(s display.Surface, x0, y0, x1, y1 int) {
	s.DrawLine(image.Pt(x0, y0), image.Pt(x1, y1))
}

func centered(str string) int {
	x := (screenWidth - len([]rune(str))*charWidth) / 2
	if x < 0 {
		return 0
	}
	return x
}

func truncate(str string) string {
	r := []rune(str)
	if len(r) <= maxChars {
		return str
	}
	return string(r[:maxChars])
}

func drawBoot(s display.Surface) {
	text(s, "pippo", centered("pippo"), 14)
	text(s, "is booting...", centered("is booting..."), 32)
}

func drawHome(s display.Surface, v View) {
	text(s, v.Clock, 1, 1)
	if v.Online {
		drawWifiIcon(s)
	}

	if v.Face.EyesOpen {
		s.DrawRect(leftEye, true)
		s.DrawRect(rightEye, true)
	} else {
		mid := (leftEye.Min.Y + leftEye.Max.Y) / 2
		line(s, leftEye.Min.X, mid, leftEye.Max.X-1, mid)
		line(s, rightEye.Min.X, mid, rightEye.Max.X-1, mid)
	}

	if v.Face.Expression {
		line(s, 50, 47, 55, 52)
		line(s, 55, 52, 72, 52)
		line(s, 72, 52, 77, 47)
	} else {
		line(s, 52, 50, 75, 50)
	}
}

func drawWifiIcon(s display.Surface) {
	line(s, 125, 0, 120, 5)
	line(s, 120, 5, 125, 10)
	line(s, 122, 0, 122, 10)
}

func drawMenu(s display.Surface, selected logic.MenuOption) {
	for i, o := range logic.MenuOptions {
		prefix := "  "
		if o == selected {
			prefix = "> "
		}
		text(s, prefix+o.String(), 10, 8+14*i)
	}
}

func drawHints(s display.Surface, title string) {
	text(s, title, 10, 8)
	text(s, "Short: Back", 10, 26)
	text(s, "Long: Face", 10, 40)
}

func drawSettings(s display.Surface) {
	drawHints(s, "Settings")
}

func drawExit(s display.Surface) {
	drawHints(s, "Exit")
}

func drawStatus(s display.Surface, v View) {
	text(s, truncate("Status "+v.Clock), 1, 1)
	if !v.HasWeather {
		text(s, "Weather: n/a", 1, 20)
		return
	}
	w := v.Weather
	text(s, "Temp: "+strconv.FormatFloat(w.TempC, 'f', -1, 64)+"°C", 1, 16)
	text(s, truncate("Cond: "+w.Condition), 1, 30)
	text(s, "Humidity: "+strconv.Itoa(w.Humidity)+"%", 1, 44)
}
