package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/pippo/internal/logic"
	"github.com/sweeney/pippo/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>pippo</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.connected { color: green; }
.disconnected { color: red; }
button { font-family: monospace; padding: 4px 12px; }
</style>
</head>
<body>
<h1>pippo</h1>

<h2>Screen</h2>
<table>
<tr><th>Screen</th><td id="screen">{{.Screen}}</td></tr>
{{if .Menu}}<tr><th>Selection</th><td>{{.Menu.Selected}}</td></tr>{{end}}
<tr><th>Button</th><td>{{if .Pressed}}pressed{{else}}released{{end}}</td></tr>
<tr><th>Eyes</th><td>{{if .Face.EyesOpen}}open{{else}}closed{{end}}{{if .Face.Expression}}, smiling{{end}}</td></tr>
<tr><th>Redraws</th><td>{{.Redraws}}</td></tr>
</table>

{{if .Weather}}<h2>Weather</h2>
<table>
<tr><th>Temperature</th><td>{{.Weather.TempC}}°C</td></tr>
<tr><th>Condition</th><td>{{.Weather.Condition}}</td></tr>
<tr><th>Humidity</th><td>{{.Weather.Humidity}}%</td></tr>
<tr><th>Fetched</th><td>{{.WeatherAt.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
</table>{{end}}

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}disabled{{end}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
<tr><th>Clock synced</th><td>{{yesno .ClockSynced}}</td></tr>
</table>

<h2>Button</h2>
<table>
<tr><th>Presses</th><td>{{.Counts.Presses}}</td></tr>
<tr><th>Short</th><td>{{.Counts.ShortPresses}}</td></tr>
<tr><th>Long</th><td>{{.Counts.LongPresses}}</td></tr>
<tr><th>Buzzes</th><td>{{.Buzzes}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Long press</th><td>{{.Config.LongPressMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Idle face</th><td>{{yesno .Config.Idle}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

{{if .Config.Buzzer}}<form action="/buzz" method="post"><button type="submit">Buzz</button></form>{{end}}
<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

const buzzHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>pippo</title></head>
<body style="font-family: monospace">
<p>Buzzed!</p>
<p><a href="/">Back</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	data := struct {
		status.Snapshot
		Screen logic.ScreenKind
		Menu   *logic.Menu
		Uptime time.Duration
	}{
		Snapshot: snap,
		Screen:   snap.Screen(),
		Uptime:   snap.Uptime(),
	}
	if m, ok := snap.UI.(logic.Menu); ok {
		data.Menu = &m
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
