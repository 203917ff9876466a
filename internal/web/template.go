package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/segclock/internal/status"
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
	"display": func(s status.Snapshot) string {
		return status.FormatDisplay(s.Value, s.Mode)
	},
	"volts": func(v float64) string {
		return fmt.Sprintf("%.3f V", v)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>segclock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.display { font-size: 3em; letter-spacing: 0.1em; background: #111; color: #f22; padding: 0.2em 0.4em; display: inline-block; border-radius: 4px; }
.clock { color: #2a6; }
.volts { color: #26c; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>segclock</h1>

<p><span class="display">{{display .Snapshot}}</span></p>

<h2>State</h2>
<table>
<tr><th>Mode</th><td class="{{if eq (printf "%s" .Mode) "VOLTS"}}volts{{else}}clock{{end}}">{{.Mode}}</td></tr>
<tr><th>Elapsed</th><td>{{printf "%02d:%02d" .Minutes .Seconds}}</td></tr>
<tr><th>Potentiometer</th><td>{{volts .Volts}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Resets</th><td>{{.Counts.Resets}}</td></tr>
<tr><th>Mode switches</th><td>{{.Counts.ModeSwitches}}</td></tr>
<tr><th>Minute rollovers</th><td>{{.Counts.Minutes}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Settle</th><td>{{.Config.SettleMs}}ms</td></tr>
<tr><th>Display</th><td>{{if .Config.Sim}}simulated{{else}}hardware{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
