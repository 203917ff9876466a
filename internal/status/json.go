package status

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Mode          string     `json:"mode"`
	Display       string     `json:"display"`
	Value         int        `json:"value"`
	Seconds       int        `json:"seconds"`
	Minutes       int        `json:"minutes"`
	Volts         float64    `json:"volts"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Resets       int `json:"resets"`
	ModeSwitches int `json:"mode_switches"`
	Minutes      int `json:"minute_rollovers"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	SettleMs   int64  `json:"settle_ms"`
	TickMs     int64  `json:"tick_ms"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr"`
	Sim        bool   `json:"sim,omitempty"`
}

// FormatDisplay renders the 4-digit value the way the LED display shows
// it: clock mode puts the decimal point on digit 1 (MM.SS), voltage mode
// on digit 0 (D.DDD).
func FormatDisplay(value int, mode Mode) string {
	s := fmt.Sprintf("%04d", value%10000)
	switch mode {
	case ModeVolts:
		return s[:1] + "." + s[1:]
	default:
		return s[:2] + "." + s[2:]
	}
}

func buildInner(snap Snapshot) StatusInner {
	mode := string(snap.Mode)
	if mode == "" {
		mode = string(ModeClock)
	}

	return StatusInner{
		Mode:          mode,
		Display:       FormatDisplay(snap.Value, snap.Mode),
		Value:         snap.Value,
		Seconds:       snap.Seconds,
		Minutes:       snap.Minutes,
		Volts:         snap.Volts,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Resets:       snap.Counts.Resets,
			ModeSwitches: snap.Counts.ModeSwitches,
			Minutes:      snap.Counts.Minutes,
		},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			DebounceMs: snap.Config.DebounceMs,
			SettleMs:   snap.Config.SettleMs,
			TickMs:     snap.Config.TickMs,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
			Sim:        snap.Config.Sim,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
