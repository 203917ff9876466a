package status

import (
	"encoding/json"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		PollMs:     20,
		DebounceMs: 200,
		SettleMs:   2,
		TickMs:     1000,
		Broker:     "tcp://broker:1883",
		HTTPAddr:   ":8080",
	}
}

func TestNewTrackerDefaults(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	if snap.Mode != ModeClock {
		t.Errorf("initial mode = %s, want CLOCK", snap.Mode)
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time = %v, want %v", snap.StartTime, start)
	}
	if snap.Value != 0 || snap.Seconds != 0 || snap.Minutes != 0 {
		t.Errorf("initial state not zero: %+v", snap)
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	counts := Counts{Resets: 2, ModeSwitches: 3, Minutes: 5}
	tr.Update(ModeVolts, 2750, 9, 5, 2.75, counts)
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if snap.Mode != ModeVolts {
		t.Errorf("mode = %s, want VOLTS", snap.Mode)
	}
	if snap.Value != 2750 || snap.Seconds != 9 || snap.Minutes != 5 {
		t.Errorf("state = %+v", snap)
	}
	if snap.Volts != 2.75 {
		t.Errorf("volts = %v, want 2.75", snap.Volts)
	}
	if snap.Counts != counts {
		t.Errorf("counts = %+v, want %+v", snap.Counts, counts)
	}
	if !snap.MQTTConnected {
		t.Error("MQTTConnected not set")
	}
	if snap.Now.IsZero() {
		t.Error("snapshot Now not populated")
	}
}

func TestUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start.Add(90 * time.Second)}
	if got := snap.Uptime(); got != 90*time.Second {
		t.Errorf("uptime = %v, want 90s", got)
	}
}

func TestFormatDisplay(t *testing.T) {
	cases := []struct {
		value int
		mode  Mode
		want  string
	}{
		{509, ModeClock, "05.09"},
		{0, ModeClock, "00.00"},
		{9959, ModeClock, "99.59"},
		{2750, ModeVolts, "2.750"},
		{0, ModeVolts, "0.000"},
		{3300, ModeVolts, "3.300"},
		{12345, ModeClock, "23.45"}, // truncation matches the display
	}
	for _, c := range cases {
		if got := FormatDisplay(c.value, c.mode); got != c.want {
			t.Errorf("FormatDisplay(%d, %s) = %q, want %q", c.value, c.mode, got, c.want)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())
	tr.Update(ModeClock, 509, 9, 5, 0, Counts{Resets: 1})

	data := FormatJSON(tr.Snapshot())

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	inner := parsed.Status
	if inner.Mode != "CLOCK" {
		t.Errorf("mode = %q, want CLOCK", inner.Mode)
	}
	if inner.Display != "05.09" {
		t.Errorf("display = %q, want 05.09", inner.Display)
	}
	if inner.Value != 509 || inner.Seconds != 9 || inner.Minutes != 5 {
		t.Errorf("value/seconds/minutes = %d/%d/%d", inner.Value, inner.Seconds, inner.Minutes)
	}
	if inner.Counts.Resets != 1 {
		t.Errorf("resets = %d, want 1", inner.Counts.Resets)
	}
	if inner.Config.Broker != "tcp://broker:1883" {
		t.Errorf("broker = %q", inner.Config.Broker)
	}
	if inner.Event != "" {
		t.Errorf("web JSON should carry no event, got %q", inner.Event)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	data := FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("event = %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("reason = %q, want SIGTERM", parsed.Status.Reason)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	tr.Update(ModeVolts, 1234, 1, 2, 1.2, Counts{Resets: 9})

	if snap.Mode != ModeClock || snap.Value != 0 {
		t.Error("snapshot mutated by later Update")
	}
}
