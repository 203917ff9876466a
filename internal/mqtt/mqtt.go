// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for clock events.
const Topic = "clock/segclock/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "clock/segclock/system"

// EventType identifies a clock event.
type EventType string

const (
	// EventReset fires when the reset button zeroes the timer.
	EventReset EventType = "RESET"
	// EventModeVolts and EventModeClock fire on mode transitions.
	EventModeVolts EventType = "MODE_VOLTS"
	EventModeClock EventType = "MODE_CLOCK"
	// EventMinute fires on each minute rollover.
	EventMinute EventType = "MINUTE"
)

// Event represents a clock event to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Seconds   int
	Minutes   int
	Value     int // the 4-digit value on the display
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a clock event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Clock ClockPayload `json:"clock"`
}

// ClockPayload contains the clock event details.
type ClockPayload struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Elapsed   ElapsedPayload `json:"elapsed"`
	Value     int            `json:"value"`
}

// ElapsedPayload carries the timer state at the moment of the event.
type ElapsedPayload struct {
	Seconds int `json:"seconds"`
	Minutes int `json:"minutes"`
}

// FormatPayload creates the JSON payload for a clock event.
func FormatPayload(event Event) ([]byte, error) {
	payload := Payload{
		Clock: ClockPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Elapsed:   ElapsedPayload{Seconds: event.Seconds, Minutes: event.Minutes},
			Value:     event.Value,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
