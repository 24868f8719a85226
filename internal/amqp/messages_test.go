package amqp

import (
	"testing"
	"time"
)

func TestRunTriggerMessageJSON(t *testing.T) {
	msg := &RunTriggerMessage{
		Year:        2025,
		Month:       9,
		RequestedBy: "ops",
		Timestamp:   time.Date(2025, 10, 1, 7, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := RunTriggerMessageFromJSON(data)
	if err != nil {
		t.Fatalf("RunTriggerMessageFromJSON() error = %v", err)
	}
	if parsed.Year != 2025 || parsed.Month != 9 || parsed.RequestedBy != "ops" {
		t.Fatalf("parsed = %+v", parsed)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestRunTriggerMessageInvalidJSON(t *testing.T) {
	if _, err := RunTriggerMessageFromJSON([]byte(`{"year": "nope"}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
