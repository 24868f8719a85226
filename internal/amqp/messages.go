package amqp

import (
	"encoding/json"
	"time"
)

// RunTriggerMessage asks the worker to run the pipeline for a specific
// period, regardless of the schedule. Zero year/month means "current month".
type RunTriggerMessage struct {
	Year        int       `json:"year,omitempty"`
	Month       int       `json:"month,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// RunCompletedMessage is published after every run for downstream listeners.
type RunCompletedMessage struct {
	RunID        string    `json:"run_id"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Outcome      string    `json:"outcome"`
	Transactions int       `json:"transactions"`
	Total        string    `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}

func (m *RunTriggerMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }

func RunTriggerMessageFromJSON(data []byte) (*RunTriggerMessage, error) {
	var msg RunTriggerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *RunCompletedMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }
