package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"rendiconto/internal/core"
)

type fileMessage struct {
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// NewFromFile loads an inbox fixture from a JSON array of messages. Dry
// runs use it to exercise the full pipeline without a Gmail account.
func NewFromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read messages file: %w", err)
	}
	var raw []fileMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse messages file %s: %w", path, err)
	}
	messages := make([]core.RawMessage, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, core.RawMessage{
			Body:       m.Body,
			ReceivedAt: m.ReceivedAt,
		})
	}
	return New(messages...), nil
}
