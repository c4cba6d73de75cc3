package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Change actions carried by RecordChangeMessage.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// RecordChangeMessage announces that a module record was written or
// removed. It carries only the key; the worker reads the record itself.
type RecordChangeMessage struct {
	Module    string    `json:"module"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangeMessage creates a message stamped with the current time.
func NewRecordChangeMessage(module, id, action string) *RecordChangeMessage {
	return &RecordChangeMessage{
		Module:    module,
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON decodes and checks a message body.
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Module == "" || msg.ID == "" {
		return nil, fmt.Errorf("record change message: missing module or id")
	}
	if msg.Action != ActionUpsert && msg.Action != ActionDelete {
		return nil, fmt.Errorf("record change message: unknown action %q", msg.Action)
	}
	return &msg, nil
}
