package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wealthdesk/onboarding/internal/event_bus"
)

// SubmittedMessage announces a completed onboarding to downstream systems.
type SubmittedMessage struct {
	SessionID   uuid.UUID       `json:"sessionId"`
	DraftID     uuid.UUID       `json:"draftId"`
	ClientName  string          `json:"clientName"`
	Email       string          `json:"email"`
	PlanIDs     []string        `json:"planIds"`
	SubmittedAt time.Time       `json:"submittedAt"`
	Data        json.RawMessage `json:"data"`
}

func NewSubmittedMessage(s event_bus.Submitted) *SubmittedMessage {
	return &SubmittedMessage{
		SessionID:   s.SessionID,
		DraftID:     s.DraftID,
		ClientName:  s.ClientName,
		Email:       s.Email,
		PlanIDs:     s.PlanIDs,
		SubmittedAt: s.SubmittedAt,
		Data:        s.Data,
	}
}

func (m *SubmittedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SubmittedMessageFromJSON(data []byte) (*SubmittedMessage, error) {
	var msg SubmittedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
