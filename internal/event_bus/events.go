package event_bus

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	OnboardingStepChanged EventType = "onboarding.step.changed"
	OnboardingDraftSaved  EventType = "onboarding.draft.saved"
	OnboardingSubmitted   EventType = "onboarding.submitted"
)

type StepChanged struct {
	SessionID uuid.UUID
	From      string
	To        string
}

type DraftSaved struct {
	SessionID uuid.UUID
	DraftID   uuid.UUID
	Status    string
	Step      string
}

// Submitted carries a completed onboarding. Data is the form data as JSON.
type Submitted struct {
	SessionID   uuid.UUID       `json:"sessionId"`
	DraftID     uuid.UUID       `json:"draftId"`
	ClientName  string          `json:"clientName"`
	Email       string          `json:"email"`
	PlanIDs     []string        `json:"planIds"`
	Data        json.RawMessage `json:"data"`
	SubmittedAt time.Time       `json:"submittedAt"`
}
