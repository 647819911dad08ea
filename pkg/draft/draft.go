package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrDraftNotFound = errors.New("draft not found")
var ErrInvalidStatus = errors.New("invalid draft status")

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusProspect   Status = "prospect"
	StatusSubmitted  Status = "submitted"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusProspect:
		return StatusProspect, nil
	case StatusSubmitted:
		return StatusSubmitted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Draft is a saved snapshot of one onboarding session. Data holds the form data as
// JSON so the store does not depend on the wizard's types.
type Draft struct {
	ID         uuid.UUID       `json:"id"`
	SessionID  uuid.UUID       `json:"sessionId"`
	Status     Status          `json:"status"`
	Step       string          `json:"step"`
	ClientName string          `json:"clientName"`
	Data       json.RawMessage `json:"data"`
	SavedAt    time.Time       `json:"savedAt"`
}

// Store persists drafts. Save upserts by ID and assigns one when it is zero.
type Store interface {
	Save(ctx context.Context, draft Draft) (Draft, error)
	Get(ctx context.Context, id uuid.UUID) (Draft, error)
	// List returns drafts with the given status, newest first. An empty status lists all.
	List(ctx context.Context, status Status) ([]Draft, error)
}
