package draft

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wealthdesk/onboarding/internal/utils"
)

// MemoryStore keeps drafts in a map. Every Save waits for the configured latency first,
// standing in for a remote backend.
type MemoryStore struct {
	mu      sync.RWMutex
	drafts  map[uuid.UUID]Draft
	latency time.Duration
	clock   utils.Clock
	failure error
}

func NewMemoryStore(clock utils.Clock, latency time.Duration) *MemoryStore {
	return &MemoryStore{
		drafts:  make(map[uuid.UUID]Draft),
		latency: latency,
		clock:   clock,
	}
}

// FailWith makes every following Save return err, nil restores normal behaviour.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *MemoryStore) Save(ctx context.Context, draft Draft) (Draft, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Draft{}, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return Draft{}, s.failure
	}
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	draft.SavedAt = s.clock.Now()
	draft.Data = slices.Clone(draft.Data)
	s.drafts[draft.ID] = draft
	return draft, nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return draft, nil
}

func (s *MemoryStore) List(ctx context.Context, status Status) ([]Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	drafts := make([]Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		if status == "" || d.Status == status {
			drafts = append(drafts, d)
		}
	}
	slices.SortFunc(drafts, func(a, b Draft) int {
		return b.SavedAt.Compare(a.SavedAt)
	})
	return drafts, nil
}
