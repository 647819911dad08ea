package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/event_bus"
	"github.com/wealthdesk/onboarding/internal/utils"
	"github.com/wealthdesk/onboarding/pkg/draft"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

var ErrSessionNotFound = errors.New("onboarding session not found")

type session struct {
	controller *wizard.Controller
	lastActive time.Time
}

// Registry holds the wizard controller of every open onboarding session.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	store    draft.Store
	bus      *event_bus.EventBus
	clock    utils.Clock
	idleTtl  time.Duration
}

// NewRegistry creates an empty registry. Sessions idle for longer than idleTtl are
// removed by EvictIdle; zero keeps them forever.
func NewRegistry(store draft.Store, bus *event_bus.EventBus, clock utils.Clock, idleTtl time.Duration) *Registry {
	return &Registry{
		sessions: map[uuid.UUID]*session{},
		store:    store,
		bus:      bus,
		clock:    clock,
		idleTtl:  idleTtl,
	}
}

func (r *Registry) Create() *wizard.Controller {
	controller := wizard.NewController(uuid.New(), r.store, r.bus, r.clock)
	r.add(controller)
	log.Debugf("Created onboarding session %s", controller.SessionID())
	return controller
}

// Resume opens a new session on a saved draft.
func (r *Registry) Resume(ctx context.Context, draftID uuid.UUID) (*wizard.Controller, error) {
	d, err := r.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	controller, err := wizard.Resume(uuid.New(), d, r.store, r.bus, r.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to resume draft %s: %w", draftID, err)
	}
	r.add(controller)
	log.Debugf("Resumed draft %s in session %s", draftID, controller.SessionID())
	return controller, nil
}

func (r *Registry) add(controller *wizard.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[controller.SessionID()] = &session{controller: controller, lastActive: r.clock.Now()}
}

// Get returns the session's controller and marks the session as active.
func (r *Registry) Get(id uuid.UUID) (*wizard.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastActive = r.clock.Now()
	return s.controller, nil
}

func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle removes the sessions that were not used within the idle ttl and returns
// how many were removed.
func (r *Registry) EvictIdle() int {
	if r.idleTtl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.clock.Now().Add(-r.idleTtl)
	evicted := 0
	for id, s := range r.sessions {
		if s.lastActive.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Infof("Evicted %d idle onboarding session(s)", evicted)
	}
	return evicted
}
