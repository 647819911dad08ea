package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/event_bus"
	"github.com/wealthdesk/onboarding/internal/utils"
	"github.com/wealthdesk/onboarding/pkg/draft"
)

var ErrValidationFailed = errors.New("current step has validation errors")
var ErrOperationInProgress = errors.New("another save or submit is in progress")
var ErrPersistence = errors.New("could not persist onboarding")
var ErrAlreadySubmitted = errors.New("onboarding already submitted")

// State is a read-only copy of a controller's state.
type State struct {
	SessionID uuid.UUID        `json:"sessionId"`
	DraftID   *uuid.UUID       `json:"draftId,omitempty"`
	Step      Step             `json:"step"`
	StepIndex int              `json:"stepIndex"`
	StepTitle string           `json:"stepTitle"`
	Data      FormData         `json:"data"`
	Errors    ValidationErrors `json:"errors"`
	Busy      bool             `json:"busy"`
	Submitted bool             `json:"submitted"`
}

// Controller owns the form data of one onboarding session and sequences the wizard
// steps. Every change to the form data goes through apply.
type Controller struct {
	mu            sync.Mutex
	sessionID     uuid.UUID
	draftID       uuid.UUID
	step          Step
	data          FormData
	errors        ValidationErrors
	notifications []Notification
	busy          bool
	submitted     bool
	workspace     *Workspace

	store draft.Store
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewController(sessionID uuid.UUID, store draft.Store, bus *event_bus.EventBus, clock utils.Clock) *Controller {
	c := &Controller{
		sessionID: sessionID,
		step:      StepPersonal,
		data:      newFormData(),
		errors:    ValidationErrors{},
		store:     store,
		bus:       bus,
		clock:     clock,
	}
	c.workspace = newWorkspace(c)
	return c
}

// Resume rebuilds a controller from a saved draft. The draft keeps its id so later
// saves update it.
func Resume(sessionID uuid.UUID, d draft.Draft, store draft.Store, bus *event_bus.EventBus, clock utils.Clock) (*Controller, error) {
	if d.Status == draft.StatusSubmitted {
		return nil, ErrAlreadySubmitted
	}
	c := NewController(sessionID, store, bus, clock)
	data := newFormData()
	if err := json.Unmarshal(d.Data, &data); err != nil {
		return nil, fmt.Errorf("invalid draft data: %w", err)
	}
	step, err := ParseStep(d.Step)
	if err != nil {
		return nil, err
	}
	c.data = data
	c.step = step
	c.draftID = d.ID
	return c, nil
}

func (c *Controller) SessionID() uuid.UUID {
	return c.sessionID
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := State{
		SessionID: c.sessionID,
		Step:      c.step,
		StepIndex: c.step.Index(),
		StepTitle: c.step.Title(),
		Data:      c.data.Clone(),
		Errors:    cloneErrors(c.errors),
		Busy:      c.busy,
		Submitted: c.submitted,
	}
	if c.draftID != uuid.Nil {
		id := c.draftID
		state.DraftID = &id
	}
	return state
}

func (c *Controller) CurrentStep() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Data returns a copy of the form data.
func (c *Controller) Data() FormData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data.Clone()
}

// Apply merges p into the form data.
func (c *Controller) Apply(p Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(p)
}

// Update merges the patch fn builds from the current form data. fn runs under the
// session lock and must not call back into the controller.
func (c *Controller) Update(fn func(data FormData) Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(fn(c.data.Clone()))
}

func (c *Controller) apply(p Patch) {
	c.data.merge(p)
}

// Edit runs fn with exclusive access to the session's collections. The error of fn is
// returned unchanged.
func (c *Controller) Edit(fn func(w *Workspace) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.workspace)
}

// ValidateCurrentStep validates the current step, remembers the result and returns it.
func (c *Controller) ValidateCurrentStep() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = validateStep(c.step, c.data)
	return cloneErrors(c.errors)
}

// Next validates the current step and moves forward. An invalid step stays put, its
// errors are kept and ErrValidationFailed is returned. On the last step Next submits.
func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	c.errors = validateStep(c.step, c.data)
	if len(c.errors) > 0 {
		c.notify(Notification{
			Title:       "Please fix the highlighted fields",
			Description: fmt.Sprintf("%d field(s) on %s need attention.", len(c.errors), c.step.Title()),
			Variant:     VariantDestructive,
		})
		c.mu.Unlock()
		return ErrValidationFailed
	}
	if c.step.IsLast() {
		c.mu.Unlock()
		return c.submit(ctx)
	}
	from := c.step
	c.step = steps[c.step.Index()+1]
	to := c.step
	c.mu.Unlock()

	c.publishStepChanged(ctx, from, to)
	return nil
}

func (c *Controller) Previous(ctx context.Context) {
	c.mu.Lock()
	if c.step.IsFirst() {
		c.mu.Unlock()
		return
	}
	from := c.step
	c.step = steps[c.step.Index()-1]
	c.errors = ValidationErrors{}
	to := c.step
	c.mu.Unlock()

	c.publishStepChanged(ctx, from, to)
}

// JumpTo moves to any step without validation.
func (c *Controller) JumpTo(ctx context.Context, step Step) error {
	if step.Index() < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	c.mu.Lock()
	from := c.step
	c.step = step
	c.errors = ValidationErrors{}
	c.mu.Unlock()

	if from != step {
		c.publishStepChanged(ctx, from, step)
	}
	return nil
}

// SaveProgress stores the current state as an in-progress draft.
func (c *Controller) SaveProgress(ctx context.Context) (draft.Draft, error) {
	return c.persist(ctx, draft.StatusInProgress, Notification{
		Title:       "Progress saved",
		Description: "You can continue this onboarding later.",
		Variant:     VariantDefault,
	})
}

// SaveAsProspect stores the current state as a prospect.
func (c *Controller) SaveAsProspect(ctx context.Context) (draft.Draft, error) {
	return c.persist(ctx, draft.StatusProspect, Notification{
		Title:       "Saved as prospect",
		Description: "The client was added to your prospects.",
		Variant:     VariantDefault,
	})
}

func (c *Controller) submit(ctx context.Context) error {
	saved, err := c.persist(ctx, draft.StatusSubmitted, Notification{
		Title:       "Onboarding complete",
		Description: "The client onboarding was submitted.",
		Variant:     VariantDefault,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.submitted = true
	submitted := event_bus.Submitted{
		SessionID:   c.sessionID,
		DraftID:     saved.ID,
		ClientName:  saved.ClientName,
		Email:       c.data.Personal.Email,
		PlanIDs:     slices.Clone(c.data.SelectedPlanIDs),
		Data:        saved.Data,
		SubmittedAt: saved.SavedAt,
	}
	c.mu.Unlock()

	c.publish(ctx, event_bus.OnboardingSubmitted, submitted)
	return nil
}

// persist writes a snapshot through the draft store without holding the session lock,
// so other changes are not blocked while it runs. Only one persist runs at a time.
func (c *Controller) persist(ctx context.Context, status draft.Status, success Notification) (draft.Draft, error) {
	c.mu.Lock()
	if c.submitted {
		c.mu.Unlock()
		return draft.Draft{}, ErrAlreadySubmitted
	}
	if c.busy {
		c.mu.Unlock()
		return draft.Draft{}, ErrOperationInProgress
	}
	data, err := json.Marshal(c.data)
	if err != nil {
		c.mu.Unlock()
		return draft.Draft{}, fmt.Errorf("could not encode form data: %w", err)
	}
	snapshot := draft.Draft{
		ID:         c.draftID,
		SessionID:  c.sessionID,
		Status:     status,
		Step:       string(c.step),
		ClientName: c.data.ClientName(),
		Data:       data,
	}
	c.busy = true
	c.mu.Unlock()

	saved, err := c.store.Save(ctx, snapshot)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		log.Errorf("Failed to save onboarding %s as %s: %v", c.sessionID, status, err)
		c.notify(Notification{
			Title:       "Something went wrong",
			Description: "We could not save the onboarding. Please try again.",
			Variant:     VariantDestructive,
		})
		c.mu.Unlock()
		return draft.Draft{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	c.draftID = saved.ID
	c.notify(success)
	c.mu.Unlock()

	c.publish(ctx, event_bus.OnboardingDraftSaved, event_bus.DraftSaved{
		SessionID: c.sessionID,
		DraftID:   saved.ID,
		Status:    string(saved.Status),
		Step:      saved.Step,
	})
	return saved, nil
}

// Notifications returns and clears the queued notifications.
func (c *Controller) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	queued := c.notifications
	c.notifications = nil
	if queued == nil {
		return []Notification{}
	}
	return queued
}

func (c *Controller) notify(n Notification) {
	c.notifications = append(c.notifications, n)
}

// SelectPlan adds a plan from the catalog to the selection.
func (c *Controller) SelectPlan(id string) error {
	if _, ok := LookupPlan(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Contains(c.data.SelectedPlanIDs, id) {
		return nil
	}
	selected := append(slices.Clone(c.data.SelectedPlanIDs), id)
	c.apply(Patch{SelectedPlanIDs: selected})
	return nil
}

func (c *Controller) DeselectPlan(id string) error {
	if _, ok := LookupPlan(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	selected := slices.DeleteFunc(slices.Clone(c.data.SelectedPlanIDs), func(s string) bool { return s == id })
	c.apply(Patch{SelectedPlanIDs: selected})
	return nil
}

func (c *Controller) publishStepChanged(ctx context.Context, from, to Step) {
	c.publish(ctx, event_bus.OnboardingStepChanged, event_bus.StepChanged{
		SessionID: c.sessionID,
		From:      string(from),
		To:        string(to),
	})
}

func (c *Controller) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if err := c.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("Failed to publish %s for session %s: %v", eventType, c.sessionID, err)
	}
}

func cloneErrors(errs ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
