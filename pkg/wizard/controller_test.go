package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthdesk/onboarding/internal/event_bus"
	"github.com/wealthdesk/onboarding/internal/utils"
	"github.com/wealthdesk/onboarding/pkg/draft"
	"github.com/wealthdesk/onboarding/pkg/ledger"
)

var clock = &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}

func setup(t *testing.T) (*Controller, *draft.MemoryStore, *event_bus.EventBus) {
	store := draft.NewMemoryStore(clock, 0)
	bus := event_bus.NewEventBus(clock)
	return NewController(uuid.New(), store, bus, clock), store, bus
}

func validPersonal() *Person {
	return &Person{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@example.com",
		MaritalStatus: Single,
	}
}

func TestController_ValidationBlocksAdvance(t *testing.T) {
	// given
	c, _, _ := setup(t)
	personal := validPersonal()
	personal.FirstName = ""
	c.Apply(Patch{Personal: personal})

	// when
	err := c.Next(context.Background())

	// then
	assert.ErrorIs(t, err, ErrValidationFailed)
	state := c.State()
	assert.Equal(t, StepPersonal, state.Step)
	assert.Contains(t, state.Errors, "firstName")
	notifications := c.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, VariantDestructive, notifications[0].Variant)
	assert.Empty(t, c.Notifications())
}

func TestController_NextAdvancesAndPublishes(t *testing.T) {
	// given
	c, _, bus := setup(t)
	c.Apply(Patch{Personal: validPersonal()})
	var changes []event_bus.StepChanged
	event_bus.SubscribeTyped(bus, event_bus.OnboardingStepChanged, func(e event_bus.EventT[event_bus.StepChanged]) error {
		changes = append(changes, e.Data)
		return nil
	})

	// when
	err := c.Next(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, StepCashflow, c.CurrentStep())
	assert.Empty(t, c.State().Errors)
	require.Len(t, changes, 1)
	assert.Equal(t, "personal", changes[0].From)
	assert.Equal(t, "cashflow", changes[0].To)
}

func TestController_PreviousAndJumpTo(t *testing.T) {
	c, _, _ := setup(t)
	ctx := context.Background()

	c.Previous(ctx)
	assert.Equal(t, StepPersonal, c.CurrentStep())

	// jumping is not gated by validation
	require.NoError(t, c.JumpTo(ctx, StepTaxPlanning))
	assert.Equal(t, StepTaxPlanning, c.CurrentStep())

	c.Previous(ctx)
	assert.Equal(t, StepFinancialGoals, c.CurrentStep())

	assert.ErrorIs(t, c.JumpTo(ctx, Step("retirement")), ErrUnknownStep)
}

func TestController_OnlyPersonalStepValidates(t *testing.T) {
	c, _, _ := setup(t)
	require.NoError(t, c.JumpTo(context.Background(), StepCashflow))

	assert.Empty(t, c.ValidateCurrentStep())
	assert.NoError(t, c.Next(context.Background()))
	assert.Equal(t, StepBalanceSheet, c.CurrentStep())
}

func TestController_ApplyIsShallowMerge(t *testing.T) {
	// given
	c, _, _ := setup(t)
	c.Apply(Patch{Spouse: &Person{FirstName: "John", LastName: "Doe", Email: "john@example.com"}})

	// when
	c.Apply(Patch{Spouse: &Person{FirstName: "Johnny"}})

	// then
	data := c.Data()
	require.NotNil(t, data.Spouse)
	assert.Equal(t, "Johnny", data.Spouse.FirstName)
	assert.Equal(t, "", data.Spouse.LastName)
	assert.Equal(t, Single, data.Personal.MaritalStatus)

	c.Apply(Patch{RemoveSpouse: true})
	assert.Nil(t, c.Data().Spouse)
}

func TestController_SaveProgress(t *testing.T) {
	// given
	c, store, bus := setup(t)
	c.Apply(Patch{Personal: validPersonal()})
	var saved []event_bus.DraftSaved
	event_bus.SubscribeTyped(bus, event_bus.OnboardingDraftSaved, func(e event_bus.EventT[event_bus.DraftSaved]) error {
		saved = append(saved, e.Data)
		return nil
	})

	// when
	first, err := c.SaveProgress(context.Background())
	require.NoError(t, err)
	second, err := c.SaveAsProspect(context.Background())
	require.NoError(t, err)

	// then
	assert.Equal(t, first.ID, second.ID)
	stored, err := store.Get(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.StatusProspect, stored.Status)
	assert.Equal(t, "Jane Doe", stored.ClientName)
	assert.Equal(t, "personal", stored.Step)

	var data FormData
	require.NoError(t, json.Unmarshal(stored.Data, &data))
	assert.Equal(t, "jane@example.com", data.Personal.Email)

	notifications := c.Notifications()
	require.Len(t, notifications, 2)
	assert.Equal(t, VariantDefault, notifications[0].Variant)
	assert.Len(t, saved, 2)
	assert.Equal(t, first.ID, *c.State().DraftID)
}

func TestController_PersistenceFailureIsSurfaced(t *testing.T) {
	// given
	c, store, _ := setup(t)
	require.NoError(t, c.JumpTo(context.Background(), StepBalanceSheet))
	store.FailWith(errors.New("connection refused"))

	// when
	_, err := c.SaveProgress(context.Background())

	// then
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, StepBalanceSheet, c.CurrentStep())
	assert.False(t, c.State().Busy)
	notifications := c.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, VariantDestructive, notifications[0].Variant)
}

type gatedStore struct {
	draft.Store
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) Save(ctx context.Context, d draft.Draft) (draft.Draft, error) {
	s.entered <- struct{}{}
	<-s.release
	return s.Store.Save(ctx, d)
}

func TestController_SecondSaveWhileBusyIsRejected(t *testing.T) {
	// given
	store := &gatedStore{
		Store:   draft.NewMemoryStore(clock, 0),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewController(uuid.New(), store, event_bus.NewEventBus(clock), clock)
	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = c.SaveProgress(context.Background())
	}()
	<-store.entered

	// when
	_, err := c.SaveAsProspect(context.Background())
	c.Apply(Patch{Personal: validPersonal()})
	busy := c.State().Busy

	// then
	assert.ErrorIs(t, err, ErrOperationInProgress)
	assert.True(t, busy)
	assert.Equal(t, "Jane", c.Data().Personal.FirstName)

	close(store.release)
	wg.Wait()
	assert.NoError(t, firstErr)
	assert.False(t, c.State().Busy)
}

func TestController_SubmitOnLastStep(t *testing.T) {
	// given
	c, store, bus := setup(t)
	c.Apply(Patch{Personal: validPersonal()})
	require.NoError(t, c.SelectPlan("comprehensive"))
	require.NoError(t, c.JumpTo(context.Background(), StepSummary))
	var submitted []event_bus.Submitted
	event_bus.SubscribeTyped(bus, event_bus.OnboardingSubmitted, func(e event_bus.EventT[event_bus.Submitted]) error {
		submitted = append(submitted, e.Data)
		return nil
	})

	// when
	err := c.Next(context.Background())

	// then
	require.NoError(t, err)
	assert.True(t, c.State().Submitted)
	require.Len(t, submitted, 1)
	assert.Equal(t, "Jane Doe", submitted[0].ClientName)
	assert.Equal(t, []string{"comprehensive"}, submitted[0].PlanIDs)
	drafts, _ := store.List(context.Background(), draft.StatusSubmitted)
	assert.Len(t, drafts, 1)

	_, err = c.SaveProgress(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestController_Plans(t *testing.T) {
	c, _, _ := setup(t)

	require.NoError(t, c.SelectPlan("essentials"))
	require.NoError(t, c.SelectPlan("tax-planning"))
	require.NoError(t, c.SelectPlan("essentials"))
	assert.Equal(t, []string{"essentials", "tax-planning"}, c.Data().SelectedPlanIDs)
	assert.Equal(t, "174", MonthlyFee(c.Data().SelectedPlanIDs).String())

	require.NoError(t, c.DeselectPlan("essentials"))
	assert.Equal(t, []string{"tax-planning"}, c.Data().SelectedPlanIDs)

	assert.ErrorIs(t, c.SelectPlan("platinum"), ErrUnknownPlan)
	assert.ErrorIs(t, c.DeselectPlan("platinum"), ErrUnknownPlan)
}

func TestController_EditCollections(t *testing.T) {
	c, _, _ := setup(t)

	err := c.Edit(func(w *Workspace) error {
		item, err := w.AddItem(ledger.KindIncome)
		require.NoError(t, err)
		assert.Equal(t, "Salary/Wages", item.Base().Category)
		assert.Equal(t, "2025", item.Base().Year)
		assert.Equal(t, "3", item.Base().Month)
		return w.UpdateItem(ledger.KindIncome, 0, ledger.FieldBaseValue, "1000")
	})
	require.NoError(t, err)
	require.Len(t, c.Data().Income, 1)
	assert.Equal(t, "1000", c.Data().Income[0].BaseValue)

	err = c.Edit(func(w *Workspace) error {
		_, err := w.AddItem(ledger.Kind("crypto"))
		return err
	})
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestController_OverrideEditorThroughWorkspace(t *testing.T) {
	// given
	c, _, _ := setup(t)
	require.NoError(t, c.Edit(func(w *Workspace) error {
		w.Expenses.Add()
		w.Assets.Add()
		return w.UpdateItem(ledger.KindExpense, 0, ledger.FieldBaseValue, "1000")
	}))

	// when
	err := c.Edit(func(w *Workspace) error {
		_, err := w.Overrides()
		assert.ErrorIs(t, err, ledger.ErrEditorClosed)

		editor, err := w.OpenOverrides(ledger.KindExpense, 0)
		require.NoError(t, err)
		_, err = w.OpenOverrides(ledger.KindAsset, 0)
		assert.ErrorIs(t, err, ledger.ErrEditorAlreadyOpen)
		assert.ErrorIs(t, w.RemoveItem(ledger.KindExpense, 0), ledger.ErrEditorAlreadyOpen)

		require.NoError(t, editor.ApplyBaseToAllMonths())
		assert.Len(t, editor.Scratch().Base().MonthlyValues, 12)
		assert.Empty(t, c.data.Expenses[0].MonthlyValues)

		open, err := w.Overrides()
		require.NoError(t, err)
		assert.Equal(t, ledger.KindExpense, open.Kind())
		return open.Save()
	})

	// then
	require.NoError(t, err)
	values := c.Data().Expenses[0].MonthlyValues
	assert.Len(t, values, 12)
	assert.Equal(t, "1000", values["12"])
}

func TestController_IndexShiftingEditsRejectedWhileEditorOpen(t *testing.T) {
	// given
	c, _, _ := setup(t)
	require.NoError(t, c.Edit(func(w *Workspace) error {
		if _, err := w.AddItem(ledger.KindIncome); err != nil {
			return err
		}
		return w.UpdateItem(ledger.KindIncome, 0, ledger.FieldDescription, "A")
	}))

	// when
	err := c.Edit(func(w *Workspace) error {
		editor, err := w.OpenOverrides(ledger.KindIncome, 0)
		require.NoError(t, err)
		require.NoError(t, editor.SetMonthValue("3", "500"))

		_, err = w.AddItem(ledger.KindIncome)
		assert.ErrorIs(t, err, ledger.ErrEditorAlreadyOpen)
		_, err = w.AddItem(ledger.KindExpense)
		assert.ErrorIs(t, err, ledger.ErrEditorAlreadyOpen)
		imported, err := w.ImportItems(ledger.KindIncome, []ItemRow{{Year: "2025", Month: "3"}})
		assert.ErrorIs(t, err, ledger.ErrEditorAlreadyOpen)
		assert.Zero(t, imported)

		return editor.Save()
	})

	// then
	require.NoError(t, err)
	income := c.Data().Income
	require.Len(t, income, 1)
	assert.Equal(t, "A", income[0].Description)
	assert.Equal(t, map[string]string{"3": "500"}, income[0].MonthlyValues)
	assert.Empty(t, c.Data().Expenses)

	require.NoError(t, c.Edit(func(w *Workspace) error {
		_, err := w.AddItem(ledger.KindIncome)
		return err
	}))
	assert.Len(t, c.Data().Income, 2)
}

func TestResume(t *testing.T) {
	// given
	c, store, bus := setup(t)
	c.Apply(Patch{Personal: validPersonal()})
	require.NoError(t, c.JumpTo(context.Background(), StepPlanSelection))
	saved, err := c.SaveProgress(context.Background())
	require.NoError(t, err)

	// when
	resumed, err := Resume(uuid.New(), saved, store, bus, clock)

	// then
	require.NoError(t, err)
	assert.Equal(t, StepPlanSelection, resumed.CurrentStep())
	assert.Equal(t, "Jane", resumed.Data().Personal.FirstName)
	assert.Equal(t, saved.ID, *resumed.State().DraftID)

	saved.Status = draft.StatusSubmitted
	_, err = Resume(uuid.New(), saved, store, bus, clock)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}
