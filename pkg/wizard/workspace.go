package wizard

import (
	"errors"
	"fmt"

	"github.com/wealthdesk/onboarding/pkg/ledger"
)

var ErrUnknownCollection = errors.New("unknown item collection")

// FilteredItem is an item of a filtered list with its index in the full collection.
type FilteredItem struct {
	Index int         `json:"index"`
	Item  ledger.Item `json:"item"`
}

// Overrides is the open override editor, whatever the kind of item it edits.
type Overrides interface {
	Kind() ledger.Kind
	Index() int
	Scratch() ledger.Item
	SetMonthValue(month, value string) error
	ApplyBaseToAllMonths() error
	Save() error
	Cancel()
}

type collectionOps interface {
	add() ledger.Item
	get(index int) (ledger.Item, error)
	update(index int, field, value string) error
	remove(index int) error
	filter(year, month string, mode ledger.ViewMode) []FilteredItem
	open(index int) error
	isOpen() bool
	overrides() Overrides
}

type ops[T ledger.Item] struct {
	kind       ledger.Kind
	collection *ledger.Collection[T]
	editor     *ledger.OverrideEditor[T]
}

func newOps[T ledger.Item](kind ledger.Kind, collection *ledger.Collection[T]) *ops[T] {
	return &ops[T]{kind: kind, collection: collection, editor: ledger.NewOverrideEditor(collection)}
}

func (o *ops[T]) add() ledger.Item {
	return o.collection.Add()
}

func (o *ops[T]) get(index int) (ledger.Item, error) {
	items := o.collection.Items()
	if index < 0 || index >= len(items) {
		return nil, ledger.ErrIndexOutOfRange
	}
	return ledger.Clone(items[index]), nil
}

func (o *ops[T]) update(index int, field, value string) error {
	return o.collection.Update(index, field, value)
}

func (o *ops[T]) remove(index int) error {
	return o.collection.Remove(index)
}

func (o *ops[T]) filter(year, month string, mode ledger.ViewMode) []FilteredItem {
	indexed := o.collection.FilterIndexed(year, month, mode)
	items := make([]FilteredItem, 0, len(indexed))
	for _, i := range indexed {
		items = append(items, FilteredItem{Index: i.Index, Item: i.Item})
	}
	return items
}

func (o *ops[T]) open(index int) error {
	return o.editor.Open(index)
}

func (o *ops[T]) isOpen() bool {
	return o.editor.IsOpen()
}

func (o *ops[T]) overrides() Overrides {
	return openEditor[T]{kind: o.kind, editor: o.editor}
}

type openEditor[T ledger.Item] struct {
	kind   ledger.Kind
	editor *ledger.OverrideEditor[T]
}

func (e openEditor[T]) Kind() ledger.Kind { return e.kind }
func (e openEditor[T]) Index() int        { return e.editor.Index() }

func (e openEditor[T]) Scratch() ledger.Item {
	scratch, _ := e.editor.Scratch()
	return scratch
}

func (e openEditor[T]) SetMonthValue(month, value string) error {
	return e.editor.SetMonthValue(month, value)
}

func (e openEditor[T]) ApplyBaseToAllMonths() error {
	return e.editor.ApplyBaseToAllMonths()
}

func (e openEditor[T]) Save() error {
	return e.editor.Save()
}

func (e openEditor[T]) Cancel() {
	e.editor.Cancel()
}

// Workspace exposes the item collections of one session. It is only usable inside
// Controller.Edit, which holds the session lock; every mutation goes through the
// controller's patch reducer.
type Workspace struct {
	Income      *ledger.Collection[ledger.IncomeItem]
	Expenses    *ledger.Collection[ledger.ExpenseItem]
	Assets      *ledger.Collection[ledger.Asset]
	Liabilities *ledger.Collection[ledger.Liability]
	Policies    *ledger.Collection[ledger.Policy]
	Goals       *ledger.Collection[ledger.Goal]

	byKind map[ledger.Kind]collectionOps
}

func newWorkspace(c *Controller) *Workspace {
	w := &Workspace{
		Income: ledger.NewCollection(
			func() []ledger.IncomeItem { return c.data.Income },
			func(items []ledger.IncomeItem) { c.apply(Patch{Income: items}) },
			func() ledger.IncomeItem { return ledger.NewIncomeItem(c.clock.Now()) },
		),
		Expenses: ledger.NewCollection(
			func() []ledger.ExpenseItem { return c.data.Expenses },
			func(items []ledger.ExpenseItem) { c.apply(Patch{Expenses: items}) },
			func() ledger.ExpenseItem { return ledger.NewExpenseItem(c.clock.Now()) },
		),
		Assets: ledger.NewCollection(
			func() []ledger.Asset { return c.data.Assets },
			func(items []ledger.Asset) { c.apply(Patch{Assets: items}) },
			func() ledger.Asset { return ledger.NewAsset(c.clock.Now()) },
		),
		Liabilities: ledger.NewCollection(
			func() []ledger.Liability { return c.data.Liabilities },
			func(items []ledger.Liability) { c.apply(Patch{Liabilities: items}) },
			func() ledger.Liability { return ledger.NewLiability(c.clock.Now()) },
		),
		Policies: ledger.NewCollection(
			func() []ledger.Policy { return c.data.Policies },
			func(items []ledger.Policy) { c.apply(Patch{Policies: items}) },
			func() ledger.Policy { return ledger.NewPolicy(c.clock.Now()) },
		),
		Goals: ledger.NewCollection(
			func() []ledger.Goal { return c.data.Goals },
			func(items []ledger.Goal) { c.apply(Patch{Goals: items}) },
			func() ledger.Goal { return ledger.NewGoal(c.clock.Now()) },
		),
	}
	w.byKind = map[ledger.Kind]collectionOps{
		ledger.KindIncome:    newOps(ledger.KindIncome, w.Income),
		ledger.KindExpense:   newOps(ledger.KindExpense, w.Expenses),
		ledger.KindAsset:     newOps(ledger.KindAsset, w.Assets),
		ledger.KindLiability: newOps(ledger.KindLiability, w.Liabilities),
		ledger.KindPolicy:    newOps(ledger.KindPolicy, w.Policies),
		ledger.KindGoal:      newOps(ledger.KindGoal, w.Goals),
	}
	return w
}

func (w *Workspace) collection(kind ledger.Kind) (collectionOps, error) {
	ops, ok := w.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, kind)
	}
	return ops, nil
}

// AddItem prepends a default item to the collection of kind and returns it.
func (w *Workspace) AddItem(kind ledger.Kind) (ledger.Item, error) {
	ops, err := w.collection(kind)
	if err != nil {
		return nil, err
	}
	if err := w.requireEditorClosed(); err != nil {
		return nil, err
	}
	return ops.add(), nil
}

// Item returns a copy of the item at index.
func (w *Workspace) Item(kind ledger.Kind, index int) (ledger.Item, error) {
	ops, err := w.collection(kind)
	if err != nil {
		return nil, err
	}
	return ops.get(index)
}

func (w *Workspace) UpdateItem(kind ledger.Kind, index int, field, value string) error {
	ops, err := w.collection(kind)
	if err != nil {
		return err
	}
	return ops.update(index, field, value)
}

func (w *Workspace) RemoveItem(kind ledger.Kind, index int) error {
	ops, err := w.collection(kind)
	if err != nil {
		return err
	}
	if err := w.requireEditorClosed(); err != nil {
		return err
	}
	return ops.remove(index)
}

// FilterItems lists the items of kind visible for the given year, month and view.
func (w *Workspace) FilterItems(kind ledger.Kind, year, month string, mode ledger.ViewMode) ([]FilteredItem, error) {
	ops, err := w.collection(kind)
	if err != nil {
		return nil, err
	}
	return ops.filter(year, month, mode), nil
}

// OpenOverrides opens the override editor on one item. Only one editor can be open per
// session.
func (w *Workspace) OpenOverrides(kind ledger.Kind, index int) (Overrides, error) {
	ops, err := w.collection(kind)
	if err != nil {
		return nil, err
	}
	if w.openEditor() != nil {
		return nil, ledger.ErrEditorAlreadyOpen
	}
	if err := ops.open(index); err != nil {
		return nil, err
	}
	return ops.overrides(), nil
}

// Overrides returns the open override editor or ledger.ErrEditorClosed.
func (w *Workspace) Overrides() (Overrides, error) {
	if open := w.openEditor(); open != nil {
		return open.overrides(), nil
	}
	return nil, ledger.ErrEditorClosed
}

// requireEditorClosed guards the operations that shift item indexes. The open editor
// writes back to the index it was opened on.
func (w *Workspace) requireEditorClosed() error {
	if w.openEditor() != nil {
		return ledger.ErrEditorAlreadyOpen
	}
	return nil
}

func (w *Workspace) openEditor() collectionOps {
	for _, ops := range w.byKind {
		if ops.isOpen() {
			return ops
		}
	}
	return nil
}

// ItemRow is one imported item: the home period plus field values keyed by the names
// Collection.Update accepts.
type ItemRow struct {
	Year   string
	Month  string
	Fields map[string]string
}

// category must be set before subCategory, which it resets
var importFieldOrder = []string{
	ledger.FieldCategory,
	ledger.FieldSubCategory,
	ledger.FieldDescription,
	ledger.FieldBaseValue,
	ledger.FieldFrequency,
	ledger.FieldIsRecurring,
	ledger.FieldOwnership,
	ledger.FieldInterestRate,
	ledger.FieldMonthlyPayment,
	ledger.FieldMaturityDate,
	ledger.FieldProvider,
	ledger.FieldCoverageAmount,
	ledger.FieldPremium,
	ledger.FieldExpiryDate,
	ledger.FieldTargetAmount,
	ledger.FieldTargetYear,
	ledger.FieldPriority,
}

// ImportItems adds one item per row to the collection of kind, keeping the rows' order
// at the front of the list. Fields that fail to apply are reported and left at their
// defaults; the item is still added. It returns the number of items added.
// Nothing is imported while an override editor is open.
func (w *Workspace) ImportItems(kind ledger.Kind, rows []ItemRow) (int, error) {
	ops, err := w.collection(kind)
	if err != nil {
		return 0, err
	}
	if err := w.requireEditorClosed(); err != nil {
		return 0, err
	}
	var errs []error
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		ops.add()
		apply := func(field, value string) {
			if err := ops.update(0, field, value); err != nil {
				errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			}
		}
		apply(ledger.FieldYear, row.Year)
		apply(ledger.FieldMonth, row.Month)
		for _, field := range importFieldOrder {
			if value, ok := row.Fields[field]; ok {
				apply(field, value)
			}
		}
	}
	return len(rows), errors.Join(errs...)
}
