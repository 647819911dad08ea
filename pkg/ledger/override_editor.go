package ledger

import (
	"errors"
	"strings"
)

var ErrEditorClosed = errors.New("override editor is not open")
var ErrEditorAlreadyOpen = errors.New("override editor is already open")

// OverrideEditor edits the per-month values of one item on a private copy.
// Nothing reaches the collection until Save.
type OverrideEditor[T Item] struct {
	collection *Collection[T]
	open       bool
	index      int
	scratch    T
}

func NewOverrideEditor[T Item](collection *Collection[T]) *OverrideEditor[T] {
	return &OverrideEditor[T]{collection: collection}
}

func (o *OverrideEditor[T]) IsOpen() bool {
	return o.open
}

// Index returns the position of the item being edited.
func (o *OverrideEditor[T]) Index() int {
	return o.index
}

// Scratch returns the working copy while the editor is open.
func (o *OverrideEditor[T]) Scratch() (T, bool) {
	if !o.open {
		var zero T
		return zero, false
	}
	return Clone(o.scratch), true
}

func (o *OverrideEditor[T]) Open(index int) error {
	if o.open {
		return ErrEditorAlreadyOpen
	}
	items := o.collection.get()
	if index < 0 || index >= len(items) {
		return ErrIndexOutOfRange
	}
	o.scratch = Clone(items[index])
	o.index = index
	o.open = true
	return nil
}

// SetMonthValue sets the value for month ("1".."12"). A blank value drops the override.
func (o *OverrideEditor[T]) SetMonthValue(month, value string) error {
	if !o.open {
		return ErrEditorClosed
	}
	month = normalizeMonth(month)
	if !isMonthKey(month) {
		return ErrInvalidMonth
	}
	e := o.scratch.Base()
	if strings.TrimSpace(value) == "" {
		delete(e.MonthlyValues, month)
	} else {
		e.MonthlyValues[month] = value
	}
	o.scratch = o.scratch.withEntry(e).(T)
	return nil
}

// ApplyBaseToAllMonths copies the base value into all twelve months.
func (o *OverrideEditor[T]) ApplyBaseToAllMonths() error {
	if !o.open {
		return ErrEditorClosed
	}
	e := o.scratch.Base()
	for _, month := range MonthKeys() {
		e.MonthlyValues[month] = e.BaseValue
	}
	o.scratch = o.scratch.withEntry(e).(T)
	return nil
}

func (o *OverrideEditor[T]) Save() error {
	if !o.open {
		return ErrEditorClosed
	}
	if err := o.collection.Replace(o.index, o.scratch); err != nil {
		return err
	}
	o.close()
	return nil
}

func (o *OverrideEditor[T]) Cancel() {
	o.close()
}

func (o *OverrideEditor[T]) close() {
	var zero T
	o.scratch = zero
	o.open = false
	o.index = 0
}
