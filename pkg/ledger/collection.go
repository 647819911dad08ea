package ledger

import (
	"fmt"
	"slices"
	"strings"
)

type ViewMode string

const (
	ViewMonthly ViewMode = "monthly"
	ViewYearly  ViewMode = "yearly"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewMonthly, "":
		return ViewMonthly, nil
	case ViewYearly:
		return ViewYearly, nil
	}
	return "", fmt.Errorf("%w: unknown view mode %q", ErrInvalidValue, s)
}

// Collection manages one list of ledger items. It never keeps its own copy: every
// read goes through get and every mutation writes a brand new slice through set,
// so the owner of the data stays the single source of truth.
type Collection[T Item] struct {
	get     func() []T
	set     func([]T)
	newItem func() T
}

func NewCollection[T Item](get func() []T, set func([]T), newItem func() T) *Collection[T] {
	return &Collection[T]{get: get, set: set, newItem: newItem}
}

// Items returns a copy of the current list.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.get())
}

func (c *Collection[T]) Len() int {
	return len(c.get())
}

// Add puts a new default item at the front of the list and returns it.
func (c *Collection[T]) Add() T {
	item := c.newItem()
	items := c.get()
	next := make([]T, 0, len(items)+1)
	next = append(next, item)
	next = append(next, items...)
	c.set(next)
	return item
}

// Prepend puts already built items at the front of the list, keeping their order.
func (c *Collection[T]) Prepend(items ...T) {
	if len(items) == 0 {
		return
	}
	current := c.get()
	next := make([]T, 0, len(items)+len(current))
	next = append(next, items...)
	next = append(next, current...)
	c.set(next)
}

// Update sets one field of the item at index. Changing the category resets the
// sub category to the first one of the new category.
func (c *Collection[T]) Update(index int, field, value string) error {
	items := c.get()
	if index < 0 || index >= len(items) {
		return ErrIndexOutOfRange
	}
	updated, err := items[index].withField(field, value)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", field, err)
	}
	next := slices.Clone(items)
	next[index] = updated.(T)
	c.set(next)
	return nil
}

// Replace swaps the item at index for item.
func (c *Collection[T]) Replace(index int, item T) error {
	items := c.get()
	if index < 0 || index >= len(items) {
		return ErrIndexOutOfRange
	}
	next := slices.Clone(items)
	next[index] = Clone(item)
	c.set(next)
	return nil
}

func (c *Collection[T]) Remove(index int) error {
	items := c.get()
	if index < 0 || index >= len(items) {
		return ErrIndexOutOfRange
	}
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	c.set(next)
	return nil
}

// Filter selects the items shown for a year (yearly view) or a single month.
func (c *Collection[T]) Filter(year, month string, mode ViewMode) []T {
	return FilterItems(c.get(), year, month, mode)
}

// FilterItems is the list filter behind Collection.Filter. In the monthly view a
// recurring item only shows up outside its home month when it carries an explicit
// override for the queried month.
func FilterItems[T Item](items []T, year, month string, mode ViewMode) []T {
	year = strings.TrimSpace(year)
	month = normalizeMonth(month)
	filtered := make([]T, 0)
	for _, item := range items {
		if visible(item.Base(), year, month, mode) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// visible expects year trimmed and month normalized.
func visible(e Entry, year, month string, mode ViewMode) bool {
	if strings.TrimSpace(e.Year) != year {
		return false
	}
	return mode == ViewYearly || normalizeMonth(e.Month) == month || (e.IsRecurring && e.HasOverride(month))
}

// IndexedItem pairs a filtered item with its position in the full list.
type IndexedItem[T Item] struct {
	Index int `json:"index"`
	Item  T   `json:"item"`
}

// FilterIndexed is Filter but keeps each item's index in the full list, which is
// what Update, Remove and the override editor address.
func (c *Collection[T]) FilterIndexed(year, month string, mode ViewMode) []IndexedItem[T] {
	year = strings.TrimSpace(year)
	month = normalizeMonth(month)
	filtered := make([]IndexedItem[T], 0)
	for idx, item := range c.get() {
		if visible(item.Base(), year, month, mode) {
			filtered = append(filtered, IndexedItem[T]{Index: idx, Item: item})
		}
	}
	return filtered
}
