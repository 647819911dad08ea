package onboarding

import (
	"net/http"

	"github.com/wealthdesk/onboarding/internal/rest"
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

// ListItems lists a collection filtered by ?year, ?month and ?view (monthly or yearly).
// Every item carries its index in the full collection.
func (handler *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	kind, err := collectionVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	period, err := periodQuery(r, ledger.PeriodOf(handler.clock.Now()))
	if err != nil {
		writeError(w, err)
		return
	}
	mode, err := ledger.ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, err)
		return
	}

	var items []wizard.FilteredItem
	err = c.Edit(func(ws *wizard.Workspace) error {
		items, err = ws.FilterItems(kind, period.YearString(), period.MonthString(), mode)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, items)
}

// AddItem prepends a default item. The new item is at index 0.
func (handler *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	kind, err := collectionVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var item ledger.Item
	err = c.Edit(func(ws *wizard.Workspace) error {
		item, err = ws.AddItem(kind)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, wizard.FilteredItem{Index: 0, Item: item})
}

func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	kind, err := collectionVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := indexVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var update FieldUpdateDTO
	if !decodeBody(w, r, &update) {
		return
	}

	var item ledger.Item
	err = c.Edit(func(ws *wizard.Workspace) error {
		if err := ws.UpdateItem(kind, index, update.Field, update.Value); err != nil {
			return err
		}
		item, err = ws.Item(kind, index)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, wizard.FilteredItem{Index: index, Item: item})
}

func (handler *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	kind, err := collectionVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := indexVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	err = c.Edit(func(ws *wizard.Workspace) error {
		return ws.RemoveItem(kind, index)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenOverrides opens the monthly override editor on one item.
func (handler *Handler) OpenOverrides(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	kind, err := collectionVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	index, err := indexVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var editor OverridesDTO
	err = c.Edit(func(ws *wizard.Workspace) error {
		overrides, err := ws.OpenOverrides(kind, index)
		if err != nil {
			return err
		}
		editor = overridesToDTO(overrides)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, editor)
}

// editOverrides runs fn on the open override editor and answers with its scratch copy.
func (handler *Handler) editOverrides(w http.ResponseWriter, r *http.Request, fn func(o wizard.Overrides) error) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	var editor OverridesDTO
	err := c.Edit(func(ws *wizard.Workspace) error {
		overrides, err := ws.Overrides()
		if err != nil {
			return err
		}
		if err := fn(overrides); err != nil {
			return err
		}
		editor = overridesToDTO(overrides)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, editor)
}

func (handler *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	handler.editOverrides(w, r, func(o wizard.Overrides) error { return nil })
}

// SetMonthValue sets one month of the open editor. A blank value removes the override.
func (handler *Handler) SetMonthValue(w http.ResponseWriter, r *http.Request) {
	var monthValue MonthValueDTO
	if !decodeBody(w, r, &monthValue) {
		return
	}
	handler.editOverrides(w, r, func(o wizard.Overrides) error {
		return o.SetMonthValue(monthValue.Month, monthValue.Value)
	})
}

func (handler *Handler) ApplyBaseToAllMonths(w http.ResponseWriter, r *http.Request) {
	handler.editOverrides(w, r, func(o wizard.Overrides) error {
		return o.ApplyBaseToAllMonths()
	})
}

// SaveOverrides writes the editor's scratch copy back into the collection and closes it.
func (handler *Handler) SaveOverrides(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	var saved wizard.FilteredItem
	err := c.Edit(func(ws *wizard.Workspace) error {
		overrides, err := ws.Overrides()
		if err != nil {
			return err
		}
		kind, index := overrides.Kind(), overrides.Index()
		if err := overrides.Save(); err != nil {
			return err
		}
		item, err := ws.Item(kind, index)
		if err != nil {
			return err
		}
		saved = wizard.FilteredItem{Index: index, Item: item}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, saved)
}

func (handler *Handler) CancelOverrides(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	err := c.Edit(func(ws *wizard.Workspace) error {
		overrides, err := ws.Overrides()
		if err != nil {
			return err
		}
		overrides.Cancel()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
