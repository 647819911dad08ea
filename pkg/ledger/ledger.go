package ledger

// Ledger groups the six item collections of one client.
type Ledger struct {
	Income      []IncomeItem  `json:"income"`
	Expenses    []ExpenseItem `json:"expenses"`
	Assets      []Asset       `json:"assets"`
	Liabilities []Liability   `json:"liabilities"`
	Policies    []Policy      `json:"policies"`
	Goals       []Goal        `json:"goals"`
}

// Clone returns a copy sharing nothing with l.
func (l Ledger) Clone() Ledger {
	return Ledger{
		Income:      cloneAll(l.Income),
		Expenses:    cloneAll(l.Expenses),
		Assets:      cloneAll(l.Assets),
		Liabilities: cloneAll(l.Liabilities),
		Policies:    cloneAll(l.Policies),
		Goals:       cloneAll(l.Goals),
	}
}

// Filter keeps the items of every collection that the item lists show for year and
// month in the given view.
func (l Ledger) Filter(year, month string, mode ViewMode) Ledger {
	return Ledger{
		Income:      FilterItems(l.Income, year, month, mode),
		Expenses:    FilterItems(l.Expenses, year, month, mode),
		Assets:      FilterItems(l.Assets, year, month, mode),
		Liabilities: FilterItems(l.Liabilities, year, month, mode),
		Policies:    FilterItems(l.Policies, year, month, mode),
		Goals:       FilterItems(l.Goals, year, month, mode),
	}
}

func cloneAll[T Item](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = Clone(item)
	}
	return out
}
