package personal_csv

import (
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

var itemTargets = []Target{
	{Key: ledger.FieldCategory, Label: "Category"},
	{Key: ledger.FieldSubCategory, Label: "Sub Category"},
	{Key: ledger.FieldDescription, Label: "Description"},
	{Key: ledger.FieldBaseValue, Label: "Amount"},
	{Key: ledger.FieldFrequency, Label: "Frequency"},
	{Key: ledger.FieldIsRecurring, Label: "Recurring"},
}

// ItemTargets lists the item fields an imported column can fill.
func ItemTargets() []Target {
	out := make([]Target, len(itemTargets))
	copy(out, itemTargets)
	return out
}

// ItemRows converts imported records into rows for Workspace.ImportItems.
func ItemRows(records []Record) []wizard.ItemRow {
	rows := make([]wizard.ItemRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, wizard.ItemRow{
			Year:   r.Period.YearString(),
			Month:  r.Period.MonthString(),
			Fields: r.Values,
		})
	}
	return rows
}
