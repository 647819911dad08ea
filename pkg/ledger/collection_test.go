package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomeCollection(initial ...IncomeItem) (*Collection[IncomeItem], *[]IncomeItem, *int) {
	state := initial
	writes := 0
	c := NewCollection(
		func() []IncomeItem { return state },
		func(items []IncomeItem) {
			state = items
			writes++
		},
		func() IncomeItem { return NewIncomeItem(now) },
	)
	return c, &state, &writes
}

func TestCollection_AddThenRemove(t *testing.T) {
	// given
	c, state, _ := incomeCollection()

	// when
	c.Add()

	// then
	require.Len(t, *state, 1)
	item := (*state)[0]
	assert.Equal(t, "Salary/Wages", item.Category)
	assert.Equal(t, "Base Salary", item.SubCategory)
	assert.Equal(t, "2025", item.Year)
	assert.Equal(t, "3", item.Month)
	assert.True(t, item.IsRecurring)
	assert.Empty(t, item.MonthlyValues)

	// when
	err := c.Remove(0)

	// then
	require.NoError(t, err)
	assert.Len(t, *state, 0)
}

func TestCollection_AddPrependsNewestFirst(t *testing.T) {
	// given
	existing := NewIncomeItem(now)
	existing.Description = "existing"
	c, state, _ := incomeCollection(existing)

	// when
	c.Add()

	// then
	require.Len(t, *state, 2)
	assert.Equal(t, "", (*state)[0].Description)
	assert.Equal(t, "existing", (*state)[1].Description)
}

func TestCollection_UpdateIsCopyOnWrite(t *testing.T) {
	// given
	c, state, writes := incomeCollection(NewIncomeItem(now))
	before := *state

	// when
	err := c.Update(0, FieldDescription, "Day job")

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, *writes)
	assert.Equal(t, "Day job", (*state)[0].Description)
	assert.Equal(t, "", before[0].Description)
}

func TestCollection_UpdateCategoryResetsSubCategory(t *testing.T) {
	for _, category := range Categories(KindExpense) {
		t.Run(category.Name, func(t *testing.T) {
			// given
			state := []ExpenseItem{NewExpenseItem(now)}
			c := NewCollection(
				func() []ExpenseItem { return state },
				func(items []ExpenseItem) { state = items },
				func() ExpenseItem { return NewExpenseItem(now) },
			)

			// when
			err := c.Update(0, FieldCategory, category.Name)

			// then
			require.NoError(t, err)
			assert.Equal(t, category.Name, state[0].Category)
			assert.Equal(t, category.SubCategories[0], state[0].SubCategory)
			assert.True(t, category.HasSubCategory(state[0].SubCategory))
		})
	}
}

func TestCollection_UpdateErrors(t *testing.T) {
	c, state, _ := incomeCollection(NewIncomeItem(now))

	tests := []struct {
		name     string
		index    int
		field    string
		value    string
		expected error
	}{
		{"index out of range", 3, FieldDescription, "x", ErrIndexOutOfRange},
		{"negative index", -1, FieldDescription, "x", ErrIndexOutOfRange},
		{"unknown field", 0, "colour", "red", ErrUnknownField},
		{"unknown category", 0, FieldMainCategory, "Lottery", ErrUnknownCategory},
		{"foreign sub category", 0, FieldSubCategory, "Dividends", ErrInvalidSubCategory},
		{"bad recurring flag", 0, FieldIsRecurring, "sometimes", ErrInvalidValue},
		{"bad frequency", 0, FieldFrequency, "hourly", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Update(tt.index, tt.field, tt.value)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
	assert.Equal(t, "Base Salary", (*state)[0].SubCategory)
}

func TestCollection_FrequencyNotSupportedOnBalances(t *testing.T) {
	state := []Asset{NewAsset(now)}
	c := NewCollection(
		func() []Asset { return state },
		func(items []Asset) { state = items },
		func() Asset { return NewAsset(now) },
	)

	err := c.Update(0, FieldFrequency, "annual")

	assert.ErrorIs(t, err, ErrFieldNotSupported)
	assert.Equal(t, Monthly, state[0].Frequency)
}

func TestCollection_VariantFields(t *testing.T) {
	state := []Policy{NewPolicy(now)}
	c := NewCollection(
		func() []Policy { return state },
		func(items []Policy) { state = items },
		func() Policy { return NewPolicy(now) },
	)

	require.NoError(t, c.Update(0, FieldProvider, "Acme Life"))
	require.NoError(t, c.Update(0, FieldPremium, "120"))

	assert.Equal(t, "Acme Life", state[0].Provider)
	assert.Equal(t, "120", state[0].Premium)
	assert.Equal(t, "120", state[0].BaseValue)
}

func TestCollection_Filter(t *testing.T) {
	// given
	home := NewIncomeItem(now) // 2025-3, recurring
	home.Description = "home"
	overridden := NewIncomeItem(now)
	overridden.Description = "overridden"
	overridden.Month = "1"
	overridden.MonthlyValues["5"] = "10"
	oneOff := NewIncomeItem(now)
	oneOff.Description = "one-off"
	oneOff.Month = "1"
	oneOff.IsRecurring = false
	oneOff.MonthlyValues["5"] = "10"
	lastYear := NewIncomeItem(now)
	lastYear.Description = "last year"
	lastYear.Year = "2024"
	c, _, _ := incomeCollection(home, overridden, oneOff, lastYear)

	descriptions := func(items []IncomeItem) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.Description)
		}
		return out
	}

	t.Run("yearly view keeps every item of the year", func(t *testing.T) {
		assert.Equal(t, []string{"home", "overridden", "one-off"}, descriptions(c.Filter("2025", "", ViewYearly)))
	})
	t.Run("monthly view matches home month", func(t *testing.T) {
		assert.Equal(t, []string{"home"}, descriptions(c.Filter("2025", "03", ViewMonthly)))
	})
	t.Run("monthly view shows recurring items only where overridden", func(t *testing.T) {
		assert.Equal(t, []string{"overridden"}, descriptions(c.Filter("2025", "5", ViewMonthly)))
		assert.Empty(t, c.Filter("2025", "4", ViewMonthly))
	})
	t.Run("indexed filter keeps full list positions", func(t *testing.T) {
		indexed := c.FilterIndexed("2025", "5", ViewMonthly)
		require.Len(t, indexed, 1)
		assert.Equal(t, 1, indexed[0].Index)
	})
	t.Run("ledger filter applies the same view to every collection", func(t *testing.T) {
		asset := NewAsset(now)
		l := Ledger{Income: c.Items(), Assets: []Asset{asset}}

		may := l.Filter("2025", "5", ViewMonthly)
		march := l.Filter("2025", "3", ViewMonthly)

		assert.Equal(t, []string{"overridden"}, descriptions(may.Income))
		assert.Empty(t, may.Assets)
		assert.Equal(t, []string{"home"}, descriptions(march.Income))
		assert.Len(t, march.Assets, 1)
		assert.Empty(t, march.Goals)
	})
}

func TestParseViewMode(t *testing.T) {
	mode, err := ParseViewMode("Yearly")
	assert.NoError(t, err)
	assert.Equal(t, ViewYearly, mode)

	mode, err = ParseViewMode("")
	assert.NoError(t, err)
	assert.Equal(t, ViewMonthly, mode)

	_, err = ParseViewMode("weekly")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
