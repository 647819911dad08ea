package personal_csv

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthdesk/onboarding/internal/event_bus"
	"github.com/wealthdesk/onboarding/internal/utils"
	"github.com/wealthdesk/onboarding/pkg/draft"
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

var period = ledger.Period{Year: 2025, Month: 4}

func TestPersonalInfo_RoundTrip(t *testing.T) {
	// given
	employeeId := wizard.CustomField{ID: uuid.New(), Label: "Employee ID", Kind: wizard.FieldNumber, Section: wizard.SectionClient}
	employeeId.Value = wizard.NewFieldValue(wizard.FieldNumber, "4711")
	spouseOnly := wizard.CustomField{ID: uuid.New(), Label: "Spouse Notes", Kind: wizard.FieldText, Section: wizard.SectionSpouse}
	spouseOnly.Value = wizard.NewFieldValue(wizard.FieldText, "not exported")
	original := wizard.FormData{
		Personal: wizard.Person{
			FirstName:     "Jane",
			LastName:      "O'Neil",
			Email:         "jane@example.com",
			Phone:         "+1 555 0100",
			DateOfBirth:   "1980-07-14",
			MaritalStatus: wizard.Married,
			Occupation:    "Engineer, Senior",
			Employer:      `The "Best" Company`,
			Street:        "12 Mill Rd, Apt 4",
			City:          "Springfield",
			State:         "IL",
			ZipCode:       "62701",
		},
		CustomFields: []wizard.CustomField{employeeId, spouseOnly},
	}

	// when
	exported, err := ExportPersonalInfo(original)
	require.NoError(t, err)

	table, err := Parse(strings.NewReader(exported), true)
	require.NoError(t, err)
	blank := wizard.FormData{CustomFields: []wizard.CustomField{
		{ID: employeeId.ID, Label: "Employee ID", Kind: wizard.FieldNumber, Section: wizard.SectionClient},
		{ID: spouseOnly.ID, Label: "Spouse Notes", Kind: wizard.FieldText, Section: wizard.SectionSpouse},
	}}
	mapping := AutoMap(table.Headers, PersonalTargets(blank))
	records := Import(table, mapping, period)
	require.Len(t, records, 1)
	patch := ApplyPersonal(blank, records[0])

	// then
	assert.Len(t, mapping, len(table.Headers))
	require.NotNil(t, patch.Personal)
	assert.Equal(t, original.Personal, *patch.Personal)
	require.Len(t, patch.CustomFields, 2)
	assert.Equal(t, "4711", patch.CustomFields[0].Value.Display(wizard.FieldNumber))
	assert.Equal(t, "", patch.CustomFields[1].Value.Text)
	assert.Equal(t, period, records[0].Period)
}

func TestExportPersonalInfo_QuotesValuesWithCommas(t *testing.T) {
	exported, err := ExportPersonalInfo(wizard.FormData{Personal: wizard.Person{FirstName: "Jane", Street: "1 Main St, Unit 2"}})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(exported), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "First Name,Last Name,Email"))
	assert.Contains(t, lines[1], `"1 Main St, Unit 2"`)
}

func TestParse(t *testing.T) {
	t.Run("quoted fields and doubled quotes", func(t *testing.T) {
		table, err := Parse(strings.NewReader("Name,Note\n\"Doe, Jane\",\"said \"\"hi\"\"\"\n"), true)

		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Note"}, table.Headers)
		assert.Equal(t, [][]string{{"Doe, Jane", `said "hi"`}}, table.Rows)
	})

	t.Run("without headers columns are numbered", func(t *testing.T) {
		table, err := Parse(strings.NewReader("a,b\nc,d,e\n"), false)

		require.NoError(t, err)
		assert.Equal(t, []string{"Column 1", "Column 2", "Column 3"}, table.Headers)
		assert.Len(t, table.Rows, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""), true)

		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("malformed quotes", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a,\"b\n"), true)

		assert.Error(t, err)
	})
}

func TestAutoMap(t *testing.T) {
	headers := []string{" first name ", "EMAIL", "Unrelated", "Email", "zipCode"}

	mapping := AutoMap(headers, PersonalTargets(wizard.FormData{}))

	assert.Equal(t, Mapping{0: "firstName", 1: "email", 4: "zipCode"}, mapping)
}

func TestImport_IgnoresUnmappedAndMissingColumns(t *testing.T) {
	table := Table{
		Headers: []string{"Category", "Amount", "Ignored"},
		Rows:    [][]string{{"Housing", "1200", "x"}, {"Food"}},
	}

	records := Import(table, Mapping{0: ledger.FieldCategory, 1: ledger.FieldBaseValue}, period)

	require.Len(t, records, 2)
	assert.Equal(t, map[string]string{"category": "Housing", "baseValue": "1200"}, records[0].Values)
	assert.Equal(t, map[string]string{"category": "Food"}, records[1].Values)
}

func TestItemRows_ImportIntoCollection(t *testing.T) {
	// given
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)}
	c := wizard.NewController(uuid.New(), draft.NewMemoryStore(clock, 0), event_bus.NewEventBus(clock), clock)
	file := "Category,Sub Category,Description,Amount,Frequency,Recurring\n" +
		"Housing,Utilities,Power,120,monthly,true\n" +
		"Food,Groceries,Weekly shop,90,weekly,yes\n"
	table, err := Parse(strings.NewReader(file), true)
	require.NoError(t, err)
	records := Import(table, AutoMap(table.Headers, ItemTargets()), period)

	// when
	var imported int
	err = c.Edit(func(w *wizard.Workspace) error {
		imported, err = w.ImportItems(ledger.KindExpense, ItemRows(records))
		return err
	})

	// then
	assert.ErrorIs(t, err, ledger.ErrInvalidValue)
	assert.Contains(t, err.Error(), "row 2")
	assert.Equal(t, 2, imported)
	expenses := c.Data().Expenses
	require.Len(t, expenses, 2)
	assert.Equal(t, "Power", expenses[0].Description)
	assert.Equal(t, "Utilities", expenses[0].SubCategory)
	assert.Equal(t, "2025", expenses[0].Year)
	assert.Equal(t, "4", expenses[0].Month)
	assert.Equal(t, "Groceries", expenses[1].SubCategory)
	assert.Equal(t, ledger.Weekly, expenses[1].Frequency)
	assert.True(t, expenses[1].IsRecurring)
}
