package wizard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func customField(kind FieldKind, input string) CustomField {
	return CustomField{
		ID:      uuid.New(),
		Label:   "Field",
		Kind:    kind,
		Section: SectionClient,
		Value:   NewFieldValue(kind, input),
	}
}

func TestValidatePersonal_RequiredFieldsAndEmail(t *testing.T) {
	tests := []struct {
		name     string
		person   Person
		expected []string
	}{
		{"all missing", Person{}, []string{"firstName", "lastName", "email"}},
		{"blank strings count as missing", Person{FirstName: "  ", LastName: "Doe", Email: "a@b.co"}, []string{"firstName"}},
		{"malformed email", Person{FirstName: "Jane", LastName: "Doe", Email: "jane.example.com"}, []string{"email"}},
		{"email without domain suffix", Person{FirstName: "Jane", LastName: "Doe", Email: "jane@example"}, []string{"email"}},
		{"valid", *validPersonal(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := newFormData()
			data.Personal = tt.person

			errs := validatePersonal(data)

			assert.Len(t, errs, len(tt.expected))
			for _, key := range tt.expected {
				assert.Contains(t, errs, key)
			}
		})
	}
}

func TestValidatePersonal_SpouseRequiredWhenPartnered(t *testing.T) {
	for _, status := range []MaritalStatus{Married, DomesticPartnership} {
		t.Run(string(status), func(t *testing.T) {
			data := newFormData()
			data.Personal = *validPersonal()
			data.Personal.MaritalStatus = status

			errs := validatePersonal(data)
			assert.Contains(t, errs, "spouse.firstName")
			assert.Contains(t, errs, "spouse.lastName")

			data.Spouse = &Person{FirstName: "John", LastName: "Doe", Email: "not-an-email"}
			errs = validatePersonal(data)
			assert.Equal(t, ValidationErrors{"spouse.email": "Please enter a valid email address"}, errs)
		})
	}

	data := newFormData()
	data.Personal = *validPersonal()
	data.Personal.MaritalStatus = Divorced
	assert.Empty(t, validatePersonal(data))
}

func TestValidatePersonal_Children(t *testing.T) {
	data := newFormData()
	data.Personal = *validPersonal()
	data.Children = []Child{
		{FirstName: "Amy", DateOfBirth: "2015-04-01"},
		{LastName: "Doe"},
	}

	errs := validatePersonal(data)

	assert.Equal(t, ValidationErrors{
		"children.1.firstName":   "Child first name is required",
		"children.1.dateOfBirth": "Child date of birth is required",
	}, errs)
}

func TestCustomField_Validate(t *testing.T) {
	required := func(f CustomField) CustomField {
		f.Required = true
		return f
	}
	withPattern := func(f CustomField, pattern, message string) CustomField {
		f.Pattern = pattern
		f.PatternMessage = message
		return f
	}
	selectField := customField(FieldSelect, "Blue")
	selectField.Options = []string{"Red", "Green"}

	tests := []struct {
		name     string
		field    CustomField
		expected string
	}{
		{"optional empty text", customField(FieldText, ""), ""},
		{"required empty text", required(customField(FieldText, " ")), "Field is required"},
		{"required textarea", required(customField(FieldTextarea, "notes")), ""},
		{"number", customField(FieldNumber, "12.5"), ""},
		{"not a number", customField(FieldNumber, "twelve"), "Field must be a number"},
		{"date", customField(FieldDate, "2024-02-29"), ""},
		{"bad date", customField(FieldDate, "29/02/2024"), "Field must be a date (YYYY-MM-DD)"},
		{"select outside options", selectField, "Field must be one of: Red, Green"},
		{"required checkbox unchecked", required(customField(FieldCheckbox, "false")), "Field must be checked"},
		{"required checkbox checked", required(customField(FieldCheckbox, "true")), ""},
		{"pattern mismatch", withPattern(customField(FieldText, "abc"), `^\d{5}$`, "Enter a 5 digit code"), "Enter a 5 digit code"},
		{"pattern mismatch default message", withPattern(customField(FieldText, "abc"), `^\d{5}$`, ""), "Field is invalid"},
		{"pattern match", withPattern(customField(FieldText, "12345"), `^\d{5}$`, ""), ""},
		{"invalid pattern is ignored", withPattern(customField(FieldText, "abc"), `([a-z`, "never shown"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.field.validate())
		})
	}
}

func TestValidatePersonal_CustomFieldSections(t *testing.T) {
	// given
	data := newFormData()
	data.Personal = *validPersonal()
	client := customField(FieldText, "")
	client.Required = true
	spouse := customField(FieldText, "")
	spouse.Required = true
	spouse.Section = SectionSpouse
	child := customField(FieldText, "")
	child.Required = true
	child.Section = SectionChild
	child.ChildIndex = 0
	data.CustomFields = []CustomField{client, spouse, child}

	// when
	errs := validatePersonal(data)

	// then
	assert.Equal(t, ValidationErrors{client.errorKey(): "Field is required"}, errs)

	data.Children = []Child{{FirstName: "Amy", DateOfBirth: "2015-04-01"}}
	assert.Contains(t, validatePersonal(data), child.errorKey())
}

func TestNewFieldValue(t *testing.T) {
	number := NewFieldValue(FieldNumber, " 42.50 ")
	assert.Equal(t, "42.5", number.Display(FieldNumber))

	date := NewFieldValue(FieldDate, "2025-01-31")
	assert.Equal(t, "2025-01-31", date.Display(FieldDate))

	checkbox := NewFieldValue(FieldCheckbox, "yes")
	assert.Nil(t, checkbox.Checked)
	assert.Equal(t, "false", checkbox.Display(FieldCheckbox))

	text := NewFieldValue(FieldText, "free text")
	assert.Equal(t, "free text", text.Display(FieldText))
}

func TestParseStep(t *testing.T) {
	step, err := ParseStep("balance-sheet")
	assert.NoError(t, err)
	assert.Equal(t, 2, step.Index())
	assert.Equal(t, "Balance Sheet", step.Title())

	_, err = ParseStep("retirement")
	assert.ErrorIs(t, err, ErrUnknownStep)

	assert.Len(t, Steps(), 9)
	assert.True(t, StepSummary.IsLast())
	assert.True(t, StepPersonal.IsFirst())
}
