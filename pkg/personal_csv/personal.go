package personal_csv

import (
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

type personalField struct {
	Target
	get func(p wizard.Person) string
	set func(p *wizard.Person, value string)
}

var personalFields = []personalField{
	{Target{"firstName", "First Name"}, func(p wizard.Person) string { return p.FirstName }, func(p *wizard.Person, v string) { p.FirstName = v }},
	{Target{"lastName", "Last Name"}, func(p wizard.Person) string { return p.LastName }, func(p *wizard.Person, v string) { p.LastName = v }},
	{Target{"email", "Email"}, func(p wizard.Person) string { return p.Email }, func(p *wizard.Person, v string) { p.Email = v }},
	{Target{"phone", "Phone"}, func(p wizard.Person) string { return p.Phone }, func(p *wizard.Person, v string) { p.Phone = v }},
	{Target{"dateOfBirth", "Date of Birth"}, func(p wizard.Person) string { return p.DateOfBirth }, func(p *wizard.Person, v string) { p.DateOfBirth = v }},
	{Target{"maritalStatus", "Marital Status"}, func(p wizard.Person) string { return string(p.MaritalStatus) }, func(p *wizard.Person, v string) { p.MaritalStatus = wizard.MaritalStatus(v) }},
	{Target{"occupation", "Occupation"}, func(p wizard.Person) string { return p.Occupation }, func(p *wizard.Person, v string) { p.Occupation = v }},
	{Target{"employer", "Employer"}, func(p wizard.Person) string { return p.Employer }, func(p *wizard.Person, v string) { p.Employer = v }},
	{Target{"street", "Street"}, func(p wizard.Person) string { return p.Street }, func(p *wizard.Person, v string) { p.Street = v }},
	{Target{"city", "City"}, func(p wizard.Person) string { return p.City }, func(p *wizard.Person, v string) { p.City = v }},
	{Target{"state", "State"}, func(p wizard.Person) string { return p.State }, func(p *wizard.Person, v string) { p.State = v }},
	{Target{"zipCode", "ZIP Code"}, func(p wizard.Person) string { return p.ZipCode }, func(p *wizard.Person, v string) { p.ZipCode = v }},
}

func customKey(field wizard.CustomField) string {
	return "custom." + field.ID.String()
}

// PersonalTargets lists the client fields plus the client's custom fields.
func PersonalTargets(data wizard.FormData) []Target {
	targets := make([]Target, 0, len(personalFields)+len(data.CustomFields))
	for _, f := range personalFields {
		targets = append(targets, f.Target)
	}
	for _, field := range data.CustomFields {
		if field.Section == wizard.SectionClient {
			targets = append(targets, Target{Key: customKey(field), Label: field.Label})
		}
	}
	return targets
}

// ExportPersonalInfo renders the client's details as a header row and one data row.
func ExportPersonalInfo(data wizard.FormData) (string, error) {
	headers := make([]string, 0, len(personalFields))
	values := make([]string, 0, len(personalFields))
	for _, f := range personalFields {
		headers = append(headers, f.Label)
		values = append(values, f.get(data.Personal))
	}
	for _, field := range data.CustomFields {
		if field.Section != wizard.SectionClient {
			continue
		}
		headers = append(headers, field.Label)
		values = append(values, field.Value.Display(field.Kind))
	}
	return write(headers, values)
}

// ApplyPersonal builds the patch that writes record into the client's details and
// custom fields. Fields absent from the record keep their current value.
func ApplyPersonal(data wizard.FormData, record Record) wizard.Patch {
	person := data.Personal
	for _, f := range personalFields {
		if value, ok := record.Values[f.Key]; ok {
			f.set(&person, value)
		}
	}

	fields := make([]wizard.CustomField, len(data.CustomFields))
	copy(fields, data.CustomFields)
	for i, field := range fields {
		if value, ok := record.Values[customKey(field)]; ok {
			fields[i].Value = wizard.NewFieldValue(field.Kind, value)
		}
	}
	return wizard.Patch{Personal: &person, CustomFields: fields}
}
