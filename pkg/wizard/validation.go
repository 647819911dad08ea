package wizard

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationErrors maps a field path ("firstName", "spouse.lastName",
// "children.0.dateOfBirth", "customFields.<id>") to a message.
type ValidationErrors map[string]string

func validateStep(step Step, data FormData) ValidationErrors {
	if step != StepPersonal {
		return ValidationErrors{}
	}
	return validatePersonal(data)
}

func validatePersonal(data FormData) ValidationErrors {
	errs := ValidationErrors{}
	required := func(key, value, label string) {
		if strings.TrimSpace(value) == "" {
			errs[key] = label + " is required"
		}
	}

	p := data.Personal
	required("firstName", p.FirstName, "First name")
	required("lastName", p.LastName, "Last name")
	required("email", p.Email, "Email")
	if _, missing := errs["email"]; !missing && !emailPattern.MatchString(strings.TrimSpace(p.Email)) {
		errs["email"] = "Please enter a valid email address"
	}

	if p.MaritalStatus.HasPartner() {
		spouse := Person{}
		if data.Spouse != nil {
			spouse = *data.Spouse
		}
		required("spouse.firstName", spouse.FirstName, "Spouse first name")
		required("spouse.lastName", spouse.LastName, "Spouse last name")
		if email := strings.TrimSpace(spouse.Email); email != "" && !emailPattern.MatchString(email) {
			errs["spouse.email"] = "Please enter a valid email address"
		}
	}

	for i, child := range data.Children {
		required(fmt.Sprintf("children.%d.firstName", i), child.FirstName, "Child first name")
		required(fmt.Sprintf("children.%d.dateOfBirth", i), child.DateOfBirth, "Child date of birth")
	}

	for _, field := range data.CustomFields {
		if !appliesTo(field, data) {
			continue
		}
		if msg := field.validate(); msg != "" {
			errs[field.errorKey()] = msg
		}
	}
	return errs
}

// appliesTo reports whether the section a custom field belongs to is currently shown.
func appliesTo(field CustomField, data FormData) bool {
	switch field.Section {
	case SectionSpouse:
		return data.Personal.MaritalStatus.HasPartner()
	case SectionChild:
		return field.ChildIndex >= 0 && field.ChildIndex < len(data.Children)
	default:
		return true
	}
}
