package wizard

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownFieldKind = errors.New("unknown custom field kind")
var ErrUnknownSection = errors.New("unknown custom field section")

const dateLayout = "2006-01-02"

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldSelect   FieldKind = "select"
	FieldTextarea FieldKind = "textarea"
	FieldCheckbox FieldKind = "checkbox"
)

func ParseFieldKind(s string) (FieldKind, error) {
	switch kind := FieldKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case FieldText, FieldNumber, FieldDate, FieldSelect, FieldTextarea, FieldCheckbox:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFieldKind, s)
}

// Section is the part of the personal step a custom field is attached to.
type Section string

const (
	SectionClient Section = "client"
	SectionSpouse Section = "spouse"
	SectionChild  Section = "child"
)

func ParseSection(s string) (Section, error) {
	switch section := Section(strings.ToLower(strings.TrimSpace(s))); section {
	case SectionClient, SectionSpouse, SectionChild:
		return section, nil
	case "":
		return SectionClient, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// FieldValue stores a custom field's value in the representation of its kind. Text keeps
// what was entered; Number, Date and Checked are set only when the input parses.
type FieldValue struct {
	Text    string           `json:"text,omitempty"`
	Number  *decimal.Decimal `json:"number,omitempty"`
	Date    *time.Time       `json:"date,omitempty"`
	Checked *bool            `json:"checked,omitempty"`
}

// NewFieldValue interprets raw input for a field of the given kind.
func NewFieldValue(kind FieldKind, input string) FieldValue {
	v := FieldValue{Text: input}
	trimmed := strings.TrimSpace(input)
	switch kind {
	case FieldNumber:
		if n, err := decimal.NewFromString(trimmed); err == nil {
			v.Number = &n
		}
	case FieldDate:
		if d, err := time.Parse(dateLayout, trimmed); err == nil {
			v.Date = &d
		}
	case FieldCheckbox:
		if b, err := strconv.ParseBool(trimmed); err == nil {
			v.Checked = &b
		}
	}
	return v
}

func (v FieldValue) clone() FieldValue {
	if v.Number != nil {
		n := *v.Number
		v.Number = &n
	}
	if v.Date != nil {
		d := *v.Date
		v.Date = &d
	}
	if v.Checked != nil {
		b := *v.Checked
		v.Checked = &b
	}
	return v
}

// Display renders the value the way it is shown and exported.
func (v FieldValue) Display(kind FieldKind) string {
	switch kind {
	case FieldNumber:
		if v.Number != nil {
			return v.Number.String()
		}
	case FieldDate:
		if v.Date != nil {
			return v.Date.Format(dateLayout)
		}
	case FieldCheckbox:
		return strconv.FormatBool(v.Checked != nil && *v.Checked)
	}
	return v.Text
}

type CustomField struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Section Section   `json:"section"`
	// ChildIndex selects the child for fields in the child section.
	ChildIndex     int        `json:"childIndex"`
	Required       bool       `json:"required"`
	Pattern        string     `json:"pattern,omitempty"`
	PatternMessage string     `json:"patternMessage,omitempty"`
	Options        []string   `json:"options,omitempty"`
	Value          FieldValue `json:"value"`
}

func (f CustomField) clone() CustomField {
	f.Options = slices.Clone(f.Options)
	f.Value = f.Value.clone()
	return f
}

// errorKey is the key of the field's entry in a validation error map.
func (f CustomField) errorKey() string {
	return "customFields." + f.ID.String()
}

// validate returns a message for the first rule f breaks, or "" when it is valid.
// A pattern that does not compile is ignored.
func (f CustomField) validate() string {
	text := strings.TrimSpace(f.Value.Text)

	if f.Kind == FieldCheckbox {
		if f.Required && (f.Value.Checked == nil || !*f.Value.Checked) {
			return fmt.Sprintf("%s must be checked", f.Label)
		}
		return ""
	}

	if text == "" {
		if f.Required {
			return fmt.Sprintf("%s is required", f.Label)
		}
		return ""
	}

	switch f.Kind {
	case FieldNumber:
		if f.Value.Number == nil {
			return fmt.Sprintf("%s must be a number", f.Label)
		}
	case FieldDate:
		if f.Value.Date == nil {
			return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", f.Label)
		}
	case FieldSelect:
		if !slices.Contains(f.Options, text) {
			return fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Options, ", "))
		}
	}

	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			log.Debugf("Skipping invalid pattern %q of custom field %s: %v", f.Pattern, f.ID, err)
			return ""
		}
		if !re.MatchString(text) {
			if f.PatternMessage != "" {
				return f.PatternMessage
			}
			return fmt.Sprintf("%s is invalid", f.Label)
		}
	}
	return ""
}
