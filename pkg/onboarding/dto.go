package onboarding

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wealthdesk/onboarding/pkg/draft"
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

type StateDTO struct {
	wizard.State
	Notifications []wizard.Notification `json:"notifications"`
	MonthlyFee    decimal.Decimal       `json:"monthlyFee"`
}

// stateToDTO drains the controller's notifications into the response.
func stateToDTO(c *wizard.Controller) StateDTO {
	state := c.State()
	return StateDTO{
		State:         state,
		Notifications: c.Notifications(),
		MonthlyFee:    wizard.MonthlyFee(state.Data.SelectedPlanIDs),
	}
}

type CustomFieldDTO struct {
	ID             uuid.UUID `json:"id"`
	Label          string    `json:"label"`
	Kind           string    `json:"kind"`
	Section        string    `json:"section"`
	ChildIndex     int       `json:"childIndex"`
	Required       bool      `json:"required"`
	Pattern        string    `json:"pattern,omitempty"`
	PatternMessage string    `json:"patternMessage,omitempty"`
	Options        []string  `json:"options,omitempty"`
	Value          string    `json:"value"`
}

func DTOToCustomField(dto CustomFieldDTO) (wizard.CustomField, error) {
	kind, err := wizard.ParseFieldKind(dto.Kind)
	if err != nil {
		return wizard.CustomField{}, err
	}
	section, err := wizard.ParseSection(dto.Section)
	if err != nil {
		return wizard.CustomField{}, err
	}
	id := dto.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return wizard.CustomField{
		ID:             id,
		Label:          dto.Label,
		Kind:           kind,
		Section:        section,
		ChildIndex:     dto.ChildIndex,
		Required:       dto.Required,
		Pattern:        dto.Pattern,
		PatternMessage: dto.PatternMessage,
		Options:        slices.Clone(dto.Options),
		Value:          wizard.NewFieldValue(kind, dto.Value),
	}, nil
}

// PersonalDTO replaces the personal step. A missing spouse removes the spouse; missing
// protection or tax sections are left unchanged.
type PersonalDTO struct {
	Personal     wizard.Person      `json:"personal"`
	Spouse       *wizard.Person     `json:"spouse"`
	Children     []wizard.Child     `json:"children"`
	CustomFields []CustomFieldDTO   `json:"customFields"`
	Protection   *wizard.Protection `json:"protection,omitempty"`
	Tax          *wizard.Tax        `json:"tax,omitempty"`
}

func DTOToPatch(dto PersonalDTO) (wizard.Patch, error) {
	fields := make([]wizard.CustomField, 0, len(dto.CustomFields))
	for _, fieldDTO := range dto.CustomFields {
		field, err := DTOToCustomField(fieldDTO)
		if err != nil {
			return wizard.Patch{}, err
		}
		fields = append(fields, field)
	}
	children := dto.Children
	if children == nil {
		children = []wizard.Child{}
	}
	personal := dto.Personal
	return wizard.Patch{
		Personal:     &personal,
		Spouse:       dto.Spouse,
		RemoveSpouse: dto.Spouse == nil,
		Children:     children,
		CustomFields: fields,
		Protection:   dto.Protection,
		Tax:          dto.Tax,
	}, nil
}

type StepDTO struct {
	Step string `json:"step"`
}

type FieldUpdateDTO struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type MonthValueDTO struct {
	Month string `json:"month"`
	Value string `json:"value"`
}

type OverridesDTO struct {
	Collection string      `json:"collection"`
	Index      int         `json:"index"`
	Item       ledger.Item `json:"item"`
}

func overridesToDTO(o wizard.Overrides) OverridesDTO {
	return OverridesDTO{Collection: collectionName(o.Kind()), Index: o.Index(), Item: o.Scratch()}
}

type DraftDTO struct {
	ID         uuid.UUID    `json:"id"`
	SessionID  uuid.UUID    `json:"sessionId"`
	Status     draft.Status `json:"status"`
	Step       string       `json:"step"`
	ClientName string       `json:"clientName"`
	SavedAt    time.Time    `json:"savedAt"`
}

func DraftToDTO(d draft.Draft) DraftDTO {
	return DraftDTO{
		ID:         d.ID,
		SessionID:  d.SessionID,
		Status:     d.Status,
		Step:       d.Step,
		ClientName: d.ClientName,
		SavedAt:    d.SavedAt,
	}
}

type PlanDTO struct {
	wizard.Plan
	Selected bool `json:"selected"`
}

type PlansDTO struct {
	Plans      []PlanDTO       `json:"plans"`
	MonthlyFee decimal.Decimal `json:"monthlyFee"`
}

func plansToDTO(selected []string) PlansDTO {
	catalog := wizard.Plans()
	plans := make([]PlanDTO, 0, len(catalog))
	for _, plan := range catalog {
		plans = append(plans, PlanDTO{Plan: plan, Selected: slices.Contains(selected, plan.ID)})
	}
	return PlansDTO{Plans: plans, MonthlyFee: wizard.MonthlyFee(selected)}
}

type ImportResultDTO struct {
	Headers  []string          `json:"headers"`
	Mapping  map[string]string `json:"mapping"`
	Imported int               `json:"imported"`
	Errors   []string          `json:"errors"`
}
