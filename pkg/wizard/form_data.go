package wizard

import (
	"slices"

	"github.com/wealthdesk/onboarding/pkg/ledger"
)

type MaritalStatus string

const (
	Single              MaritalStatus = "single"
	Married             MaritalStatus = "married"
	DomesticPartnership MaritalStatus = "domestic-partnership"
	Divorced            MaritalStatus = "divorced"
	Widowed             MaritalStatus = "widowed"
)

// HasPartner reports whether the status requires spouse details.
func (m MaritalStatus) HasPartner() bool {
	return m == Married || m == DomesticPartnership
}

type Person struct {
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	DateOfBirth   string        `json:"dateOfBirth"`
	MaritalStatus MaritalStatus `json:"maritalStatus,omitempty"`
	Occupation    string        `json:"occupation"`
	Employer      string        `json:"employer"`
	Street        string        `json:"street"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	ZipCode       string        `json:"zipCode"`
}

type Child struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Dependent   bool   `json:"dependent"`
}

type Protection struct {
	EmergencyFundMonths    string `json:"emergencyFundMonths"`
	HasWill                bool   `json:"hasWill"`
	HasTrust               bool   `json:"hasTrust"`
	HasPowerOfAttorney     bool   `json:"hasPowerOfAttorney"`
	HasHealthcareDirective bool   `json:"hasHealthcareDirective"`
	BeneficiariesReviewed  bool   `json:"beneficiariesReviewed"`
	Notes                  string `json:"notes"`
}

type Tax struct {
	FilingStatus   string   `json:"filingStatus"`
	TaxBracket     string   `json:"taxBracket"`
	LastReturnYear string   `json:"lastReturnYear"`
	Preparer       string   `json:"preparer"`
	Strategies     []string `json:"strategies"`
	Notes          string   `json:"notes"`
}

// FormData is everything the client enters across the wizard.
type FormData struct {
	Personal Person  `json:"personal"`
	Spouse   *Person `json:"spouse"`
	Children []Child `json:"children"`
	ledger.Ledger
	SelectedPlanIDs []string      `json:"selectedPlanIds"`
	CustomFields    []CustomField `json:"customFields"`
	Protection      Protection    `json:"protection"`
	Tax             Tax           `json:"tax"`
}

func newFormData() FormData {
	return FormData{
		Personal: Person{MaritalStatus: Single},
		Children: []Child{},
		Ledger: ledger.Ledger{
			Income:      []ledger.IncomeItem{},
			Expenses:    []ledger.ExpenseItem{},
			Assets:      []ledger.Asset{},
			Liabilities: []ledger.Liability{},
			Policies:    []ledger.Policy{},
			Goals:       []ledger.Goal{},
		},
		SelectedPlanIDs: []string{},
		CustomFields:    []CustomField{},
		Tax:             Tax{Strategies: []string{}},
	}
}

// Clone returns a copy of f that shares no slices, maps or pointers with it.
func (f FormData) Clone() FormData {
	out := f
	if f.Spouse != nil {
		spouse := *f.Spouse
		out.Spouse = &spouse
	}
	out.Children = slices.Clone(f.Children)
	out.Ledger = f.Ledger.Clone()
	out.SelectedPlanIDs = slices.Clone(f.SelectedPlanIDs)
	if f.CustomFields != nil {
		out.CustomFields = make([]CustomField, len(f.CustomFields))
		for i, field := range f.CustomFields {
			out.CustomFields[i] = field.clone()
		}
	}
	out.Tax.Strategies = slices.Clone(f.Tax.Strategies)
	return out
}

// ClientName is the display name used for saved drafts.
func (f FormData) ClientName() string {
	switch {
	case f.Personal.FirstName != "" && f.Personal.LastName != "":
		return f.Personal.FirstName + " " + f.Personal.LastName
	case f.Personal.FirstName != "":
		return f.Personal.FirstName
	default:
		return f.Personal.LastName
	}
}

// Patch is a shallow merge into FormData: every non-nil field replaces the whole value
// it names. Spouse is replaced wholesale; RemoveSpouse clears it.
type Patch struct {
	Personal        *Person
	Spouse          *Person
	RemoveSpouse    bool
	Children        []Child
	Income          []ledger.IncomeItem
	Expenses        []ledger.ExpenseItem
	Assets          []ledger.Asset
	Liabilities     []ledger.Liability
	Policies        []ledger.Policy
	Goals           []ledger.Goal
	SelectedPlanIDs []string
	CustomFields    []CustomField
	Protection      *Protection
	Tax             *Tax
}

func (f *FormData) merge(p Patch) {
	if p.Personal != nil {
		f.Personal = *p.Personal
	}
	if p.Spouse != nil {
		spouse := *p.Spouse
		f.Spouse = &spouse
	}
	if p.RemoveSpouse {
		f.Spouse = nil
	}
	if p.Children != nil {
		f.Children = p.Children
	}
	if p.Income != nil {
		f.Income = p.Income
	}
	if p.Expenses != nil {
		f.Expenses = p.Expenses
	}
	if p.Assets != nil {
		f.Assets = p.Assets
	}
	if p.Liabilities != nil {
		f.Liabilities = p.Liabilities
	}
	if p.Policies != nil {
		f.Policies = p.Policies
	}
	if p.Goals != nil {
		f.Goals = p.Goals
	}
	if p.SelectedPlanIDs != nil {
		f.SelectedPlanIDs = p.SelectedPlanIDs
	}
	if p.CustomFields != nil {
		f.CustomFields = p.CustomFields
	}
	if p.Protection != nil {
		f.Protection = *p.Protection
	}
	if p.Tax != nil {
		f.Tax = *p.Tax
	}
}
