package ledger

import (
	"errors"
	"maps"
	"strconv"
	"strings"
	"time"
)

var ErrIndexOutOfRange = errors.New("item index out of range")
var ErrUnknownField = errors.New("unknown item field")
var ErrFieldNotSupported = errors.New("field not supported for this item kind")
var ErrUnknownCategory = errors.New("unknown category")
var ErrInvalidSubCategory = errors.New("sub category does not belong to category")
var ErrInvalidValue = errors.New("invalid field value")
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

type Kind string

const (
	KindIncome    Kind = "income"
	KindExpense   Kind = "expense"
	KindAsset     Kind = "asset"
	KindLiability Kind = "liability"
	KindPolicy    Kind = "policy"
	KindGoal      Kind = "goal"
)

// Field names accepted by Collection.Update.
const (
	FieldCategory       = "category"
	FieldMainCategory   = "mainCategory"
	FieldSubCategory    = "subCategory"
	FieldDescription    = "description"
	FieldBaseValue      = "baseValue"
	FieldFrequency      = "frequency"
	FieldYear           = "year"
	FieldMonth          = "month"
	FieldIsRecurring    = "isRecurring"
	FieldOwnership      = "ownership"
	FieldInterestRate   = "interestRate"
	FieldMonthlyPayment = "monthlyPayment"
	FieldMaturityDate   = "maturityDate"
	FieldProvider       = "provider"
	FieldCoverageAmount = "coverageAmount"
	FieldPremium        = "premium"
	FieldExpiryDate     = "expiryDate"
	FieldTargetAmount   = "targetAmount"
	FieldTargetYear     = "targetYear"
	FieldPriority       = "priority"
)

// Entry holds the fields every ledger item shares. Numeric values stay strings
// and are parsed when aggregated.
type Entry struct {
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Description string    `json:"description"`
	BaseValue   string    `json:"baseValue"`
	Frequency   Frequency `json:"frequency"`
	Year        string    `json:"year"`
	Month       string    `json:"month"`
	IsRecurring bool      `json:"isRecurring"`
	// MonthlyValues maps "1".."12" to an amount that replaces BaseValue for that month.
	MonthlyValues map[string]string `json:"monthlyValues"`
}

// Item is implemented by the six ledger variants only.
type Item interface {
	Kind() Kind
	Base() Entry
	withEntry(e Entry) Item
	withField(field, value string) (Item, error)
}

func (e Entry) clone() Entry {
	e.MonthlyValues = maps.Clone(e.MonthlyValues)
	if e.MonthlyValues == nil {
		e.MonthlyValues = map[string]string{}
	}
	return e
}

// HasOverride reports whether an explicit value exists for month ("1".."12").
func (e Entry) HasOverride(month string) bool {
	_, ok := e.MonthlyValues[normalizeMonth(month)]
	return ok
}

func (e Entry) homeMonth() int {
	m, err := strconv.Atoi(strings.TrimSpace(e.Month))
	if err != nil {
		return 0
	}
	return m
}

func (e Entry) inYear(year int) bool {
	y, err := strconv.Atoi(strings.TrimSpace(e.Year))
	if err != nil {
		return true
	}
	return y == year
}

func (e Entry) homeIs(p Period) bool {
	return e.inYear(p.Year) && e.homeMonth() == p.Month
}

// AppliesTo reports whether the item carries any amount in p: it is recurring in p's
// year, p is its home month, or it has an override for p's month.
func (e Entry) AppliesTo(p Period) bool {
	if !e.inYear(p.Year) {
		return false
	}
	return e.IsRecurring || e.homeMonth() == p.Month || e.HasOverride(p.MonthString())
}

func (e *Entry) setField(kind Kind, field, value string) error {
	switch field {
	case FieldCategory, FieldMainCategory:
		category, ok := LookupCategory(kind, value)
		if !ok {
			return ErrUnknownCategory
		}
		e.Category = category.Name
		e.SubCategory = category.SubCategories[0]
	case FieldSubCategory:
		category, ok := LookupCategory(kind, e.Category)
		if !ok || !category.HasSubCategory(value) {
			return ErrInvalidSubCategory
		}
		e.SubCategory = value
	case FieldDescription:
		e.Description = value
	case FieldBaseValue:
		e.BaseValue = value
	case FieldFrequency:
		if kind == KindAsset || kind == KindLiability {
			return ErrFieldNotSupported
		}
		frequency, err := ParseFrequency(value)
		if err != nil {
			return err
		}
		e.Frequency = frequency
	case FieldYear:
		e.Year = strings.TrimSpace(value)
	case FieldMonth:
		e.Month = normalizeMonth(value)
	case FieldIsRecurring:
		recurring, err := strconv.ParseBool(value)
		if err != nil {
			return ErrInvalidValue
		}
		e.IsRecurring = recurring
	default:
		return ErrUnknownField
	}
	return nil
}

func newEntry(kind Kind, now time.Time) Entry {
	category := Categories(kind)[0]
	return Entry{
		Category:      category.Name,
		SubCategory:   category.SubCategories[0],
		Frequency:     Monthly,
		Year:          strconv.Itoa(now.Year()),
		Month:         strconv.Itoa(int(now.Month())),
		IsRecurring:   true,
		MonthlyValues: map[string]string{},
	}
}

type IncomeItem struct {
	Entry
}

func NewIncomeItem(now time.Time) IncomeItem {
	return IncomeItem{Entry: newEntry(KindIncome, now)}
}

func (i IncomeItem) Kind() Kind  { return KindIncome }
func (i IncomeItem) Base() Entry { return i.Entry }

func (i IncomeItem) withEntry(e Entry) Item {
	i.Entry = e
	return i
}

func (i IncomeItem) withField(field, value string) (Item, error) {
	i.Entry = i.Entry.clone()
	if err := i.Entry.setField(KindIncome, field, value); err != nil {
		return nil, err
	}
	return i, nil
}

type ExpenseItem struct {
	Entry
}

func NewExpenseItem(now time.Time) ExpenseItem {
	return ExpenseItem{Entry: newEntry(KindExpense, now)}
}

func (x ExpenseItem) Kind() Kind  { return KindExpense }
func (x ExpenseItem) Base() Entry { return x.Entry }

func (x ExpenseItem) withEntry(e Entry) Item {
	x.Entry = e
	return x
}

func (x ExpenseItem) withField(field, value string) (Item, error) {
	x.Entry = x.Entry.clone()
	if err := x.Entry.setField(KindExpense, field, value); err != nil {
		return nil, err
	}
	return x, nil
}

// Asset is a point-in-time balance; its frequency is always monthly.
type Asset struct {
	Entry
	Ownership string `json:"ownership"`
}

func NewAsset(now time.Time) Asset {
	return Asset{Entry: newEntry(KindAsset, now), Ownership: "Client"}
}

func (a Asset) Kind() Kind  { return KindAsset }
func (a Asset) Base() Entry { return a.Entry }

func (a Asset) withEntry(e Entry) Item {
	a.Entry = e
	return a
}

func (a Asset) withField(field, value string) (Item, error) {
	a.Entry = a.Entry.clone()
	if field == FieldOwnership {
		a.Ownership = value
		return a, nil
	}
	if err := a.Entry.setField(KindAsset, field, value); err != nil {
		return nil, err
	}
	return a, nil
}

// Liability is a point-in-time balance; its frequency is always monthly.
type Liability struct {
	Entry
	InterestRate   string `json:"interestRate"`
	MonthlyPayment string `json:"monthlyPayment"`
	MaturityDate   string `json:"maturityDate"`
}

func NewLiability(now time.Time) Liability {
	return Liability{Entry: newEntry(KindLiability, now)}
}

func (l Liability) Kind() Kind  { return KindLiability }
func (l Liability) Base() Entry { return l.Entry }

func (l Liability) withEntry(e Entry) Item {
	l.Entry = e
	return l
}

func (l Liability) withField(field, value string) (Item, error) {
	l.Entry = l.Entry.clone()
	switch field {
	case FieldInterestRate:
		l.InterestRate = value
	case FieldMonthlyPayment:
		l.MonthlyPayment = value
	case FieldMaturityDate:
		l.MaturityDate = value
	default:
		if err := l.Entry.setField(KindLiability, field, value); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Policy is an insurance policy. Its premium is the base value the frequency
// normaliser works on, so "premium" and "baseValue" write the same amount.
type Policy struct {
	Entry
	Provider       string `json:"provider"`
	CoverageAmount string `json:"coverageAmount"`
	Premium        string `json:"premium"`
	ExpiryDate     string `json:"expiryDate"`
}

func NewPolicy(now time.Time) Policy {
	return Policy{Entry: newEntry(KindPolicy, now)}
}

func (p Policy) Kind() Kind  { return KindPolicy }
func (p Policy) Base() Entry { return p.Entry }

func (p Policy) withEntry(e Entry) Item {
	p.Entry = e
	p.Premium = e.BaseValue
	return p
}

func (p Policy) withField(field, value string) (Item, error) {
	p.Entry = p.Entry.clone()
	switch field {
	case FieldProvider:
		p.Provider = value
	case FieldCoverageAmount:
		p.CoverageAmount = value
	case FieldExpiryDate:
		p.ExpiryDate = value
	case FieldPremium, FieldBaseValue:
		p.Premium = value
		p.BaseValue = value
	default:
		if err := p.Entry.setField(KindPolicy, field, value); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Goal is a financial goal; BaseValue is the planned contribution.
type Goal struct {
	Entry
	TargetAmount string `json:"targetAmount"`
	TargetYear   string `json:"targetYear"`
	Priority     string `json:"priority"`
}

func NewGoal(now time.Time) Goal {
	return Goal{Entry: newEntry(KindGoal, now), Priority: "Medium"}
}

func (g Goal) Kind() Kind  { return KindGoal }
func (g Goal) Base() Entry { return g.Entry }

func (g Goal) withEntry(e Entry) Item {
	g.Entry = e
	return g
}

func (g Goal) withField(field, value string) (Item, error) {
	g.Entry = g.Entry.clone()
	switch field {
	case FieldTargetAmount:
		g.TargetAmount = value
	case FieldTargetYear:
		g.TargetYear = strings.TrimSpace(value)
	case FieldPriority:
		g.Priority = value
	default:
		if err := g.Entry.setField(KindGoal, field, value); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Clone returns a deep copy of item; the override map is not shared.
func Clone[T Item](item T) T {
	return item.withEntry(item.Base().clone()).(T)
}
